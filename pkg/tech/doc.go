// Package tech implements the technology (PDK) registry: named layers,
// waveguide cross-sections, and the directed transition table used to
// auto-insert adapters between incompatible cross-sections.
//
// # Technologies
//
// A [Technology] is a named registry with an optional base technology.
// Lookups walk the technology itself first, then the base chain outward-in,
// so a derived technology can add or shadow entries without copying its
// base. Base chains are validated against cycles at construction.
//
// # Transitions
//
// The transition table is keyed by [TransitionKey]: either a single layer
// (an intra-cross-section width taper) or an ordered layer pair. Pair keys
// are directed - registering (A, B) says nothing about (B, A). Lookups that
// find no entry report the miss; transitions are never synthesized, because
// silently bridging two cross-sections can produce a geometrically valid
// but optically wrong circuit.
//
// # Activation
//
// Resolvers take an explicit *Technology, which is the preferred way to
// thread a PDK through nested builds. For CLI-style usage the package also
// keeps a process-wide activation stack ([Activate], [Push], [Pop],
// [Active]) guarded by a mutex. Plain Activate replaces the top of the
// stack, so the last activation wins; Push/Pop scope an activation to a
// region of code.
package tech
