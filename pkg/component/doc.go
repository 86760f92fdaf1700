// Package component implements the port and component model: components
// built from polygons and named ports, placed as transformed references,
// and mated through the connection resolver.
//
// # Components and References
//
// A [Component] owns opaque polygons, a set of uniquely named [Port]s, and
// child [Reference]s. Components are built once, finalized, and then only
// referenced; a finalized component rejects further mutation. References
// share the underlying component, so placing the same component twice costs
// one transform per placement, not a copy of the geometry.
//
// The reference graph must stay acyclic. [Component.AddRef] walks the
// child's reference graph and rejects a placement that would make a
// component contain itself, directly or transitively.
//
// # Connections
//
// [Reference.Connect] computes the rigid transform that mates a port of the
// moving reference with a fixed port: mated ports face each other head-on
// (orientations differ by 180 degrees) and coincide in position. Only the
// moving reference's transform is touched.
//
// # Memoized Builds
//
// [Builder] caches component construction by (factory name, canonicalized
// arguments). Two builds with identical arguments return the same finalized
// component; concurrent builds for the same key coalesce to a single
// in-flight construction. Failed builds are not cached and never escape as
// partially built components.
package component
