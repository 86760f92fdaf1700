// Package cells provides the parametric component factories the routing
// layers compose: straight waveguides, circular bends, width tapers, and
// cross-section transition adapters. All factories resolve their
// cross-section through a technology registry and memoize construction via
// the component build cache, so identical parameters always yield the
// identical finalized component.
//
// The package also ships [Generic], a small builtin technology with strip
// and rib cross-sections and a fully populated transition table. It serves
// as the default PDK for the CLI and as a realistic fixture for tests.
package cells
