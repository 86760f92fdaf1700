// Package layout provides the serialization boundary between the in-memory
// component model and external tools.
//
// A [Layout] is the canonical wire format for finalized components: a flat
// list of cells (polygons, ports, metadata) plus placements referencing
// earlier cells by name. Shared components serialize once and keep their
// sharing on import. GDS emission is an external sink that consumes this
// form; the core never writes binary layout formats itself.
//
// Common operations:
//
//	l := layout.Export(comp)             // Component -> Layout
//	err := layout.WriteFile(comp, path)  // Component -> JSON file
//	l, err := layout.ReadFile(path)      // JSON file -> Layout
//	comp, err := l.Component()           // Layout -> Component
//
// Cells are emitted children-first, so a layout file can be realized in a
// single pass. All functions are safe for concurrent use on distinct
// values.
package layout
