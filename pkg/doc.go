// Package pkg provides the core libraries for Picforge photonic layout
// generation.
//
// # Overview
//
// Picforge builds physical layouts for waveguide-based photonic circuits:
// components connect through named oriented ports, adapter geometry is
// inserted automatically when a connection crosses incompatible waveguide
// cross-sections, and multi-segment routes prefer low-loss cross-sections
// when geometry permits.
//
// # Architecture
//
// The typical data flow through Picforge:
//
//	TOML netlist
//	         ↓
//	    [netlist] package (parse + realize instances and connections)
//	         ↓
//	    [component] package (ports, references, connection resolver)
//	         ↓
//	    [route] package (transition splicing, route/bundle planning)
//	         ↓
//	    [layout] package (JSON cell-hierarchy export)
//
// # Quick Start
//
// Realize a netlist and export the layout:
//
//	import (
//	    "os"
//	    "github.com/picforge/picforge/pkg/cells"
//	    "github.com/picforge/picforge/pkg/layout"
//	    "github.com/picforge/picforge/pkg/netlist"
//	)
//
//	// 1. Parse the circuit description
//	n, _ := netlist.Load("circuit.toml")
//
//	// 2. Realize it against a technology
//	c, _ := netlist.Realize(cells.Generic(), netlist.DefaultRegistry(), n)
//
//	// 3. Export the cell hierarchy
//	_ = layout.Write(c, os.Stdout)
//
// # Main Packages
//
// [geometry] - Points, rigid 2D transforms (rotation, mirror, translation),
// polygons, and bounding boxes. Everything downstream is expressed in these
// primitives.
//
// [tech] - Technology (PDK) registries: layers, cross-section factories, and
// the directed transition table, with base-technology fallback chains and a
// scoped activation stack.
//
// [component] - The component model: ports, child references, the connection
// resolver, acyclic-reference enforcement, and the memoizing build cache
// with in-flight coalescing.
//
// [cells] - Parametric cell factories (straight, circular bend, taper,
// cross-section transition taper) and the builtin generic technology.
//
// [route] - Automatic transition resolution and the route/bundle planner
// with priority-ordered cross-section fallback.
//
// [netlist] - Declarative TOML circuit descriptions and their realization
// into built components.
//
// [layout] - JSON serialization of finalized component trees, children
// first, shared cells emitted once.
//
// [pipeline] - The netlist → realize → export pipeline shared by CLI entry
// points, with byte-level caching of built layouts.
//
// [cache] - File-backed and null byte caches keyed by content hash.
//
// [observability] - Hook interfaces for pipeline, route, and cache events
// with no-op defaults.
//
// [errors] - Structured errors with machine-readable codes and input
// validation helpers.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/route/...    # Specific package
//
// [geometry]: https://pkg.go.dev/github.com/picforge/picforge/pkg/geometry
// [tech]: https://pkg.go.dev/github.com/picforge/picforge/pkg/tech
// [component]: https://pkg.go.dev/github.com/picforge/picforge/pkg/component
// [cells]: https://pkg.go.dev/github.com/picforge/picforge/pkg/cells
// [route]: https://pkg.go.dev/github.com/picforge/picforge/pkg/route
// [netlist]: https://pkg.go.dev/github.com/picforge/picforge/pkg/netlist
// [layout]: https://pkg.go.dev/github.com/picforge/picforge/pkg/layout
// [pipeline]: https://pkg.go.dev/github.com/picforge/picforge/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/picforge/picforge/pkg/cache
// [observability]: https://pkg.go.dev/github.com/picforge/picforge/pkg/observability
// [errors]: https://pkg.go.dev/github.com/picforge/picforge/pkg/errors
package pkg
