// Package netlist reads declarative circuit descriptions and realizes them
// into built components.
//
// A netlist is a TOML document with three sections: named instances (a
// factory reference plus arguments), connections (ordered pairs of
// instance ports), and exposed ports. Realization instantiates every
// factory through a [Registry], mates each listed connection with the
// connection resolver - splicing cross-section transitions automatically -
// and promotes the listed ports onto the finished component.
//
// Realization is fail-fast: the first error aborts the build and no
// partially wired component is returned.
//
//	name = "mzi_arm"
//
//	[instances.in]
//	factory = "straight"
//	args = { cross_section = "xs_sc", length = 10.0 }
//
//	[instances.out]
//	factory = "straight"
//	args = { cross_section = "xs_rc", length = 20.0 }
//
//	[[connections]]
//	from = "out,o1"
//	to = "in,o2"
//
//	[[ports]]
//	name = "o1"
//	port = "in,o1"
package netlist
