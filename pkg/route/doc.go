// Package route implements the transition resolver and the route/bundle
// planner on top of the component and technology layers.
//
// # Transition Resolution
//
// [ResolveTransition] maps a pair of ports onto the technology's directed
// transition table: differing cross-sections key on the ordered
// (source layer, destination layer) pair, equal cross-sections with
// differing widths key on the single layer. A missing entry is a hard
// NO_TRANSITION_DEFINED failure naming both cross-sections - adapters are
// never synthesized, because silently bridging two waveguide types yields a
// circuit that is geometrically fine and optically wrong.
//
// # Planning
//
// [Plan] turns an ordered waypoint list plus a priority-ordered list of
// candidate cross-sections into a built component of straights, circular
// bends, and spliced terminal transitions. Candidates are tried most
// preferred first; a candidate is infeasible when its minimum bend radius
// does not fit the waypoint geometry, when the path self-intersects, or
// when a required terminal transition is not registered. Exhausting the
// list fails with UNROUTABLE carrying the attempted cross-sections and the
// waypoints.
//
// [Bundle] plans groups of parallel routes and computes the per-route
// center-to-center pitch from each chosen cross-section's spec:
// max(width, gap) + margin. Cross-sections with tighter gaps therefore
// pack into narrower bundles.
package route
