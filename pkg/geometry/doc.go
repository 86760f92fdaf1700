// Package geometry provides the 2D primitives shared by all layout layers:
// points, rigid transforms, polygons, and bounding boxes.
//
// # Coordinate Conventions
//
//   - Distances are in micrometers, angles in degrees.
//   - Angles are normalized to the half-open interval [0, 360).
//   - The coordinate system is right-handed: positive rotation is
//     counter-clockwise, orientation 0 points along +X.
//
// # Transforms
//
// [Transform] is a rigid 2D transform: an optional mirror about the X axis,
// followed by a rotation, followed by a translation. Composition via
// [Transform.Compose] is associative but not commutative, matching the
// behavior of placed component references in a layout hierarchy.
//
// Polygon boolean operations, rendering, and GDS emission belong to an
// external geometry kernel. This package only carries the opaque polygon
// data and the transforms the layout engine applies to it.
package geometry
