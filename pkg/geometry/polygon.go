package geometry

import "fmt"

// Layer identifies a fabrication layer as a (index, datatype) pair,
// following the GDSII convention. Layers are resolved by name through the
// technology registry; the layout core treats them as opaque identifiers.
type Layer struct {
	Index    int `json:"index"`
	Datatype int `json:"datatype"`
}

// String returns the conventional "index/datatype" form.
func (l Layer) String() string { return fmt.Sprintf("%d/%d", l.Index, l.Datatype) }

// Polygon is an opaque closed outline on a single layer. The layout core
// never inspects the outline beyond transforming its points and computing
// bounding boxes; boolean operations belong to the external kernel.
type Polygon struct {
	Layer  Layer   `json:"layer"`
	Points []Point `json:"points"`
}

// Transform returns a copy of the polygon with t applied to every point.
func (p Polygon) Transform(t Transform) Polygon {
	out := Polygon{Layer: p.Layer, Points: make([]Point, len(p.Points))}
	for i, pt := range p.Points {
		out.Points[i] = t.Apply(pt)
	}
	return out
}

// Rect returns an axis-aligned rectangular polygon on the given layer.
func Rect(layer Layer, xmin, ymin, xmax, ymax float64) Polygon {
	return Polygon{
		Layer: layer,
		Points: []Point{
			{xmin, ymin}, {xmax, ymin}, {xmax, ymax}, {xmin, ymax},
		},
	}
}

// BBox is an axis-aligned bounding box.
type BBox struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// EmptyBBox returns a bounding box that acts as the identity for Union.
func EmptyBBox() BBox {
	inf := 1e300
	return BBox{Min: Point{inf, inf}, Max: Point{-inf, -inf}}
}

// IsEmpty reports whether the box contains no points.
func (b BBox) IsEmpty() bool { return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y }

// Width returns the horizontal extent, or 0 for an empty box.
func (b BBox) Width() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.Max.X - b.Min.X
}

// Height returns the vertical extent, or 0 for an empty box.
func (b BBox) Height() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.Max.Y - b.Min.Y
}

// Center returns the center point of the box.
func (b BBox) Center() Point {
	return Point{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2}
}

// Union returns the smallest box containing both b and o.
func (b BBox) Union(o BBox) BBox {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return BBox{
		Min: Point{min(b.Min.X, o.Min.X), min(b.Min.Y, o.Min.Y)},
		Max: Point{max(b.Max.X, o.Max.X), max(b.Max.Y, o.Max.Y)},
	}
}

// ExpandPoint grows the box to include p.
func (b BBox) ExpandPoint(p Point) BBox {
	return b.Union(BBox{Min: p, Max: p})
}

// PolygonBBox returns the bounding box of a polygon's points.
func PolygonBBox(p Polygon) BBox {
	b := EmptyBBox()
	for _, pt := range p.Points {
		b = b.ExpandPoint(pt)
	}
	return b
}
