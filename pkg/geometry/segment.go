package geometry

import "math"

// Segment is a directed straight line segment.
type Segment struct {
	A, B Point
}

// Length returns the segment length.
func (s Segment) Length() float64 { return s.A.Distance(s.B) }

// Direction returns the orientation of the segment in degrees.
func (s Segment) Direction() float64 {
	d := s.B.Sub(s.A)
	return NormalizeAngle(Degrees(math.Atan2(d.Y, d.X)))
}

func abs(v float64) float64 { return math.Abs(v) }

// cross returns the z component of (b-a) x (c-a).
func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// onSegment reports whether c lies on segment ab, assuming collinearity.
func onSegment(a, b, c Point) bool {
	return min(a.X, b.X)-Eps <= c.X && c.X <= max(a.X, b.X)+Eps &&
		min(a.Y, b.Y)-Eps <= c.Y && c.Y <= max(a.Y, b.Y)+Eps
}

// Intersects reports whether two segments share any point. Endpoint contact
// counts as an intersection, so callers checking a polyline for
// self-intersection must skip adjacent segments.
func (s Segment) Intersects(o Segment) bool {
	d1 := cross(o.A, o.B, s.A)
	d2 := cross(o.A, o.B, s.B)
	d3 := cross(s.A, s.B, o.A)
	d4 := cross(s.A, s.B, o.B)

	if ((d1 > Eps && d2 < -Eps) || (d1 < -Eps && d2 > Eps)) &&
		((d3 > Eps && d4 < -Eps) || (d3 < -Eps && d4 > Eps)) {
		return true
	}

	switch {
	case abs(d1) <= Eps && onSegment(o.A, o.B, s.A):
		return true
	case abs(d2) <= Eps && onSegment(o.A, o.B, s.B):
		return true
	case abs(d3) <= Eps && onSegment(s.A, s.B, o.A):
		return true
	case abs(d4) <= Eps && onSegment(s.A, s.B, o.B):
		return true
	}
	return false
}
