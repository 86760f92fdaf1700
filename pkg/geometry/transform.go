package geometry

import "math"

// Transform is a rigid 2D transform applied to placed geometry.
//
// Application order is fixed: mirror about the X axis (if Mirror is set),
// then rotate counter-clockwise by Rotation degrees, then translate by
// Origin. This matches the placement semantics of component references.
//
// The zero value is the identity transform.
type Transform struct {
	Origin   Point   `json:"origin"`
	Rotation float64 `json:"rotation"` // degrees, counter-clockwise
	Mirror   bool    `json:"mirror,omitempty"`
}

// Identity returns the identity transform.
func Identity() Transform { return Transform{} }

// Translate returns a pure translation by (x, y).
func Translate(x, y float64) Transform {
	return Transform{Origin: Point{x, y}}
}

// Rotate returns a pure rotation by deg degrees about the origin.
func Rotate(deg float64) Transform {
	return Transform{Rotation: NormalizeAngle(deg)}
}

// Apply maps a point through the transform.
func (t Transform) Apply(p Point) Point {
	if t.Mirror {
		p.Y = -p.Y
	}
	if t.Rotation != 0 {
		s, c := math.Sincos(Radians(t.Rotation))
		p = Point{X: c*p.X - s*p.Y, Y: s*p.X + c*p.Y}
	}
	return p.Add(t.Origin)
}

// ApplyAngle maps an orientation angle (degrees) through the transform.
// Mirroring negates the angle before the rotation is added.
func (t Transform) ApplyAngle(deg float64) float64 {
	if t.Mirror {
		deg = -deg
	}
	return NormalizeAngle(deg + t.Rotation)
}

// Compose returns the transform equivalent to applying u first, then t.
// Composition is associative but not commutative.
func (t Transform) Compose(u Transform) Transform {
	rot := u.Rotation
	if t.Mirror {
		rot = -rot
	}
	return Transform{
		Origin:   t.Apply(u.Origin),
		Rotation: NormalizeAngle(t.Rotation + rot),
		Mirror:   t.Mirror != u.Mirror,
	}
}

// IsIdentity reports whether the transform leaves geometry unchanged.
func (t Transform) IsIdentity() bool {
	return !t.Mirror && t.Origin.Eq(Point{}) && AnglesEqual(t.Rotation, 0)
}

// IsTranslation reports whether the transform is a pure translation
// (no rotation, no mirror). Used to verify that symmetric transition
// round-trips introduce no net rotation.
func (t Transform) IsTranslation() bool {
	return !t.Mirror && AnglesEqual(t.Rotation, 0)
}
