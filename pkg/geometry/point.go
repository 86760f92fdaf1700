package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Eps is the absolute tolerance used for coordinate and angle comparisons.
// Layout coordinates are micrometers, so 1e-9 is far below any fabricable
// feature size.
const Eps = 1e-9

// Point is a position in the layout plane, in micrometers.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Eq reports whether p and q coincide within [Eps].
func (p Point) Eq(q Point) bool {
	return scalar.EqualWithinAbs(p.X, q.X, Eps) && scalar.EqualWithinAbs(p.Y, q.Y, Eps)
}

// NormalizeAngle maps an angle in degrees onto [0, 360).
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// Collapse values like 359.9999999999 that arise from float error.
	if scalar.EqualWithinAbs(deg, 360, Eps) {
		return 0
	}
	return deg
}

// AnglesEqual reports whether two angles in degrees are equal modulo 360,
// within [Eps].
func AnglesEqual(a, b float64) bool {
	diff := NormalizeAngle(a - b)
	return scalar.EqualWithinAbs(diff, 0, Eps) || scalar.EqualWithinAbs(diff, 360, Eps)
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }
