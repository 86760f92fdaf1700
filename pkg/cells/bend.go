package cells

import (
	"math"

	"github.com/picforge/picforge/pkg/component"
	"github.com/picforge/picforge/pkg/errors"
	"github.com/picforge/picforge/pkg/geometry"
	"github.com/picforge/picforge/pkg/tech"
)

// bendPointsPerDegree controls how finely bend outlines are discretized.
const bendPointsPerDegree = 0.5

type bendArgs struct {
	XS     string  `json:"xs"`
	Width  float64 `json:"width"`
	Radius float64 `json:"radius"`
	Angle  float64 `json:"angle"`
}

// BendCircular builds a circular arc bend. The path enters at the origin
// heading +X and turns by angle degrees (positive = counter-clockwise).
// A radius of 0 selects the cross-section's minimum bend radius.
//
// Port "o1" sits at the origin facing 180 degrees; "o2" sits at the arc
// end facing along the outgoing direction.
func BendCircular(t *tech.Technology, spec tech.CrossSectionSpec, radius, angle float64) (*component.Component, error) {
	cs, err := spec.Resolve(t)
	if err != nil {
		return nil, err
	}
	if radius == 0 {
		radius = cs.RadiusMin
	}
	if radius <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "bend radius must be positive, got %g", radius)
	}
	if radius < cs.RadiusMin-geometry.Eps {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"bend radius %g is below cross-section %q minimum %g", radius, cs.Name, cs.RadiusMin)
	}
	if angle == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "bend angle must be non-zero")
	}

	return component.Build("bend_circular", bendArgs{XS: cs.Name, Width: cs.Width, Radius: radius, Angle: angle}, func() (*component.Component, error) {
		c := component.New("")

		sign := 1.0
		if angle < 0 {
			sign = -1.0
		}
		center := geometry.Point{Y: sign * radius}
		steps := int(math.Ceil(math.Abs(angle)*bendPointsPerDegree)) + 1
		if steps < 2 {
			steps = 2
		}

		outline := bendOutline(center, radius, cs.Width/2, angle, steps)
		if err := c.AddPolygon(geometry.Polygon{Layer: cs.Layer, Points: outline}); err != nil {
			return nil, err
		}
		for i, clad := range cs.CladdingLayers {
			offset := 0.0
			if i < len(cs.CladdingOffsets) {
				offset = cs.CladdingOffsets[i]
			}
			p := geometry.Polygon{Layer: clad, Points: bendOutline(center, radius, cs.Width/2+offset, angle, steps)}
			if err := c.AddPolygon(p); err != nil {
				return nil, err
			}
		}

		end := arcPoint(center, radius, angle, 1)
		if err := addWaveguidePorts(c, cs, geometry.Point{}, end, 180, angle, cs.Width, cs.Width); err != nil {
			return nil, err
		}
		c.Meta()["length"] = radius * math.Abs(geometry.Radians(angle))
		c.Meta()["radius"] = radius
		c.Meta()["cross_section"] = cs.Name
		return c, nil
	})
}

// arcPoint returns the point at fraction f along the bend path.
func arcPoint(center geometry.Point, radius, angle, f float64) geometry.Point {
	// The path starts at the origin heading +X; the center sits at
	// (0, ±radius). Sweep the start point around the center.
	start := geometry.Point{}.Sub(center)
	s, c := math.Sincos(geometry.Radians(angle * f))
	return center.Add(geometry.Point{X: c*start.X - s*start.Y, Y: s*start.X + c*start.Y})
}

// bendOutline builds the closed outline of an arc of the given half-width.
func bendOutline(center geometry.Point, radius, halfWidth, angle float64, steps int) []geometry.Point {
	inner := radius - halfWidth
	outer := radius + halfWidth

	pts := make([]geometry.Point, 0, 2*steps)
	for i := 0; i < steps; i++ {
		f := float64(i) / float64(steps-1)
		pts = append(pts, offsetArcPoint(center, radius, inner, angle, f))
	}
	for i := steps - 1; i >= 0; i-- {
		f := float64(i) / float64(steps-1)
		pts = append(pts, offsetArcPoint(center, radius, outer, angle, f))
	}
	return pts
}

// offsetArcPoint returns the point at fraction f along the arc, displaced
// radially to distance r from the bend center.
func offsetArcPoint(center geometry.Point, radius, r, angle, f float64) geometry.Point {
	p := arcPoint(center, radius, angle, f)
	d := p.Sub(center)
	return center.Add(d.Scale(r / radius))
}
