package cells

import (
	"github.com/picforge/picforge/pkg/component"
	"github.com/picforge/picforge/pkg/errors"
	"github.com/picforge/picforge/pkg/geometry"
	"github.com/picforge/picforge/pkg/tech"
)

type straightArgs struct {
	XS     string  `json:"xs"`
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
}

// Straight builds a straight waveguide of the given length along +X.
// Port "o1" sits at the origin facing 180 degrees, "o2" at (length, 0)
// facing 0 degrees.
func Straight(t *tech.Technology, spec tech.CrossSectionSpec, length float64) (*component.Component, error) {
	if length <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "straight length must be positive, got %g", length)
	}
	cs, err := spec.Resolve(t)
	if err != nil {
		return nil, err
	}

	return component.Build("straight", straightArgs{XS: cs.Name, Width: cs.Width, Length: length}, func() (*component.Component, error) {
		c := component.New("")
		half := cs.Width / 2
		if err := c.AddPolygon(geometry.Rect(cs.Layer, 0, -half, length, half)); err != nil {
			return nil, err
		}
		for i, clad := range cs.CladdingLayers {
			offset := 0.0
			if i < len(cs.CladdingOffsets) {
				offset = cs.CladdingOffsets[i]
			}
			if err := c.AddPolygon(geometry.Rect(clad, 0, -half-offset, length, half+offset)); err != nil {
				return nil, err
			}
		}
		if err := addWaveguidePorts(c, cs, geometry.Point{}, geometry.Point{X: length}, 180, 0, cs.Width, cs.Width); err != nil {
			return nil, err
		}
		c.Meta()["length"] = length
		c.Meta()["cross_section"] = cs.Name
		return c, nil
	})
}

// addWaveguidePorts registers the conventional "o1"/"o2" port pair.
func addWaveguidePorts(c *component.Component, cs tech.CrossSection, p1, p2 geometry.Point, a1, a2, w1, w2 float64) error {
	if err := c.AddPort(component.Port{
		Name: "o1", Center: p1, Orientation: geometry.NormalizeAngle(a1),
		Width: w1, Layer: cs.Layer, CrossSection: cs.Name,
	}); err != nil {
		return err
	}
	return c.AddPort(component.Port{
		Name: "o2", Center: p2, Orientation: geometry.NormalizeAngle(a2),
		Width: w2, Layer: cs.Layer, CrossSection: cs.Name,
	})
}
