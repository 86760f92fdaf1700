package cells

import (
	"math"

	"github.com/picforge/picforge/pkg/component"
	"github.com/picforge/picforge/pkg/errors"
	"github.com/picforge/picforge/pkg/geometry"
	"github.com/picforge/picforge/pkg/tech"
)

// taperLengthPerMicron scales the default taper length with the width
// difference being bridged: 10 um of taper per micron of width change.
const taperLengthPerMicron = 10.0

// defaultTransitionLength is the default length of a two-layer transition
// adapter.
const defaultTransitionLength = 10.0

type taperArgs struct {
	XS     string  `json:"xs"`
	Width1 float64 `json:"width1"`
	Width2 float64 `json:"width2"`
	Length float64 `json:"length"`
}

// Taper builds a linear width taper within a single cross-section.
// A length of 0 selects |width1-width2| * 10, the conventional adiabatic
// default. Port "o1" carries width1, "o2" carries width2.
func Taper(t *tech.Technology, spec tech.CrossSectionSpec, width1, width2, length float64) (*component.Component, error) {
	if width1 <= 0 || width2 <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"taper widths must be positive, got %g and %g", width1, width2)
	}
	cs, err := spec.Resolve(t)
	if err != nil {
		return nil, err
	}
	if length == 0 {
		length = math.Abs(width1-width2) * taperLengthPerMicron
	}
	if length <= 0 {
		// Equal widths with no explicit length degenerate to a stub.
		length = 1
	}

	return component.Build("taper", taperArgs{XS: cs.Name, Width1: width1, Width2: width2, Length: length}, func() (*component.Component, error) {
		c := component.New("")
		if err := c.AddPolygon(trapezoid(cs.Layer, length, width1, width2)); err != nil {
			return nil, err
		}
		if err := addWaveguidePorts(c, cs, geometry.Point{}, geometry.Point{X: length}, 180, 0, width1, width2); err != nil {
			return nil, err
		}
		c.Meta()["length"] = length
		c.Meta()["cross_section"] = cs.Name
		return c, nil
	})
}

type transitionArgs struct {
	FromXS string  `json:"from_xs"`
	ToXS   string  `json:"to_xs"`
	Width1 float64 `json:"width1"`
	Width2 float64 `json:"width2"`
	Length float64 `json:"length"`
}

// TransitionTaper builds a two-cross-section adapter: the geometry tapers
// from width1 on the source cross-section's layer to width2 on the
// destination's. Port "o1" belongs to the source cross-section, "o2" to
// the destination; the adapter is symmetric under reversal, so composing
// it with its reverse yields a net pure translation.
func TransitionTaper(t *tech.Technology, from, to tech.CrossSectionSpec, width1, width2, length float64) (*component.Component, error) {
	fromCS, err := from.Resolve(t)
	if err != nil {
		return nil, err
	}
	toCS, err := to.Resolve(t)
	if err != nil {
		return nil, err
	}
	if width1 <= 0 {
		width1 = fromCS.Width
	}
	if width2 <= 0 {
		width2 = toCS.Width
	}
	if length == 0 {
		length = defaultTransitionLength
	}

	args := transitionArgs{FromXS: fromCS.Name, ToXS: toCS.Name, Width1: width1, Width2: width2, Length: length}
	return component.Build("transition_taper", args, func() (*component.Component, error) {
		c := component.New("")
		// Source layer tapers out, destination layer tapers in, with the
		// overlap providing the mode conversion region.
		if err := c.AddPolygon(trapezoid(fromCS.Layer, length, width1, width1/4)); err != nil {
			return nil, err
		}
		if err := c.AddPolygon(trapezoid(toCS.Layer, length, width2/4, width2)); err != nil {
			return nil, err
		}

		if err := c.AddPort(component.Port{
			Name: "o1", Center: geometry.Point{}, Orientation: 180,
			Width: width1, Layer: fromCS.Layer, CrossSection: fromCS.Name,
		}); err != nil {
			return nil, err
		}
		if err := c.AddPort(component.Port{
			Name: "o2", Center: geometry.Point{X: length}, Orientation: 0,
			Width: width2, Layer: toCS.Layer, CrossSection: toCS.Name,
		}); err != nil {
			return nil, err
		}
		c.Meta()["length"] = length
		c.Meta()["from_cross_section"] = fromCS.Name
		c.Meta()["to_cross_section"] = toCS.Name
		return c, nil
	})
}

// trapezoid returns a symmetric trapezoid along +X: width w1 at x=0 and
// width w2 at x=length.
func trapezoid(layer geometry.Layer, length, w1, w2 float64) geometry.Polygon {
	return geometry.Polygon{
		Layer: layer,
		Points: []geometry.Point{
			{X: 0, Y: -w1 / 2}, {X: length, Y: -w2 / 2},
			{X: length, Y: w2 / 2}, {X: 0, Y: w1 / 2},
		},
	}
}

// TaperTransition adapts Taper into a transition-table factory for
// single-layer (width mismatch) entries.
func TaperTransition(spec tech.CrossSectionSpec) tech.TransitionFactory {
	return func(t *tech.Technology, width1, width2 float64) (*component.Component, error) {
		return Taper(t, spec, width1, width2, 0)
	}
}

// PairTransition adapts TransitionTaper into a transition-table factory
// for directed cross-section pair entries.
func PairTransition(from, to tech.CrossSectionSpec) tech.TransitionFactory {
	return func(t *tech.Technology, width1, width2 float64) (*component.Component, error) {
		return TransitionTaper(t, from, to, width1, width2, 0)
	}
}
