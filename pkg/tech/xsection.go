package tech

import (
	"github.com/picforge/picforge/pkg/errors"
	"github.com/picforge/picforge/pkg/geometry"
)

// CrossSection is a named waveguide specification. Components reference
// cross-sections by name; the resolved value carries everything the
// connection and routing layers need: the core width, the minimum gap to a
// neighboring route, the intent/cladding layers, and the minimum bend
// radius the waveguide tolerates.
type CrossSection struct {
	Name            string           `json:"name"`
	Width           float64          `json:"width"`
	Gap             float64          `json:"gap"`
	Layer           geometry.Layer   `json:"layer"`
	CladdingLayers  []geometry.Layer `json:"cladding_layers,omitempty"`
	CladdingOffsets []float64        `json:"cladding_offsets,omitempty"`
	RadiusMin       float64          `json:"radius_min"`
}

// Pitch returns the center-to-center spacing for parallel routes of this
// cross-section: max(width, gap) + margin. A narrow-gap cross-section packs
// tighter than a wide-gap one even at equal widths.
func (cs CrossSection) Pitch(margin float64) float64 {
	return max(cs.Width, cs.Gap) + margin
}

// WithWidth returns a copy of the cross-section with the core width
// replaced. Width 0 leaves the default width in place.
func (cs CrossSection) WithWidth(width float64) CrossSection {
	if width > 0 {
		cs.Width = width
	}
	return cs
}

// CrossSectionFactory produces a cross-section, optionally overriding the
// default core width. A width of 0 requests the default.
type CrossSectionFactory func(width float64) CrossSection

// Fixed wraps a concrete cross-section value as a factory.
func Fixed(cs CrossSection) CrossSectionFactory {
	return func(width float64) CrossSection { return cs.WithWidth(width) }
}

// CrossSectionSpec is a tagged reference to a cross-section: by registry
// name, by concrete value, or by pre-configured factory. Exactly one of the
// fields should be set; Width optionally overrides the core width in all
// three forms.
type CrossSectionSpec struct {
	Name    string
	Value   *CrossSection
	Factory CrossSectionFactory
	Width   float64
}

// ByName references a cross-section registered under name.
func ByName(name string) CrossSectionSpec { return CrossSectionSpec{Name: name} }

// ByValue references a concrete cross-section value.
func ByValue(cs CrossSection) CrossSectionSpec { return CrossSectionSpec{Value: &cs} }

// ByFactory references a pre-configured factory.
func ByFactory(f CrossSectionFactory) CrossSectionSpec { return CrossSectionSpec{Factory: f} }

// Resolve materializes the spec against a technology. Name references walk
// the technology's base chain; value and factory references resolve without
// consulting the registry.
func (s CrossSectionSpec) Resolve(t *Technology) (CrossSection, error) {
	switch {
	case s.Value != nil:
		return s.Value.WithWidth(s.Width), nil
	case s.Factory != nil:
		return s.Factory(s.Width), nil
	case s.Name != "":
		if t == nil {
			return CrossSection{}, errors.New(errors.ErrCodeUnknownCrossSection,
				"cross-section %q: no technology to resolve against", s.Name)
		}
		cs, err := t.CrossSection(s.Name)
		if err != nil {
			return CrossSection{}, err
		}
		return cs.WithWidth(s.Width), nil
	default:
		return CrossSection{}, errors.New(errors.ErrCodeInvalidInput, "empty cross-section spec")
	}
}
