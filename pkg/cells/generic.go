package cells

import (
	"github.com/picforge/picforge/pkg/geometry"
	"github.com/picforge/picforge/pkg/tech"
)

// Layer assignments of the builtin generic technology. Strip and rib
// waveguides carry differentiated intent layers so the transition table
// can key adapters off the (from, to) layer pair.
var (
	LayerStrip = geometry.Layer{Index: 2001, Datatype: 11}
	LayerRib   = geometry.Layer{Index: 2000, Datatype: 11}
)

// Cross-section names of the builtin generic technology.
const (
	XSStrip = "xs_sc" // strip waveguide, tight bends, tight packing
	XSRib   = "xs_rc" // rib waveguide, lower loss, larger bends and gaps
)

// StripCrossSection returns the generic strip spec at the given width
// (0 selects the default 0.5 um).
func StripCrossSection(width float64) tech.CrossSection {
	return tech.CrossSection{
		Name:            XSStrip,
		Width:           0.5,
		Gap:             2.0,
		Layer:           LayerStrip,
		CladdingLayers:  []geometry.Layer{{Index: 111, Datatype: 0}},
		CladdingOffsets: []float64{3.0},
		RadiusMin:       10.0,
	}.WithWidth(width)
}

// RibCrossSection returns the generic rib spec at the given width
// (0 selects the default 0.45 um).
func RibCrossSection(width float64) tech.CrossSection {
	return tech.CrossSection{
		Name:            XSRib,
		Width:           0.45,
		Gap:             5.0,
		Layer:           LayerRib,
		CladdingLayers:  []geometry.Layer{{Index: 111, Datatype: 0}},
		CladdingOffsets: []float64{6.0},
		RadiusMin:       25.0,
	}.WithWidth(width)
}

// Generic builds the builtin generic technology: strip and rib
// cross-sections with intent layers, width tapers for each, and directed
// strip<->rib transition adapters in both directions.
func Generic() *tech.Technology {
	t := tech.MustNew("generic", nil)

	t.RegisterLayer("STRIP_INTENT", LayerStrip)
	t.RegisterLayer("RIB_INTENT", LayerRib)
	t.RegisterLayer("WG_CLAD", geometry.Layer{Index: 111, Datatype: 0})

	t.RegisterCrossSection(XSStrip, StripCrossSection)
	t.RegisterCrossSection(XSRib, RibCrossSection)

	t.RegisterTransition(tech.TaperKey(LayerStrip), TaperTransition(tech.ByName(XSStrip)))
	t.RegisterTransition(tech.TaperKey(LayerRib), TaperTransition(tech.ByName(XSRib)))
	t.RegisterTransition(tech.PairKey(LayerStrip, LayerRib), PairTransition(tech.ByName(XSStrip), tech.ByName(XSRib)))
	t.RegisterTransition(tech.PairKey(LayerRib, LayerStrip), PairTransition(tech.ByName(XSRib), tech.ByName(XSStrip)))

	return t
}
