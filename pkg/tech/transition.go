package tech

import (
	"fmt"

	"github.com/picforge/picforge/pkg/component"
	"github.com/picforge/picforge/pkg/geometry"
)

// TransitionKey identifies an entry in the transition table. A key is
// either a single layer (From == To), selecting a width taper within one
// cross-section, or an ordered layer pair selecting an adapter between two
// cross-sections. Pair keys are directed: (A, B) and (B, A) are independent
// entries.
type TransitionKey struct {
	From geometry.Layer
	To   geometry.Layer
}

// TaperKey returns the single-layer key for intra-cross-section width
// tapers on the given layer.
func TaperKey(layer geometry.Layer) TransitionKey {
	return TransitionKey{From: layer, To: layer}
}

// PairKey returns the directed key for transitions from one layer's
// cross-section to another's.
func PairKey(from, to geometry.Layer) TransitionKey {
	return TransitionKey{From: from, To: to}
}

// IsTaper reports whether the key selects a single-layer width taper.
func (k TransitionKey) IsTaper() bool { return k.From == k.To }

// String renders the key for diagnostics.
func (k TransitionKey) String() string {
	if k.IsTaper() {
		return k.From.String()
	}
	return fmt.Sprintf("%s->%s", k.From, k.To)
}

// TransitionFactory instantiates an adapter component bridging two port
// widths. The result must expose exactly two ports; by convention the
// first ("o1") mates the source port at width1 and the second ("o2")
// becomes the new endpoint at width2.
type TransitionFactory func(t *Technology, width1, width2 float64) (*component.Component, error)
