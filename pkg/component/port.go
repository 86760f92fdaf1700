package component

import (
	"fmt"

	"github.com/picforge/picforge/pkg/geometry"
)

// Port is a named, oriented, widthed connection point on a component.
// Orientation is the outward direction of the port in degrees; two mated
// ports point in opposite directions. CrossSection names the waveguide
// cross-section the port carries, resolved through the technology registry
// at connection time. It may be empty for ports with no waveguide
// semantics (e.g. electrical pads).
type Port struct {
	Name         string         `json:"name"`
	Center       geometry.Point `json:"center"`
	Orientation  float64        `json:"orientation"`
	Width        float64        `json:"width"`
	Layer        geometry.Layer `json:"layer"`
	CrossSection string         `json:"cross_section,omitempty"`
}

// Transformed returns the port as seen through a placement transform:
// the center is mapped through it and the orientation adjusted.
func (p Port) Transformed(t geometry.Transform) Port {
	p.Center = t.Apply(p.Center)
	p.Orientation = t.ApplyAngle(p.Orientation)
	return p
}

// WithName returns a copy of the port under a new name. Used when
// promoting a child reference's port to the parent component.
func (p Port) WithName(name string) Port {
	p.Name = name
	return p
}

// String renders the port for diagnostics.
func (p Port) String() string {
	return fmt.Sprintf("%s@(%.3f,%.3f)/%g° w=%g xs=%s",
		p.Name, p.Center.X, p.Center.Y, p.Orientation, p.Width, p.CrossSection)
}
