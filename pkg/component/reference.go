package component

import (
	"github.com/google/uuid"

	"github.com/picforge/picforge/pkg/errors"
	"github.com/picforge/picforge/pkg/geometry"
)

// Reference is a placed instance of a component inside a parent. The
// referenced component is shared between all references to it; only the
// placement transform belongs to the reference.
type Reference struct {
	id     string
	parent *Component
	comp   *Component
	trans  geometry.Transform
}

func newReference(parent, comp *Component) *Reference {
	return &Reference{
		id:     uuid.NewString(),
		parent: parent,
		comp:   comp,
	}
}

// ID returns the unique instance identifier of this placement.
func (r *Reference) ID() string { return r.id }

// Component returns the referenced (shared) component.
func (r *Reference) Component() *Component { return r.comp }

// Transform returns the placement transform.
func (r *Reference) Transform() geometry.Transform { return r.trans }

// SetTransform replaces the placement transform.
func (r *Reference) SetTransform(t geometry.Transform) { r.trans = t }

// Translate moves the reference by (dx, dy) in parent coordinates.
func (r *Reference) Translate(dx, dy float64) {
	r.trans = geometry.Translate(dx, dy).Compose(r.trans)
}

// RotateAround rotates the reference by deg degrees about a point in
// parent coordinates.
func (r *Reference) RotateAround(deg float64, about geometry.Point) {
	rot := geometry.Transform{
		Origin:   about.Sub(geometry.Rotate(deg).Apply(about)),
		Rotation: geometry.NormalizeAngle(deg),
	}
	r.trans = rot.Compose(r.trans)
}

// Port returns the named port of the referenced component, transformed
// into parent coordinates.
func (r *Reference) Port(name string) (Port, error) {
	p, err := r.comp.Port(name)
	if err != nil {
		return Port{}, err
	}
	return p.Transformed(r.trans), nil
}

// Ports returns all inherited ports in parent coordinates, in the
// referenced component's insertion order.
func (r *Reference) Ports() []Port {
	local := r.comp.Ports()
	out := make([]Port, len(local))
	for i, p := range local {
		out[i] = p.Transformed(r.trans)
	}
	return out
}

// BBox returns the reference's bounding box in parent coordinates.
func (r *Reference) BBox() geometry.BBox {
	return r.comp.bboxUnder(r.trans)
}

// mustParentNotFinalized guards transform mutation after the parent seal.
func (r *Reference) mustParentNotFinalized(op string) error {
	if r.parent != nil && r.parent.finalized {
		return errors.New(errors.ErrCodeFinalized,
			"component %q is finalized; cannot %s reference %q", r.parent.name, op, r.comp.name)
	}
	return nil
}
