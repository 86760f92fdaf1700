package component

import (
	"github.com/picforge/picforge/pkg/errors"
	"github.com/picforge/picforge/pkg/geometry"
)

// Metadata stores arbitrary key-value pairs attached to a component.
// It is commonly used to record route lengths, factory arguments, and
// other provenance that export sinks pass through untouched.
type Metadata map[string]any

// Component is a reusable layout cell: polygons, named ports, and placed
// child references. Build it once, finalize it, then place it via
// references. A finalized component rejects all mutation.
//
// Components are not safe for concurrent mutation; finalized components
// may be read concurrently.
type Component struct {
	name      string
	polygons  []geometry.Polygon
	ports     map[string]Port
	portOrder []string
	refs      []*Reference
	meta      Metadata
	finalized bool
}

// New creates an empty component with the given name.
func New(name string) *Component {
	return &Component{
		name:  name,
		ports: make(map[string]Port),
		meta:  Metadata{},
	}
}

// Name returns the component name.
func (c *Component) Name() string { return c.name }

// SetName renames the component. Used by the build cache to assign
// signature-derived names before finalization.
func (c *Component) SetName(name string) error {
	if c.finalized {
		return c.finalizedErr("rename")
	}
	c.name = name
	return nil
}

// Finalized reports whether the component has been sealed.
func (c *Component) Finalized() bool { return c.finalized }

// Finalize seals the component. Finalization is idempotent.
func (c *Component) Finalize() { c.finalized = true }

// Meta returns the component metadata map. The map is never nil. Mutating
// it after finalization is a caller error the package does not police, as
// metadata carries no geometric meaning.
func (c *Component) Meta() Metadata { return c.meta }

// MergeMeta copies entries from child metadata into the component.
// On key collision the child value overwrites the existing one; this is
// the documented merge policy for absorbed sub-components.
func (c *Component) MergeMeta(child Metadata) {
	for k, v := range child {
		c.meta[k] = v
	}
}

// AddPolygon appends an opaque polygon to the component's own geometry.
func (c *Component) AddPolygon(p geometry.Polygon) error {
	if c.finalized {
		return c.finalizedErr("add polygon")
	}
	c.polygons = append(c.polygons, p)
	return nil
}

// Polygons returns the component's own polygons (child geometry excluded).
func (c *Component) Polygons() []geometry.Polygon { return c.polygons }

// AddPort registers a port. Port names must be unique within the component.
func (c *Component) AddPort(p Port) error {
	if c.finalized {
		return c.finalizedErr("add port")
	}
	if err := errors.ValidatePortName(p.Name); err != nil {
		return err
	}
	if _, exists := c.ports[p.Name]; exists {
		return errors.New(errors.ErrCodeDuplicatePortName,
			"component %q already has a port named %q", c.name, p.Name)
	}
	c.ports[p.Name] = p
	c.portOrder = append(c.portOrder, p.Name)
	return nil
}

// PromotePort exposes a child reference's port on this component under a
// new name. The promoted port carries the reference's placement transform.
func (c *Component) PromotePort(name string, ref *Reference, portName string) error {
	p, err := ref.Port(portName)
	if err != nil {
		return err
	}
	return c.AddPort(p.WithName(name))
}

// Port returns the named port.
func (c *Component) Port(name string) (Port, error) {
	p, ok := c.ports[name]
	if !ok {
		return Port{}, errors.New(errors.ErrCodePortNotFound,
			"component %q has no port %q (ports: %v)", c.name, name, c.portOrder)
	}
	return p, nil
}

// Ports returns all ports in insertion order.
func (c *Component) Ports() []Port {
	out := make([]Port, 0, len(c.portOrder))
	for _, name := range c.portOrder {
		out = append(out, c.ports[name])
	}
	return out
}

// PortNames returns the port names in insertion order.
func (c *Component) PortNames() []string {
	out := make([]string, len(c.portOrder))
	copy(out, c.portOrder)
	return out
}

// PortCount returns the number of ports.
func (c *Component) PortCount() int { return len(c.portOrder) }

// AddRef places child inside the component and returns the reference.
// Placing a component inside itself, directly or through intermediate
// references, is rejected with a CYCLIC_REFERENCE error.
func (c *Component) AddRef(child *Component) (*Reference, error) {
	if c.finalized {
		return nil, c.finalizedErr("add reference")
	}
	if child == c || child.contains(c, map[*Component]bool{}) {
		return nil, errors.New(errors.ErrCodeCyclicReference,
			"adding %q to %q would make the component contain itself", child.name, c.name)
	}
	ref := newReference(c, child)
	c.refs = append(c.refs, ref)
	return ref, nil
}

// Refs returns the placed child references in placement order.
func (c *Component) Refs() []*Reference { return c.refs }

// contains reports whether c's reference graph reaches target.
func (c *Component) contains(target *Component, visited map[*Component]bool) bool {
	if visited[c] {
		return false
	}
	visited[c] = true
	for _, ref := range c.refs {
		if ref.comp == target || ref.comp.contains(target, visited) {
			return true
		}
	}
	return false
}

// BBox returns the bounding box of the component's own polygons and all
// child references, recursively.
func (c *Component) BBox() geometry.BBox {
	return c.bboxUnder(geometry.Identity())
}

func (c *Component) bboxUnder(t geometry.Transform) geometry.BBox {
	b := geometry.EmptyBBox()
	for _, p := range c.polygons {
		b = b.Union(geometry.PolygonBBox(p.Transform(t)))
	}
	for _, ref := range c.refs {
		b = b.Union(ref.comp.bboxUnder(t.Compose(ref.trans)))
	}
	return b
}

// FlatPolygons returns every polygon in the component tree, transformed
// into this component's coordinate system. This is the view an export sink
// consumes.
func (c *Component) FlatPolygons() []geometry.Polygon {
	return c.flatUnder(geometry.Identity(), nil)
}

func (c *Component) flatUnder(t geometry.Transform, acc []geometry.Polygon) []geometry.Polygon {
	for _, p := range c.polygons {
		acc = append(acc, p.Transform(t))
	}
	for _, ref := range c.refs {
		acc = ref.comp.flatUnder(t.Compose(ref.trans), acc)
	}
	return acc
}

func (c *Component) finalizedErr(op string) error {
	return errors.New(errors.ErrCodeFinalized,
		"component %q is finalized; cannot %s", c.name, op)
}
