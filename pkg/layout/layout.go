package layout

import (
	"fmt"

	"github.com/picforge/picforge/pkg/component"
	"github.com/picforge/picforge/pkg/errors"
	"github.com/picforge/picforge/pkg/geometry"
)

// Layout is the serialized form of a component tree. Cells appear
// children-first; the last cell is the root.
type Layout struct {
	Name  string `json:"name"`
	Cells []Cell `json:"cells"`
}

// Cell is one serialized component.
type Cell struct {
	Name     string             `json:"name"`
	Polygons []geometry.Polygon `json:"polygons,omitempty"`
	Ports    []component.Port   `json:"ports,omitempty"`
	Refs     []Placement        `json:"refs,omitempty"`
	Meta     map[string]any     `json:"meta,omitempty"`
}

// Placement is a placed reference to an earlier cell.
type Placement struct {
	Cell      string             `json:"cell"`
	Transform geometry.Transform `json:"transform"`
}

// Export serializes a component tree. Shared components are emitted once
// and referenced by name from every placement. Distinct components that
// happen to share a name are disambiguated with a numeric suffix so the
// file always realizes back into the same tree shape.
func Export(c *component.Component) *Layout {
	e := &exporter{
		layout: &Layout{Name: c.Name()},
		names:  make(map[*component.Component]string),
		used:   make(map[string]int),
	}
	e.cell(c)
	return e.layout
}

type exporter struct {
	layout *Layout
	names  map[*component.Component]string
	used   map[string]int
}

func (e *exporter) cell(c *component.Component) string {
	if name, ok := e.names[c]; ok {
		return name
	}
	name := c.Name()
	e.used[name]++
	if n := e.used[name]; n > 1 {
		name = fmt.Sprintf("%s_%d", name, n)
	}
	e.names[c] = name

	cell := Cell{
		Name:     name,
		Polygons: c.Polygons(),
		Ports:    c.Ports(),
	}
	if len(c.Meta()) > 0 {
		cell.Meta = c.Meta()
	}
	for _, ref := range c.Refs() {
		childName := e.cell(ref.Component())
		cell.Refs = append(cell.Refs, Placement{
			Cell:      childName,
			Transform: ref.Transform(),
		})
	}
	e.layout.Cells = append(e.layout.Cells, cell)
	return name
}

// Component rebuilds the component tree from its serialized form. Every
// placement must reference a cell emitted earlier in the file; the
// returned root is finalized.
func (l *Layout) Component() (*component.Component, error) {
	if len(l.Cells) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidLayout, "layout %q has no cells", l.Name)
	}

	built := make(map[string]*component.Component, len(l.Cells))
	var root *component.Component
	for _, cell := range l.Cells {
		if _, dup := built[cell.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidLayout,
				"layout %q defines cell %q twice", l.Name, cell.Name)
		}
		c := component.New(cell.Name)
		for _, p := range cell.Polygons {
			if err := c.AddPolygon(p); err != nil {
				return nil, err
			}
		}
		for _, p := range cell.Ports {
			if err := c.AddPort(p); err != nil {
				return nil, err
			}
		}
		for _, pl := range cell.Refs {
			child, ok := built[pl.Cell]
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidLayout,
					"cell %q references %q before its definition", cell.Name, pl.Cell)
			}
			ref, err := c.AddRef(child)
			if err != nil {
				return nil, err
			}
			ref.SetTransform(pl.Transform)
		}
		if len(cell.Meta) > 0 {
			c.MergeMeta(cell.Meta)
		}
		c.Finalize()
		built[cell.Name] = c
		root = c
	}
	return root, nil
}
