package route

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/picforge/picforge/pkg/cells"
	"github.com/picforge/picforge/pkg/component"
	"github.com/picforge/picforge/pkg/errors"
	"github.com/picforge/picforge/pkg/geometry"
	"github.com/picforge/picforge/pkg/observability"
	"github.com/picforge/picforge/pkg/tech"
)

// Waypoint is one stop on a planned path: a free point, or an existing
// terminal port whose position anchors the path end.
type Waypoint struct {
	Point geometry.Point
	Port  *component.Port
}

// At returns a free-point waypoint.
func At(x, y float64) Waypoint {
	return Waypoint{Point: geometry.Point{X: x, Y: y}}
}

// AtPort returns a terminal-port waypoint anchored at the port's center.
func AtPort(p component.Port) Waypoint {
	return Waypoint{Point: p.Center, Port: &p}
}

// PlanSpec describes a routing request: ordered waypoints and the
// priority-ordered candidate cross-sections (most preferred first).
type PlanSpec struct {
	Name      string // optional component name
	Waypoints []Waypoint
	Priority  []string
}

// Route is a planned path: a finalized component exposing ports "o1" and
// "o2" at the two endpoints, the cross-section the planner selected for
// the in-path segments, and the total path length including bends and any
// spliced transitions.
type Route struct {
	Component    *component.Component
	CrossSection tech.CrossSection
	Length       float64
}

// attempt records why one priority candidate was rejected, for the
// UNROUTABLE diagnostics.
type attempt struct {
	xs     string
	reason string
}

// Plan builds a route through the waypoints, trying each candidate
// cross-section in priority order. Infeasibility of one candidate is not
// fatal; it falls through to the next. Exhausting the list fails with
// UNROUTABLE naming every attempted cross-section and the waypoints.
//
// Terminal ports whose cross-section differs from the selected one get a
// transition spliced at their end of the path; a terminal whose required
// transition is not registered makes that candidate infeasible.
func Plan(t *tech.Technology, spec PlanSpec) (*Route, error) {
	if len(spec.Waypoints) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"route needs at least 2 waypoints, got %d", len(spec.Waypoints))
	}
	if len(spec.Priority) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "route needs at least one candidate cross-section")
	}

	points := make([]geometry.Point, len(spec.Waypoints))
	for i, wp := range spec.Waypoints {
		points[i] = wp.Point
		if wp.Port != nil {
			points[i] = wp.Port.Center
		}
	}
	dirs := make([]float64, len(points)-1)
	for i := range dirs {
		seg := geometry.Segment{A: points[i], B: points[i+1]}
		if seg.Length() < geometry.Eps {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"zero-length segment between waypoints %d and %d", i, i+1)
		}
		dirs[i] = seg.Direction()
	}

	// Terminal port orientations must line up with the path; this is
	// independent of the cross-section choice, so it is a hard error.
	if p := spec.Waypoints[0].Port; p != nil && !geometry.AnglesEqual(p.Orientation, dirs[0]) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"start port %s faces %g°, but the path leaves at %g°", p.Name, p.Orientation, dirs[0])
	}
	if p := spec.Waypoints[len(spec.Waypoints)-1].Port; p != nil {
		want := geometry.NormalizeAngle(dirs[len(dirs)-1] + 180)
		if !geometry.AnglesEqual(p.Orientation, want) {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"end port %s faces %g°, but the path arrives facing %g°", p.Name, p.Orientation, want)
		}
	}

	ctx := context.Background()
	var attempts []attempt
	for _, name := range spec.Priority {
		cs, err := t.CrossSection(name)
		if err != nil {
			return nil, err
		}
		r, reason, err := tryPlan(t, spec, cs, points, dirs)
		if err != nil {
			return nil, err
		}
		observability.Route().OnPlanAttempt(ctx, name, r != nil)
		if r != nil {
			observability.Route().OnPlanComplete(ctx, name, r.Length, nil)
			return r, nil
		}
		attempts = append(attempts, attempt{xs: name, reason: reason})
	}
	err := unroutable(attempts, points)
	observability.Route().OnPlanComplete(ctx, "", 0, err)
	return nil, err
}

func unroutable(attempts []attempt, points []geometry.Point) error {
	var b strings.Builder
	for i, a := range attempts {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", a.xs, a.reason)
	}
	var wps strings.Builder
	for i, p := range points {
		if i > 0 {
			wps.WriteString(" -> ")
		}
		fmt.Fprintf(&wps, "(%.3f,%.3f)", p.X, p.Y)
	}
	return errors.New(errors.ErrCodeUnroutable,
		"no candidate cross-section can route %s: %s", wps.String(), b.String())
}

// tryPlan attempts a single cross-section candidate. A nil route with a
// non-empty reason means the candidate is infeasible; a non-nil error
// aborts the whole plan.
func tryPlan(t *tech.Technology, spec PlanSpec, cs tech.CrossSection, points []geometry.Point, dirs []float64) (*Route, string, error) {
	n := len(points)
	radius := cs.RadiusMin

	// Turn angles and bend tangent lengths at interior waypoints.
	turns := make([]float64, n)
	tangents := make([]float64, n)
	for i := 1; i < n-1; i++ {
		turn := signedDelta(dirs[i] - dirs[i-1])
		if math.Abs(turn) > 180-geometry.Eps {
			return nil, fmt.Sprintf("u-turn at waypoint %d", i), nil
		}
		turns[i] = turn
		if math.Abs(turn) > geometry.Eps {
			tangents[i] = radius * math.Tan(geometry.Radians(math.Abs(turn))/2)
		}
	}

	// Terminal transitions, if the end ports use a different cross-section
	// or width than the candidate. Adapter length eats into the first or
	// last segment.
	inPathPort := func(center geometry.Point, orientation float64) component.Port {
		return component.Port{
			Name: "seg", Center: center, Orientation: orientation,
			Width: cs.Width, Layer: cs.Layer, CrossSection: cs.Name,
		}
	}
	var startAdapter, endAdapter *component.Component
	if p := spec.Waypoints[0].Port; p != nil {
		a, err := ResolveTransition(t, *p, inPathPort(points[0], dirs[0]))
		if errors.Is(err, errors.ErrCodeNoTransitionDefined) {
			return nil, err.Error(), nil
		}
		if err != nil {
			return nil, "", err
		}
		startAdapter = a
	}
	if p := spec.Waypoints[n-1].Port; p != nil {
		a, err := ResolveTransition(t, inPathPort(points[n-1], dirs[len(dirs)-1]), *p)
		if errors.Is(err, errors.ErrCodeNoTransitionDefined) {
			return nil, err.Error(), nil
		}
		if err != nil {
			return nil, "", err
		}
		endAdapter = a
	}

	// Geometric feasibility: every segment must fit its bend tangents and
	// any terminal adapter length.
	for j := 0; j < n-1; j++ {
		seg := geometry.Segment{A: points[j], B: points[j+1]}
		need := tangents[j] + tangents[j+1]
		if j == 0 {
			need += adapterLength(startAdapter)
		}
		if j == n-2 {
			need += adapterLength(endAdapter)
		}
		if need > seg.Length()+geometry.Eps {
			return nil, fmt.Sprintf("segment %d is %.3f um but needs %.3f um for bends (radius %g) and transitions",
				j, seg.Length(), need, radius), nil
		}
	}

	// Non-adjacent segments must not cross.
	for i := 0; i < n-1; i++ {
		for j := i + 2; j < n-1; j++ {
			a := geometry.Segment{A: points[i], B: points[i+1]}
			b := geometry.Segment{A: points[j], B: points[j+1]}
			if a.Intersects(b) {
				return nil, fmt.Sprintf("segments %d and %d overlap", i, j), nil
			}
		}
	}

	r, err := assemble(t, spec, cs, points, dirs, turns, tangents, startAdapter, endAdapter)
	if err != nil {
		return nil, "", err
	}
	return r, "", nil
}

// assemble builds the route component once a candidate has been proven
// feasible. The path is a chain of straights and bends connected port to
// port, with terminal adapters spliced as ordinary references.
func assemble(t *tech.Technology, spec PlanSpec, cs tech.CrossSection, points []geometry.Point, dirs, turns, tangents []float64, startAdapter, endAdapter *component.Component) (*Route, error) {
	name := spec.Name
	if name == "" {
		name = fmt.Sprintf("route_%s", cs.Name)
	}
	c := component.New(name)
	n := len(points)
	var total float64

	// prev is the port the next cell's "o1" mates with; it always faces
	// the direction of travel.
	prev := component.Port{
		Name: "head", Center: points[0], Orientation: dirs[0],
		Width: cs.Width, Layer: cs.Layer, CrossSection: cs.Name,
	}

	place := func(cell *component.Component) error {
		ref, err := c.AddRef(cell)
		if err != nil {
			return err
		}
		names := cell.PortNames()
		if err := ref.ConnectWith(names[0], prev, component.ConnectOptions{AllowWidthMismatch: true}); err != nil {
			return err
		}
		out, err := ref.Port(names[1])
		if err != nil {
			return err
		}
		prev = out
		total += adapterLength(cell)
		return nil
	}

	if startAdapter != nil {
		prev = *spec.Waypoints[0].Port
		prev.Orientation = dirs[0] // face into the route
		if err := place(startAdapter); err != nil {
			return nil, err
		}
	}

	for j := 0; j < n-1; j++ {
		length := points[j].Distance(points[j+1]) - tangents[j] - tangents[j+1]
		if j == 0 {
			length -= adapterLength(startAdapter)
		}
		if j == n-2 {
			length -= adapterLength(endAdapter)
		}
		if length > geometry.Eps {
			straight, err := straightCell(t, cs, length)
			if err != nil {
				return nil, err
			}
			if err := place(straight); err != nil {
				return nil, err
			}
		}
		if j < n-2 && math.Abs(turns[j+1]) > geometry.Eps {
			bend, err := bendCell(t, cs, turns[j+1])
			if err != nil {
				return nil, err
			}
			if err := place(bend); err != nil {
				return nil, err
			}
		}
	}

	if endAdapter != nil {
		if err := place(endAdapter); err != nil {
			return nil, err
		}
	}

	// Expose the endpoint ports. They carry the terminal cross-section
	// when a port waypoint anchored that end, the in-path one otherwise.
	o1 := component.Port{
		Name: "o1", Center: points[0],
		Orientation: geometry.NormalizeAngle(dirs[0] + 180),
		Width:       cs.Width, Layer: cs.Layer, CrossSection: cs.Name,
	}
	if p := spec.Waypoints[0].Port; p != nil {
		o1.Width, o1.Layer, o1.CrossSection = p.Width, p.Layer, p.CrossSection
	}
	o2 := component.Port{
		Name: "o2", Center: points[n-1],
		Orientation: dirs[len(dirs)-1],
		Width:       cs.Width, Layer: cs.Layer, CrossSection: cs.Name,
	}
	if p := spec.Waypoints[n-1].Port; p != nil {
		o2.Width, o2.Layer, o2.CrossSection = p.Width, p.Layer, p.CrossSection
	}
	if err := c.AddPort(o1); err != nil {
		return nil, err
	}
	if err := c.AddPort(o2); err != nil {
		return nil, err
	}

	c.Meta()["length"] = total
	c.Meta()["cross_section"] = cs.Name
	c.Finalize()
	return &Route{Component: c, CrossSection: cs, Length: total}, nil
}

func straightCell(t *tech.Technology, cs tech.CrossSection, length float64) (*component.Component, error) {
	return cells.Straight(t, tech.ByValue(cs), length)
}

func bendCell(t *tech.Technology, cs tech.CrossSection, angle float64) (*component.Component, error) {
	return cells.BendCircular(t, tech.ByValue(cs), cs.RadiusMin, angle)
}

// adapterLength reads the length a cell contributes to the path.
func adapterLength(c *component.Component) float64 {
	if c == nil {
		return 0
	}
	if l, ok := c.Meta()["length"].(float64); ok {
		return l
	}
	return 0
}

// signedDelta maps an angle difference onto (-180, 180].
func signedDelta(deg float64) float64 {
	d := geometry.NormalizeAngle(deg)
	if d > 180 {
		d -= 360
	}
	return d
}
