package route

import (
	"math"

	"github.com/picforge/picforge/pkg/errors"
	"github.com/picforge/picforge/pkg/geometry"
	"github.com/picforge/picforge/pkg/tech"
)

// BundleResult holds a planned group of parallel routes plus the spacing
// derived from each selected cross-section.
type BundleResult struct {
	Routes []*Route

	// Pitch is the center-to-center spacing per cross-section name:
	// max(width, gap) + margin, straight from the registered spec.
	Pitch map[string]float64

	// Extent is the total transverse footprint per cross-section name:
	// pitch * (count-1) + width. Tighter-gap cross-sections yield
	// strictly smaller extents at equal route counts and widths.
	Extent map[string]float64
}

// Bundle plans each spec independently and computes per-cross-section
// pitch and extent for the resulting group. Routes in a bundle may end up
// on different cross-sections (each spec carries its own priority list);
// pitch is a deterministic function of each registered cross-section, not
// a global constant.
func Bundle(t *tech.Technology, specs []PlanSpec, margin float64) (*BundleResult, error) {
	if len(specs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "bundle needs at least one route spec")
	}
	if margin < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "bundle margin must be non-negative, got %g", margin)
	}

	res := &BundleResult{
		Pitch:  make(map[string]float64),
		Extent: make(map[string]float64),
	}
	counts := make(map[string]int)

	for i, spec := range specs {
		r, err := Plan(t, spec)
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return nil, errors.Wrap(code, err, "bundle route %d", i)
		}
		res.Routes = append(res.Routes, r)
		counts[r.CrossSection.Name]++
		res.Pitch[r.CrossSection.Name] = r.CrossSection.Pitch(margin)
	}

	for name, count := range counts {
		var width float64
		for _, r := range res.Routes {
			if r.CrossSection.Name == name {
				width = r.CrossSection.Width
				break
			}
		}
		res.Extent[name] = res.Pitch[name]*float64(count-1) + width
	}
	return res, nil
}

// ParallelWaypoints shifts a waypoint row sideways by offset, producing
// the path of a neighboring route in a bundle. Terminal waypoints move
// along the left normal of their segment; interior waypoints move along
// the miter between the adjacent segments, lengthened so the perpendicular
// clearance to both segments stays at offset. Terminal ports are shifted
// with their waypoints.
func ParallelWaypoints(base []Waypoint, offset float64) []Waypoint {
	if len(base) < 2 || offset == 0 {
		out := make([]Waypoint, len(base))
		copy(out, base)
		return out
	}

	points := make([]geometry.Point, len(base))
	for i, wp := range base {
		points[i] = wp.Point
		if wp.Port != nil {
			points[i] = wp.Port.Center
		}
	}

	out := make([]Waypoint, len(base))
	for i := range base {
		dir, scale := 0.0, 1.0
		switch {
		case i == 0:
			dir = geometry.Segment{A: points[0], B: points[1]}.Direction()
		case i == len(base)-1:
			dir = geometry.Segment{A: points[i-1], B: points[i]}.Direction()
		default:
			in := geometry.Segment{A: points[i-1], B: points[i]}.Direction()
			turn := signedDelta(geometry.Segment{A: points[i], B: points[i+1]}.Direction() - in)
			dir = geometry.NormalizeAngle(in + turn/2)
			// The miter shift must be longer than the perpendicular
			// offset or the spacing pinches below pitch at the corner.
			if c := math.Cos(geometry.Radians(turn / 2)); c > geometry.Eps {
				scale = 1 / c
			}
		}
		normal := geometry.Radians(dir + 90)
		shift := geometry.Point{X: offset * scale * math.Cos(normal), Y: offset * scale * math.Sin(normal)}

		out[i] = base[i]
		out[i].Point = points[i].Add(shift)
		if base[i].Port != nil {
			p := *base[i].Port
			p.Center = p.Center.Add(shift)
			out[i].Port = &p
		}
	}
	return out
}
