package component

import (
	"math"

	"github.com/picforge/picforge/pkg/errors"
	"github.com/picforge/picforge/pkg/geometry"
)

// DefaultWidthTolerance is the largest width difference, in micrometers,
// that Connect accepts without an explicit transition.
const DefaultWidthTolerance = 1e-3

// ConnectOptions tune the connection resolver.
type ConnectOptions struct {
	// Mirror flips the moving reference's handedness across the mating
	// axis. Default is no mirror.
	Mirror bool

	// WidthTolerance overrides DefaultWidthTolerance when positive.
	WidthTolerance float64

	// AllowWidthMismatch skips the width check. Set by the transition
	// resolver, which bridges the widths with an adapter.
	AllowWidthMismatch bool
}

func (o ConnectOptions) tolerance() float64 {
	if o.WidthTolerance > 0 {
		return o.WidthTolerance
	}
	return DefaultWidthTolerance
}

// Connect mates the named port of the moving reference with a fixed port,
// using default options. See ConnectWith.
func (r *Reference) Connect(portName string, dest Port) error {
	return r.ConnectWith(portName, dest, ConnectOptions{})
}

// ConnectWith computes the rigid transform that makes the moving port face
// the fixed port head-on and coincide with it, then installs that transform
// on the reference. Mated ports point in opposite directions, so the
// rotation is dest.Orientation - port.Orientation + 180, normalized to
// [0, 360). Only the moving reference is mutated; the fixed side is never
// touched.
//
// Fails with PORT_NOT_FOUND when the named port is absent and with
// PORT_WIDTH_MISMATCH when the widths differ beyond the tolerance and no
// transition bridges them.
func (r *Reference) ConnectWith(portName string, dest Port, opts ConnectOptions) error {
	if err := r.mustParentNotFinalized("connect"); err != nil {
		return err
	}
	local, err := r.comp.Port(portName)
	if err != nil {
		return err
	}

	if !opts.AllowWidthMismatch {
		if diff := math.Abs(local.Width - dest.Width); diff > opts.tolerance() {
			return errors.New(errors.ErrCodePortWidthMismatch,
				"cannot connect %q.%s (width %g) to %s (width %g): widths differ by %g",
				r.comp.name, local.Name, local.Width, dest.Name, dest.Width, diff)
		}
	}

	rotation := dest.Orientation - local.Orientation + 180
	if opts.Mirror {
		rotation = dest.Orientation + local.Orientation + 180
	}

	t := geometry.Transform{
		Rotation: geometry.NormalizeAngle(rotation),
		Mirror:   opts.Mirror,
	}
	t.Origin = dest.Center.Sub(t.Apply(local.Center))
	r.trans = t
	return nil
}
