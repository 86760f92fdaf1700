package route

import (
	"context"
	"math"

	"github.com/picforge/picforge/pkg/component"
	"github.com/picforge/picforge/pkg/errors"
	"github.com/picforge/picforge/pkg/observability"
	"github.com/picforge/picforge/pkg/tech"
)

// ResolveTransition looks up and instantiates the adapter bridging two
// ports. The returned component has exactly two ports: the first mates the
// source port, the second becomes the new effective endpoint.
//
// Returns (nil, nil) when the ports share a cross-section and width within
// tolerance, i.e. no adapter is needed. Returns NO_TRANSITION_DEFINED when
// the technology has no entry for the required key; the error names both
// cross-sections.
func ResolveTransition(t *tech.Technology, source, dest component.Port) (*component.Component, error) {
	srcCS, err := t.CrossSection(source.CrossSection)
	if err != nil {
		return nil, err
	}
	dstCS, err := t.CrossSection(dest.CrossSection)
	if err != nil {
		return nil, err
	}

	var key tech.TransitionKey
	switch {
	case srcCS.Name != dstCS.Name:
		// Directed pair: (A, B) does not imply (B, A).
		key = tech.PairKey(srcCS.Layer, dstCS.Layer)
	case math.Abs(source.Width-dest.Width) > component.DefaultWidthTolerance:
		key = tech.TaperKey(srcCS.Layer)
	default:
		return nil, nil
	}

	factory, ok := t.Transition(key)
	if !ok {
		return nil, errors.New(errors.ErrCodeNoTransitionDefined,
			"no transition defined from cross-section %q to %q (key %s)",
			srcCS.Name, dstCS.Name, key)
	}

	adapter, err := factory(t, source.Width, dest.Width)
	if err != nil {
		return nil, err
	}
	if adapter.PortCount() != 2 {
		return nil, errors.New(errors.ErrCodeInternal,
			"transition %s produced adapter %q with %d ports, want 2",
			key, adapter.Name(), adapter.PortCount())
	}
	return adapter, nil
}

// Splice inserts the adapter bridging source and dest into parent as an
// ordinary child reference, mating the adapter's first port to source.
// It returns the new effective endpoint: the adapter's second port in
// parent coordinates, or source unchanged when no adapter is needed.
func Splice(parent *component.Component, t *tech.Technology, source, dest component.Port) (component.Port, error) {
	adapter, err := ResolveTransition(t, source, dest)
	if err != nil {
		return component.Port{}, err
	}
	if adapter == nil {
		return source, nil
	}

	ref, err := parent.AddRef(adapter)
	if err != nil {
		return component.Port{}, err
	}
	names := adapter.PortNames()
	if err := ref.ConnectWith(names[0], source, component.ConnectOptions{AllowWidthMismatch: true}); err != nil {
		return component.Port{}, err
	}
	observability.Route().OnTransitionSpliced(context.Background(), source.CrossSection, dest.CrossSection)
	return ref.Port(names[1])
}

// ConnectAuto mates the moving reference's port with a fixed port,
// resolving a transition automatically when the cross-sections or widths
// differ. The adapter, if any, is added to parent between the fixed port
// and the moving reference. This is the connector behavior the declarative
// netlist layer uses for every listed connection.
func ConnectAuto(parent *component.Component, t *tech.Technology, moving *component.Reference, portName string, fixed component.Port) error {
	movingPort, err := moving.Port(portName)
	if err != nil {
		return err
	}

	// Ports without cross-section semantics connect geometrically only.
	if movingPort.CrossSection == "" || fixed.CrossSection == "" {
		return moving.Connect(portName, fixed)
	}

	endpoint, err := Splice(parent, t, fixed, movingPort)
	if err != nil {
		return err
	}
	return moving.Connect(portName, endpoint)
}
