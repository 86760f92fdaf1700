package netlist

import (
	"github.com/picforge/picforge/pkg/cells"
	"github.com/picforge/picforge/pkg/component"
	"github.com/picforge/picforge/pkg/errors"
	"github.com/picforge/picforge/pkg/tech"
)

// Factory instantiates a component from netlist arguments against a
// technology. Factories are expected to memoize through the component
// build cache so repeated instantiation with equal arguments is cheap and
// idempotent.
type Factory func(t *tech.Technology, args map[string]any) (*component.Component, error)

// Registry resolves factory names from netlist instances.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty factory registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register binds a factory name. Re-registering replaces the binding.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// Lookup resolves a factory name.
func (r *Registry) Lookup(name string) (Factory, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeFactoryNotFound, "unknown factory %q", name)
	}
	return f, nil
}

// DefaultRegistry returns a registry wired with the builtin cell
// factories: straight, bend_circular, and taper.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("straight", func(t *tech.Technology, args map[string]any) (*component.Component, error) {
		xs, err := stringArg(args, "cross_section", "")
		if err != nil {
			return nil, err
		}
		length, err := floatArg(args, "length", 10)
		if err != nil {
			return nil, err
		}
		return cells.Straight(t, xsSpec(xs, args), length)
	})
	r.Register("bend_circular", func(t *tech.Technology, args map[string]any) (*component.Component, error) {
		xs, err := stringArg(args, "cross_section", "")
		if err != nil {
			return nil, err
		}
		radius, err := floatArg(args, "radius", 0)
		if err != nil {
			return nil, err
		}
		angle, err := floatArg(args, "angle", 90)
		if err != nil {
			return nil, err
		}
		return cells.BendCircular(t, xsSpec(xs, args), radius, angle)
	})
	r.Register("taper", func(t *tech.Technology, args map[string]any) (*component.Component, error) {
		xs, err := stringArg(args, "cross_section", "")
		if err != nil {
			return nil, err
		}
		w1, err := floatArg(args, "width1", 0)
		if err != nil {
			return nil, err
		}
		w2, err := floatArg(args, "width2", 0)
		if err != nil {
			return nil, err
		}
		length, err := floatArg(args, "length", 0)
		if err != nil {
			return nil, err
		}
		return cells.Taper(t, xsSpec(xs, args), w1, w2, length)
	})
	return r
}

// xsSpec builds a cross-section spec from netlist arguments: a registry
// name plus an optional width override.
func xsSpec(name string, args map[string]any) tech.CrossSectionSpec {
	spec := tech.ByName(name)
	if w, err := floatArg(args, "width", 0); err == nil {
		spec.Width = w
	}
	return spec
}

// floatArg reads a numeric argument; TOML decodes numbers as int64 or
// float64 depending on their spelling.
func floatArg(args map[string]any, key string, def float64) (float64, error) {
	v, ok := args[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidNetlist, "argument %q must be a number, got %T", key, v)
	}
}

// stringArg reads a string argument.
func stringArg(args map[string]any, key, def string) (string, error) {
	v, ok := args[key]
	if !ok {
		if def == "" {
			return "", errors.New(errors.ErrCodeInvalidNetlist, "missing required argument %q", key)
		}
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidNetlist, "argument %q must be a string, got %T", key, v)
	}
	return s, nil
}
