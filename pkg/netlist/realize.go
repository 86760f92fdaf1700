package netlist

import (
	"sort"

	"github.com/picforge/picforge/pkg/component"
	"github.com/picforge/picforge/pkg/errors"
	"github.com/picforge/picforge/pkg/route"
	"github.com/picforge/picforge/pkg/tech"
)

// Realize builds the netlist into a finalized component: every instance is
// instantiated through the registry, every connection is mated in listed
// order (with automatic transition splicing on cross-section mismatch),
// and the listed ports are exposed.
//
// The first failure aborts realization; a partially wired component is
// never returned.
func Realize(t *tech.Technology, reg *Registry, n *Netlist) (*component.Component, error) {
	// Callers constructing a Netlist directly bypass Parse, so revalidate
	// here; an unchecked instance reference would dereference a nil ref.
	if err := n.validate(); err != nil {
		return nil, err
	}
	c := component.New(n.Name)

	// Instantiate in sorted order so reference ids and error ordering are
	// deterministic regardless of map iteration.
	names := make([]string, 0, len(n.Instances))
	for name := range n.Instances {
		names = append(names, name)
	}
	sort.Strings(names)

	refs := make(map[string]*component.Reference, len(names))
	for _, local := range names {
		inst := n.Instances[local]
		factory, err := reg.Lookup(inst.Factory)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "instance %q", local)
		}
		child, err := factory(t, inst.Args)
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return nil, errors.Wrap(code, err, "instance %q (factory %q)", local, inst.Factory)
		}
		ref, err := c.AddRef(child)
		if err != nil {
			return nil, err
		}
		refs[local] = ref
	}

	for i, conn := range n.Connections {
		moving := refs[conn.From.Instance]
		fixed, err := refs[conn.To.Instance].Port(conn.To.Port)
		if err != nil {
			return nil, wrapConn(err, i)
		}
		if err := route.ConnectAuto(c, t, moving, conn.From.Port, fixed); err != nil {
			return nil, wrapConn(err, i)
		}
	}

	for _, exp := range n.Ports {
		if err := c.PromotePort(exp.Name, refs[exp.Port.Instance], exp.Port.Port); err != nil {
			return nil, err
		}
	}

	c.Finalize()
	return c, nil
}

func wrapConn(err error, i int) error {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return errors.Wrap(code, err, "connection %d", i)
}
