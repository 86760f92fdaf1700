package netlist

import (
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/picforge/picforge/pkg/errors"
)

// Netlist is the in-memory form of a declarative circuit description.
type Netlist struct {
	// Name becomes the realized component's name.
	Name string `toml:"name"`

	// Technology optionally names the PDK the circuit expects. The caller
	// decides how to resolve it; realization takes an explicit technology.
	Technology string `toml:"technology,omitempty"`

	// Instances maps local names to factory invocations.
	Instances map[string]Instance `toml:"instances"`

	// Connections are applied in order; each mates the "from" instance
	// port (which moves) with the "to" instance port (which stays fixed).
	Connections []Connection `toml:"connections"`

	// Ports exposes instance ports on the realized component.
	Ports []PortExposure `toml:"ports"`
}

// Instance is one factory invocation in the netlist.
type Instance struct {
	Factory string         `toml:"factory"`
	Args    map[string]any `toml:"args"`
}

// Connection mates two instance ports. From moves, To stays fixed.
// Both are "instance,port" pairs.
type Connection struct {
	From PortRef `toml:"from"`
	To   PortRef `toml:"to"`
}

// PortExposure promotes an instance port onto the realized component.
type PortExposure struct {
	Name string  `toml:"name"`
	Port PortRef `toml:"port"`
}

// PortRef addresses a port on a named instance. In TOML it is written as
// the compact string "instance,port".
type PortRef struct {
	Instance string
	Port     string
}

// UnmarshalText parses the "instance,port" form.
func (r *PortRef) UnmarshalText(text []byte) error {
	parts := strings.Split(string(text), ",")
	if len(parts) != 2 {
		return errors.New(errors.ErrCodeInvalidNetlist,
			"port reference %q must be \"instance,port\"", string(text))
	}
	r.Instance = strings.TrimSpace(parts[0])
	r.Port = strings.TrimSpace(parts[1])
	if r.Instance == "" || r.Port == "" {
		return errors.New(errors.ErrCodeInvalidNetlist,
			"port reference %q has an empty instance or port name", string(text))
	}
	return nil
}

// Parse reads a netlist from r.
func Parse(r io.Reader) (*Netlist, error) {
	var n Netlist
	if _, err := toml.NewDecoder(r).Decode(&n); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidNetlist, err, "cannot parse netlist")
	}
	if err := n.validate(); err != nil {
		return nil, err
	}
	return &n, nil
}

// Load reads a netlist from a file.
func Load(path string) (*Netlist, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "netlist %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidNetlist, err, "cannot open netlist %s", path)
	}
	defer f.Close()
	return Parse(f)
}

func (n *Netlist) validate() error {
	if n.Name == "" {
		return errors.New(errors.ErrCodeInvalidNetlist, "netlist has no name")
	}
	if len(n.Instances) == 0 {
		return errors.New(errors.ErrCodeInvalidNetlist, "netlist %q has no instances", n.Name)
	}
	for local, inst := range n.Instances {
		if err := errors.ValidateName(local); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidNetlist, err, "instance %q", local)
		}
		if inst.Factory == "" {
			return errors.New(errors.ErrCodeInvalidNetlist, "instance %q has no factory", local)
		}
	}
	for i, conn := range n.Connections {
		for _, ref := range []PortRef{conn.From, conn.To} {
			if _, ok := n.Instances[ref.Instance]; !ok {
				return errors.New(errors.ErrCodeInvalidNetlist,
					"connection %d references unknown instance %q", i, ref.Instance)
			}
		}
	}
	for _, exp := range n.Ports {
		if err := errors.ValidatePortName(exp.Name); err != nil {
			return err
		}
		if _, ok := n.Instances[exp.Port.Instance]; !ok {
			return errors.New(errors.ErrCodeInvalidNetlist,
				"exposed port %q references unknown instance %q", exp.Name, exp.Port.Instance)
		}
	}
	return nil
}
