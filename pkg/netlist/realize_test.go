package netlist

import (
	"strings"
	"testing"

	"github.com/picforge/picforge/pkg/cells"
	"github.com/picforge/picforge/pkg/component"
	"github.com/picforge/picforge/pkg/errors"
	"github.com/picforge/picforge/pkg/geometry"
)

func realizeFromTOML(t *testing.T, src string) (*component.Component, error) {
	t.Helper()
	component.ResetCache()
	n, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return Realize(cells.Generic(), DefaultRegistry(), n)
}

func TestRealizeChain(t *testing.T) {
	c, err := realizeFromTOML(t, validNetlist)
	if err != nil {
		t.Fatalf("Realize() error = %v", err)
	}

	if !c.Finalized() {
		t.Error("realized component should be finalized")
	}
	if c.Name() != "pair" {
		t.Errorf("Name() = %q, want %q", c.Name(), "pair")
	}
	if n := len(c.Refs()); n != 2 {
		t.Errorf("ref count = %d, want 2", n)
	}

	in, err := c.Port("in")
	if err != nil {
		t.Fatal(err)
	}
	out, err := c.Port("out")
	if err != nil {
		t.Fatal(err)
	}
	if !in.Center.Eq(geometry.Point{}) || !geometry.AnglesEqual(in.Orientation, 180) {
		t.Errorf("in = %v, want origin facing 180", in)
	}
	// Two 20 um straights end to end.
	if !out.Center.Eq(geometry.Point{X: 40}) || !geometry.AnglesEqual(out.Orientation, 0) {
		t.Errorf("out = %v, want (40, 0) facing 0", out)
	}
}

func TestRealizeSplicesTransition(t *testing.T) {
	const src = `
name = "mixed"

[instances.strip]
factory = "straight"
args = { cross_section = "xs_sc", length = 20 }

[instances.rib]
factory = "straight"
args = { cross_section = "xs_rc", length = 30 }

[[connections]]
from = "rib,o1"
to = "strip,o2"

[[ports]]
name = "out"
port = "rib,o2"
`
	c, err := realizeFromTOML(t, src)
	if err != nil {
		t.Fatalf("Realize() error = %v", err)
	}

	// Two waveguides plus the auto-spliced strip->rib adapter.
	if n := len(c.Refs()); n != 3 {
		t.Errorf("ref count = %d, want 3", n)
	}
	// 20 um strip, 10 um adapter, 30 um rib.
	out, err := c.Port("out")
	if err != nil {
		t.Fatal(err)
	}
	if !out.Center.Eq(geometry.Point{X: 60}) {
		t.Errorf("out center = %v, want (60, 0)", out.Center)
	}
	if out.CrossSection != cells.XSRib {
		t.Errorf("out cross-section = %q, want %q", out.CrossSection, cells.XSRib)
	}
}

func TestRealizeBendTurnsThePath(t *testing.T) {
	const src = `
name = "corner"

[instances.wg]
factory = "straight"
args = { cross_section = "xs_sc", length = 20 }

[instances.bend]
factory = "bend_circular"
args = { cross_section = "xs_sc", angle = 90 }

[[connections]]
from = "bend,o1"
to = "wg,o2"

[[ports]]
name = "out"
port = "bend,o2"
`
	c, err := realizeFromTOML(t, src)
	if err != nil {
		t.Fatalf("Realize() error = %v", err)
	}

	out, err := c.Port("out")
	if err != nil {
		t.Fatal(err)
	}
	// Default radius 10 bend after a 20 um straight.
	if !out.Center.Eq(geometry.Point{X: 30, Y: 10}) {
		t.Errorf("out center = %v, want (30, 10)", out.Center)
	}
	if !geometry.AnglesEqual(out.Orientation, 90) {
		t.Errorf("out orientation = %v, want 90", out.Orientation)
	}
}

func TestRealizeErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantCode errors.Code
		contains string
	}{
		{
			name: "unknown factory",
			src: `
name = "c"
[instances.wg]
factory = "ring_resonator"
`,
			wantCode: errors.ErrCodeFactoryNotFound,
			contains: `instance "wg"`,
		},
		{
			name: "factory argument error",
			src: `
name = "c"
[instances.wg]
factory = "straight"
args = { cross_section = "xs_sc", length = -1 }
`,
			wantCode: errors.ErrCodeInvalidInput,
			contains: `factory "straight"`,
		},
		{
			name: "unknown cross-section",
			src: `
name = "c"
[instances.wg]
factory = "straight"
args = { cross_section = "xs_missing" }
`,
			wantCode: errors.ErrCodeUnknownCrossSection,
		},
		{
			name: "connection to missing port",
			src: `
name = "c"
[instances.wg1]
factory = "straight"
args = { cross_section = "xs_sc" }
[instances.wg2]
factory = "straight"
args = { cross_section = "xs_sc" }
[[connections]]
from = "wg2,o1"
to = "wg1,o9"
`,
			wantCode: errors.ErrCodePortNotFound,
			contains: "connection 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := realizeFromTOML(t, tt.src)
			if errors.GetCode(err) != tt.wantCode {
				t.Fatalf("Realize() code = %v, want %v (err %v)", errors.GetCode(err), tt.wantCode, err)
			}
			if tt.contains != "" && !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error should contain %q, got %q", tt.contains, err.Error())
			}
		})
	}
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Lookup("straight"); errors.GetCode(err) != errors.ErrCodeFactoryNotFound {
		t.Errorf("Lookup() on empty registry code = %v, want %v", errors.GetCode(err), errors.ErrCodeFactoryNotFound)
	}

	r = DefaultRegistry()
	for _, name := range []string{"straight", "bend_circular", "taper"} {
		if _, err := r.Lookup(name); err != nil {
			t.Errorf("Lookup(%q) error = %v", name, err)
		}
	}
}

func TestDefaultRegistryArgCoercion(t *testing.T) {
	component.ResetCache()
	g := cells.Generic()
	r := DefaultRegistry()

	straight, err := r.Lookup("straight")
	if err != nil {
		t.Fatal(err)
	}

	// TOML integers arrive as int64; the factory accepts both spellings.
	a, err := straight(g, map[string]any{"cross_section": "xs_sc", "length": int64(15)})
	if err != nil {
		t.Fatalf("straight(int64 length) error = %v", err)
	}
	b, err := straight(g, map[string]any{"cross_section": "xs_sc", "length": 15.0})
	if err != nil {
		t.Fatalf("straight(float length) error = %v", err)
	}
	if a != b {
		t.Error("int and float spellings of the same length should memoize together")
	}

	if _, err := straight(g, map[string]any{"cross_section": "xs_sc", "length": "long"}); errors.GetCode(err) != errors.ErrCodeInvalidNetlist {
		t.Errorf("non-numeric length code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidNetlist)
	}
	if _, err := straight(g, map[string]any{"length": 10.0}); errors.GetCode(err) != errors.ErrCodeInvalidNetlist {
		t.Errorf("missing cross_section code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidNetlist)
	}

	// A width override flows into the resolved cross-section.
	wide, err := straight(g, map[string]any{"cross_section": "xs_sc", "length": 15.0, "width": 1.0})
	if err != nil {
		t.Fatal(err)
	}
	p, err := wide.Port("o1")
	if err != nil {
		t.Fatal(err)
	}
	if p.Width != 1.0 {
		t.Errorf("overridden width = %v, want 1.0", p.Width)
	}
}

func TestRealizeValidatesHandBuiltNetlist(t *testing.T) {
	component.ResetCache()
	wg := Instance{Factory: "straight", Args: map[string]any{"cross_section": cells.XSStrip, "length": 10.0}}

	tests := []struct {
		name string
		n    *Netlist
	}{
		{
			name: "connection to unknown instance",
			n: &Netlist{
				Name:      "bad",
				Instances: map[string]Instance{"wg": wg},
				Connections: []Connection{{
					From: PortRef{Instance: "ghost", Port: "o1"},
					To:   PortRef{Instance: "wg", Port: "o2"},
				}},
			},
		},
		{
			name: "exposed port on unknown instance",
			n: &Netlist{
				Name:      "bad",
				Instances: map[string]Instance{"wg": wg},
				Ports:     []PortExposure{{Name: "in", Port: PortRef{Instance: "ghost", Port: "o1"}}},
			},
		},
		{
			name: "no instances",
			n:    &Netlist{Name: "empty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Hand-built netlists skip Parse, so Realize must reject them
			// itself instead of panicking on a missing reference.
			_, err := Realize(cells.Generic(), DefaultRegistry(), tt.n)
			if errors.GetCode(err) != errors.ErrCodeInvalidNetlist {
				t.Errorf("Realize() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidNetlist)
			}
		})
	}
}
