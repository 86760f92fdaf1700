package tech

import (
	"testing"

	"github.com/picforge/picforge/pkg/component"
	"github.com/picforge/picforge/pkg/errors"
	"github.com/picforge/picforge/pkg/geometry"
)

// nopAdapter satisfies TransitionFactory in registration tests.
func nopAdapter(t *Technology, w1, w2 float64) (*component.Component, error) {
	return component.New("adapter"), nil
}

var (
	layerCore = geometry.Layer{Index: 1, Datatype: 0}
	layerSlab = geometry.Layer{Index: 2, Datatype: 0}
)

func newBaseTech(t *testing.T) *Technology {
	t.Helper()
	base := MustNew("base", nil)
	base.RegisterLayer("core", layerCore)
	base.RegisterCrossSection("xs_a", Fixed(CrossSection{
		Name: "xs_a", Width: 0.5, Gap: 2.0, Layer: layerCore, RadiusMin: 10,
	}))
	return base
}

func TestCrossSectionResolution(t *testing.T) {
	base := newBaseTech(t)
	child := MustNew("child", base)
	child.RegisterLayer("slab", layerSlab)
	child.RegisterCrossSection("xs_b", Fixed(CrossSection{
		Name: "xs_b", Width: 0.45, Gap: 5.0, Layer: layerSlab, RadiusMin: 25,
	}))

	tests := []struct {
		name     string
		tech     *Technology
		xs       string
		wantErr  bool
		wantCode errors.Code
	}{
		{name: "own registration", tech: child, xs: "xs_b"},
		{name: "inherited from base", tech: child, xs: "xs_a"},
		{name: "base sees own", tech: base, xs: "xs_a"},
		{name: "base does not see child", tech: base, xs: "xs_b", wantErr: true, wantCode: errors.ErrCodeUnknownCrossSection},
		{name: "unknown everywhere", tech: child, xs: "xs_missing", wantErr: true, wantCode: errors.ErrCodeUnknownCrossSection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, err := tt.tech.CrossSection(tt.xs)
			if tt.wantErr {
				if errors.GetCode(err) != tt.wantCode {
					t.Fatalf("CrossSection(%q) code = %v, want %v", tt.xs, errors.GetCode(err), tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("CrossSection(%q) error = %v", tt.xs, err)
			}
			if cs.Name != tt.xs {
				t.Errorf("CrossSection(%q).Name = %q", tt.xs, cs.Name)
			}
		})
	}
}

func TestCrossSectionShadowing(t *testing.T) {
	base := newBaseTech(t)
	child := MustNew("child", base)
	child.RegisterCrossSection("xs_a", Fixed(CrossSection{
		Name: "xs_a", Width: 0.8, Gap: 2.0, Layer: layerCore, RadiusMin: 5,
	}))

	cs, err := child.CrossSection("xs_a")
	if err != nil {
		t.Fatalf("CrossSection() error = %v", err)
	}
	if cs.Width != 0.8 {
		t.Errorf("shadowed width = %v, want 0.8", cs.Width)
	}

	// The base stays untouched.
	cs, err = base.CrossSection("xs_a")
	if err != nil {
		t.Fatalf("CrossSection() error = %v", err)
	}
	if cs.Width != 0.5 {
		t.Errorf("base width = %v, want 0.5", cs.Width)
	}
}

func TestCrossSectionNames(t *testing.T) {
	base := newBaseTech(t)
	child := MustNew("child", base)
	child.RegisterCrossSection("xs_b", Fixed(CrossSection{Name: "xs_b"}))
	child.RegisterCrossSection("xs_a", Fixed(CrossSection{Name: "xs_a"})) // shadows base

	names := child.CrossSectionNames()
	want := []string{"xs_a", "xs_b"}
	if len(names) != len(want) {
		t.Fatalf("CrossSectionNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("CrossSectionNames()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestLayerResolution(t *testing.T) {
	base := newBaseTech(t)
	child := MustNew("child", base)

	l, err := child.Layer("core")
	if err != nil {
		t.Fatalf("Layer() error = %v", err)
	}
	if l != layerCore {
		t.Errorf("Layer() = %v, want %v", l, layerCore)
	}

	if _, err := child.Layer("metal"); errors.GetCode(err) != errors.ErrCodeNotFound {
		t.Errorf("Layer() code = %v, want %v", errors.GetCode(err), errors.ErrCodeNotFound)
	}
}

func TestTransitionLookupIsDirected(t *testing.T) {
	base := newBaseTech(t)
	forward := PairKey(layerCore, layerSlab)
	base.RegisterTransition(forward, nopAdapter)

	if _, ok := base.Transition(forward); !ok {
		t.Error("forward transition should resolve")
	}
	if _, ok := base.Transition(PairKey(layerSlab, layerCore)); ok {
		t.Error("reverse transition should not resolve from the forward entry")
	}
}

func TestTransitionInheritedThroughChain(t *testing.T) {
	base := newBaseTech(t)
	key := TaperKey(layerCore)
	base.RegisterTransition(key, nopAdapter)
	child := MustNew("child", base)
	grandchild := MustNew("grandchild", child)

	if _, ok := grandchild.Transition(key); !ok {
		t.Error("transition should be visible two levels down the chain")
	}
}

func TestTaperKeyAndPairKey(t *testing.T) {
	taper := TaperKey(layerCore)
	if !taper.IsTaper() {
		t.Error("TaperKey should report IsTaper")
	}
	pair := PairKey(layerCore, layerSlab)
	if pair.IsTaper() {
		t.Error("PairKey with distinct layers should not report IsTaper")
	}
	if pair == PairKey(layerSlab, layerCore) {
		t.Error("pair keys are directed; reversed key should differ")
	}
}

func TestBaseChainCycleRejected(t *testing.T) {
	a := MustNew("a", nil)
	b := MustNew("b", a)
	// Close the loop manually to simulate a mis-built chain.
	a.base = b

	_, err := New("c", b)
	if errors.GetCode(err) != errors.ErrCodeInvalidTechnology {
		t.Errorf("New() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidTechnology)
	}
	a.base = nil
}

func TestActivationStack(t *testing.T) {
	defer func() {
		// Leave the stack empty for other tests.
		for Active() != nil {
			Pop()
		}
	}()

	if Active() != nil {
		t.Fatal("Active() should be nil before any activation")
	}

	a := MustNew("a", nil)
	b := MustNew("b", nil)
	c := MustNew("c", nil)

	Activate(a)
	if Active() != a {
		t.Error("Active() should be a after Activate(a)")
	}

	// Activate replaces the top instead of stacking.
	Activate(b)
	if Active() != b {
		t.Error("Active() should be b after Activate(b)")
	}

	Push(c)
	if Active() != c {
		t.Error("Active() should be c after Push(c)")
	}

	Pop()
	if Active() != b {
		t.Error("Active() should be b after Pop()")
	}

	Pop()
	if Active() != nil {
		t.Error("Active() should be nil after final Pop()")
	}

	// Popping an empty stack is a no-op.
	Pop()
}

func TestCrossSectionSpecResolve(t *testing.T) {
	base := newBaseTech(t)

	tests := []struct {
		name     string
		spec     CrossSectionSpec
		wantName string
		wantW    float64
		wantErr  bool
	}{
		{
			name:     "by name",
			spec:     ByName("xs_a"),
			wantName: "xs_a",
			wantW:    0.5,
		},
		{
			name: "by name with width override",
			spec: CrossSectionSpec{Name: "xs_a", Width: 1.2},
			wantName: "xs_a",
			wantW:    1.2,
		},
		{
			name:     "by value",
			spec:     ByValue(CrossSection{Name: "inline", Width: 0.7}),
			wantName: "inline",
			wantW:    0.7,
		},
		{
			name:     "by factory",
			spec:     ByFactory(Fixed(CrossSection{Name: "fab", Width: 0.6})),
			wantName: "fab",
			wantW:    0.6,
		},
		{
			name:    "unknown name",
			spec:    ByName("nope"),
			wantErr: true,
		},
		{
			name:    "empty spec",
			spec:    CrossSectionSpec{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, err := tt.spec.Resolve(base)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Resolve() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if cs.Name != tt.wantName || cs.Width != tt.wantW {
				t.Errorf("Resolve() = %q/%v, want %q/%v", cs.Name, cs.Width, tt.wantName, tt.wantW)
			}
		})
	}
}

func TestPitch(t *testing.T) {
	tests := []struct {
		name   string
		cs     CrossSection
		margin float64
		want   float64
	}{
		{"gap dominates", CrossSection{Width: 0.5, Gap: 2.0}, 1.0, 3.0},
		{"width dominates", CrossSection{Width: 3.0, Gap: 2.0}, 1.0, 4.0},
		{"zero margin", CrossSection{Width: 0.45, Gap: 5.0}, 0, 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cs.Pitch(tt.margin); got != tt.want {
				t.Errorf("Pitch(%v) = %v, want %v", tt.margin, got, tt.want)
			}
		})
	}
}
