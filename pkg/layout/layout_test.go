package layout

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/picforge/picforge/pkg/component"
	"github.com/picforge/picforge/pkg/errors"
	"github.com/picforge/picforge/pkg/geometry"
)

var wgLayer = geometry.Layer{Index: 1, Datatype: 0}

func straight(t *testing.T, name string, length float64) *component.Component {
	t.Helper()
	c := component.New(name)
	if err := c.AddPolygon(geometry.Rect(wgLayer, 0, -0.25, length, 0.25)); err != nil {
		t.Fatal(err)
	}
	ports := []component.Port{
		{Name: "o1", Orientation: 180, Width: 0.5, Layer: wgLayer},
		{Name: "o2", Center: geometry.Point{X: length}, Orientation: 0, Width: 0.5, Layer: wgLayer},
	}
	for _, p := range ports {
		if err := c.AddPort(p); err != nil {
			t.Fatal(err)
		}
	}
	return c
}

func TestExportSharedCellOnce(t *testing.T) {
	top := component.New("top")
	wg := straight(t, "wg", 10)

	r1, err := top.AddRef(wg)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := top.AddRef(wg)
	if err != nil {
		t.Fatal(err)
	}
	_ = r1
	r2.Translate(20, 0)

	l := Export(top)
	if l.Name != "top" {
		t.Errorf("Name = %q, want %q", l.Name, "top")
	}
	// The shared child appears once; the root is last.
	if len(l.Cells) != 2 {
		t.Fatalf("cell count = %d, want 2", len(l.Cells))
	}
	if l.Cells[0].Name != "wg" || l.Cells[1].Name != "top" {
		t.Errorf("cell order = %q, %q, want children first", l.Cells[0].Name, l.Cells[1].Name)
	}
	root := l.Cells[1]
	if len(root.Refs) != 2 {
		t.Fatalf("root ref count = %d, want 2", len(root.Refs))
	}
	for _, ref := range root.Refs {
		if ref.Cell != "wg" {
			t.Errorf("placement cell = %q, want %q", ref.Cell, "wg")
		}
	}
	if !root.Refs[1].Transform.Origin.Eq(geometry.Point{X: 20}) {
		t.Errorf("second placement origin = %v, want (20, 0)", root.Refs[1].Transform.Origin)
	}
}

func TestExportDisambiguatesNames(t *testing.T) {
	top := component.New("top")
	a := straight(t, "wg", 10)
	b := straight(t, "wg", 20) // distinct component, same name

	if _, err := top.AddRef(a); err != nil {
		t.Fatal(err)
	}
	if _, err := top.AddRef(b); err != nil {
		t.Fatal(err)
	}

	l := Export(top)
	if len(l.Cells) != 3 {
		t.Fatalf("cell count = %d, want 3", len(l.Cells))
	}
	names := map[string]bool{}
	for _, cell := range l.Cells {
		if names[cell.Name] {
			t.Fatalf("duplicate cell name %q in export", cell.Name)
		}
		names[cell.Name] = true
	}
	if !names["wg"] || !names["wg_2"] {
		t.Errorf("expected wg and wg_2 cells, got %v", names)
	}
}

func TestRoundTrip(t *testing.T) {
	top := component.New("top")
	wg := straight(t, "wg", 10)
	wg.Meta()["length"] = 10.0
	ref, err := top.AddRef(wg)
	if err != nil {
		t.Fatal(err)
	}
	ref.SetTransform(geometry.Transform{Origin: geometry.Point{X: 5, Y: -3}, Rotation: 90, Mirror: true})
	if err := top.PromotePort("in", ref, "o1"); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Write(top, &buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	l, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	back, err := l.Component()
	if err != nil {
		t.Fatalf("Component() error = %v", err)
	}

	if !back.Finalized() {
		t.Error("rebuilt root should be finalized")
	}
	if back.Name() != "top" {
		t.Errorf("Name() = %q, want %q", back.Name(), "top")
	}
	refs := back.Refs()
	if len(refs) != 1 {
		t.Fatalf("ref count = %d, want 1", len(refs))
	}
	tr := refs[0].Transform()
	if !tr.Origin.Eq(geometry.Point{X: 5, Y: -3}) || !geometry.AnglesEqual(tr.Rotation, 90) || !tr.Mirror {
		t.Errorf("rebuilt transform = %+v", tr)
	}
	if got := refs[0].Component().Meta()["length"]; got != 10.0 {
		t.Errorf("rebuilt meta length = %v, want 10", got)
	}

	p, err := back.Port("in")
	if err != nil {
		t.Fatal(err)
	}
	if !p.Center.Eq(geometry.Point{X: 5, Y: -3}) {
		t.Errorf("rebuilt port center = %v, want (5, -3)", p.Center)
	}

	// Flattened geometry matches the original.
	orig := top.FlatPolygons()
	rebuilt := back.FlatPolygons()
	if len(orig) != len(rebuilt) {
		t.Fatalf("flat polygon count = %d, want %d", len(rebuilt), len(orig))
	}
	for i := range orig {
		for j := range orig[i].Points {
			if orig[i].Points[j].Distance(rebuilt[i].Points[j]) > geometry.Eps {
				t.Fatalf("polygon %d point %d = %v, want %v", i, j, rebuilt[i].Points[j], orig[i].Points[j])
			}
		}
	}
}

func TestComponentRejectsBadLayouts(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
	}{
		{
			name:   "no cells",
			layout: Layout{Name: "empty"},
		},
		{
			name: "duplicate cell",
			layout: Layout{Name: "dup", Cells: []Cell{
				{Name: "a"},
				{Name: "a"},
			}},
		},
		{
			name: "forward reference",
			layout: Layout{Name: "fwd", Cells: []Cell{
				{Name: "a", Refs: []Placement{{Cell: "b"}}},
				{Name: "b"},
			}},
		},
		{
			name: "unknown reference",
			layout: Layout{Name: "ghost", Cells: []Cell{
				{Name: "a", Refs: []Placement{{Cell: "missing"}}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.layout.Component()
			if errors.GetCode(err) != errors.ErrCodeInvalidLayout {
				t.Errorf("Component() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidLayout)
			}
		})
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	top := component.New("top")
	if _, err := top.AddRef(straight(t, "wg", 10)); err != nil {
		t.Fatal(err)
	}

	data, err := Marshal(top)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	l, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if l.Name != "top" || len(l.Cells) != 2 {
		t.Errorf("Unmarshal() = %q with %d cells, want top with 2", l.Name, len(l.Cells))
	}

	if _, err := Unmarshal([]byte("not json")); errors.GetCode(err) != errors.ErrCodeInvalidLayout {
		t.Errorf("Unmarshal(garbage) code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidLayout)
	}
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	top := component.New("top")
	if _, err := top.AddRef(straight(t, "wg", 10)); err != nil {
		t.Fatal(err)
	}

	if err := WriteFile(top, path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}

	l, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if l.Name != "top" {
		t.Errorf("Name = %q, want %q", l.Name, "top")
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.json")); errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("ReadFile(missing) code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}
