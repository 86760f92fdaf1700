package component

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/picforge/picforge/pkg/errors"
)

func TestBuildMemoizes(t *testing.T) {
	b := NewBuilder()
	calls := 0

	build := func() (*Component, error) {
		calls++
		c := New("")
		if err := c.AddPort(Port{Name: "o1", Width: 0.5}); err != nil {
			return nil, err
		}
		return c, nil
	}

	args := map[string]any{"length": 10.0, "xs": "xs_a"}
	first, err := b.Build("straight", args, build)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	second, err := b.Build("straight", args, build)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if calls != 1 {
		t.Errorf("build function called %d times, want 1", calls)
	}
	if first != second {
		t.Error("identical arguments should yield the identical component instance")
	}
	if !first.Finalized() {
		t.Error("cached components must be finalized")
	}
	if first.Name() == "" {
		t.Error("builder should assign a name to anonymous components")
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
}

func TestBuildDistinctArgs(t *testing.T) {
	b := NewBuilder()
	calls := 0
	build := func() (*Component, error) {
		calls++
		return New(""), nil
	}

	if _, err := b.Build("straight", map[string]any{"length": 10.0}, build); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Build("straight", map[string]any{"length": 20.0}, build); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Build("bend", map[string]any{"length": 10.0}, build); err != nil {
		t.Fatal(err)
	}

	if calls != 3 {
		t.Errorf("build function called %d times, want 3", calls)
	}
	if b.Len() != 3 {
		t.Errorf("Len() = %d, want 3", b.Len())
	}
}

func TestBuildFailureNotCached(t *testing.T) {
	b := NewBuilder()
	fail := true
	build := func() (*Component, error) {
		if fail {
			return nil, errors.New(errors.ErrCodeInvalidInput, "bad args")
		}
		return New(""), nil
	}

	if _, err := b.Build("taper", nil, build); err == nil {
		t.Fatal("Build() should propagate the factory error")
	}
	if b.Len() != 0 {
		t.Errorf("failed build should not be cached, Len() = %d", b.Len())
	}

	fail = false
	if _, err := b.Build("taper", nil, build); err != nil {
		t.Errorf("Build() after fix error = %v", err)
	}
}

func TestBuildNilComponentIsError(t *testing.T) {
	b := NewBuilder()
	_, err := b.Build("broken", nil, func() (*Component, error) { return nil, nil })
	if errors.GetCode(err) != errors.ErrCodeInternal {
		t.Errorf("Build() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInternal)
	}
}

func TestBuildConcurrentCoalesces(t *testing.T) {
	b := NewBuilder()
	var calls atomic.Int32
	build := func() (*Component, error) {
		calls.Add(1)
		return New(""), nil
	}

	const workers = 16
	results := make([]*Component, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := b.Build("straight", map[string]any{"length": 5.0}, build)
			if err != nil {
				t.Errorf("Build() error = %v", err)
				return
			}
			results[i] = c
		}(i)
	}
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("build function called %d times, want 1", got)
	}
	for i := 1; i < workers; i++ {
		if results[i] != results[0] {
			t.Fatal("concurrent builds should all observe the same instance")
		}
	}
}

func TestSignatureDeterministic(t *testing.T) {
	a := Signature("straight", map[string]any{"length": 10.0, "xs": "xs_a"})
	b := Signature("straight", map[string]any{"xs": "xs_a", "length": 10.0})
	if a != b {
		t.Error("map key order should not affect the signature")
	}

	c := Signature("straight", map[string]any{"length": 11.0, "xs": "xs_a"})
	if a == c {
		t.Error("different arguments should produce different signatures")
	}

	d := Signature("bend", map[string]any{"length": 10.0, "xs": "xs_a"})
	if a == d {
		t.Error("different factories should produce different signatures")
	}
}

func TestClear(t *testing.T) {
	b := NewBuilder()
	if _, err := b.Build("straight", nil, func() (*Component, error) { return New(""), nil }); err != nil {
		t.Fatal(err)
	}
	b.Clear()
	if b.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", b.Len())
	}
}
