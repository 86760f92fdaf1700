package tech

import (
	"sort"
	"sync"

	"github.com/picforge/picforge/pkg/errors"
	"github.com/picforge/picforge/pkg/geometry"
)

// Technology is a PDK registry: named layers, cross-section factories, and
// the directed transition table. A technology may derive from a base
// technology; lookups walk self first, then the base chain outward-in.
//
// Registration is not safe for concurrent use; resolve methods are safe
// once registration is complete.
type Technology struct {
	name          string
	base          *Technology
	layers        map[string]geometry.Layer
	crossSections map[string]CrossSectionFactory
	transitions   map[TransitionKey]TransitionFactory
}

// New creates a technology, optionally deriving from base. It returns an
// INVALID_TECHNOLOGY error when the base chain would contain a cycle.
func New(name string, base *Technology) (*Technology, error) {
	t := &Technology{
		name:          name,
		base:          base,
		layers:        make(map[string]geometry.Layer),
		crossSections: make(map[string]CrossSectionFactory),
		transitions:   make(map[TransitionKey]TransitionFactory),
	}
	seen := map[*Technology]bool{t: true}
	for b := base; b != nil; b = b.base {
		if seen[b] {
			return nil, errors.New(errors.ErrCodeInvalidTechnology,
				"technology %q: base chain contains a cycle at %q", name, b.name)
		}
		seen[b] = true
	}
	return t, nil
}

// MustNew is like New but panics on error. Intended for package-level
// construction of builtin technologies.
func MustNew(name string, base *Technology) *Technology {
	t, err := New(name, base)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the technology name.
func (t *Technology) Name() string { return t.name }

// Base returns the base technology, or nil.
func (t *Technology) Base() *Technology { return t.base }

// RegisterLayer binds a layer name to its (index, datatype) pair.
// Re-registering a name shadows the previous binding.
func (t *Technology) RegisterLayer(name string, layer geometry.Layer) {
	t.layers[name] = layer
}

// Layer resolves a layer name through the base chain.
func (t *Technology) Layer(name string) (geometry.Layer, error) {
	for cur := t; cur != nil; cur = cur.base {
		if l, ok := cur.layers[name]; ok {
			return l, nil
		}
	}
	return geometry.Layer{}, errors.New(errors.ErrCodeNotFound,
		"technology %q: unknown layer %q", t.name, name)
}

// RegisterCrossSection binds a cross-section name to a factory. A derived
// technology may shadow a name inherited from its base; re-registering
// within the same technology replaces the previous factory.
func (t *Technology) RegisterCrossSection(name string, f CrossSectionFactory) {
	t.crossSections[name] = f
}

// CrossSection resolves a cross-section name through the base chain and
// instantiates it with its default width. Exhausting the chain yields an
// UNKNOWN_CROSS_SECTION error naming the technology and the cross-section.
func (t *Technology) CrossSection(name string) (CrossSection, error) {
	for cur := t; cur != nil; cur = cur.base {
		if f, ok := cur.crossSections[name]; ok {
			return f(0), nil
		}
	}
	return CrossSection{}, errors.New(errors.ErrCodeUnknownCrossSection,
		"technology %q: unknown cross-section %q", t.name, name)
}

// CrossSectionNames returns the sorted names visible through the chain.
func (t *Technology) CrossSectionNames() []string {
	set := make(map[string]bool)
	for cur := t; cur != nil; cur = cur.base {
		for name := range cur.crossSections {
			set[name] = true
		}
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterTransition binds a transition key to an adapter factory.
func (t *Technology) RegisterTransition(key TransitionKey, f TransitionFactory) {
	t.transitions[key] = f
}

// Transition resolves a transition key. Like cross-section resolution it
// walks the base chain, so a derived technology inherits its base's
// transitions unless it shadows the key. The second return value reports
// whether an entry was found; absence means no automatic transition exists
// and the caller must fail rather than synthesize one.
func (t *Technology) Transition(key TransitionKey) (TransitionFactory, bool) {
	for cur := t; cur != nil; cur = cur.base {
		if f, ok := cur.transitions[key]; ok {
			return f, true
		}
	}
	return nil, false
}

// TransitionKeys returns the keys registered through the chain, base keys
// first, with no de-duplication of shadowed entries.
func (t *Technology) TransitionKeys() []TransitionKey {
	var chain []*Technology
	for cur := t; cur != nil; cur = cur.base {
		chain = append(chain, cur)
	}
	var keys []TransitionKey
	for i := len(chain) - 1; i >= 0; i-- {
		for key := range chain[i].transitions {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

// activation is the process-wide activation stack. Explicitly passing a
// *Technology is preferred; the stack exists for CLI-style usage where one
// PDK governs the whole process.
var activation struct {
	mu    sync.Mutex
	stack []*Technology
}

// Activate makes t the active technology, replacing any current activation.
// Activation is idempotent and last-activate-wins; it never accumulates
// registrations across calls.
func Activate(t *Technology) {
	activation.mu.Lock()
	defer activation.mu.Unlock()
	if n := len(activation.stack); n > 0 {
		activation.stack[n-1] = t
		return
	}
	activation.stack = []*Technology{t}
}

// Push activates t on top of the current activation, scoping it until the
// matching Pop. Nested builds against different technologies should prefer
// Push/Pop (or explicit passing) over Activate.
func Push(t *Technology) {
	activation.mu.Lock()
	defer activation.mu.Unlock()
	activation.stack = append(activation.stack, t)
}

// Pop removes the top activation, restoring the previous one.
// Popping an empty stack is a no-op.
func Pop() {
	activation.mu.Lock()
	defer activation.mu.Unlock()
	if n := len(activation.stack); n > 0 {
		activation.stack = activation.stack[:n-1]
	}
}

// Active returns the currently active technology, or nil when none has been
// activated.
func Active() *Technology {
	activation.mu.Lock()
	defer activation.mu.Unlock()
	if n := len(activation.stack); n > 0 {
		return activation.stack[n-1]
	}
	return nil
}
