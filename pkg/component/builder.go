package component

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/picforge/picforge/pkg/errors"
)

// BuildFunc constructs a component. It must return either a fully built
// component or an error - never both.
type BuildFunc func() (*Component, error)

// Builder memoizes component construction by build signature: the factory
// name plus its canonicalized arguments. A signature is built at most once;
// concurrent requests for the same signature coalesce onto the single
// in-flight construction. Successful builds are finalized before they are
// published, so cached components are immutable and safe for concurrent
// reads. Failed builds are not cached and are re-attempted on the next
// request.
type Builder struct {
	mu      sync.Mutex
	entries map[string]*buildEntry
}

type buildEntry struct {
	done chan struct{}
	comp *Component
	err  error
}

// NewBuilder creates an empty build cache.
func NewBuilder() *Builder {
	return &Builder{entries: make(map[string]*buildEntry)}
}

// Signature computes the cache key for a factory invocation. Arguments are
// canonicalized through JSON (map keys sort deterministically) and hashed
// with SHA-256, so identical arguments always produce identical keys.
func Signature(factory string, args any) string {
	data, _ := json.Marshal(args)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", factory, hex.EncodeToString(sum[:]))
}

// Build returns the memoized component for (factory, args), constructing
// it with fn on first use. Two calls with identical arguments yield the
// identical component instance, and therefore identical port sets.
func (b *Builder) Build(factory string, args any, fn BuildFunc) (*Component, error) {
	key := Signature(factory, args)

	b.mu.Lock()
	if e, ok := b.entries[key]; ok {
		b.mu.Unlock()
		<-e.done
		return e.comp, e.err
	}
	e := &buildEntry{done: make(chan struct{})}
	b.entries[key] = e
	b.mu.Unlock()

	comp, err := fn()
	if err == nil && comp == nil {
		err = errors.New(errors.ErrCodeInternal, "factory %q returned no component", factory)
	}
	if err == nil {
		if comp.Name() == "" {
			_ = comp.SetName(fmt.Sprintf("%s_%s", factory, key[len(factory)+1:][:8]))
		}
		comp.Finalize()
	}

	e.comp, e.err = comp, err
	if err != nil {
		// Partial builds never escape; drop the entry so a later call
		// can retry after the caller fixes the inputs.
		e.comp = nil
		b.mu.Lock()
		delete(b.entries, key)
		b.mu.Unlock()
	}
	close(e.done)
	return e.comp, e.err
}

// Len returns the number of cached signatures.
func (b *Builder) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Clear drops all cached entries. In-flight builds are unaffected; their
// results are simply not recorded for reuse.
func (b *Builder) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = make(map[string]*buildEntry)
}

// defaultBuilder backs the package-level Build for callers that do not
// need isolated caches.
var defaultBuilder = NewBuilder()

// Build memoizes through the package-level default builder.
func Build(factory string, args any, fn BuildFunc) (*Component, error) {
	return defaultBuilder.Build(factory, args, fn)
}

// ResetCache clears the package-level default builder. Primarily for tests
// that need deterministic cache state.
func ResetCache() { defaultBuilder.Clear() }
