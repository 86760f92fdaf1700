// Package cache provides byte-level caching for built layout artifacts.
//
// The CLI uses it to skip rebuilding a circuit whose netlist has not
// changed: exported layout JSON is stored keyed by a hash of the netlist
// content and the technology name. The cache stores opaque bytes; the
// component build cache (pkg/component.Builder) is a separate, in-memory
// mechanism with per-signature coalescing.
//
// Two implementations are provided: [FileCache] for persistent CLI usage
// and [NullCache] for disabling caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque bytes under string keys with optional expiration.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 stores without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// NullCache discards every write and misses every read. It backs the
// --no-cache path so callers can treat caching as always present.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

var _ Cache = NullCache{}
