package pipeline

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/picforge/picforge/pkg/cache"
	"github.com/picforge/picforge/pkg/component"
	"github.com/picforge/picforge/pkg/errors"
	"github.com/picforge/picforge/pkg/layout"
	"github.com/picforge/picforge/pkg/netlist"
	"github.com/picforge/picforge/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store build results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Logger: logger,
	}
}

// Execute runs the complete load → realize → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	content, err := r.loadContent(opts)
	if err != nil {
		return nil, err
	}

	n, err := r.Load(content)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Netlist: n,
		Stats:   Stats{InstanceCount: len(n.Instances)},
	}

	cacheKey := cache.LayoutKey(opts.Technology.Name(), content)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			l, err := layout.Unmarshal(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				result.Layout = l
				result.Data = data
				result.CacheHit = true
				result.Stats.CellCount = len(l.Cells)
				opts.Logger.Info("loaded layout from cache",
					"netlist", n.Name,
					"cells", len(l.Cells))
				return result, nil
			}
			// Corrupt entry, fall through to rebuild.
			_ = r.Cache.Delete(ctx, cacheKey)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	// Stage 2: Realize
	realizeStart := time.Now()
	c, err := r.Realize(ctx, opts, n)
	if err != nil {
		return nil, err
	}
	result.Component = c
	result.Stats.PortCount = c.PortCount()
	result.Stats.RealizeTime = time.Since(realizeStart)

	opts.Logger.Info("realized circuit",
		"netlist", n.Name,
		"instances", len(n.Instances),
		"ports", c.PortCount(),
		"duration", result.Stats.RealizeTime)

	// Stage 3: Export
	exportStart := time.Now()
	l, data, err := r.Export(ctx, c)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Data = data
	result.Stats.CellCount = len(l.Cells)
	result.Stats.ExportTime = time.Since(exportStart)

	opts.Logger.Info("exported layout",
		"cells", len(l.Cells),
		"bytes", len(data),
		"duration", result.Stats.ExportTime)

	// Cache the result
	if err := r.Cache.Set(ctx, cacheKey, data, TTLLayout); err == nil {
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return result, nil
}

// Load parses netlist content.
func (r *Runner) Load(content []byte) (*netlist.Netlist, error) {
	return netlist.Parse(bytes.NewReader(content))
}

// Realize instantiates the netlist against the configured technology.
func (r *Runner) Realize(ctx context.Context, opts Options, n *netlist.Netlist) (*component.Component, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	observability.Pipeline().OnRealizeStart(ctx, n.Name, len(n.Instances))
	start := time.Now()
	c, err := netlist.Realize(opts.Technology, opts.Registry, n)
	ports := 0
	if c != nil {
		ports = c.PortCount()
	}
	observability.Pipeline().OnRealizeComplete(ctx, n.Name, ports, time.Since(start), err)
	return c, err
}

// Export flattens a realized component into the layout interchange
// format and returns both the layout and its JSON encoding.
func (r *Runner) Export(ctx context.Context, c *component.Component) (*layout.Layout, []byte, error) {
	observability.Pipeline().OnExportStart(ctx, c.Name())
	start := time.Now()
	l := layout.Export(c)
	data, err := layout.Marshal(c)
	observability.Pipeline().OnExportComplete(ctx, c.Name(), len(l.Cells), time.Since(start), err)
	if err != nil {
		return nil, nil, err
	}
	return l, data, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) loadContent(opts Options) ([]byte, error) {
	if len(opts.NetlistContent) > 0 {
		return opts.NetlistContent, nil
	}
	data, err := os.ReadFile(opts.NetlistPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "netlist file not found: %s", opts.NetlistPath)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "cannot read netlist %s", opts.NetlistPath)
	}
	return data, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
