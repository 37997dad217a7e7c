package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/flowgrid/flowgrid/pkg/cache"
	"github.com/flowgrid/flowgrid/pkg/diagram"
	"github.com/flowgrid/flowgrid/pkg/graph"
	"github.com/flowgrid/flowgrid/pkg/layout"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, registry, and logger - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Registry *diagram.Registry
	Logger   *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Registry: diagram.NewRegistry(),
		Logger:   logger,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Parse
	parseStart := time.Now()
	d, g, parseHit, err := r.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Kind = d.Kind()
	result.Graph = g
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.CacheInfo.ParseHit = parseHit

	// Compute graph hash for cache keys and API responses
	if graphData, err := graph.Marshal(g); err == nil {
		result.GraphHash = cache.Hash(graphData)
	}

	r.Logger.Info("parsed diagram",
		"kind", d.Kind(),
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	res, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, d, g, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = res
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"width", res.Width,
		"height", res.Height,
		"warnings", len(res.Warnings),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	out, renderHit, err := r.RenderWithCacheInfo(ctx, d, res, g, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Output = out
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered output",
		"style", opts.Style,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo builds the graph with caching and returns cache hit
// info. The dialect is always resolved fresh; only the parsed graph is
// cached.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options) (diagram.Diagram, *graph.Graph, bool, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, nil, false, err
	}
	r.applyLogger(&opts)

	d, err := resolveDialect(r.Registry, opts)
	if err != nil {
		return nil, nil, false, err
	}

	sourceHash := cache.Hash([]byte(opts.Source))
	cacheKey := r.Keyer.GraphKey(sourceHash, opts.GraphKeyOpts(d.Kind()))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if g, err := graph.Unmarshal(data); err == nil {
				r.overrideDirection(g, opts)
				return d, g, true, nil // Cache hit
			}
		}
	}

	g, err := d.Parse(opts.Source)
	if err != nil {
		return nil, nil, false, err
	}

	// Cache the result. The cached form keeps the markup's own direction;
	// the override is applied after store and on every load.
	if data, err := graph.Marshal(g); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.GraphTTL)
	}
	r.overrideDirection(g, opts)

	return d, g, false, nil // Cache miss
}

// Parse is a convenience wrapper that discards the cache hit info.
func (r *Runner) Parse(ctx context.Context, opts Options) (diagram.Diagram, *graph.Graph, error) {
	d, g, _, err := r.ParseWithCacheInfo(ctx, opts)
	return d, g, err
}

// layoutEnvelope carries the flow direction alongside the serialized
// geometry, since the Result type does not serialize it.
type layoutEnvelope struct {
	Direction string         `json:"direction"`
	Result    *layout.Result `json:"result"`
}

// ComputeLayoutWithCacheInfo positions the graph with caching and returns
// cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, d diagram.Diagram, g *graph.Graph, opts Options) (*layout.Result, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	graphData, _ := graph.Marshal(g)
	graphHash := cache.Hash(graphData)
	cacheKey := r.Keyer.LayoutKey(graphHash, opts.LayoutKeyOpts(g.Direction()))

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		var env layoutEnvelope
		if err := json.Unmarshal(data, &env); err == nil && env.Result != nil {
			if dir, ok := graph.ParseDirection(env.Direction); ok {
				env.Result.Direction = dir
				return env.Result, true, nil // Cache hit
			}
		}
		// If deserialization fails, fall through to recompute
	}

	res, err := ComputeLayout(d, g, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	env := layoutEnvelope{Direction: res.Direction.String(), Result: res}
	if data, err := json.Marshal(env); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.LayoutTTL)
	}

	return res, false, nil // Cache miss
}

// ComputeLayout is a convenience wrapper that discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, d diagram.Diagram, g *graph.Graph, opts Options) (*layout.Result, error) {
	res, _, err := r.ComputeLayoutWithCacheInfo(ctx, d, g, opts)
	return res, err
}

// RenderWithCacheInfo draws the geometry with caching and returns cache hit
// info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d diagram.Diagram, res *layout.Result, g *graph.Graph, opts Options) (string, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return "", false, err
	}
	r.applyLogger(&opts)

	env := layoutEnvelope{Direction: res.Direction.String(), Result: res}
	layoutData, err := json.Marshal(env)
	if err != nil {
		return "", false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)
	cacheKey := r.Keyer.RenderKey(layoutHash, opts.RenderKeyOpts())

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		return string(data), true, nil // Cache hit
	}

	out, err := RenderOutput(d, res, g, opts)
	if err != nil {
		return "", false, err
	}

	_ = r.Cache.Set(ctx, cacheKey, []byte(out), cache.RenderTTL)

	return out, false, nil // Cache miss
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, d diagram.Diagram, res *layout.Result, g *graph.Graph, opts Options) (string, error) {
	out, _, err := r.RenderWithCacheInfo(ctx, d, res, g, opts)
	return out, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// overrideDirection applies the direction override from options, if any.
func (r *Runner) overrideDirection(g *graph.Graph, opts Options) {
	if opts.Direction == "" {
		return
	}
	if dir, ok := graph.ParseDirection(opts.Direction); ok {
		g.SetDirection(dir)
	}
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
