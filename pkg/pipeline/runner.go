package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/annotext/spanviz/pkg/annotation"
	"github.com/annotext/spanviz/pkg/cache"
	"github.com/annotext/spanviz/pkg/layout"
	"github.com/annotext/spanviz/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	doc, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Document = doc
	result.Problems = doc.Validate()
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.EntityCount = doc.EntityCount()
	result.Stats.RelationCount = doc.RelationCount()

	// Compute document hash for cache keys and API responses
	if docData, err := annotation.MarshalDocument(doc); err == nil {
		result.DocHash = cache.Hash(docData)
	}

	r.Logger.Info("loaded document",
		"entities", doc.EntityCount(),
		"relations", doc.RelationCount(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout (span view only; the node-link view draws straight
	// from the document)
	var res *layout.Result
	if opts.IsSpan() {
		layoutStart := time.Now()
		var layoutHit bool
		res, layoutHit, err = r.ComputeLayoutWithCacheInfo(ctx, doc, opts)
		if err != nil {
			return nil, fmt.Errorf("layout: %w", err)
		}
		result.Layout = res
		result.Stats.LayoutTime = time.Since(layoutStart)
		result.Stats.LineCount = len(res.Lines)
		result.CacheInfo.LayoutHit = layoutHit

		r.Logger.Info("computed layout",
			"lines", len(res.Lines),
			"height", res.Height,
			"duration", result.Stats.LayoutTime)
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, res, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the document for a run and reports it to the load hooks.
// Loading is never cached; documents come from local files, URLs, or the
// caller.
func (r *Runner) Load(ctx context.Context, opts Options) (annotation.Document, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return annotation.Document{}, err
	}
	r.applyLogger(&opts)

	source := opts.Source()
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, source)

	doc, err := Load(ctx, opts)
	observability.Pipeline().OnLoadComplete(ctx, source, doc.EntityCount(), time.Since(start), err)
	if err != nil {
		return annotation.Document{}, err
	}
	return doc, nil
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, doc annotation.Document, opts Options) (*layout.Result, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key
	docData, _ := annotation.MarshalDocument(doc)
	docHash := cache.Hash(docData)
	cacheKey := r.Keyer.LayoutKey(docHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := layout.UnmarshalResult(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	// Compute layout
	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, doc.EntityCount())
	res, err := ComputeLayout(doc, opts)
	observability.Pipeline().OnLayoutComplete(ctx, lineCount(res), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := res.Marshal(); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return res, false, nil // Cache miss
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, doc annotation.Document, opts Options) (*layout.Result, error) {
	res, _, err := r.ComputeLayoutWithCacheInfo(ctx, doc, opts)
	return res, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// The res argument may be nil for node-link runs.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *layout.Result, doc annotation.Document, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// The artifact key hashes the layout for the span view. The node-link
	// view has no layout stage, so its artifacts hash the document.
	var keyData []byte
	if opts.IsNodelink() {
		keyData, _ = annotation.MarshalDocument(doc)
	} else {
		if res == nil {
			return nil, false, fmt.Errorf("span render requires a layout")
		}
		var err error
		keyData, err = res.Marshal()
		if err != nil {
			return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
		}
	}
	contentHash := cache.Hash(keyData)

	// Try to get all formats from cache (unless refresh requested)
	if !opts.Refresh {
		allCached := true
		artifacts := make(map[string][]byte)

		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(contentHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}

		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil // All artifacts from cache
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	// Render all formats
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	rendered, err := Render(res, doc, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(contentHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, res *layout.Result, doc annotation.Document, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, res, doc, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func lineCount(res *layout.Result) int {
	if res == nil {
		return 0
	}
	return len(res.Lines)
}
