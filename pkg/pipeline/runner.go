package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/extract"
	"github.com/matzehuels/mindmap/pkg/graph"
	"github.com/matzehuels/mindmap/pkg/hierarchy"
	"github.com/matzehuels/mindmap/pkg/observability"
	"github.com/matzehuels/mindmap/pkg/render/mermaid"
	"github.com/matzehuels/mindmap/pkg/research"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for its collaborators - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Extractor extract.Extractor
	Searcher  research.Searcher
	Cache     cache.Cache
	Keyer     cache.Keyer
	Logger    *log.Logger

	// ExtractionTTL bounds how long an extracted graph is served from cache.
	ExtractionTTL time.Duration
}

// NewRunner creates a runner.
// If searcher is nil, research mode skips the web search.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(e extract.Extractor, s research.Searcher, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if s == nil {
		s = research.Null{}
	}
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
		Extractor: e,
		Searcher:  s,
		Cache:     c,
		Keyer:     keyer,
		Logger:    logger,

		ExtractionTTL: cache.TTLExtraction,
	}
}

// Execute runs the complete research → extract → normalize → render
// pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	result := &Result{ID: uuid.NewString()}

	// Stage 1: Research
	text := opts.Text
	if opts.ResearchMode && !extract.IsOffline(r.Extractor) {
		start := time.Now()
		hits := r.Searcher.Search(ctx, opts.Text)
		text = research.Combine(hits, opts.Text)
		result.Stats.ResearchSources = len(hits)
		result.Stats.ResearchTime = time.Since(start)
		logger.Info("researched topic",
			"sources", len(hits),
			"duration", result.Stats.ResearchTime)
	}

	// Stage 2: Extract
	start := time.Now()
	raw, hit, err := r.ExtractWithCacheInfo(ctx, text, opts)
	if err != nil {
		if !opts.FailureDiagram {
			return nil, err
		}
		logger.Error("extraction failed, rendering error diagram", "err", err)
		raw = extract.FailureGraph(err)
	}
	g := graph.Repair(raw)
	result.Graph = g
	result.BackendUsed = BackendLabel(g.Provenance, opts.ResearchMode)
	result.Stats.ExtractTime = time.Since(start)
	result.Stats.EdgeCount = g.EdgeCount()
	result.CacheInfo.ExtractHit = hit

	logger.Info("extracted graph",
		"backend", result.BackendUsed,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"cached", hit,
		"duration", result.Stats.ExtractTime)

	// Stage 3: Normalize
	start = time.Now()
	hint := opts.Text
	if g.Provenance == graph.ProvenanceFailure {
		hint = ""
	}
	h := Build(g, hint, opts.ScorerFunc())
	result.Hierarchy = h
	result.Stats.NodeCount = h.NodeCount()
	result.Stats.CategoryCount = len(h.Categories)
	result.Stats.NormalizeTime = time.Since(start)
	observability.Pipeline().OnNormalizeComplete(ctx, h.NodeCount(), len(h.Categories), result.Stats.NormalizeTime)

	logger.Debug("normalized graph",
		"root", h.Root,
		"categories", len(h.Categories),
		"nodes", h.NodeCount())

	// Stage 4: Render
	start = time.Now()
	result.Diagram = mermaid.Render(h, mermaid.Options{Direction: opts.Direction})
	artifact, renderHit, err := r.RenderWithCacheInfo(ctx, h, opts)
	if err != nil {
		return nil, err
	}
	result.Artifact = artifact
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered output",
		"format", opts.Format,
		"bytes", len(artifact),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ExtractWithCacheInfo extracts the raw graph for text with caching and
// returns cache hit info. Illustrative and error graphs are never cached.
func (r *Runner) ExtractWithCacheInfo(ctx context.Context, text string, opts Options) (graph.Raw, bool, error) {
	r.applyLogger(&opts)
	key := r.Keyer.ExtractionKey(text, opts.ExtractionKeyOpts(extract.Backends(r.Extractor, opts.ResearchMode)))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		var cached graph.Raw
		if err := cache.GetJSON(ctx, r.Cache, key, &cached); err == nil {
			observability.Cache().OnCacheHit(ctx, "extraction")
			return cached, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "extraction")
	}

	raw, err := r.Extractor.Extract(ctx, text, opts.ResearchMode)
	if err != nil {
		return graph.Raw{}, false, err
	}

	if cacheable(raw.Provenance) {
		if err := cache.SetJSON(ctx, r.Cache, key, raw, r.ExtractionTTL); err != nil {
			opts.Logger.Warn("failed to cache extraction", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "extraction", len(raw.Nodes))
		}
	}
	return raw, false, nil
}

// RenderWithCacheInfo renders h with caching and returns cache hit info.
// Only SVG output, which goes through Graphviz, is cached.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, h hierarchy.Hierarchy, opts Options) ([]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Format)
	start := time.Now()

	var key string
	if opts.Format == FormatSVG {
		data, err := graph.Marshal(graph.Graph{Nodes: h.Nodes(), Edges: h.Edges})
		if err == nil {
			key = r.Keyer.ArtifactKey(cache.Hash(data), opts.ArtifactKeyOpts())
			if cached, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				hooks.OnRenderComplete(ctx, opts.Format, time.Since(start), nil)
				return cached, true, nil
			}
		}
	}

	out, err := Render(ctx, h, opts)
	hooks.OnRenderComplete(ctx, opts.Format, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	if key != "" {
		_ = r.Cache.Set(ctx, key, out, cache.TTLArtifact)
	}
	return out, false, nil
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

func cacheable(provenance string) bool {
	switch provenance {
	case graph.ProvenanceMock, graph.ProvenanceFailure, graph.ProvenanceError:
		return false
	}
	return true
}
