// Package pipeline provides the core mind-map pipeline for mindmap.
//
// This package implements the complete research → extract → normalize →
// render pipeline used by the CLI and the HTTP API. Both entry points go
// through [Runner] so that caching, fallbacks and labels behave the same.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Research (research mode only): search the web for the topic and
//     combine the results into a research summary
//  2. Extract: ask a language-model backend for a concept graph, then
//     repair it ([graph.Repair])
//  3. Normalize: arrange the graph into a single rooted tree
//     ([hierarchy.Normalize]) using the user's text as the root hint
//  4. Render: generate Mermaid source, DOT, SVG or JSON
//
// # Usage
//
//	runner := pipeline.NewRunner(adapter, searcher, cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Text:         "Go concurrency",
//	    ResearchMode: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Diagram)
//
// Render an existing graph without a backend:
//
//	h := pipeline.Build(g, "Go concurrency", nil)
//	svg, err := pipeline.Render(ctx, h, pipeline.Options{Format: pipeline.FormatSVG})
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindmap/pkg/cache"
	mmerrors "github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/graph"
	"github.com/matzehuels/mindmap/pkg/hierarchy"
	"github.com/matzehuels/mindmap/pkg/render/mermaid"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Format constants for output formats.
const (
	FormatMermaid = "mermaid"
	FormatDOT     = "dot"
	FormatSVG     = "svg"
	FormatJSON    = "json"
)

// DefaultFormat is the default output format.
const DefaultFormat = FormatMermaid

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatMermaid: true,
	FormatDOT:     true,
	FormatSVG:     true,
	FormatJSON:    true,
}

// Labels reported in [Result.BackendUsed] besides plain provenance.
const (
	researchPrefix   = "research+"
	mockResearchUsed = graph.ProvenanceMock + " (research)"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the mind-map pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input
	Text         string `json:"text"`
	ResearchMode bool   `json:"research_mode,omitempty"`
	Refresh      bool   `json:"refresh,omitempty"`

	// Normalize options
	Scorer string `json:"scorer,omitempty"`

	// Render options
	Format    string `json:"format,omitempty"`
	Direction string `json:"direction,omitempty"`
	Relations bool   `json:"relations,omitempty"`

	// FailureDiagram renders an error map instead of failing when every
	// backend fails.
	FailureDiagram bool `json:"failure_diagram,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID uniquely identifies the run.
	ID string

	// Diagram is the Mermaid flowchart source, regardless of Format.
	Diagram string

	// Artifact is the output in the requested format.
	Artifact []byte

	// BackendUsed names the backend that produced the graph, prefixed
	// for research mode.
	BackendUsed string

	// Graph is the repaired extraction result.
	Graph graph.Graph

	// Hierarchy is the normalized tree the diagram was drawn from.
	Hierarchy hierarchy.Hierarchy

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount       int
	EdgeCount       int
	CategoryCount   int
	ResearchSources int
	ResearchTime    time.Duration
	ExtractTime     time.Duration
	NormalizeTime   time.Duration
	RenderTime      time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ExtractHit bool // Whether the graph came from cache
	RenderHit  bool // Whether the artifact came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return mmerrors.New(mmerrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: mermaid, dot, svg, json)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := mmerrors.ValidateText(o.Text); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForRender validates and sets defaults for the normalize and
// render stages. The text is not required.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if err := mermaid.ValidateDirection(o.Direction); err != nil {
		return mmerrors.Wrap(mmerrors.ErrCodeInvalidInput, err, "invalid direction")
	}
	if _, err := hierarchy.ScorerByName(o.Scorer); err != nil {
		return mmerrors.Wrap(mmerrors.ErrCodeInvalidInput, err, "invalid scorer")
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	o.Format = strings.ToLower(strings.TrimSpace(o.Format))
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	o.Direction = strings.ToUpper(strings.TrimSpace(o.Direction))
	if o.Direction == "" {
		o.Direction = mermaid.DefaultDirection
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ScorerFunc returns the configured category scorer.
func (o *Options) ScorerFunc() hierarchy.Scorer {
	s, err := hierarchy.ScorerByName(o.Scorer)
	if err != nil {
		return hierarchy.LongestOverlap
	}
	return s
}

// ExtractionKeyOpts returns cache key options for extraction.
func (o *Options) ExtractionKeyOpts(backends []string) cache.ExtractionKeyOpts {
	return cache.ExtractionKeyOpts{
		Research: o.ResearchMode,
		Backends: backends,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    o.Format,
		Direction: o.Direction,
		Relations: o.Relations,
	}
}

// BackendLabel returns the user-facing name of the backend that produced a
// graph with the given provenance.
func BackendLabel(provenance string, research bool) string {
	if !research || provenance == graph.ProvenanceFailure {
		return provenance
	}
	if provenance == graph.ProvenanceMock {
		return mockResearchUsed
	}
	return researchPrefix + provenance
}
