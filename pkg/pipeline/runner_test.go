package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/mindmap/pkg/cache"
	mmerrors "github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/extract"
	"github.com/matzehuels/mindmap/pkg/graph"
	"github.com/matzehuels/mindmap/pkg/research"
)

type fakeExtractor struct {
	raw   graph.Raw
	err   error
	calls atomic.Int32
	text  atomic.Value
}

func (f *fakeExtractor) Name() string { return "gemini" }

func (f *fakeExtractor) Extract(_ context.Context, text string, _ bool) (graph.Raw, error) {
	f.calls.Add(1)
	f.text.Store(text)
	return f.raw, f.err
}

type fakeSearcher struct {
	results []research.Result
	calls   atomic.Int32
}

func (f *fakeSearcher) Search(context.Context, string) []research.Result {
	f.calls.Add(1)
	return f.results
}

func goGraph() graph.Raw {
	return graph.FromGraph(graph.Graph{
		Nodes: []string{"Go", "Concurrency", "Tooling", "Goroutines", "Channels", "gofmt"},
		Edges: []graph.Edge{
			{Source: "Go", Target: "Concurrency"},
			{Source: "Go", Target: "Tooling"},
			{Source: "Concurrency", Target: "Goroutines"},
			{Source: "Concurrency", Target: "Channels"},
			{Source: "Tooling", Target: "gofmt"},
		},
		Provenance: graph.ProvenanceGemini,
	})
}

func newFileCache(t *testing.T) cache.Cache {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestExecute(t *testing.T) {
	ext := &fakeExtractor{raw: goGraph()}
	r := NewRunner(ext, nil, nil, nil, nil)

	res, err := r.Execute(context.Background(), Options{Text: "Go"})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.ID == "" {
		t.Error("result has no ID")
	}
	if res.BackendUsed != "gemini" {
		t.Errorf("BackendUsed = %q", res.BackendUsed)
	}
	if res.Hierarchy.Root != "Go" {
		t.Errorf("root = %q", res.Hierarchy.Root)
	}
	if got := strings.Join(res.Hierarchy.Categories, ","); got != "Concurrency,Tooling" {
		t.Errorf("categories = %s", got)
	}
	if !strings.HasPrefix(res.Diagram, "graph LR;") {
		t.Errorf("diagram = %q", res.Diagram)
	}
	if string(res.Artifact) != res.Diagram {
		t.Error("mermaid artifact should equal the diagram")
	}
	if res.Stats.NodeCount != 6 || res.Stats.CategoryCount != 2 {
		t.Errorf("stats = %+v", res.Stats)
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	ext := &fakeExtractor{raw: goGraph()}
	r := NewRunner(ext, nil, nil, nil, nil)

	_, err := r.Execute(context.Background(), Options{Text: "   "})
	if !mmerrors.Is(err, mmerrors.ErrCodeInvalidInput) {
		t.Fatalf("error = %v, want INVALID_INPUT", err)
	}
	if ext.calls.Load() != 0 {
		t.Error("extractor should not be called for invalid input")
	}
}

func TestExecute_CachesExtraction(t *testing.T) {
	ext := &fakeExtractor{raw: goGraph()}
	r := NewRunner(ext, nil, newFileCache(t), nil, nil)
	ctx := context.Background()

	first, err := r.Execute(ctx, Options{Text: "Go"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Execute(ctx, Options{Text: "Go"})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.ExtractHit || !second.CacheInfo.ExtractHit {
		t.Errorf("hits = %v, %v; want false, true", first.CacheInfo.ExtractHit, second.CacheInfo.ExtractHit)
	}
	if first.Diagram != second.Diagram {
		t.Error("cached run produced a different diagram")
	}
	if first.ID == second.ID {
		t.Error("runs should have distinct IDs")
	}

	if _, err := r.Execute(ctx, Options{Text: "Go", Refresh: true}); err != nil {
		t.Fatal(err)
	}
	if got := ext.calls.Load(); got != 2 {
		t.Errorf("extractor called %d times, want 2", got)
	}
}

func TestExecute_OfflineNotCached(t *testing.T) {
	r := NewRunner(extract.NewAdapterWithBackends(nil, nil, extract.Options{}), nil, newFileCache(t), nil, nil)
	ctx := context.Background()

	for range 2 {
		res, err := r.Execute(ctx, Options{Text: "Java Developer"})
		if err != nil {
			t.Fatal(err)
		}
		if res.CacheInfo.ExtractHit {
			t.Error("illustrative graph should not be cached")
		}
		if res.BackendUsed != graph.ProvenanceMock || res.Hierarchy.Root != "Java Developer" {
			t.Errorf("backend=%q root=%q", res.BackendUsed, res.Hierarchy.Root)
		}
	}
}

func TestExecute_Research(t *testing.T) {
	ext := &fakeExtractor{raw: goGraph()}
	s := &fakeSearcher{results: []research.Result{{Title: "The Go Blog", Snippet: "Concurrency is not parallelism."}}}
	r := NewRunner(ext, s, nil, nil, nil)

	res, err := r.Execute(context.Background(), Options{Text: "Go", ResearchMode: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.BackendUsed != "research+gemini" {
		t.Errorf("BackendUsed = %q", res.BackendUsed)
	}
	if text, _ := ext.text.Load().(string); !strings.HasPrefix(text, "Research on Go:") {
		t.Errorf("extractor got %q", text)
	}
	if res.Stats.ResearchSources != 1 {
		t.Errorf("ResearchSources = %d", res.Stats.ResearchSources)
	}
}

func TestExecute_ResearchOffline(t *testing.T) {
	s := &fakeSearcher{}
	r := NewRunner(extract.NewAdapterWithBackends(nil, nil, extract.Options{}), s, nil, nil, nil)

	res, err := r.Execute(context.Background(), Options{Text: "Java Agent Development", ResearchMode: true})
	if err != nil {
		t.Fatal(err)
	}
	if s.calls.Load() != 0 {
		t.Error("offline research should not search")
	}
	if res.BackendUsed != "mock (research)" {
		t.Errorf("BackendUsed = %q", res.BackendUsed)
	}
	if res.Hierarchy.Root != "Java Agent Development" {
		t.Errorf("root = %q", res.Hierarchy.Root)
	}
}

func TestExecute_TotalFailure(t *testing.T) {
	total := mmerrors.Wrap(mmerrors.ErrCodeTotalFailure, errors.New("all down"), "all extraction backends failed")
	ext := &fakeExtractor{err: total}
	r := NewRunner(ext, nil, nil, nil, nil)

	_, err := r.Execute(context.Background(), Options{Text: "Go"})
	if !mmerrors.Is(err, mmerrors.ErrCodeTotalFailure) {
		t.Fatalf("error = %v, want TOTAL_FAILURE", err)
	}

	res, err := r.Execute(context.Background(), Options{Text: "Go", FailureDiagram: true})
	if err != nil {
		t.Fatalf("Execute() with FailureDiagram error: %v", err)
	}
	if res.BackendUsed != graph.ProvenanceFailure {
		t.Errorf("BackendUsed = %q", res.BackendUsed)
	}
	if res.Hierarchy.Root != extract.FailureRoot {
		t.Errorf("root = %q", res.Hierarchy.Root)
	}
	if !strings.Contains(res.Diagram, `["Processing Failed"]`) {
		t.Errorf("diagram = %s", res.Diagram)
	}
}

func TestRender(t *testing.T) {
	h := Build(graph.Repair(goGraph()), "Go", nil)
	ctx := context.Background()

	dot, err := Render(ctx, h, Options{Format: FormatDOT, Direction: "TD"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(dot), "rankdir=TB;") {
		t.Errorf("dot = %s", dot)
	}

	data, err := Render(ctx, h, Options{Format: FormatJSON})
	if err != nil {
		t.Fatal(err)
	}
	g, err := graph.ReadGraph(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("json output is not a graph: %v", err)
	}
	if g.NodeCount() != 6 || g.EdgeCount() != 5 {
		t.Errorf("round-tripped graph has %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}

	if _, err := Render(ctx, h, Options{Format: "png"}); err == nil {
		t.Error("unsupported format should fail")
	}
}

func TestRenderWithCacheInfo_SVG(t *testing.T) {
	r := NewRunner(&fakeExtractor{}, nil, newFileCache(t), nil, nil)
	h := Build(graph.Repair(goGraph()), "Go", nil)
	ctx := context.Background()

	first, hit, err := r.RenderWithCacheInfo(ctx, h, Options{Format: FormatSVG})
	if err != nil {
		t.Fatal(err)
	}
	if hit || !strings.Contains(string(first), "<svg") {
		t.Fatalf("first render: hit=%v svg=%.40s", hit, first)
	}
	second, hit, err := r.RenderWithCacheInfo(ctx, h, Options{Format: FormatSVG})
	if err != nil {
		t.Fatal(err)
	}
	if !hit || string(second) != string(first) {
		t.Error("second SVG render should come from cache")
	}
}
