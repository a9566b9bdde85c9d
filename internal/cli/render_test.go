package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/mindmap/pkg/graph"
)

func writeSampleGraph(t *testing.T) string {
	t.Helper()
	g := graph.Graph{
		Nodes: []string{"Go", "Concurrency", "Tooling", "Channels", "Goroutines", "go vet"},
		Edges: []graph.Edge{
			{Source: "Go", Target: "Concurrency", Relation: "has"},
			{Source: "Go", Target: "Tooling", Relation: "ships"},
			{Source: "Concurrency", Target: "Channels"},
			{Source: "Concurrency", Target: "Goroutines"},
			{Source: "Tooling", Target: "go vet"},
		},
	}
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := graph.WriteGraphFile(g, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunRenderFormats(t *testing.T) {
	input := writeSampleGraph(t)

	tests := []struct {
		format string
		want   []string
	}{
		{"mermaid", []string{"graph LR;", `["Go"]`, "class "}},
		{"dot", []string{"digraph G {", `"Go" -> "Concurrency";`}},
		{"json", []string{`"nodes"`, `"Goroutines"`}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var out bytes.Buffer
			err := runRender(context.Background(), input, renderOpts{format: tt.format, root: "Go"}, &out)
			if err != nil {
				t.Fatalf("runRender() error: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output missing %q:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestRunRenderRelations(t *testing.T) {
	input := writeSampleGraph(t)
	var out bytes.Buffer
	opts := renderOpts{format: "dot", root: "Go", relations: true}
	if err := runRender(context.Background(), input, opts, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `"Go" -> "Concurrency" [label="has"];`) {
		t.Errorf("relation label missing:\n%s", out.String())
	}
}

func TestRunRenderToFile(t *testing.T) {
	input := writeSampleGraph(t)
	output := filepath.Join(t.TempDir(), "out.mmd")

	var stdout bytes.Buffer
	if err := runRender(context.Background(), input, renderOpts{output: output, direction: "td"}, &stdout); err != nil {
		t.Fatal(err)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout should be empty when writing a file, got %q", stdout.String())
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "graph TD;") {
		t.Errorf("file content:\n%s", data)
	}
}

func TestRunRenderErrors(t *testing.T) {
	input := writeSampleGraph(t)

	empty := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(empty, []byte(`{"nodes": [], "edges": []}`), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		input string
		opts  renderOpts
	}{
		{"missing file", filepath.Join(t.TempDir(), "missing.json"), renderOpts{}},
		{"empty graph", empty, renderOpts{}},
		{"invalid format", input, renderOpts{format: "pdf"}},
		{"invalid direction", input, renderOpts{direction: "sideways"}},
		{"invalid scorer", input, renderOpts{scorer: "fuzzy"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := runRender(context.Background(), tt.input, tt.opts, &out); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRenderCommand(t *testing.T) {
	isolate(t)
	input := writeSampleGraph(t)

	out, err := execute(t, "", "render", input, "--root", "Go", "-f", "dot")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "digraph G {") {
		t.Errorf("output:\n%s", out)
	}

	if _, err := execute(t, "", "render"); err == nil {
		t.Error("render without an argument should fail")
	}
}

func TestRenderExampleGraphs(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "examples", "graphs", "*.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Skip("no example graphs")
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			for _, format := range []string{"mermaid", "dot", "json"} {
				var out bytes.Buffer
				if err := runRender(context.Background(), file, renderOpts{format: format}, &out); err != nil {
					t.Fatalf("%s: %v", format, err)
				}
				if out.Len() == 0 {
					t.Errorf("%s: empty output", format)
				}
			}
		})
	}
}

func TestRenderRepairsMessyGraph(t *testing.T) {
	file := filepath.Join("..", "..", "examples", "graphs", "messy-llm-output.json")
	var out bytes.Buffer
	if err := runRender(context.Background(), file, renderOpts{format: "json", root: "Photosynthesis"}, &out); err != nil {
		t.Fatal(err)
	}
	g, err := graph.ReadGraph(&out)
	if err != nil {
		t.Fatal(err)
	}
	if g.NodeCount() != 8 {
		t.Errorf("nodes = %d (%v), want 8 after dropping blanks and duplicates", g.NodeCount(), g.Nodes)
	}
	for _, e := range g.Edges {
		if e.Target == "Oxygen" {
			t.Error("edge to an unknown node survived repair")
		}
	}
}
