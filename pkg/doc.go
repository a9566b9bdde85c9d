// Package pkg provides the core libraries for mindmap.
//
// # Overview
//
// Mindmap turns free-form text into a mind-map diagram: a language model
// extracts concepts and relationships, the result is repaired and arranged
// into a rooted tree, and the tree is rendered as a Mermaid flowchart (or
// Graphviz DOT, SVG and JSON). The pkg directory is organized into four
// main areas:
//
//  1. Domain logic ([graph], [hierarchy], [render/mermaid], [render/nodelink])
//  2. Extraction ([extract], [research], [integrations])
//  3. Infrastructure ([cache], [store], [config], [observability], [errors])
//  4. Orchestration ([pipeline])
//
// # Architecture
//
// The typical data flow:
//
//	Text (+ optional web search in research mode)
//	         ↓
//	    [extract] package (Gemini / Mistral with fallback, offline maps)
//	         ↓
//	    [graph] package (repair untrusted backend output)
//	         ↓
//	    [hierarchy] package (root, categories, single-parent tree)
//	         ↓
//	    [render/mermaid] or [render/nodelink]
//	         ↓
//	    Mermaid / DOT / SVG / JSON output
//
// # Quick Start
//
// Generate a diagram with the offline extractor:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/mindmap/pkg/config"
//	    "github.com/matzehuels/mindmap/pkg/extract"
//	    "github.com/matzehuels/mindmap/pkg/pipeline"
//	)
//
//	adapter := extract.NewAdapter(config.Default(), nil)
//	runner := pipeline.NewRunner(adapter, nil, nil, nil, nil)
//	res, err := runner.Execute(context.Background(), pipeline.Options{
//	    Text: "Java Developer",
//	})
//	fmt.Println(res.Diagram)
//
// # Main Packages
//
// ## Domain Logic
//
// [graph] - The concept graph and the repair step that drops malformed nodes
// and edges from backend output.
//
// [hierarchy] - Normalization into a tree: root selection from a hint,
// category selection, fallback attachment of orphans.
//
// [render/mermaid] - Mermaid flowchart source with root, category and
// default classes.
//
// [render/nodelink] - Graphviz DOT and in-process SVG rendering.
//
// ## Extraction
//
// [extract] - Prompt construction, payload parsing with JSON repair, and the
// adapter that tries backends in priority order behind circuit breakers.
//
// [research] - Web search enrichment for research mode.
//
// [integrations] - HTTP clients for Gemini, Mistral and Serper.
//
// ## Infrastructure
//
// [cache] - Cache interface with file, Redis and null implementations.
//
// [store] - Generated-map history (memory, MongoDB) and Neo4j graph export.
//
// [config] - Layered configuration from defaults, TOML, dotenv and the
// environment.
//
// [observability] - Pipeline, cache and HTTP hooks with a Prometheus
// collector.
//
// [pipeline] - The research → extract → normalize → render pipeline used by
// both the CLI and the API.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/hierarchy/...          # Specific package
//	go test -run Example                 # Examples only
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/graph
// [hierarchy]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/hierarchy
// [render/mermaid]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/render/mermaid
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/render/nodelink
// [extract]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/extract
// [research]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/research
// [integrations]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/integrations
// [cache]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/errors
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/pipeline
package pkg
