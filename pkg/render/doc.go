// Package render groups the mind-map renderers.
//
// # Overview
//
// Renderers take a normalized [hierarchy.Hierarchy] and produce a diagram.
// They never reorder or drop nodes: the hierarchy is drawn exactly as
// placed.
//
//   - Mermaid flowcharts (in [mermaid] subpackage)
//   - Graphviz node-link diagrams (in [nodelink] subpackage)
//
// # Mermaid
//
// The [mermaid] subpackage emits flowchart source with sanitized node
// identifiers and a class line per node (root, category, default):
//
//	src := mermaid.Render(h, mermaid.Options{Direction: "TD"})
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the same tree through Graphviz. Nodes
// appear as rounded boxes colored like the Mermaid classes.
//
//	dot := nodelink.ToDOT(h, nodelink.Options{Relations: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [hierarchy.Hierarchy]: github.com/matzehuels/mindmap/pkg/hierarchy
// [mermaid]: github.com/matzehuels/mindmap/pkg/render/mermaid
// [nodelink]: github.com/matzehuels/mindmap/pkg/render/nodelink
package render
