// Package nodelink renders mind-map hierarchies as Graphviz node-link diagrams.
//
// # Usage
//
// Convert a hierarchy to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(h, nodelink.Options{Relations: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The DOT source can also be saved and processed with external Graphviz
// tools. Colors follow the Mermaid output: pink root, blue categories,
// lavender leaves.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is required.
package nodelink
