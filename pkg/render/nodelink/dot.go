package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mindmap/pkg/hierarchy"
)

// Options configures node-link diagram rendering.
type Options struct {
	// RankDir is the Graphviz rank direction (LR, RL, TB, BT). Defaults to LR.
	RankDir string

	// Relations draws relation labels on edges.
	// When false, edges are unlabeled like the Mermaid output.
	Relations bool
}

// Stroke colors per node kind, matching the Mermaid class definitions.
var strokes = map[hierarchy.Kind]string{
	hierarchy.KindRoot:     "#F08BC3",
	hierarchy.KindCategory: "#6495ED",
	hierarchy.KindDefault:  "#A6ABFF",
}

// ToDOT converts a hierarchy to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Nodes are emitted in hierarchy order with the root and categories drawn
// with a heavier outline.
func ToDOT(h hierarchy.Hierarchy, opts Options) string {
	rankdir := strings.ToUpper(opts.RankDir)
	switch rankdir {
	case "LR", "RL", "TB", "BT":
	case "TD":
		rankdir = "TB"
	default:
		rankdir = "LR"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontcolor=\"#333333\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"#888888\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	for _, n := range h.Nodes() {
		fmt.Fprintf(&buf, "  %q [%s];\n", n, strings.Join(fmtAttrs(n, h.Kind(n)), ", "))
	}

	buf.WriteString("\n")
	for _, e := range h.Edges {
		if opts.Relations && e.Relation != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.Source, e.Target, e.Relation)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(label string, kind hierarchy.Kind) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("color=%q", strokes[kind]),
	}
	if kind == hierarchy.KindDefault {
		attrs = append(attrs, "penwidth=1.5")
	} else {
		attrs = append(attrs, "penwidth=2")
	}
	if kind == hierarchy.KindRoot {
		attrs = append(attrs, "fontsize=18")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with a
// pixel-sized one so browsers scale the diagram predictably.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
