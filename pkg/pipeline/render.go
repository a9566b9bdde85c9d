package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/mindmap/pkg/graph"
	"github.com/matzehuels/mindmap/pkg/hierarchy"
	"github.com/matzehuels/mindmap/pkg/render/mermaid"
	"github.com/matzehuels/mindmap/pkg/render/nodelink"
)

// Build arranges a repaired graph into a hierarchy rooted at hint.
// A nil scorer selects [hierarchy.LongestOverlap].
func Build(g graph.Graph, hint string, scorer hierarchy.Scorer) hierarchy.Hierarchy {
	return hierarchy.Normalize(g, hierarchy.Options{RootHint: hint, Scorer: scorer})
}

// Render generates the artifact for h in opts.Format. Options are not
// validated; call [Options.ValidateForRender] first.
func Render(ctx context.Context, h hierarchy.Hierarchy, opts Options) ([]byte, error) {
	switch opts.Format {
	case FormatMermaid, "":
		return []byte(mermaid.Render(h, mermaid.Options{Direction: opts.Direction})), nil
	case FormatDOT:
		return []byte(nodelink.ToDOT(h, dotOptions(opts))), nil
	case FormatSVG:
		svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(h, dotOptions(opts)))
		if err != nil {
			return nil, fmt.Errorf("render svg: %w", err)
		}
		return svg, nil
	case FormatJSON:
		// The tree as a graph document, readable again by graph.ReadGraph.
		return graph.Marshal(graph.Graph{Nodes: h.Nodes(), Edges: h.Edges})
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

func dotOptions(opts Options) nodelink.Options {
	return nodelink.Options{RankDir: opts.Direction, Relations: opts.Relations}
}
