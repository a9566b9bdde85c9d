package hierarchy

import (
	"cmp"
	"slices"
	"strings"

	"github.com/matzehuels/mindmap/pkg/graph"
)

const (
	// DefaultRootLabel is the root used when there is neither a hint nor a node.
	DefaultRootLabel = "Main Topic"

	// DefaultMaxFallbackCategories bounds the categories inferred from degree
	// when the root has no outgoing edges.
	DefaultMaxFallbackCategories = 5
)

// Options configures [Normalize].
type Options struct {
	// RootHint names the intended root, typically the user's topic.
	// Matched case-insensitively; becomes a synthetic root when nothing matches.
	RootHint string

	// Scorer picks the category an unplaced node is attached to.
	// Defaults to [LongestOverlap].
	Scorer Scorer

	// DefaultRoot is used for an empty graph without a hint.
	DefaultRoot string

	// MaxFallbackCategories limits degree-inferred categories.
	MaxFallbackCategories int
}

func (o *Options) setDefaults() {
	if o.Scorer == nil {
		o.Scorer = LongestOverlap
	}
	if o.DefaultRoot == "" {
		o.DefaultRoot = DefaultRootLabel
	}
	if o.MaxFallbackCategories <= 0 {
		o.MaxFallbackCategories = DefaultMaxFallbackCategories
	}
}

// Normalize arranges a repaired graph into a single rooted tree.
//
// The root comes from opts.RootHint when given, otherwise from the node with
// the highest out-degree minus in-degree. The root's direct targets become
// categories; without any, the highest-degree nodes are promoted instead.
// Edges leaving a category are attached next, then all remaining edges in
// order, hanging a still-detached source under the best-scoring category.
// Leftover nodes are swept in the same way. A node is placed at most
// once and the root is never a target, so every node ends up reachable from
// the root.
//
// Normalize is a pure function of g and opts.
func Normalize(g graph.Graph, opts Options) Hierarchy {
	opts.setDefaults()

	nodes := slices.Clone(g.Nodes)
	root, synthetic := selectRoot(nodes, g.Edges, opts)
	if synthetic {
		nodes = append(nodes, root)
	}

	p := newPlacement(root)
	net := netOutgoing(g.Edges)

	// Categories: the root's own targets, in edge order.
	var cats []string
	for _, e := range g.Edges {
		if e.Source == root && p.place(root, e.Target, e.Relation) {
			cats = append(cats, e.Target)
		}
	}
	if len(cats) == 0 {
		for _, n := range topByNetOutgoing(nodes, root, net, opts.MaxFallbackCategories) {
			if p.place(root, n, "") {
				cats = append(cats, n)
			}
		}
	}
	isCat := make(map[string]bool, len(cats))
	for _, c := range cats {
		isCat[c] = true
	}
	attachTo := func(label string) string {
		return bestCategory(cats, label, root, opts.Scorer)
	}

	// First level: edges leaving a category.
	for _, e := range g.Edges {
		if isCat[e.Source] {
			p.place(e.Source, e.Target, e.Relation)
		}
	}

	// Second pass: remaining edges, hanging detached sources off a category.
	for _, e := range g.Edges {
		if e.Source == root || p.placed[e.Target] {
			continue
		}
		if !p.placed[e.Source] {
			p.place(attachTo(e.Source), e.Source, "")
		}
		p.place(e.Source, e.Target, e.Relation)
	}

	// Orphans.
	for _, n := range nodes {
		if !p.placed[n] {
			p.place(attachTo(n), n, "")
		}
	}

	return Hierarchy{Root: root, Categories: cats, Edges: p.edges}
}

// selectRoot returns the root label and whether it is not one of nodes.
func selectRoot(nodes []string, edges []graph.Edge, opts Options) (string, bool) {
	if hint := strings.TrimSpace(opts.RootHint); hint != "" {
		lhint := strings.ToLower(hint)
		for _, n := range nodes {
			if strings.EqualFold(strings.TrimSpace(n), hint) {
				return n, false
			}
		}
		for _, n := range nodes {
			ln := strings.ToLower(strings.TrimSpace(n))
			if strings.Contains(lhint, ln) || strings.Contains(ln, lhint) {
				return n, false
			}
		}
		return hint, true
	}

	if len(nodes) == 0 {
		return opts.DefaultRoot, true
	}
	if len(edges) == 0 {
		return nodes[0], false
	}
	net := netOutgoing(edges)
	best := nodes[0]
	for _, n := range nodes[1:] {
		if net[n] > net[best] {
			best = n
		}
	}
	return best, false
}

// netOutgoing returns out-degree minus in-degree per label.
func netOutgoing(edges []graph.Edge) map[string]int {
	net := make(map[string]int)
	for _, e := range edges {
		net[e.Source]++
		net[e.Target]--
	}
	return net
}

// topByNetOutgoing returns up to limit non-root nodes by descending net
// outgoingness, ties in node order.
func topByNetOutgoing(nodes []string, root string, net map[string]int, limit int) []string {
	candidates := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if n != root {
			candidates = append(candidates, n)
		}
	}
	slices.SortStableFunc(candidates, func(a, b string) int {
		return cmp.Compare(net[b], net[a])
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// placement tracks which labels already have a parent.
type placement struct {
	placed map[string]bool
	edges  []graph.Edge
}

func newPlacement(root string) *placement {
	return &placement{placed: map[string]bool{root: true}}
}

// place records parent -> child if child is unplaced and parent is placed.
// It is the only way nodes enter the hierarchy.
func (p *placement) place(parent, child, relation string) bool {
	if child == "" || p.placed[child] || !p.placed[parent] {
		return false
	}
	p.placed[child] = true
	p.edges = append(p.edges, graph.Edge{Source: parent, Target: child, Relation: relation})
	return true
}
