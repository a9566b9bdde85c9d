package graph

import "strings"

// Repair validates a raw backend payload and returns the repaired graph.
//
// Nodes that are not strings, or are empty or whitespace-only, are dropped;
// duplicate labels keep their first occurrence. Edges are kept only if both
// endpoints resolve to a kept node, first by exact match and then
// case-insensitively, in which case the endpoint is rewritten to the node's
// canonical label. A missing or non-string relation becomes "".
//
// Repair never fails: malformed entries are dropped silently. The output
// preserves input order and is a pure function of the input.
func Repair(raw Raw) Graph {
	g := Graph{Provenance: raw.Provenance}

	seen := make(map[string]bool, len(raw.Nodes))
	for _, v := range raw.Nodes {
		label, ok := v.(string)
		if !ok || strings.TrimSpace(label) == "" || seen[label] {
			continue
		}
		seen[label] = true
		g.Nodes = append(g.Nodes, label)
	}

	for _, v := range raw.Edges {
		e, ok := decodeEdge(v)
		if !ok {
			continue
		}
		src, ok := resolve(e.Source, g.Nodes, seen)
		if !ok {
			continue
		}
		tgt, ok := resolve(e.Target, g.Nodes, seen)
		if !ok {
			continue
		}
		g.Edges = append(g.Edges, Edge{Source: src, Target: tgt, Relation: e.Relation})
	}
	return g
}

// resolve maps an edge endpoint to a node label.
func resolve(label string, nodes []string, exact map[string]bool) (string, bool) {
	if exact[label] {
		return label, true
	}
	want := strings.TrimSpace(label)
	for _, n := range nodes {
		if strings.EqualFold(strings.TrimSpace(n), want) {
			return n, true
		}
	}
	return "", false
}

// decodeEdge accepts [s, t], [s, t, rel, ...] and
// {"source"|"from", "target"|"to", "relation"|"label"}.
func decodeEdge(v any) (Edge, bool) {
	var src, tgt, rel any
	switch x := v.(type) {
	case []any:
		if len(x) < 2 {
			return Edge{}, false
		}
		src, tgt = x[0], x[1]
		if len(x) > 2 {
			rel = x[2]
		}
	case []string:
		if len(x) < 2 {
			return Edge{}, false
		}
		src, tgt = x[0], x[1]
		if len(x) > 2 {
			rel = x[2]
		}
	case map[string]any:
		src = firstKey(x, "source", "from")
		tgt = firstKey(x, "target", "to")
		rel = firstKey(x, "relation", "label")
	default:
		return Edge{}, false
	}

	s, ok := src.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return Edge{}, false
	}
	t, ok := tgt.(string)
	if !ok || strings.TrimSpace(t) == "" {
		return Edge{}, false
	}
	r, _ := rel.(string)
	return Edge{Source: s, Target: t, Relation: r}, true
}

func firstKey(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}
