// Package hierarchy turns a repaired concept graph into a mind-map tree.
//
// # Overview
//
// Extraction backends return loose graphs: several roots, disconnected
// fragments, cycles, nodes without edges. [Normalize] deterministically
// rearranges such a graph into a [Hierarchy] with a single root, a row of
// first-level categories and every remaining node attached exactly once:
//
//	h := hierarchy.Normalize(g, hierarchy.Options{RootHint: "Java Developer"})
//	for _, e := range h.Edges {
//	    fmt.Println(e.Source, "->", e.Target)
//	}
//
// # Placement
//
// All attachment goes through one placement set: a node enters the tree
// when its parent is already placed and it is not. Earlier steps therefore
// win over later ones and cycles in the input can never produce a cycle in
// the output.
//
// # Scoring
//
// Detached nodes are attached to the category chosen by a [Scorer]. The
// default, [LongestOverlap], prefers the category sharing the longest
// case-insensitive substring with the node label. [FirstContainment] and
// [Exact] are alternatives; any func(category, label string) int works.
package hierarchy
