package hierarchy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/mindmap/pkg/graph"
)

// Sentinel errors returned by [Hierarchy.Validate].
var (
	ErrNoRoot             = errors.New("hierarchy has no root")
	ErrRootIsTarget       = errors.New("root is the target of an edge")
	ErrDetached           = errors.New("edge source is not reachable from the root")
	ErrDuplicatePlacement = errors.New("node placed more than once")
	ErrStrayCategory      = errors.New("category is not a child of the root")
)

// Kind classifies a node by its position in the hierarchy.
type Kind int

const (
	KindDefault Kind = iota
	KindRoot
	KindCategory
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindCategory:
		return "category"
	default:
		return "default"
	}
}

// Hierarchy is a rooted tree over concept labels.
//
// Every node other than Root is the target of exactly one edge in Edges, and
// Edges are ordered so that each edge's source is the root or the target of
// an earlier edge. Categories are the root's direct children that were
// chosen as first-level groupings.
type Hierarchy struct {
	Root       string       `json:"root"`
	Categories []string     `json:"categories"`
	Edges      []graph.Edge `json:"edges"`
}

// Nodes returns the root followed by every placed node in placement order.
func (h Hierarchy) Nodes() []string {
	if h.Root == "" {
		return nil
	}
	nodes := make([]string, 0, len(h.Edges)+1)
	nodes = append(nodes, h.Root)
	for _, e := range h.Edges {
		nodes = append(nodes, e.Target)
	}
	return nodes
}

// NodeCount returns the number of nodes including the root.
func (h Hierarchy) NodeCount() int {
	if h.Root == "" {
		return 0
	}
	return len(h.Edges) + 1
}

// Parent returns the parent of label and the relation connecting them.
// The root has no parent.
func (h Hierarchy) Parent(label string) (parent, relation string, ok bool) {
	for _, e := range h.Edges {
		if e.Target == label {
			return e.Source, e.Relation, true
		}
	}
	return "", "", false
}

// Children returns the edges leaving label in placement order.
func (h Hierarchy) Children(label string) []graph.Edge {
	var out []graph.Edge
	for _, e := range h.Edges {
		if e.Source == label {
			out = append(out, e)
		}
	}
	return out
}

// Kind reports whether label is the root, a category, or an ordinary node.
func (h Hierarchy) Kind(label string) Kind {
	if label == h.Root {
		return KindRoot
	}
	for _, c := range h.Categories {
		if c == label {
			return KindCategory
		}
	}
	return KindDefault
}

// Depth returns the number of edges between the root and label,
// or -1 if label is not in the hierarchy.
func (h Hierarchy) Depth(label string) int {
	depth := 0
	for cur := label; cur != h.Root; depth++ {
		parent, _, ok := h.Parent(cur)
		if !ok || depth > len(h.Edges) {
			return -1
		}
		cur = parent
	}
	return depth
}

// Validate checks the tree invariants: a non-empty root that is never a
// target, every edge source already placed, every node placed once, and
// every category hanging directly off the root.
func (h Hierarchy) Validate() error {
	if strings.TrimSpace(h.Root) == "" {
		return ErrNoRoot
	}
	parent := map[string]string{h.Root: ""}
	for i, e := range h.Edges {
		if e.Target == h.Root {
			return fmt.Errorf("%w: edge %d (%s -> %s)", ErrRootIsTarget, i, e.Source, e.Target)
		}
		if _, ok := parent[e.Source]; !ok {
			return fmt.Errorf("%w: edge %d (%s -> %s)", ErrDetached, i, e.Source, e.Target)
		}
		if _, ok := parent[e.Target]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicatePlacement, e.Target)
		}
		parent[e.Target] = e.Source
	}
	for _, c := range h.Categories {
		if p, ok := parent[c]; !ok || p != h.Root || c == h.Root {
			return fmt.Errorf("%w: %s", ErrStrayCategory, c)
		}
	}
	return nil
}
