package graph

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Provenance values identify which backend produced a graph.
const (
	ProvenanceGemini  = "gemini"
	ProvenanceMistral = "mistral"
	ProvenanceMock    = "mock"
	ProvenanceError   = "error"
	ProvenanceFailure = "failure"
	ProvenanceFile    = "file"
)

// =============================================================================
// Edge - Labeled Relationship
// =============================================================================

// Edge is a directed, labeled relationship between two concept labels.
// Relation may be empty. Self-loops are representable; the normalizer
// ignores them.
//
// On the wire an edge is the triple ["source", "target", "relation"], the
// same shape extraction backends are prompted to produce.
type Edge struct {
	Source   string
	Target   string
	Relation string
}

// MarshalJSON encodes the edge as a three-element array.
func (e Edge) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]string{e.Source, e.Target, e.Relation})
}

// UnmarshalJSON decodes an edge from either the array or the object form.
// Invalid shapes are rejected; use [Repair] for lenient decoding.
func (e *Edge) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	edge, ok := decodeEdge(raw)
	if !ok {
		return fmt.Errorf("invalid edge: %s", data)
	}
	*e = edge
	return nil
}

// =============================================================================
// Graph - Validated Extraction Result
// =============================================================================

// Graph is a repaired extraction result: every node is a non-empty label,
// labels are unique, and every edge endpoint is one of Nodes.
//
// The zero value is a valid empty graph.
type Graph struct {
	Nodes      []string `json:"nodes"`
	Edges      []Edge   `json:"edges"`
	Provenance string   `json:"api_used,omitempty"`
}

// NodeCount returns the number of nodes.
func (g Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges.
func (g Graph) EdgeCount() int { return len(g.Edges) }

// Empty reports whether the graph has no nodes.
func (g Graph) Empty() bool { return len(g.Nodes) == 0 }

// =============================================================================
// Raw - Undecoded Backend Payload
// =============================================================================

// Raw is a backend payload as decoded from JSON, before repair.
// Nodes and Edges hold arbitrary JSON values: backends are not trusted to
// follow the requested shape.
type Raw struct {
	Nodes      []any  `json:"nodes"`
	Edges      []any  `json:"edges"`
	Provenance string `json:"api_used,omitempty"`
}

// FromGraph converts a validated graph back into a raw payload.
// Repair(FromGraph(g)) returns g unchanged.
func FromGraph(g Graph) Raw {
	raw := Raw{
		Nodes:      make([]any, len(g.Nodes)),
		Edges:      make([]any, len(g.Edges)),
		Provenance: g.Provenance,
	}
	for i, n := range g.Nodes {
		raw.Nodes[i] = n
	}
	for i, e := range g.Edges {
		raw.Edges[i] = []any{e.Source, e.Target, e.Relation}
	}
	return raw
}
