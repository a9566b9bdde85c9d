// Package store keeps a history of generated mind maps.
//
// A [Record] captures one pipeline run: the input, the backend that served
// it and the resulting graph, hierarchy and diagram. Implementations:
//
//   - [Memory]: process-local, for the CLI and tests
//   - mongostore: MongoDB-backed history for the API server
//
// The neo4jstore subpackage exports hierarchies to a graph database; it is
// not a [Store].
package store

import (
	"context"
	"time"

	mmerrors "github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/graph"
	"github.com/matzehuels/mindmap/pkg/hierarchy"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// ErrNotFound is returned by Get for an unknown ID.
var ErrNotFound = mmerrors.New(mmerrors.ErrCodeNotFound, "mind map not found")

// DefaultRecentLimit bounds [Store.Recent] when no limit is given.
const DefaultRecentLimit = 20

// Record is a stored mind map.
type Record struct {
	ID           string              `json:"id" bson:"_id"`
	Text         string              `json:"text" bson:"text"`
	ResearchMode bool                `json:"research_mode" bson:"research_mode"`
	BackendUsed  string              `json:"api_used" bson:"api_used"`
	Mermaid      string              `json:"mermaid" bson:"mermaid"`
	Graph        graph.Graph         `json:"graph" bson:"graph"`
	Hierarchy    hierarchy.Hierarchy `json:"hierarchy" bson:"hierarchy"`
	CreatedAt    time.Time           `json:"created_at" bson:"created_at"`
}

// Store persists records. Implementations are safe for concurrent use.
type Store interface {
	// Save inserts rec. Saving an existing ID replaces it.
	Save(ctx context.Context, rec Record) error

	// Get returns the record with id, or ErrNotFound.
	Get(ctx context.Context, id string) (Record, error)

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]Record, error)

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}

// NewRecord builds the record for a finished pipeline run.
func NewRecord(res *pipeline.Result, opts pipeline.Options) Record {
	return Record{
		ID:           res.ID,
		Text:         opts.Text,
		ResearchMode: opts.ResearchMode,
		BackendUsed:  res.BackendUsed,
		Mermaid:      res.Diagram,
		Graph:        res.Graph,
		Hierarchy:    res.Hierarchy,
		CreatedAt:    time.Now().UTC(),
	}
}

// Limit clamps a requested result count to [1, max], with 0 meaning
// DefaultRecentLimit.
func Limit(n, max int) int {
	if n <= 0 {
		n = DefaultRecentLimit
	}
	return min(n, max)
}
