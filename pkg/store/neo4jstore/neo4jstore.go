// Package neo4jstore exports mind-map hierarchies to Neo4j.
//
// Each map becomes a (:MindMap {id}) node connected by CONTAINS to one
// (:Concept {map_id, label, kind}) per concept. Placement edges become
// RELATES_TO relationships carrying the relation label:
//
//	(:MindMap)-[:CONTAINS]->(:Concept)-[:RELATES_TO {relation}]->(:Concept)
//
// Exports are idempotent: re-exporting a map replaces its concepts.
package neo4jstore

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/matzehuels/mindmap/pkg/hierarchy"
)

// DBRunner executes a Cypher query and returns a fully buffered result.
type DBRunner interface {
	Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error)
}

// Executor is a [DBRunner] backed by the official driver.
type Executor struct {
	Driver   neo4j.DriverWithContext
	Database string
}

// NewExecutor creates a driver for uri. Connectivity is not checked; see
// [Executor.Verify].
func NewExecutor(uri, username, password, database string) (*Executor, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	return &Executor{Driver: driver, Database: database}, nil
}

// Verify checks connectivity.
func (e *Executor) Verify(ctx context.Context) error {
	return e.Driver.VerifyConnectivity(ctx)
}

// Run executes query with params in the configured database.
func (e *Executor) Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	res, err := neo4j.ExecuteQuery(ctx, e.Driver, query, params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(e.Database))
	if err != nil {
		return nil, fmt.Errorf("execute neo4j query: %w", err)
	}
	return res, nil
}

// Close closes the driver.
func (e *Executor) Close(ctx context.Context) error {
	return e.Driver.Close(ctx)
}

const (
	clearQuery = `MATCH (m:MindMap {id: $id})
OPTIONAL MATCH (m)-[:CONTAINS]->(c:Concept)
DETACH DELETE c`

	nodesQuery = `MERGE (m:MindMap {id: $id})
SET m.root = $root
WITH m
UNWIND $nodes AS node
MERGE (c:Concept {map_id: $id, label: node.label})
SET c.kind = node.kind, c.depth = node.depth
MERGE (m)-[:CONTAINS]->(c)`

	edgesQuery = `UNWIND $edges AS e
MATCH (s:Concept {map_id: $id, label: e.source})
MATCH (t:Concept {map_id: $id, label: e.target})
MERGE (s)-[r:RELATES_TO]->(t)
SET r.relation = e.relation`

	deleteQuery = `MATCH (m:MindMap {id: $id})
OPTIONAL MATCH (m)-[:CONTAINS]->(c:Concept)
DETACH DELETE c, m`
)

// Exporter writes hierarchies through a [DBRunner].
type Exporter struct {
	runner DBRunner
}

// NewExporter returns an exporter using r.
func NewExporter(r DBRunner) *Exporter {
	return &Exporter{runner: r}
}

// Export writes h under mapID, replacing any previous export of the map.
func (x *Exporter) Export(ctx context.Context, mapID string, h hierarchy.Hierarchy) error {
	if h.Root == "" {
		return fmt.Errorf("export %s: %w", mapID, hierarchy.ErrNoRoot)
	}

	nodes := make([]map[string]any, 0, h.NodeCount())
	for _, label := range h.Nodes() {
		nodes = append(nodes, map[string]any{
			"label": label,
			"kind":  h.Kind(label).String(),
			"depth": int64(h.Depth(label)),
		})
	}
	edges := make([]map[string]any, 0, len(h.Edges))
	for _, e := range h.Edges {
		edges = append(edges, map[string]any{
			"source":   e.Source,
			"target":   e.Target,
			"relation": e.Relation,
		})
	}

	steps := []struct {
		name   string
		query  string
		params map[string]any
	}{
		{"clear", clearQuery, map[string]any{"id": mapID}},
		{"nodes", nodesQuery, map[string]any{"id": mapID, "root": h.Root, "nodes": nodes}},
		{"edges", edgesQuery, map[string]any{"id": mapID, "edges": edges}},
	}
	for _, s := range steps {
		if s.name == "edges" && len(edges) == 0 {
			continue
		}
		if _, err := x.runner.Run(ctx, s.query, s.params); err != nil {
			return fmt.Errorf("export %s (%s): %w", mapID, s.name, err)
		}
	}
	return nil
}

// Delete removes the export of mapID. Deleting an unknown map is not an error.
func (x *Exporter) Delete(ctx context.Context, mapID string) error {
	if _, err := x.runner.Run(ctx, deleteQuery, map[string]any{"id": mapID}); err != nil {
		return fmt.Errorf("delete %s: %w", mapID, err)
	}
	return nil
}
