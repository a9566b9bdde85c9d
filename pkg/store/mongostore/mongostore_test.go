package mongostore

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/mindmap/pkg/graph"
	"github.com/matzehuels/mindmap/pkg/store"
)

type fakeCollection struct {
	docs     map[string]store.Record
	lastSort any
	lastLim  int64
}

func (f *fakeCollection) ReplaceOne(_ context.Context, filter, replacement any, _ ...*options.ReplaceOptions) (*mongo.UpdateResult, error) {
	id := filter.(bson.M)["_id"].(string)
	f.docs[id] = replacement.(store.Record)
	return &mongo.UpdateResult{UpsertedCount: 1}, nil
}

func (f *fakeCollection) FindOne(_ context.Context, filter any, _ ...*options.FindOneOptions) *mongo.SingleResult {
	id := filter.(bson.M)["_id"].(string)
	rec, ok := f.docs[id]
	if !ok {
		return mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil)
	}
	return mongo.NewSingleResultFromDocument(rec, nil, nil)
}

func (f *fakeCollection) Find(_ context.Context, _ any, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	if len(opts) > 0 {
		f.lastSort = opts[0].Sort
		if opts[0].Limit != nil {
			f.lastLim = *opts[0].Limit
		}
	}
	docs := make([]any, 0, len(f.docs))
	for _, rec := range f.docs {
		docs = append(docs, rec)
	}
	return mongo.NewCursorFromDocuments(docs, nil, nil)
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	fc := &fakeCollection{docs: map[string]store.Record{}}
	s := newWithCollection(fc)

	rec := store.Record{
		ID:          "abc",
		Text:        "Go",
		BackendUsed: "gemini",
		Mermaid:     "graph LR;\n",
		Graph: graph.Graph{
			Nodes: []string{"Go", "Tooling"},
			Edges: []graph.Edge{{Source: "Go", Target: "Tooling", Relation: "has"}},
		},
		CreatedAt: time.UnixMilli(1_700_000_000_000).UTC(),
	}
	if err := s.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Text != "Go" || got.Mermaid != rec.Mermaid || !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("Get() = %+v", got)
	}
	if len(got.Graph.Edges) != 1 || got.Graph.Edges[0] != rec.Graph.Edges[0] {
		t.Errorf("edges = %+v", got.Graph.Edges)
	}
}

func TestStoreGetNotFound(t *testing.T) {
	s := newWithCollection(&fakeCollection{docs: map[string]store.Record{}})
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestStoreRecent(t *testing.T) {
	fc := &fakeCollection{docs: map[string]store.Record{"a": {ID: "a"}}}
	s := newWithCollection(fc)

	recs, err := s.Recent(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].ID != "a" {
		t.Errorf("Recent() = %+v", recs)
	}
	if fc.lastLim != store.DefaultRecentLimit {
		t.Errorf("limit = %d", fc.lastLim)
	}
	if fc.lastSort == nil {
		t.Error("Recent should sort by creation time")
	}
}

func TestOpenInvalidURI(t *testing.T) {
	if _, err := Open(context.Background(), "not-a-mongo-uri", "mindmap"); err == nil {
		t.Error("Open() with invalid URI should fail")
	}
}

func TestCloseWithoutClient(t *testing.T) {
	if err := newWithCollection(&fakeCollection{}).Close(context.Background()); err != nil {
		t.Error(err)
	}
}
