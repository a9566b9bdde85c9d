package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// Marshal converts a graph to indented JSON bytes.
func Marshal(g Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a graph as JSON to w.
func WriteGraph(g Graph, w io.Writer) error {
	if g.Nodes == nil {
		g.Nodes = []string{}
	}
	if g.Edges == nil {
		g.Edges = []Edge{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteGraphFile writes a graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// ReadRaw decodes a raw payload from r without validating it.
func ReadRaw(r io.Reader) (Raw, error) {
	var raw Raw
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Raw{}, fmt.Errorf("decode: %w", err)
	}
	return raw, nil
}

// ReadGraph decodes and repairs a graph from r.
// Malformed nodes and edges are dropped as described in [Repair].
func ReadGraph(r io.Reader) (Graph, error) {
	raw, err := ReadRaw(r)
	if err != nil {
		return Graph{}, err
	}
	return Repair(raw), nil
}

// ReadGraphFile reads, decodes and repairs a graph from a JSON file.
// A graph without provenance is attributed to [ProvenanceFile].
func ReadGraphFile(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	g, err := ReadGraph(f)
	if err != nil {
		return Graph{}, fmt.Errorf("%s: %w", path, err)
	}
	if g.Provenance == "" {
		g.Provenance = ProvenanceFile
	}
	return g, nil
}
