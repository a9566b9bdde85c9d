// Package graph defines the concept graph produced by extraction backends
// and the repair step that makes it safe to normalize.
//
// # Wire Format
//
// Backends are prompted to answer with a JSON object of labels and
// label triples:
//
//	{
//	  "nodes": ["Java Developer", "Skills", "Spring"],
//	  "edges": [["Java Developer", "Skills", "requires"], ["Skills", "Spring", ""]]
//	}
//
// The same shape is used for graph files read by the CLI and for cached
// extraction results.
//
// # Repair
//
// Backend output is untrusted. [Repair] turns a [Raw] payload into a
// [Graph] whose labels are non-empty and unique and whose edges only refer
// to known labels, fixing endpoint casing where possible:
//
//	raw, _ := graph.ReadRaw(r)
//	g := graph.Repair(raw)
//
// Repair is deterministic and never returns an error.
package graph
