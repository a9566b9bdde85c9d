package extract

import (
	mmerrors "github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/graph"
)

// Labels of the error diagram returned by FailureGraph.
const (
	FailureRoot  = "Error"
	FailureChild = "Processing Failed"
)

var standardMock = graph.Graph{
	Nodes: []string{
		"Java Developer", "Skills", "Technologies", "Roles", "Education",
		"Java", "Spring", "Hibernate", "SQL", "Git",
		"Backend Developer", "Software Engineer", "Application Developer",
		"CS Degree", "Java Certification",
	},
	Edges: []graph.Edge{
		{Source: "Java Developer", Target: "Skills", Relation: "needs"},
		{Source: "Java Developer", Target: "Technologies", Relation: "uses"},
		{Source: "Java Developer", Target: "Roles", Relation: "can be"},
		{Source: "Java Developer", Target: "Education", Relation: "requires"},
		{Source: "Skills", Target: "Java", Relation: "includes"},
		{Source: "Skills", Target: "SQL", Relation: "includes"},
		{Source: "Skills", Target: "Git", Relation: "includes"},
		{Source: "Technologies", Target: "Spring", Relation: "includes"},
		{Source: "Technologies", Target: "Hibernate", Relation: "includes"},
		{Source: "Roles", Target: "Backend Developer", Relation: "such as"},
		{Source: "Roles", Target: "Software Engineer", Relation: "such as"},
		{Source: "Roles", Target: "Application Developer", Relation: "such as"},
		{Source: "Education", Target: "CS Degree", Relation: "like"},
		{Source: "Education", Target: "Java Certification", Relation: "or"},
	},
	Provenance: graph.ProvenanceMock,
}

var researchMock = graph.Graph{
	Nodes: []string{
		"Java Agent Development", "Agent Architecture", "Java APIs", "Libraries",
		"Frameworks", "JADE", "JACK", "Jason", "Jadex",
		"Java Agent Development Framework", "BDI Model", "Communication Protocols",
		"FIPA Standards", "ACL Messages", "Concurrency", "Multithreading",
		"Distributed Systems", "Agent Mobility",
	},
	Edges: []graph.Edge{
		{Source: "Java Agent Development", Target: "Agent Architecture"},
		{Source: "Java Agent Development", Target: "Java APIs"},
		{Source: "Java Agent Development", Target: "Libraries"},
		{Source: "Java Agent Development", Target: "Frameworks"},
		{Source: "Frameworks", Target: "JADE"},
		{Source: "Frameworks", Target: "JACK"},
		{Source: "Frameworks", Target: "Jason"},
		{Source: "Frameworks", Target: "Jadex"},
		{Source: "JADE", Target: "Java Agent Development Framework", Relation: "is"},
		{Source: "Agent Architecture", Target: "BDI Model", Relation: "includes"},
		{Source: "Java APIs", Target: "Communication Protocols"},
		{Source: "Communication Protocols", Target: "FIPA Standards", Relation: "follows"},
		{Source: "Communication Protocols", Target: "ACL Messages", Relation: "uses"},
		{Source: "Java APIs", Target: "Concurrency", Relation: "supports"},
		{Source: "Concurrency", Target: "Multithreading", Relation: "through"},
		{Source: "Java Agent Development", Target: "Distributed Systems", Relation: "enables"},
		{Source: "Distributed Systems", Target: "Agent Mobility", Relation: "supports"},
	},
	Provenance: graph.ProvenanceMock,
}

// MockGraph returns the fixed illustrative graph served when no backend is
// configured. The result is a fresh copy.
func MockGraph(research bool) graph.Raw {
	if research {
		return graph.FromGraph(researchMock)
	}
	return graph.FromGraph(standardMock)
}

// FailureGraph returns a two-node diagram describing err, for callers that
// prefer showing an error map over failing the request.
func FailureGraph(err error) graph.Raw {
	msg := "unknown error"
	if err != nil {
		msg = mmerrors.UserMessage(err)
	}
	return graph.FromGraph(graph.Graph{
		Nodes:      []string{FailureRoot, FailureChild},
		Edges:      []graph.Edge{{Source: FailureRoot, Target: FailureChild, Relation: msg}},
		Provenance: graph.ProvenanceFailure,
	})
}
