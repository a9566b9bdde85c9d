package extract

import (
	"context"

	"github.com/matzehuels/mindmap/pkg/graph"
	"github.com/matzehuels/mindmap/pkg/integrations/gemini"
	"github.com/matzehuels/mindmap/pkg/integrations/mistral"
)

// Extractor produces a raw concept graph from text.
type Extractor interface {
	// Name identifies the extractor in logs, metrics and provenance.
	Name() string

	// Extract returns the graph for text. Research mode expects text to be
	// a research summary and asks for a larger map.
	Extract(ctx context.Context, text string, research bool) (graph.Raw, error)
}

// CompleteFunc sends a prompt to a model and returns its text reply.
type CompleteFunc func(ctx context.Context, prompt string) (string, error)

// LLM is an [Extractor] backed by a prompt-completion function.
type LLM struct {
	name     string
	complete CompleteFunc
}

// NewLLM returns an extractor named name that prompts complete.
func NewLLM(name string, complete CompleteFunc) *LLM {
	return &LLM{name: name, complete: complete}
}

// NewGemini returns an extractor backed by the Gemini API.
func NewGemini(c *gemini.Client) *LLM {
	return NewLLM(graph.ProvenanceGemini, c.Generate)
}

// NewMistral returns an extractor backed by the Mistral API.
func NewMistral(c *mistral.Client) *LLM {
	return NewLLM(graph.ProvenanceMistral, c.Complete)
}

// Name returns the backend name.
func (l *LLM) Name() string { return l.name }

// Extract prompts the model and decodes the graph from its reply.
func (l *LLM) Extract(ctx context.Context, text string, research bool) (graph.Raw, error) {
	reply, err := l.complete(ctx, BuildPrompt(text, research))
	if err != nil {
		return graph.Raw{}, err
	}
	raw, err := ParsePayload(reply)
	if err != nil {
		return graph.Raw{}, err
	}
	raw.Provenance = l.name
	return raw, nil
}
