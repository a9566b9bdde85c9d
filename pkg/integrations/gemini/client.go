package gemini

import (
	"context"
	"fmt"
	"strings"

	mmerrors "github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/integrations"
)

// DefaultBaseURL is the public Generative Language API endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-1.5-flash"

// GenerationConfig controls sampling.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// DefaultGenerationConfig favors stable, structured output.
var DefaultGenerationConfig = GenerationConfig{
	Temperature:     0.2,
	TopP:            0.8,
	TopK:            40,
	MaxOutputTokens: 2048,
}

var harmCategories = []string{
	"HARM_CATEGORY_HARASSMENT",
	"HARM_CATEGORY_HATE_SPEECH",
	"HARM_CATEGORY_SEXUALLY_EXPLICIT",
	"HARM_CATEGORY_DANGEROUS_CONTENT",
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// Client calls the Gemini API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	apiKey  string
	model   string
	baseURL string
	config  GenerationConfig
}

// NewClient creates a Gemini client. Empty model and baseURL fall back to
// [DefaultModel] and [DefaultBaseURL].
func NewClient(apiKey, model, baseURL string) *Client {
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client:  integrations.NewClient(nil, "gemini", 0, nil),
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		config:  DefaultGenerationConfig,
	}
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// Generate sends prompt as a single user turn and returns the text of the
// first candidate.
//
// Returns an error with code MALFORMED_OUTPUT when the response has no
// candidate text (for example when the prompt was blocked).
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: c.config,
	}
	for _, cat := range harmCategories {
		req.SafetySettings = append(req.SafetySettings, safetySetting{Category: cat, Threshold: "BLOCK_ONLY_HIGH"})
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	headers := map[string]string{"x-goog-api-key": c.apiKey}

	var resp generateResponse
	if err := c.PostJSON(ctx, url, headers, req, &resp); err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		if reason := resp.PromptFeedback.BlockReason; reason != "" {
			return "", mmerrors.New(mmerrors.ErrCodeMalformedOutput, "gemini: prompt blocked (%s)", reason)
		}
		return "", mmerrors.New(mmerrors.ErrCodeMalformedOutput, "gemini: response has no candidates")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
