package mistral

import (
	"context"
	"fmt"
	"strings"

	mmerrors "github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/integrations"
)

// DefaultBaseURL is the public Mistral API endpoint.
const DefaultBaseURL = "https://api.mistral.ai/v1"

// DefaultModel is used when no model is configured.
const DefaultModel = "mistral-tiny"

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message      Message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
}

// Client calls the Mistral API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	model   string
	baseURL string
}

// NewClient creates a Mistral client authenticated with a bearer token.
// Empty model and baseURL fall back to [DefaultModel] and [DefaultBaseURL].
func NewClient(apiKey, model, baseURL string) *Client {
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client: integrations.NewClient(nil, "mistral", 0, map[string]string{
			"Authorization": "Bearer " + apiKey,
			"Accept":        "application/json",
		}),
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// Complete sends prompt as a single user message and returns the content
// of the first choice.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	req := chatRequest{
		Model:    c.model,
		Messages: []Message{{Role: "user", Content: prompt}},
	}

	var resp chatResponse
	if err := c.PostJSON(ctx, c.baseURL+"/chat/completions", nil, req, &resp); err != nil {
		return "", fmt.Errorf("mistral: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", mmerrors.New(mmerrors.ErrCodeMalformedOutput, "mistral: response has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
