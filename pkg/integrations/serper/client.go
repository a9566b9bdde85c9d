package serper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/integrations"
)

// DefaultBaseURL is the public Serper endpoint.
const DefaultBaseURL = "https://google.serper.dev"

// CacheTTL is how long search results are cached.
const CacheTTL = cache.TTLHTTP

// Result is one organic search hit.
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

type searchRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

type searchResponse struct {
	Organic []Result `json:"organic"`
}

// Client calls the Serper search API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a Serper client with the given cache backend.
// An empty baseURL falls back to [DefaultBaseURL]; a nil backend disables
// caching.
func NewClient(apiKey, baseURL string, backend cache.Cache, cacheTTL time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client:  integrations.NewClient(backend, "serper", cacheTTL, map[string]string{"X-API-KEY": apiKey}),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Search returns up to num organic results for query.
//
// If refresh is true, the cache is bypassed and a fresh API call is made.
// The returned slice is never nil when err is nil.
func (c *Client) Search(ctx context.Context, query string, num int, refresh bool) ([]Result, error) {
	query = strings.TrimSpace(query)
	key := fmt.Sprintf("%d:%s", num, query)

	var resp searchResponse
	err := c.Cached(ctx, key, refresh, &resp, func() error {
		return c.PostJSON(ctx, c.baseURL+"/search", nil, searchRequest{Q: query, Num: num}, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("serper: %w", err)
	}
	if resp.Organic == nil {
		return []Result{}, nil
	}
	return resp.Organic, nil
}
