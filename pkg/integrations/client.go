package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/mindmap/pkg/buildinfo"
	"github.com/matzehuels/mindmap/pkg/cache"
	mmerrors "github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/httputil"
	"github.com/matzehuels/mindmap/pkg/observability"
)

// maxErrorBody bounds how much of an error response is kept for messages.
const maxErrorBody = 512

// Client provides shared HTTP functionality for all backend API clients.
// It handles caching, retry logic, status mapping and common request headers.
type Client struct {
	http      *http.Client
	cache     cache.Cache
	keyer     cache.Keyer
	namespace string
	ttl       time.Duration
	headers   map[string]string
}

// NewClient creates a Client with the given cache and default headers.
// Cache keys are built under namespace; a nil cache disables caching.
// Headers are applied to all requests made through this client.
// Pass nil for headers if no default headers are needed.
func NewClient(c cache.Cache, namespace string, ttl time.Duration, headers map[string]string) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Client{
		http:      NewHTTPClient(),
		cache:     c,
		keyer:     cache.NewDefaultKeyer(),
		namespace: namespace,
		ttl:       ttl,
		headers:   headers,
	}
}

// SetKeyer replaces the keyer used for cache keys.
func (c *Client) SetKeyer(k cache.Keyer) {
	if k != nil {
		c.keyer = k
	}
}

// SetHTTPClient replaces the underlying HTTP client.
func (c *Client) SetHTTPClient(h *http.Client) {
	if h != nil {
		c.http = h
	}
}

// Cached retrieves a value from cache or executes fetch and caches the result.
// If refresh is true, the cache is bypassed and fetch is always called.
// The fetch function should populate v; on success, v is stored in the cache.
// Transient fetch failures are retried with backoff.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	k := c.keyer.HTTPKey(c.namespace, key)
	if !refresh {
		if err := cache.GetJSON(ctx, c.cache, k, v); err == nil {
			observability.Cache().OnCacheHit(ctx, "http")
			return nil
		}
		observability.Cache().OnCacheMiss(ctx, "http")
	}
	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	if data, err := json.Marshal(v); err == nil {
		if c.cache.Set(ctx, k, data, c.ttl) == nil {
			observability.Cache().OnCacheSet(ctx, "http", len(data))
		}
	}
	return nil
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	body, err := c.doRequest(ctx, http.MethodGet, url, headers, nil)
	if err != nil {
		return err
	}
	defer body.Close()
	return decode(body, v)
}

// PostJSON JSON-encodes payload, POSTs it to url and decodes the response into v.
// Request-specific headers override client defaults for the same key.
func (c *Client) PostJSON(ctx context.Context, url string, headers map[string]string, payload, v any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	h := map[string]string{"Content-Type": "application/json"}
	for k, val := range headers {
		h[k] = val
	}
	body, err := c.doRequest(ctx, http.MethodPost, url, h, bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer body.Close()
	return decode(body, v)
}

func decode(body io.Reader, v any) error {
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return mmerrors.Wrap(mmerrors.ErrCodeMalformedOutput, err, "decode response")
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, method, rawURL string, headers map[string]string, body io.Reader) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	// The query string is left out of hooks; it may carry an API key.
	host, path := req.URL.Host, req.URL.Path
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		err = redactURL(err)
		hooks.OnError(ctx, method, host, path, err)
		code := mmerrors.ErrCodeNetwork
		if errors.Is(err, context.DeadlineExceeded) {
			code = mmerrors.ErrCodeTimeout
		}
		return nil, &httputil.RetryableError{Err: mmerrors.Wrap(code, fmt.Errorf("%w: %v", ErrNetwork, err), "%s %s", method, host)}
	}
	hooks.OnResponse(ctx, method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		if len(snippet) > 0 {
			return nil, fmt.Errorf("%w (body: %s)", err, bytes.TrimSpace(snippet))
		}
		return nil, err
	}
	return resp.Body, nil
}

// redactURL drops the query string from a transport error's URL.
func redactURL(err error) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	u, perr := url.Parse(uerr.URL)
	if perr != nil {
		return &url.Error{Op: uerr.Op, URL: "", Err: uerr.Err}
	}
	u.RawQuery = ""
	u.User = nil
	return &url.Error{Op: uerr.Op, URL: u.String(), Err: uerr.Err}
}

func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return mmerrors.Wrap(mmerrors.ErrCodeUnauthorized, ErrUnauthorized, "status %d", code)
	case code == http.StatusNotFound:
		return mmerrors.Wrap(mmerrors.ErrCodeNotFound, ErrNotFound, "status %d", code)
	case code == http.StatusTooManyRequests:
		return &httputil.RetryableError{Err: mmerrors.Wrap(mmerrors.ErrCodeRateLimited, ErrRateLimited, "status %d", code)}
	case code >= 500:
		return &httputil.RetryableError{Err: mmerrors.Wrap(mmerrors.ErrCodeNetwork, ErrNetwork, "status %d", code)}
	default:
		return mmerrors.Wrap(mmerrors.ErrCodeBackendFailure, ErrNetwork, "status %d", code)
	}
}
