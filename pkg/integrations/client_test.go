package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/mindmap/pkg/cache"
	mmerrors "github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/httputil"
)

func TestNewClient(t *testing.T) {
	c, _ := cache.NewFileCache(t.TempDir())
	defer c.Close()

	headers := map[string]string{"Authorization": "Bearer token"}
	client := NewClient(c, "test", time.Hour, headers)

	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.http == nil {
		t.Error("NewClient() http client is nil")
	}
	if client.cache != cache.Cache(c) {
		t.Error("NewClient() cache not set correctly")
	}
	if client.headers["Authorization"] != "Bearer token" {
		t.Error("NewClient() headers not set correctly")
	}
}

func TestNewClientNilCache(t *testing.T) {
	client := NewClient(nil, "test", time.Hour, nil)

	if client.cache == nil {
		t.Fatal("NewClient(nil) should fall back to a null cache")
	}
	if client.headers != nil {
		t.Error("NewClient() should allow nil headers")
	}
}

func TestClientGet(t *testing.T) {
	type response struct {
		Message string `json:"message"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		json.NewEncoder(w).Encode(response{Message: "hello"})
	}))
	defer server.Close()

	client := NewClient(nil, "test", time.Hour, nil)
	client.http = server.Client()

	var resp response
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Message != "hello" {
		t.Errorf("Get() message = %q, want %q", resp.Message, "hello")
	}
}

func TestClientPostJSON(t *testing.T) {
	var gotBody map[string]any
	var gotHeaders http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		gotHeaders = r.Header.Clone()
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewClient(nil, "test", 0, map[string]string{"X-Default": "d", "X-Override": "client"})
	var resp struct {
		OK bool `json:"ok"`
	}
	err := client.PostJSON(context.Background(), server.URL, map[string]string{"X-Override": "request"}, map[string]any{"q": "golang", "num": 5}, &resp)
	if err != nil {
		t.Fatalf("PostJSON() error: %v", err)
	}
	if !resp.OK {
		t.Error("response not decoded")
	}
	if gotBody["q"] != "golang" || gotBody["num"] != float64(5) {
		t.Errorf("request body = %v", gotBody)
	}
	if gotHeaders.Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", gotHeaders.Get("Content-Type"))
	}
	if gotHeaders.Get("X-Default") != "d" || gotHeaders.Get("X-Override") != "request" {
		t.Errorf("headers = %v", gotHeaders)
	}
}

func TestClientMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := NewClient(nil, "test", 0, nil)
	var resp map[string]any
	err := client.Get(context.Background(), server.URL, &resp)
	if !mmerrors.Is(err, mmerrors.ErrCodeMalformedOutput) {
		t.Errorf("Get() error = %v, want MALFORMED_OUTPUT", err)
	}
}

func TestClientErrorStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		sentinel  error
		code      mmerrors.Code
		retryable bool
	}{
		{"401", http.StatusUnauthorized, ErrUnauthorized, mmerrors.ErrCodeUnauthorized, false},
		{"403", http.StatusForbidden, ErrUnauthorized, mmerrors.ErrCodeUnauthorized, false},
		{"404", http.StatusNotFound, ErrNotFound, mmerrors.ErrCodeNotFound, false},
		{"429", http.StatusTooManyRequests, ErrRateLimited, mmerrors.ErrCodeRateLimited, true},
		{"500", http.StatusInternalServerError, ErrNetwork, mmerrors.ErrCodeNetwork, true},
		{"400", http.StatusBadRequest, ErrNetwork, mmerrors.ErrCodeBackendFailure, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, `{"error":"details here"}`)
			}))
			defer server.Close()

			client := NewClient(nil, "test", 0, nil)
			var resp map[string]any
			err := client.Get(context.Background(), server.URL, &resp)

			if !errors.Is(err, tt.sentinel) {
				t.Errorf("error = %v, want %v", err, tt.sentinel)
			}
			if got := mmerrors.GetCode(err); got != tt.code {
				t.Errorf("code = %v, want %v", got, tt.code)
			}
			var retryErr *httputil.RetryableError
			if errors.As(err, &retryErr) != tt.retryable {
				t.Errorf("retryable = %v, want %v", !tt.retryable, tt.retryable)
			}
			if !strings.Contains(err.Error(), "details here") {
				t.Errorf("error should carry the response body: %v", err)
			}
		})
	}
}

func TestClientNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(nil, "test", 0, nil)
	var resp map[string]any
	err := client.Get(context.Background(), url, &resp)

	if !errors.Is(err, ErrNetwork) {
		t.Errorf("error = %v, want ErrNetwork", err)
	}
	var retryErr *httputil.RetryableError
	if !errors.As(err, &retryErr) {
		t.Errorf("network errors should be retryable, got %T", err)
	}
}

func TestClientNetworkErrorOmitsQuery(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL + "/v1/search?key=secret-0123456789&q=go"
	server.Close()

	client := NewClient(nil, "test", 0, nil)
	var resp map[string]any
	err := client.PostJSON(context.Background(), url, nil, map[string]string{}, &resp)
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.Contains(err.Error(), "secret-0123456789") || strings.Contains(err.Error(), "q=go") {
		t.Errorf("error leaks the query string: %v", err)
	}
	if !strings.Contains(err.Error(), "/v1/search") {
		t.Errorf("error should keep the path: %v", err)
	}
}

func TestClientCached(t *testing.T) {
	c, _ := cache.NewFileCache(t.TempDir())
	defer c.Close()

	client := NewClient(c, "test", time.Hour, nil)

	type testData struct {
		Value string `json:"value"`
	}

	fetchCount := 0
	fetch := func(v *testData) func() error {
		return func() error {
			fetchCount++
			*v = testData{Value: "fetched"}
			return nil
		}
	}

	var first testData
	if err := client.Cached(context.Background(), "key", false, &first, fetch(&first)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}

	var second testData
	if err := client.Cached(context.Background(), "key", false, &second, fetch(&second)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}

	if fetchCount != 1 {
		t.Errorf("fetch count = %d, want 1", fetchCount)
	}
	if second.Value != "fetched" {
		t.Errorf("cached value = %q, want %q", second.Value, "fetched")
	}
}

func TestClientCachedRefresh(t *testing.T) {
	c, _ := cache.NewFileCache(t.TempDir())
	defer c.Close()

	client := NewClient(c, "test", time.Hour, nil)

	fetchCount := 0
	var value string
	fetch := func() error {
		fetchCount++
		value = "fetched"
		return nil
	}

	for range 2 {
		if err := client.Cached(context.Background(), "test-key", true, &value, fetch); err != nil {
			t.Fatalf("Cached() error: %v", err)
		}
	}
	if fetchCount != 2 {
		t.Errorf("fetch count = %d, want 2", fetchCount)
	}
}

func TestClientCachedFetchError(t *testing.T) {
	c, _ := cache.NewFileCache(t.TempDir())
	defer c.Close()

	client := NewClient(c, "test", time.Hour, nil)

	var value string
	fetchCount := 0
	fetch := func() error {
		fetchCount++
		return ErrNotFound
	}

	if err := client.Cached(context.Background(), "key", false, &value, fetch); err == nil {
		t.Error("Cached() should return error when fetch fails")
	}
	if fetchCount != 1 {
		t.Errorf("non-retryable errors should not be retried: %d calls", fetchCount)
	}
	if _, hit, _ := c.Get(context.Background(), cache.NewDefaultKeyer().HTTPKey("test", "key")); hit {
		t.Error("failed fetch should not be cached")
	}
}

func TestCheckStatus(t *testing.T) {
	for _, code := range []int{200, 201, 204} {
		if err := checkStatus(code); err != nil {
			t.Errorf("checkStatus(%d) = %v", code, err)
		}
	}
	for _, code := range []int{301, 400, 401, 403, 404, 409, 429, 500, 502, 503} {
		if err := checkStatus(code); err == nil {
			t.Errorf("checkStatus(%d) should fail", code)
		}
	}
}

func TestNewHTTPClient(t *testing.T) {
	client := NewHTTPClient()
	if client == nil {
		t.Fatal("NewHTTPClient() returned nil")
	}
	if client.Timeout != httpTimeout {
		t.Errorf("Timeout = %v, want %v", client.Timeout, httpTimeout)
	}
}
