// Package research gathers web search results and turns them into the
// text an extraction backend works from in research mode.
package research

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindmap/pkg/integrations/serper"
)

// Result is one search hit.
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// Searcher finds web results for a query.
//
// Search never fails: errors and missing credentials yield an empty slice.
type Searcher interface {
	Search(ctx context.Context, query string) []Result
}

// Null is a Searcher that always returns no results.
type Null struct{}

// Search returns an empty slice.
func (Null) Search(context.Context, string) []Result { return []Result{} }

// SerperSearcher adapts a [serper.Client] to [Searcher].
type SerperSearcher struct {
	client  *serper.Client
	num     int
	timeout time.Duration
	refresh bool
	logger  *log.Logger
}

// SerperOptions configures a [SerperSearcher].
type SerperOptions struct {
	Results int           // results per query (default 5)
	Timeout time.Duration // per-search deadline (default 30s)
	Refresh bool          // bypass the search cache
	Logger  *log.Logger
}

// NewSerperSearcher wraps client.
func NewSerperSearcher(client *serper.Client, opts SerperOptions) *SerperSearcher {
	if opts.Results <= 0 {
		opts.Results = 5
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &SerperSearcher{
		client:  client,
		num:     opts.Results,
		timeout: opts.Timeout,
		refresh: opts.Refresh,
		logger:  opts.Logger,
	}
}

// Search queries Serper. Failures are logged and reported as no results.
func (s *SerperSearcher) Search(ctx context.Context, query string) []Result {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	hits, err := s.client.Search(ctx, query, s.num, s.refresh)
	if err != nil {
		s.logger.Warn("web search failed", "query", query, "error", err)
		return []Result{}
	}

	results := make([]Result, 0, len(hits))
	for _, h := range hits {
		results = append(results, Result{Title: h.Title, Snippet: h.Snippet, Link: h.Link})
	}
	s.logger.Debug("web search", "query", query, "results", len(results))
	return results
}

// Combine builds the research text for topic from results:
//
//	Research on <topic>:
//
//	Source 1:
//	Title: ...
//	Summary: ...
//
// With no results it returns "Information about <topic>.".
func Combine(results []Result, topic string) string {
	if len(results) == 0 {
		return fmt.Sprintf("Information about %s.", topic)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Research on %s:\n\n", topic)
	for i, r := range results {
		fmt.Fprintf(&b, "Source %d:\n", i+1)
		fmt.Fprintf(&b, "Title: %s\n", r.Title)
		fmt.Fprintf(&b, "Summary: %s\n\n", r.Snippet)
	}
	return b.String()
}
