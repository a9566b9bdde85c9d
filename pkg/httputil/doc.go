// Package httputil provides retry helpers for outbound backend calls.
//
// # Retry
//
// [Retry] re-runs an operation on transient failures with exponential
// backoff. An error is retried when it is wrapped in [RetryableError] or
// carries a transient [errors.Code] (network error, timeout, rate limit):
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    return client.Search(ctx, query)
//	})
//
// Extraction backends are never retried; a failing backend falls through
// to the next one instead. Retry is used for search calls only.
//
// [errors.Code]: github.com/matzehuels/mindmap/pkg/errors
package httputil
