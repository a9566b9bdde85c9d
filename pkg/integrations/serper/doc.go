// Package serper provides a client for the Serper Google search API.
//
// # Usage
//
//	client := serper.NewClient(apiKey, serper.DefaultBaseURL, cache, serper.CacheTTL)
//	results, err := client.Search(ctx, "java agent frameworks", 5, false)
//
// Results are cached per query and result count. Transient failures
// (network errors, 5xx, 429) are retried with backoff.
package serper
