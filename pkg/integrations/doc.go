// Package integrations provides HTTP clients for the external backends.
//
// # Overview
//
// Each backend has its own subpackage:
//
//   - [gemini]: Google Gemini generateContent (graph extraction)
//   - [mistral]: Mistral chat completions (graph extraction)
//   - [serper]: Serper Google search (research mode)
//
// # Client Pattern
//
// Backend clients embed the shared [Client], which provides:
//   - JSON GET/POST with default headers and context cancellation
//   - status mapping to [errors.Code] values (401/403 unauthorized,
//     404 not found, 429 rate limited, 5xx network error)
//   - [RetryableError] wrapping of transient failures
//   - response caching via [cache.Cache] with [Client.Cached]
//   - observability HTTP hooks
//
// Query strings are never reported to hooks, since Gemini passes its key
// there.
//
// [gemini]: github.com/matzehuels/mindmap/pkg/integrations/gemini
// [mistral]: github.com/matzehuels/mindmap/pkg/integrations/mistral
// [serper]: github.com/matzehuels/mindmap/pkg/integrations/serper
// [errors.Code]: github.com/matzehuels/mindmap/pkg/errors
// [RetryableError]: github.com/matzehuels/mindmap/pkg/httputil
// [cache.Cache]: github.com/matzehuels/mindmap/pkg/cache
package integrations
