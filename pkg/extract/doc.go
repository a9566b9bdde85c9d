// Package extract turns free-form text into a raw concept graph using
// language-model backends.
//
// # Backends
//
// A backend is any [Extractor]. [NewGemini] and [NewMistral] adapt the
// clients in pkg/integrations: they build the prompt ([BuildPrompt]), call
// the model and decode the reply ([ParsePayload]).
//
// # Adapter
//
// [Adapter] tries the enabled backends in priority order and returns the
// first non-empty graph:
//
//	standard mode: mistral, then gemini
//	research mode: gemini, then mistral
//
// Every call runs under the configured timeout and behind a per-backend
// circuit breaker. A failing backend is logged at warn level and skipped.
// When every backend fails the adapter returns a TOTAL_FAILURE error; when
// none is configured it returns a fixed illustrative graph ([MockGraph]).
package extract
