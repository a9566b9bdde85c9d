// Package gemini provides a client for the Google Gemini generateContent API.
//
// # Usage
//
//	client := gemini.NewClient(apiKey, "gemini-1.5-flash", gemini.DefaultBaseURL)
//	text, err := client.Generate(ctx, prompt)
//
// The client sends a single-turn prompt with a low temperature and relaxed
// safety thresholds, and returns the text of the first candidate.
// Responses are not cached here; callers cache extracted graphs instead.
package gemini
