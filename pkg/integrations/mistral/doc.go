// Package mistral provides a client for the Mistral chat completions API.
//
// # Usage
//
//	client := mistral.NewClient(apiKey, "mistral-tiny", mistral.DefaultBaseURL)
//	text, err := client.Complete(ctx, prompt)
package mistral
