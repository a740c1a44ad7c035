// Package llm abstracts the model providers used for narrative insight
// generation.
package llm

import "context"

// Provider is the interface every model backend implements. Options carry
// provider-specific knobs (model override, response format, api key).
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
	// AdaptInstructions transforms raw analyst instructions into the
	// provider's preferred prompting format.
	AdaptInstructions(rawInstructions string) string
}
