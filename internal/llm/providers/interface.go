package providers

import "context"

// LLMClient interface for all LLM providers
type LLMClient interface {
	// Query sends one prompt and returns the whitespace-trimmed reply text
	Query(ctx context.Context, prompt string) (string, error)
}
