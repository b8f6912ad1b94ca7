package providers

import (
	"fmt"

	"prompty/internal/config"
)

// Factory builds a client for a provider; the chat session uses it to switch models
type Factory func(provider config.Provider) (LLMClient, error)

// NewClient creates the LLM client for a provider after checking its model settings
func NewClient(provider config.Provider, cfg *config.Config) (LLMClient, error) {
	var client LLMClient

	switch provider {
	case config.ProviderChatGPT:
		client = NewChatGPT(cfg)

	case config.ProviderGemini:
		client = NewGemini(cfg)

	case config.ProviderMistral:
		client = NewMistral(cfg)

	case config.ProviderClaude:
		client = NewClaude(cfg)

	case config.ProviderLlama:
		client = NewLlama(cfg)

	default:
		return nil, fmt.Errorf("unsupported model provider: %s", provider)
	}

	if err := cfg.RequireModel(provider); err != nil {
		return nil, fmt.Errorf("%s is not configured: %w", provider.DisplayName(), err)
	}

	return Instrument(provider, client), nil
}

// NewFactory binds NewClient to a configuration
func NewFactory(cfg *config.Config) Factory {
	return func(provider config.Provider) (LLMClient, error) {
		return NewClient(provider, cfg)
	}
}
