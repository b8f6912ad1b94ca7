package system

import (
	_ "embed"
	"log/slog"
	"strings"

	"prompty/internal/config"
)

//go:embed assistant_prompt_v1.md
var assistantPromptV1 string

// GetSystemPrompt returns the system prompt sent by a provider, or "" when the provider
// receives the user prompt alone
func GetSystemPrompt(provider config.Provider) string {
	switch provider {
	case config.ProviderChatGPT:
		slog.Debug("Using shopping assistant system prompt", "provider", provider.DisplayName())
		return strings.TrimSpace(assistantPromptV1)
	default:
		return ""
	}
}
