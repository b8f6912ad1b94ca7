package providers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"prompty/internal/config"
	llmerrors "prompty/internal/llm/errors"
	"prompty/internal/llm/prompts/system"
)

type GeminiClient struct {
	httpClient *http.Client
	maxTokens  int
	model      config.ModelSettings
}

func NewGemini(cfg *config.Config) LLMClient {
	return &GeminiClient{
		httpClient: newModelHTTPClient(cfg),
		maxTokens:  cfg.ModelMaxResponseTokens,
		model:      cfg.Model(config.ProviderGemini),
	}
}

func (g *GeminiClient) Query(ctx context.Context, prompt string) (string, error) {
	const provider = "Gemini"

	req := ChatCompletionRequest{
		Model:       g.model.ModelID,
		Messages:    chatMessages(system.GetSystemPrompt(config.ProviderGemini), prompt),
		MaxTokens:   g.maxTokens,
		Temperature: defaultTemperature,
	}

	slog.Debug("Sending prompt to LLM", "provider", provider, "model", g.model.ModelID)

	var response ChatCompletionResponse
	endpoint := g.model.API + "/v1beta/openai/chat/completions"
	if err := postJSON(ctx, g.httpClient, provider, endpoint, bearer(g.model.UserKey), req, &response); err != nil {
		return "", err
	}

	if len(response.Choices) == 0 {
		return "", llmerrors.New(provider, "no choices in response", nil)
	}
	content := response.Choices[0].Message.Content
	if content == nil {
		return "", llmerrors.New(provider, "unexpected response format: missing choices[0].message.content", nil)
	}

	slog.Debug("Gemini API token usage",
		"input_tokens", response.Usage.PromptTokens,
		"output_tokens", response.Usage.CompletionTokens,
		"total_tokens", response.Usage.TotalTokens)

	return strings.TrimSpace(*content), nil
}
