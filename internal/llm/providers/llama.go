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

type LlamaClient struct {
	httpClient *http.Client
	maxTokens  int
	model      config.ModelSettings
}

type LlamaRequest struct {
	MaxTokens   int     `json:"max_tokens"`
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
}

type LlamaResponse struct {
	Choices []LlamaChoice   `json:"choices"`
	Usage   CompletionUsage `json:"usage"`
}

type LlamaChoice struct {
	Text *string `json:"text"`
}

func NewLlama(cfg *config.Config) LLMClient {
	return &LlamaClient{
		httpClient: newModelHTTPClient(cfg),
		maxTokens:  cfg.ModelMaxResponseTokens,
		model:      cfg.Model(config.ProviderLlama),
	}
}

func (l *LlamaClient) Query(ctx context.Context, prompt string) (string, error) {
	const provider = "Llama"

	// Completions endpoint takes a single prompt string
	combinedPrompt := prompt
	if systemPrompt := system.GetSystemPrompt(config.ProviderLlama); systemPrompt != "" {
		combinedPrompt = systemPrompt + "\n\n" + prompt
	}

	req := LlamaRequest{
		Model:       l.model.ModelID,
		Prompt:      combinedPrompt,
		MaxTokens:   l.maxTokens,
		Temperature: defaultTemperature,
	}

	slog.Debug("Sending prompt to LLM", "provider", provider, "model", l.model.ModelID)

	var response LlamaResponse
	if err := postJSON(ctx, l.httpClient, provider, l.model.API+"/v1/completions", bearer(l.model.UserKey), req, &response); err != nil {
		return "", err
	}

	if len(response.Choices) == 0 {
		return "", llmerrors.New(provider, "no choices in response", nil)
	}
	text := response.Choices[0].Text
	if text == nil {
		return "", llmerrors.New(provider, "unexpected response format: missing choices[0].text", nil)
	}

	slog.Debug("Llama API token usage",
		"input_tokens", response.Usage.PromptTokens,
		"output_tokens", response.Usage.CompletionTokens,
		"total_tokens", response.Usage.TotalTokens)

	return strings.TrimSpace(*text), nil
}
