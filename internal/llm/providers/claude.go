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

// anthropicVersion is the Messages API version header value
const anthropicVersion = "2023-06-01"

type ClaudeClient struct {
	httpClient *http.Client
	maxTokens  int
	model      config.ModelSettings
}

type ClaudeRequest struct {
	MaxTokens   int             `json:"max_tokens"`
	Messages    []ClaudeMessage `json:"messages"`
	Model       string          `json:"model"`
	System      string          `json:"system,omitempty"`
	Temperature float64         `json:"temperature"`
}

type ClaudeMessage struct {
	Content []ClaudeContent `json:"content"`
	Role    string          `json:"role"`
}

type ClaudeResponse struct {
	Content []ClaudeContent `json:"content"`
	Usage   ClaudeUsage     `json:"usage"`
}

type ClaudeContent struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

type ClaudeUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

func NewClaude(cfg *config.Config) LLMClient {
	return &ClaudeClient{
		httpClient: newModelHTTPClient(cfg),
		maxTokens:  cfg.ModelMaxResponseTokens,
		model:      cfg.Model(config.ProviderClaude),
	}
}

func (c *ClaudeClient) Query(ctx context.Context, prompt string) (string, error) {
	const provider = "Claude"

	req := ClaudeRequest{
		Model:  c.model.ModelID,
		System: system.GetSystemPrompt(config.ProviderClaude),
		Messages: []ClaudeMessage{{
			Role: "user",
			Content: []ClaudeContent{{
				Type: "text",
				Text: prompt,
			}},
		}},
		MaxTokens:   c.maxTokens,
		Temperature: defaultTemperature,
	}

	headers := map[string]string{
		"x-api-key":         c.model.UserKey,
		"anthropic-version": anthropicVersion,
	}

	slog.Debug("Sending prompt to LLM", "provider", provider, "model", c.model.ModelID)

	var response ClaudeResponse
	if err := postJSON(ctx, c.httpClient, provider, c.model.API+"/v1/messages", headers, req, &response); err != nil {
		return "", err
	}

	var text strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", llmerrors.New(provider, "no content in response", nil)
	}

	slog.Debug("Claude API token usage",
		"input_tokens", response.Usage.InputTokens,
		"output_tokens", response.Usage.OutputTokens,
		"total_tokens", response.Usage.InputTokens+response.Usage.OutputTokens)

	return strings.TrimSpace(text.String()), nil
}
