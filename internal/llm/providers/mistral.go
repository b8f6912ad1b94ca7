package providers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"prompty/internal/config"
	llmerrors "prompty/internal/llm/errors"
	"prompty/internal/llm/prompts/system"
)

// MistralClient talks to Mistral models hosted behind the Hugging Face inference router
type MistralClient struct {
	httpClient *http.Client
	maxTokens  int
	model      config.ModelSettings
}

// mistralResponse keeps the message content raw so a missing or non-string field is detected
type mistralResponse struct {
	Choices []struct {
		Message struct {
			Content json.RawMessage `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage CompletionUsage `json:"usage"`
}

func NewMistral(cfg *config.Config) LLMClient {
	return &MistralClient{
		httpClient: newModelHTTPClient(cfg),
		maxTokens:  cfg.ModelMaxResponseTokens,
		model:      cfg.Model(config.ProviderMistral),
	}
}

func (m *MistralClient) Query(ctx context.Context, prompt string) (string, error) {
	const provider = "Mistral"

	req := ChatCompletionRequest{
		Model:       m.model.ModelID,
		Messages:    chatMessages(system.GetSystemPrompt(config.ProviderMistral), prompt),
		MaxTokens:   m.maxTokens,
		Temperature: defaultTemperature,
	}

	slog.Debug("Sending prompt to LLM", "provider", provider, "model", m.model.ModelID)

	var response mistralResponse
	endpoint := m.model.API + "/v1/chat/completions"
	if err := postJSON(ctx, m.httpClient, provider, endpoint, bearer(m.model.UserKey), req, &response); err != nil {
		return "", err
	}

	// Schema check: choices[0].message.content must be a string
	if len(response.Choices) == 0 {
		return "", llmerrors.New(provider, "unexpected response format: missing choices[0].message.content", nil)
	}
	var content string
	raw := response.Choices[0].Message.Content
	if len(raw) == 0 || json.Unmarshal(raw, &content) != nil {
		return "", llmerrors.New(provider, "unexpected response format: missing choices[0].message.content", nil)
	}

	slog.Debug("Mistral API token usage",
		"input_tokens", response.Usage.PromptTokens,
		"output_tokens", response.Usage.CompletionTokens,
		"total_tokens", response.Usage.TotalTokens)

	return strings.TrimSpace(content), nil
}
