package providers

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"prompty/internal/config"
	llmerrors "prompty/internal/llm/errors"
	"prompty/internal/llm/prompts/system"
)

// ChatGPTClient uses the official OpenAI SDK against the chat completions API
type ChatGPTClient struct {
	client    openai.Client
	maxTokens int
	model     config.ModelSettings
}

func NewChatGPT(cfg *config.Config) LLMClient {
	model := cfg.Model(config.ProviderChatGPT)

	client := openai.NewClient(
		option.WithAPIKey(model.UserKey),
		option.WithBaseURL(model.API+"/"),
		option.WithHTTPClient(newModelHTTPClient(cfg)),
		option.WithMaxRetries(0),
	)

	return &ChatGPTClient{
		client:    client,
		maxTokens: cfg.ModelMaxResponseTokens,
		model:     model,
	}
}

func (c *ChatGPTClient) Query(ctx context.Context, prompt string) (string, error) {
	const provider = "ChatGPT"

	var messages []openai.ChatCompletionMessageParamUnion
	if systemPrompt := system.GetSystemPrompt(config.ProviderChatGPT); systemPrompt != "" {
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	messages = append(messages, openai.UserMessage(prompt))

	slog.Debug("Sending prompt to LLM", "provider", provider, "model", c.model.ModelID)

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(c.model.ModelID),
		Messages:            messages,
		Temperature:         openai.Float(defaultTemperature),
		MaxCompletionTokens: openai.Int(int64(c.maxTokens)),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			message := apiErr.Message
			if message == "" {
				message = apiErr.Error()
			}
			return "", &llmerrors.ProviderError{
				Provider:   provider,
				StatusCode: apiErr.StatusCode,
				Message:    message,
				Err:        err,
			}
		}
		return "", llmerrors.New(provider, "chat completion", err)
	}

	if len(resp.Choices) == 0 {
		return "", llmerrors.New(provider, "no choices in response", nil)
	}
	message := resp.Choices[0].Message
	if !message.JSON.Content.Valid() {
		return "", llmerrors.New(provider, "unexpected response format: missing choices[0].message.content", nil)
	}

	slog.Debug("ChatGPT API token usage",
		"input_tokens", resp.Usage.PromptTokens,
		"output_tokens", resp.Usage.CompletionTokens,
		"total_tokens", resp.Usage.TotalTokens)

	return strings.TrimSpace(message.Content), nil
}
