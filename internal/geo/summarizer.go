package geo

import (
	"context"
	"log/slog"
	"strings"

	llmerrors "prompty/internal/llm/errors"
	"prompty/internal/llm/prompts/user"
	"prompty/internal/llm/providers"
)

// InsightsUnavailable replaces the summary when the insights call fails
const InsightsUnavailable = "Could not generate insights."

// Summarizer condenses a batch of responses into recurring recommendation themes
type Summarizer struct {
	client providers.LLMClient
}

func NewSummarizer(client providers.LLMClient) *Summarizer {
	return &Summarizer{client: client}
}

// Summarize makes a single insights call over all responses and never fails
func (s *Summarizer) Summarize(ctx context.Context, responses []string) string {
	prompt, err := user.RenderInsightsPrompt(strings.Join(responses, user.ResponseSeparator))
	if err != nil {
		slog.Error("Failed to build insights prompt", "error", err)
		return InsightsUnavailable
	}

	reply, err := s.client.Query(ctx, prompt)
	if err != nil {
		if llmerrors.IsContextWindowExceeded(err) {
			slog.Warn("Insights prompt exceeds context window",
				"responses", len(responses),
				"prompt_chars", len(prompt),
				"error", err)
		} else {
			slog.Error("Insights generation failed", "responses", len(responses), "error", err)
		}
		return InsightsUnavailable
	}

	return strings.TrimSpace(reply)
}
