package geo

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	llmerrors "prompty/internal/llm/errors"
)

// captureLogs routes the default logger into a buffer for the duration of the test
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(previous) })
	return &buf
}

func TestSummarizer_Summarize(t *testing.T) {
	client := fixedReply("\n- Battery life drives most picks\n")

	summary := NewSummarizer(client).Summarize(context.Background(), []string{"first answer", "second answer"})

	assert.Equal(t, "- Battery life drives most picks", summary)
	require.Equal(t, 1, client.calls())
	assert.Contains(t, client.prompts[0], "first answer\n\n---\n\nsecond answer")
}

func TestSummarizer_Failure(t *testing.T) {
	client := newStub(func(string) (string, error) { return "", errors.New("timeout") })

	summary := NewSummarizer(client).Summarize(context.Background(), []string{"answer"})

	assert.Equal(t, InsightsUnavailable, summary)
	assert.Equal(t, 1, client.calls(), "single attempt")
}

func TestSummarizer_ContextWindowExceeded(t *testing.T) {
	logs := captureLogs(t)
	client := newStub(func(string) (string, error) {
		return "", llmerrors.FromStatus("Gemini", 400, []byte("maximum context length is 8192 tokens"))
	})

	summary := NewSummarizer(client).Summarize(context.Background(), []string{"long answer", "another long answer"})

	assert.Equal(t, InsightsUnavailable, summary)
	assert.Equal(t, 1, client.calls(), "no retry with a shorter prompt")
	assert.Contains(t, logs.String(), "Insights prompt exceeds context window")
	assert.Contains(t, logs.String(), "responses=2")
}

func TestSummarizer_OtherProviderErrorIsNotContextWindow(t *testing.T) {
	logs := captureLogs(t)
	client := newStub(func(string) (string, error) {
		return "", llmerrors.FromStatus("Gemini", 401, []byte("invalid api key"))
	})

	summary := NewSummarizer(client).Summarize(context.Background(), []string{"answer"})

	assert.Equal(t, InsightsUnavailable, summary)
	assert.Contains(t, logs.String(), "Insights generation failed")
	assert.NotContains(t, logs.String(), "exceeds context window")
}
