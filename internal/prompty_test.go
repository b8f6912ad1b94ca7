package internal

import (
	"context"
	"errors"
	"strings"
	"testing"

	"prompty/internal/config"
	"prompty/internal/llm/providers"
	"prompty/internal/templates"
)

// mockLLMClient implements providers.LLMClient for testing
type mockLLMClient struct {
	reply string
	err   error
}

func (m *mockLLMClient) Query(ctx context.Context, prompt string) (string, error) {
	return m.reply, m.err
}

func mockFactory(clients map[config.Provider]providers.LLMClient) providers.Factory {
	return func(provider config.Provider) (providers.LLMClient, error) {
		client, ok := clients[provider]
		if !ok {
			return nil, errors.New(string(provider) + " is not configured")
		}
		return client, nil
	}
}

func newTestPrompty(t *testing.T, cfg *config.Config, clients map[config.Provider]providers.LLMClient) *Prompty {
	t.Helper()

	catalog, err := templates.NewCatalog(
		templates.Category{Name: "Tech", Prompts: []string{"best mouse?", "best keyboard?"}},
	)
	if err != nil {
		t.Fatalf("Failed to build catalog: %v", err)
	}

	return newPrompty(cfg, catalog, mockFactory(clients))
}

func testConfig() *config.Config {
	return &config.Config{
		DefaultProvider:         config.ProviderGemini,
		ExtractionProvider:      config.ProviderGemini,
		SummaryProvider:         config.ProviderGemini,
		ExtractionPromptVersion: "v2",
	}
}

func TestAnalyze_ProducesReport(t *testing.T) {
	clients := map[config.Provider]providers.LLMClient{
		config.ProviderGemini:  &mockLLMClient{reply: "Brands:\n- Logitech\n\nProducts:\n- MX Master"},
		config.ProviderChatGPT: &mockLLMClient{reply: "Get a Logitech MX Master."},
	}
	p := newTestPrompty(t, testConfig(), clients)

	outcome, reportText, err := p.Analyze(context.Background(), "Tech", "chatgpt", true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if outcome.Result == nil {
		t.Fatalf("Expected a result, got status: %s", outcome.Status)
	}
	if outcome.Result.Provider != "ChatGPT" {
		t.Errorf("Provider = %v, expected ChatGPT", outcome.Result.Provider)
	}
	if !strings.Contains(reportText, "# GEO Report: Tech") {
		t.Errorf("Report should have a header, got:\n%s", reportText)
	}
	if !strings.Contains(reportText, "## Raw Responses") {
		t.Error("Report should include raw responses when requested")
	}
}

func TestAnalyze_UnknownCategory(t *testing.T) {
	clients := map[config.Provider]providers.LLMClient{
		config.ProviderGemini: &mockLLMClient{reply: "unused"},
	}
	p := newTestPrompty(t, testConfig(), clients)

	outcome, reportText, err := p.Analyze(context.Background(), "Cooking", "", false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if reportText != "" {
		t.Errorf("Expected no report for unknown category, got:\n%s", reportText)
	}
	if !strings.HasPrefix(outcome.Status, "Category 'Cooking' not found") {
		t.Errorf("Status = %q, expected not-found status", outcome.Status)
	}
}

func TestAnalyze_ProviderErrors(t *testing.T) {
	clients := map[config.Provider]providers.LLMClient{
		config.ProviderGemini: &mockLLMClient{reply: "unused"},
	}
	p := newTestPrompty(t, testConfig(), clients)

	if _, _, err := p.Analyze(context.Background(), "Tech", "bard", false); err == nil {
		t.Error("Expected error for unknown provider, got none")
	}

	_, _, err := p.Analyze(context.Background(), "Tech", "claude", false)
	if err == nil || !strings.Contains(err.Error(), "failed to create LLM client") {
		t.Errorf("Expected client creation error, got: %v", err)
	}
}

func TestAnalyze_FallbackNotConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.FallbackProvider = config.ProviderMistral

	clients := map[config.Provider]providers.LLMClient{
		config.ProviderGemini: &mockLLMClient{reply: "unused"},
	}
	p := newTestPrompty(t, cfg, clients)

	_, _, err := p.Analyze(context.Background(), "Tech", "", false)
	if err == nil || !strings.Contains(err.Error(), "failed to create fallback client") {
		t.Errorf("Expected fallback client error, got: %v", err)
	}

	if _, err := p.Server(); err == nil {
		t.Error("Expected Server() to fail without the fallback client")
	}
}

func TestChatAndCategories_WithoutAnalysisClients(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultProvider = config.ProviderChatGPT

	// Only ChatGPT is configured; the Gemini extraction and summary clients are never built
	clients := map[config.Provider]providers.LLMClient{
		config.ProviderChatGPT: &mockLLMClient{reply: "hello"},
	}
	p := newTestPrompty(t, cfg, clients)

	if got := len(p.Categories()); got != 1 {
		t.Errorf("len(Categories()) = %d, expected 1", got)
	}

	session, err := p.NewChatSession("chatgpt")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if reply := session.Send(context.Background(), "hi"); reply.Content != "hello" {
		t.Errorf("Reply = %q, expected hello", reply.Content)
	}

	_, _, err = p.Analyze(context.Background(), "Tech", "chatgpt", false)
	if err == nil || !strings.Contains(err.Error(), "failed to create extraction client") {
		t.Errorf("Expected extraction client error on analyze, got: %v", err)
	}
}

func TestNewChatSession(t *testing.T) {
	clients := map[config.Provider]providers.LLMClient{
		config.ProviderGemini: &mockLLMClient{reply: "hello"},
	}
	p := newTestPrompty(t, testConfig(), clients)

	session, err := p.NewChatSession("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if session.Provider() != config.ProviderGemini {
		t.Errorf("Provider = %v, expected default gemini", session.Provider())
	}

	if _, err := p.NewChatSession("llama"); err == nil {
		t.Error("Expected error for unconfigured provider, got none")
	}
}
