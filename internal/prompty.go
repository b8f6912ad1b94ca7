package internal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"prompty/internal/chat"
	"prompty/internal/config"
	"prompty/internal/geo"
	"prompty/internal/llm/providers"
	"prompty/internal/report"
	"prompty/internal/server"
	"prompty/internal/templates"
)

// Prompty wires the template catalog, provider clients and analysis pipeline together.
// The extraction, summary and fallback clients are built on first use, so chat and
// category listing only need the provider they talk to.
type Prompty struct {
	config  *config.Config
	catalog *templates.Catalog
	factory providers.Factory

	mu       sync.Mutex
	analyzer *geo.Analyzer
}

func New(ctx context.Context, cfg *config.Config) (*Prompty, error) {
	catalog, err := templates.Load(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}

	return newPrompty(cfg, catalog, providers.NewFactory(cfg)), nil
}

func newPrompty(cfg *config.Config, catalog *templates.Catalog, factory providers.Factory) *Prompty {
	return &Prompty{
		config:  cfg,
		catalog: catalog,
		factory: factory,
	}
}

// getAnalyzer builds the analysis pipeline once; a failed build is retried on the next call
func (p *Prompty) getAnalyzer() (*geo.Analyzer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.analyzer != nil {
		return p.analyzer, nil
	}

	cfg := p.config

	extractionClient, err := p.factory(cfg.ExtractionProvider)
	if err != nil {
		return nil, fmt.Errorf("failed to create extraction client: %w", err)
	}

	summaryClient, err := p.factory(cfg.SummaryProvider)
	if err != nil {
		return nil, fmt.Errorf("failed to create summary client: %w", err)
	}

	var opts []geo.Option
	if cfg.FallbackProvider != "" {
		fallbackClient, err := p.factory(cfg.FallbackProvider)
		if err != nil {
			return nil, fmt.Errorf("failed to create fallback client: %w", err)
		}
		opts = append(opts, geo.WithFallback(cfg.FallbackProvider, fallbackClient))
	}

	p.analyzer = geo.NewAnalyzer(
		p.catalog,
		geo.NewExtractor(extractionClient, cfg.ExtractionPromptVersion),
		geo.NewSummarizer(summaryClient),
		opts...,
	)
	return p.analyzer, nil
}

// resolveProvider parses an optional provider name, falling back to the configured default
func (p *Prompty) resolveProvider(name string) (config.Provider, error) {
	if strings.TrimSpace(name) == "" {
		return p.config.DefaultProvider, nil
	}
	return config.ParseProvider(name)
}

// Analyze runs one category through a provider and renders the markdown report.
// An unknown category is not an error: the outcome status says so and no report is produced.
func (p *Prompty) Analyze(ctx context.Context, category, providerName string, includeRaw bool) (geo.Outcome, string, error) {
	provider, err := p.resolveProvider(providerName)
	if err != nil {
		return geo.Outcome{}, "", err
	}

	analyzer, err := p.getAnalyzer()
	if err != nil {
		return geo.Outcome{}, "", err
	}

	client, err := p.factory(provider)
	if err != nil {
		return geo.Outcome{}, "", fmt.Errorf("failed to create LLM client: %w", err)
	}

	slog.Debug("Starting analysis", "category", category, "provider", provider.DisplayName())

	outcome := analyzer.RunAnalysis(ctx, category, provider, client, func(done, total int, prompt string) {
		slog.Info("Prompt processed", "progress", fmt.Sprintf("%d/%d", done, total), "prompt", prompt)
	})

	if _, ok := p.catalog.Lookup(category); !ok {
		return outcome, "", nil
	}

	reportText, err := report.GenerateReport(&report.ReportConfig{
		Category:       category,
		Provider:       provider.DisplayName(),
		Outcome:        outcome,
		GenerationTime: time.Now(),
		IncludeRaw:     includeRaw,
	})
	if err != nil {
		return outcome, "", fmt.Errorf("failed to generate report: %w", err)
	}

	return outcome, reportText, nil
}

// NewChatSession starts a chat session with the named provider or the default one
func (p *Prompty) NewChatSession(providerName string) (*chat.Session, error) {
	provider, err := p.resolveProvider(providerName)
	if err != nil {
		return nil, err
	}
	return chat.NewSession(provider, p.factory)
}

func (p *Prompty) Categories() []templates.Category {
	return p.catalog.Categories()
}

func (p *Prompty) Server() (*server.Server, error) {
	analyzer, err := p.getAnalyzer()
	if err != nil {
		return nil, err
	}
	return server.New(p.config, p.catalog, analyzer, p.factory), nil
}
