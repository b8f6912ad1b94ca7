package geo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"prompty/internal/config"
	llmerrors "prompty/internal/llm/errors"
	"prompty/internal/llm/providers"
	"prompty/internal/metrics"
	"prompty/internal/templates"
)

// ProgressFunc is told after each prompt how many of the category's prompts are done
type ProgressFunc func(done, total int, prompt string)

// Analyzer runs GEO analysis for one category at a time
type Analyzer struct {
	catalog          *templates.Catalog
	extractor        *Extractor
	summarizer       *Summarizer
	fallback         providers.LLMClient
	fallbackProvider config.Provider
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithFallback retries each failed prompt once on another provider
func WithFallback(provider config.Provider, client providers.LLMClient) Option {
	return func(a *Analyzer) {
		a.fallbackProvider = provider
		a.fallback = client
	}
}

func NewAnalyzer(catalog *templates.Catalog, extractor *Extractor, summarizer *Summarizer, opts ...Option) *Analyzer {
	a := &Analyzer{
		catalog:    catalog,
		extractor:  extractor,
		summarizer: summarizer,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// promptResult is the tagged outcome of one prompt: exactly one of record or failure is set
type promptResult struct {
	record  *RawRecord
	failure *PromptFailure
}

// RunAnalysis sends every prompt of category to client in order and aggregates the
// extracted mentions. It never fails; problems are reported through the Outcome.
func (a *Analyzer) RunAnalysis(ctx context.Context, category string, provider config.Provider, client providers.LLMClient, progress ProgressFunc) Outcome {
	cat, ok := a.catalog.Lookup(category)
	if !ok {
		metrics.AnalysisRuns.WithLabelValues(metrics.ResultCategoryNotFound).Inc()
		return Outcome{
			RawRecords: []RawRecord{},
			Failures:   []PromptFailure{},
			Status:     fmt.Sprintf("Category '%s' not found. Please try one of: [%s]", category, strings.Join(a.catalog.Names(), ", ")),
		}
	}

	slog.Info("Starting analysis", "category", cat.Name, "provider", provider.DisplayName(), "prompts", len(cat.Prompts))

	records := []RawRecord{}
	failures := []PromptFailure{}
	var brands, products []string

	total := len(cat.Prompts)
	for i, prompt := range cat.Prompts {
		result := a.queryPrompt(ctx, prompt, provider, client)

		if result.failure != nil {
			failures = append(failures, *result.failure)
			metrics.PromptsDropped.WithLabelValues(cat.Name).Inc()
			slog.Warn("Skipping prompt after query failure",
				"category", cat.Name,
				"prompt", prompt,
				"provider", result.failure.Provider,
				"error", result.failure.Error)
		} else {
			records = append(records, *result.record)

			mentions, err := a.extractor.Extract(ctx, result.record.Response)
			if err != nil {
				slog.Warn("Mention extraction failed, continuing with no mentions", "prompt", prompt, "error", err)
			}
			brands = append(brands, mentions.Brands...)
			products = append(products, mentions.Products...)
		}

		if progress != nil {
			progress(i+1, total, prompt)
		}
	}

	if len(brands) == 0 && len(products) == 0 {
		metrics.AnalysisRuns.WithLabelValues(metrics.ResultNoMentions).Inc()
		slog.Info("Analysis found no mentions", "category", cat.Name, "answered", len(records), "failed", len(failures))
		return Outcome{
			RawRecords: records,
			Failures:   failures,
			Status:     "Analysis finished, but no recognizable brands or products were extracted.",
		}
	}

	responses := make([]string, len(records))
	for i, record := range records {
		responses[i] = record.Response
	}
	summary := a.summarizer.Summarize(ctx, responses)

	status := fmt.Sprintf("Analysis complete: %d of %d prompts answered for category '%s'.", len(records), total, cat.Name)

	metrics.AnalysisRuns.WithLabelValues(metrics.ResultSuccess).Inc()
	slog.Info("Analysis complete",
		"category", cat.Name,
		"answered", len(records),
		"failed", len(failures),
		"brands", len(brands),
		"products", len(products))

	return Outcome{
		Result: &AnalysisResult{
			Category:      cat.Name,
			Provider:      provider.DisplayName(),
			BrandCounts:   Tally(brands),
			ProductCounts: Tally(products),
			Summary:       summary,
			RawRecords:    records,
			Failures:      failures,
			Status:        status,
		},
		RawRecords: records,
		Failures:   failures,
		Status:     status,
	}
}

// queryPrompt asks the selected client and, if configured, the fallback client once
func (a *Analyzer) queryPrompt(ctx context.Context, prompt string, provider config.Provider, client providers.LLMClient) promptResult {
	response, err := client.Query(ctx, prompt)
	if err == nil {
		return promptResult{record: &RawRecord{Prompt: prompt, Response: response}}
	}

	failedProvider := provider
	if a.fallback != nil && a.fallbackProvider != provider && ctx.Err() == nil {
		slog.Warn("Query failed, retrying with fallback provider",
			"provider", provider.DisplayName(),
			"fallback", a.fallbackProvider.DisplayName(),
			"error", err)

		response, fallbackErr := a.fallback.Query(ctx, prompt)
		if fallbackErr == nil {
			return promptResult{record: &RawRecord{Prompt: prompt, Response: response}}
		}
		failedProvider, err = a.fallbackProvider, fallbackErr
	}

	name := llmerrors.ProviderOf(err)
	if name == "" {
		name = failedProvider.DisplayName()
	}
	return promptResult{failure: &PromptFailure{Prompt: prompt, Provider: name, Error: err.Error()}}
}
