package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prompty_provider_requests_total",
			Help: "Total number of LLM provider queries by outcome",
		},
		[]string{"provider", "outcome"},
	)

	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prompty_provider_request_duration_seconds",
			Help:    "Duration of LLM provider queries in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60, 120},
		},
		[]string{"provider"},
	)

	AnalysisRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prompty_analysis_runs_total",
			Help: "Total number of GEO analysis runs by result",
		},
		[]string{"result"},
	)

	PromptsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prompty_prompts_dropped_total",
			Help: "Prompts skipped during analysis because every provider call failed",
		},
		[]string{"category"},
	)

	ChatSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "prompty_chat_sessions_active",
			Help: "Number of chat sessions held by the API server",
		},
	)
)

// Outcome labels for ProviderRequests
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Result labels for AnalysisRuns
const (
	ResultSuccess          = "success"
	ResultNoMentions       = "no_mentions"
	ResultCategoryNotFound = "category_not_found"
)
