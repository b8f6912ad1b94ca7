package providers

import (
	"context"
	"time"

	"prompty/internal/config"
	"prompty/internal/metrics"
)

// instrumentedClient records request counts and latency for the wrapped client
type instrumentedClient struct {
	next     LLMClient
	provider config.Provider
}

// Instrument wraps a client with Prometheus request metrics
func Instrument(provider config.Provider, next LLMClient) LLMClient {
	return &instrumentedClient{next: next, provider: provider}
}

func (c *instrumentedClient) Query(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	reply, err := c.next.Query(ctx, prompt)

	metrics.ProviderRequestDuration.WithLabelValues(string(c.provider)).Observe(time.Since(start).Seconds())
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeError
	}
	metrics.ProviderRequests.WithLabelValues(string(c.provider), outcome).Inc()

	return reply, err
}
