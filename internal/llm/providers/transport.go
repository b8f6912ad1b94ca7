package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"prompty/internal/config"
	httputil "prompty/internal/http"
	llmerrors "prompty/internal/llm/errors"
)

// defaultTemperature matches the sampling used for shopping answers across providers
const defaultTemperature = 0.7

// newModelHTTPClient builds the HTTP client shared by the raw JSON providers
func newModelHTTPClient(cfg *config.Config) *http.Client {
	return httputil.NewHTTPClient(httputil.HTTPClientOptions{
		Timeout:       time.Duration(cfg.ModelTimeoutSeconds) * time.Second,
		SkipSSLVerify: cfg.ModelSkipSSLVerify,
	})
}

// postJSON marshals payload, POSTs it to endpoint and decodes a 200 reply into out.
// Every failure comes back as a *ProviderError tagged with provider.
func postJSON(ctx context.Context, httpClient *http.Client, provider, endpoint string, headers map[string]string, payload, out any) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return llmerrors.New(provider, "marshal request", err)
	}

	slog.Debug(provider+" API request", "endpoint", endpoint, "request", string(jsonData))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return llmerrors.New(provider, "create request", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return llmerrors.New(provider, "http request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return llmerrors.New(provider, "read response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return llmerrors.FromStatus(provider, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return llmerrors.New(provider, "unmarshal response", err)
	}

	return nil
}

// bearer returns the Authorization header for a key, or no headers when the key is empty
func bearer(key string) map[string]string {
	if key == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + key}
}
