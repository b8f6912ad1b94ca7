package providers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"prompty/internal/config"
	llmerrors "prompty/internal/llm/errors"
)

// newTestConfig points one provider at a test server
func newTestConfig(provider config.Provider, api string) *config.Config {
	return &config.Config{
		ModelMaxResponseTokens: 1000,
		ModelTimeoutSeconds:    30,
		Models: map[config.Provider]config.ModelSettings{
			provider: {API: api, ModelID: string(provider) + "-test", UserKey: "test-key"},
		},
	}
}

// newStatusServer answers every request with a fixed status and body
func newStatusServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

// requireProviderError asserts err is a *ProviderError for the given provider and returns it
func requireProviderError(t *testing.T, err error, provider string) *llmerrors.ProviderError {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var perr *llmerrors.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("error type = %T, want *errors.ProviderError", err)
	}
	if perr.Provider != provider {
		t.Errorf("ProviderError.Provider = %q, want %q", perr.Provider, provider)
	}
	return perr
}
