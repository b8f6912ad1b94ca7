package http

import (
	"crypto/tls"
	"net/http"
	"time"
)

// DefaultTimeout applies when HTTPClientOptions.Timeout is zero
const DefaultTimeout = 60 * time.Second

// UserAgent is sent with every outbound request
const UserAgent = "prompty/1.0"

// HTTPClientOptions configures HTTP client creation
type HTTPClientOptions struct {
	// Timeout is the request timeout duration (0 means DefaultTimeout)
	Timeout time.Duration
	// SkipSSLVerify disables SSL certificate verification (use with caution)
	SkipSSLVerify bool
}

// NewHTTPClient creates an HTTP client with the specified options
func NewHTTPClient(opts HTTPClientOptions) *http.Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	base := http.DefaultTransport
	if opts.SkipSSLVerify {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		base = transport
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: &userAgentTransport{base: base},
	}
}

// userAgentTransport stamps requests that do not already carry a User-Agent
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", UserAgent)
	return t.base.RoundTrip(clone)
}
