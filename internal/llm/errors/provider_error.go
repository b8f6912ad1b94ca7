package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ProviderError is returned by every LLM client when a call cannot produce reply text.
// StatusCode is zero for transport, encoding and schema failures.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("[%s error] API error %d: %s", e.Provider, e.StatusCode, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("[%s error] %s: %v", e.Provider, e.Message, e.Err)
	default:
		return fmt.Sprintf("[%s error] %s", e.Provider, e.Message)
	}
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ContextWindowExceeded reports whether the provider rejected the prompt for its size
func (e *ProviderError) ContextWindowExceeded() bool {
	switch e.StatusCode {
	case 400, 413, 429:
	default:
		return false
	}

	message := strings.ToLower(e.Message)
	for _, phrase := range oversizedPromptPhrases {
		if strings.Contains(message, phrase) {
			return true
		}
	}
	return false
}

// IsContextWindowExceeded reports whether err carries a ProviderError rejecting an oversized prompt
func IsContextWindowExceeded(err error) bool {
	var perr *ProviderError
	return errors.As(err, &perr) && perr.ContextWindowExceeded()
}

// New builds a ProviderError for a failure without an HTTP status
func New(provider, message string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Message: message, Err: err}
}

// FromStatus builds a ProviderError for a non-200 HTTP response
func FromStatus(provider string, statusCode int, body []byte) *ProviderError {
	return &ProviderError{Provider: provider, StatusCode: statusCode, Message: strings.TrimSpace(string(body))}
}

// ProviderOf returns the provider tag of err, or "" if err is not a ProviderError
func ProviderOf(err error) string {
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr.Provider
	}
	return ""
}

// oversizedPromptPhrases are lowercase fragments providers use when a prompt does not fit
var oversizedPromptPhrases = []string{
	"context length",
	"context window",
	"maximum context",
	"token limit",
	"too many tokens",
	"maximum tokens",
	"prompt is too long",
	"prompt too long",
	"input too large",
	"exceeds maximum",
}
