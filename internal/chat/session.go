package chat

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"prompty/internal/config"
	"prompty/internal/llm/providers"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn of a conversation
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Session is a single-model conversation. Only the latest user message is sent to the
// model; the history is kept for display. A Session serves one caller at a time.
type Session struct {
	factory  providers.Factory
	provider config.Provider
	client   providers.LLMClient
	history  []ChatMessage
}

// NewSession starts an empty conversation with provider
func NewSession(provider config.Provider, factory providers.Factory) (*Session, error) {
	client, err := factory(provider)
	if err != nil {
		return nil, err
	}
	return &Session{
		factory:  factory,
		provider: provider,
		client:   client,
		history:  []ChatMessage{},
	}, nil
}

// Provider returns the currently selected provider
func (s *Session) Provider() config.Provider {
	return s.provider
}

// Send records text as a user message and returns the assistant reply. A failed call
// is not an error: its message becomes the assistant reply.
func (s *Session) Send(ctx context.Context, text string) ChatMessage {
	s.history = append(s.history, ChatMessage{Role: RoleUser, Content: text})

	content, err := s.client.Query(ctx, text)
	if err != nil {
		slog.Warn("Chat query failed", "provider", s.provider.DisplayName(), "error", err)
		content = err.Error()
	} else {
		content = strings.TrimSpace(content)
	}

	message := ChatMessage{Role: RoleAssistant, Content: content}
	s.history = append(s.history, message)
	return message
}

// SelectModel switches to provider and clears the history, even when provider is
// already selected. If the client cannot be built the session is left unchanged.
func (s *Session) SelectModel(provider config.Provider) error {
	client, err := s.factory(provider)
	if err != nil {
		return err
	}

	slog.Debug("Chat model selected", "from", s.provider.DisplayName(), "to", provider.DisplayName())

	s.provider = provider
	s.client = client
	s.history = []ChatMessage{}
	return nil
}

// Clear drops the history and keeps the selected model
func (s *Session) Clear() {
	s.history = []ChatMessage{}
}

// History returns a copy of the conversation in order
func (s *Session) History() []ChatMessage {
	return slices.Clone(s.history)
}
