package geo

import (
	"context"
	"sync"
)

// stubClient answers queries through fn and remembers every prompt it saw
type stubClient struct {
	mu      sync.Mutex
	fn      func(prompt string) (string, error)
	prompts []string
}

func newStub(fn func(prompt string) (string, error)) *stubClient {
	return &stubClient{fn: fn}
}

func fixedReply(reply string) *stubClient {
	return newStub(func(string) (string, error) { return reply, nil })
}

func (s *stubClient) Query(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()
	return s.fn(prompt)
}

func (s *stubClient) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}
