package server

import (
	"sync"

	"github.com/google/uuid"

	"prompty/internal/chat"
	"prompty/internal/metrics"
)

// sessionEntry serializes access to one chat session
type sessionEntry struct {
	mu      sync.Mutex
	session *chat.Session
}

type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*sessionEntry)}
}

func (s *sessionStore) add(session *chat.Session) string {
	id := uuid.NewString()

	s.mu.Lock()
	s.sessions[id] = &sessionEntry{session: session}
	s.mu.Unlock()

	metrics.ChatSessionsActive.Inc()
	return id
}

func (s *sessionStore) get(id string) (*sessionEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.sessions[id]
	return entry, ok
}

func (s *sessionStore) remove(id string) bool {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if ok {
		metrics.ChatSessionsActive.Dec()
	}
	return ok
}
