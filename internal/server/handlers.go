package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"prompty/internal/chat"
	"prompty/internal/config"
)

type analysisRequest struct {
	Category string `json:"category"`
	Provider string `json:"provider,omitempty"`
}

type sessionRequest struct {
	Provider string `json:"provider,omitempty"`
}

type messageRequest struct {
	Content string `json:"content"`
}

type sessionView struct {
	ID       string             `json:"id"`
	Provider config.Provider    `json:"provider"`
	History  []chat.ChatMessage `json:"history"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// decodeBody reads a JSON request body into v; an empty body leaves v untouched
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// providerOrDefault parses an optional provider name
func (s *Server) providerOrDefault(name string) (config.Provider, error) {
	if strings.TrimSpace(name) == "" {
		return s.cfg.DefaultProvider, nil
	}
	return config.ParseProvider(name)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Categories())
}

func (s *Server) runAnalysis(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Category) == "" {
		writeError(w, http.StatusBadRequest, "category is required")
		return
	}

	provider, err := s.providerOrDefault(req.Provider)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	client, err := s.factory(provider)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	outcome := s.analyzer.RunAnalysis(r.Context(), req.Category, provider, client, nil)

	status := http.StatusOK
	if _, ok := s.catalog.Lookup(req.Category); !ok {
		status = http.StatusNotFound
	}
	writeJSON(w, status, outcome)
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	provider, err := s.providerOrDefault(req.Provider)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := chat.NewSession(provider, s.factory)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	id := s.sessions.add(session)
	slog.Info("Chat session created", "session_id", id, "provider", provider.DisplayName())

	writeJSON(w, http.StatusCreated, sessionView{ID: id, Provider: provider, History: session.History()})
}

// withSession looks up the {id} session and runs fn while holding its lock
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(id string, session *chat.Session)) {
	id := chi.URLParam(r, "id")
	entry, ok := s.sessions.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "chat session not found: "+id)
		return
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	fn(id, entry.session)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(id string, session *chat.Session) {
		writeJSON(w, http.StatusOK, sessionView{ID: id, Provider: session.Provider(), History: session.History()})
	})
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.sessions.remove(id) {
		writeError(w, http.StatusNotFound, "chat session not found: "+id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) selectModel(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	provider, err := config.ParseProvider(req.Provider)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.withSession(w, r, func(id string, session *chat.Session) {
		if err := session.SelectModel(provider); err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, sessionView{ID: id, Provider: session.Provider(), History: session.History()})
	})
}

func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	s.withSession(w, r, func(id string, session *chat.Session) {
		writeJSON(w, http.StatusOK, session.Send(r.Context(), req.Content))
	})
}
