package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"prompty/internal/config"
	"prompty/internal/geo"
	"prompty/internal/llm/providers"
	"prompty/internal/templates"
)

// requestTimeout bounds a whole analysis run: every prompt plus extraction and summary calls
const requestTimeout = 10 * time.Minute

// Server exposes analysis and chat over HTTP
type Server struct {
	cfg      *config.Config
	catalog  *templates.Catalog
	analyzer *geo.Analyzer
	factory  providers.Factory
	sessions *sessionStore
}

func New(cfg *config.Config, catalog *templates.Catalog, analyzer *geo.Analyzer, factory providers.Factory) *Server {
	return &Server{
		cfg:      cfg,
		catalog:  catalog,
		analyzer: analyzer,
		factory:  factory,
		sessions: newSessionStore(),
	}
}

// Routes builds the chi router with middleware and every endpoint
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogging)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(requestTimeout))

	origins := s.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", s.health)
	r.Get("/categories", s.listCategories)
	r.Post("/analysis", s.runAnalysis)

	r.Route("/chat/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.deleteSession)
			r.Put("/model", s.selectModel)
			r.Post("/messages", s.sendMessage)
		})
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// Run serves until ctx is canceled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.ServerAddr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      requestTimeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting API server", "addr", s.cfg.ServerAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down API server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	slog.Info("API server stopped")
	return nil
}

// requestLogging logs every request with its request id, status and duration
func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		level := slog.LevelInfo
		if ww.Status() >= 500 {
			level = slog.LevelError
		}
		slog.Log(r.Context(), level, "Request completed",
			"request_id", chimiddleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}
