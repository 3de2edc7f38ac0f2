// Package server provides the HTTP API and UI for docquery.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"docquery/internal/config"
	"docquery/internal/ingest"
	"docquery/internal/prompt"
	"docquery/internal/session"
	"docquery/internal/web"
)

// Asker dispatches a composed prompt to the AI backend.
type Asker interface {
	Ask(ctx context.Context, promptText string) (string, error)
}

// Server is the HTTP server for the docquery API and embedded UI.
type Server struct {
	store    *session.Store
	ingestor *ingest.Ingestor
	builder  *prompt.Builder
	asker    Asker
	config   *config.ServerConfig
	logger   *zap.Logger
	server   *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	store *session.Store,
	ingestor *ingest.Ingestor,
	builder *prompt.Builder,
	asker Asker,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		store:    store,
		ingestor: ingestor,
		builder:  builder,
		asker:    asker,
		config:   cfg,
		logger:   logger,
	}
}

// Router builds the chi router with all API and UI routes mounted.
func (s *Server) Router() (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	// No timeout middleware: a dispatch waits on the backend for as long as
	// it takes (the backend call itself has no deadline by default).

	r.Post("/api/v1/file", s.handleUploadFile)
	r.Get("/api/v1/file", s.handleGetFile)
	r.Delete("/api/v1/file", s.handleDeleteFile)
	r.Post("/api/v1/ask", s.handleAsk)
	r.Get("/health", s.handleHealth)

	ui, err := web.Handler()
	if err != nil {
		return nil, fmt.Errorf("embedded UI: %w", err)
	}
	r.Handle("/*", ui)
	return r, nil
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	r, err := s.Router()
	if err != nil {
		return err
	}
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
