// Package server provides the HTTP surface for Kazoeru: the upload form,
// the results page, and the JSON API.
package server

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/kazoeru/internal/config"
	"github.com/hyperjump/kazoeru/internal/extract"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server is the HTTP server for the Kazoeru web UI and API.
type Server struct {
	extractor *extract.Extractor
	config    *config.Config
	logger    *zap.Logger
	templates *template.Template
	server    *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Server{
		extractor: extract.NewExtractor(),
		config:    cfg,
		logger:    logger,
		templates: tmpl,
	}, nil
}

// Router builds the chi router with all routes and middleware attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Get("/", s.handleIndex)
	r.Post("/upload", s.handleUpload)
	r.Post("/api/v1/analyze", s.handleAnalyze)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
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
