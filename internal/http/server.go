// Package http exposes the validation engine over a small management API:
// ad-hoc document validation for registrants, per-document and whole-corpus
// checks, and the usual health and status endpoints.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"zonewarden/internal/corpus"
)

// ServerConfig holds the configuration for the validation API server.
type ServerConfig struct {
	Listen    string
	AuthToken string // Bearer token; empty disables auth.
}

// Server is the validation API server.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
}

// NewServer creates a validation API server wired to the given corpus
// runner.
func NewServer(cfg ServerConfig, runner *corpus.Runner) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(LoggingMiddleware())

	h := NewValidationHandler(runner)

	// Public endpoints (no auth).
	engine.GET("/health", HealthHandler)
	engine.GET("/status", h.Status)

	// Authenticated validation endpoints.
	api := engine.Group("/")
	api.Use(AuthMiddleware(cfg.AuthToken))
	{
		api.POST("/validate", h.ValidateDocument)
		api.GET("/documents", h.ListDocuments)
		api.GET("/documents/:name", h.GetDocument)
		api.POST("/corpus/check", h.CheckCorpus)
	}

	return &Server{
		httpServer: &http.Server{
			Addr:    cfg.Listen,
			Handler: engine,
		},
		engine: engine,
	}
}

// Start begins listening. It blocks until the server is shut down.
func (s *Server) Start() error {
	slog.Info("validation API server starting", "address", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server with a 5-second deadline.
func (s *Server) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}
}

// Engine returns the underlying Gin engine (useful for testing).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
