// Package server provides the HTTP server and route table of the API
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/pantryplan/api/internal/infrastructure/config"
)

// Server represents the HTTP server
type Server struct {
	config *config.Config
	logger *zap.Logger
	server *http.Server
}

// NewServer creates a new HTTP server around the API router. Every request
// gets an OpenTelemetry server span except health and metrics probes.
func NewServer(cfg *config.Config, router http.Handler, logger *zap.Logger) *Server {
	handler := otelhttp.NewHandler(router, cfg.App.Name,
		otelhttp.WithFilter(func(r *http.Request) bool {
			return !strings.HasPrefix(r.URL.Path, "/health") && r.URL.Path != cfg.Monitoring.MetricsPath
		}),
	)

	return &Server{
		config: cfg,
		logger: logger.Named("http-server"),
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:           handler,
			ReadTimeout:       cfg.Server.ReadTimeout,
			WriteTimeout:      cfg.Server.WriteTimeout,
			IdleTimeout:       cfg.Server.IdleTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
		},
	}
}

// Handler returns the instrumented root handler
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
