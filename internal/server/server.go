package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"nexttrain/internal/config"
	"nexttrain/internal/handler"
	"nexttrain/internal/metrics"
)

// Server is the HTTP server for nexttrain.
type Server struct {
	mux    *http.ServeMux
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a new Server with all routes registered.
func New(cfg *config.Config, h *handler.Handler, mets *metrics.Collector, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/departures/{mode}", h.Departures)
	mux.HandleFunc("GET /healthz", h.Health)
	mux.Handle("GET /metrics", mets.Handler())

	return &Server{mux: mux, cfg: cfg, logger: logger}
}

// Handler returns the full middleware-wrapped handler, for tests.
func (s *Server) Handler() http.Handler {
	return withMiddleware(s.mux, s.logger)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("server starting", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}
