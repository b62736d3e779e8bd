package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"

	"nexttrain/internal/departures"
	"nexttrain/internal/metrics"
)

// FeedSource provides the current feed snapshot, refreshing it when stale.
// Satisfied by *feed.Cache.
type FeedSource interface {
	Get(ctx context.Context) (*gtfs.FeedMessage, time.Time, error)
}

// Handler holds shared dependencies for all HTTP handlers.
type Handler struct {
	feed   FeedSource
	modes  *departures.Modes
	mets   *metrics.Collector
	logger *slog.Logger
}

// New creates a Handler.
func New(feed FeedSource, modes *departures.Modes, mets *metrics.Collector, logger *slog.Logger) *Handler {
	return &Handler{feed: feed, modes: modes, mets: mets, logger: logger}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
