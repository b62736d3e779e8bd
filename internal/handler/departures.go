package handler

import (
	"net/http"
	"strconv"
	"time"

	"nexttrain/internal/departures"
)

// departuresResponse is the JSON payload for GET /api/departures/{mode}.
type departuresResponse struct {
	Mode       string          `json:"mode"`
	Departures []departureView `json:"departures"`
	FetchedAt  time.Time       `json:"fetchedAt"`
}

type departureView struct {
	Line          string    `json:"line"`
	Minutes       int       `json:"minutes"`
	Platform      string    `json:"platform,omitempty"`
	DepartureTime time.Time `json:"departureTime"`
}

// Departures serves the ranked upcoming-departure list for one mode.
// Unknown modes are a client error; upstream or decode trouble is a server
// error. Zero departures is a normal empty response.
func (h *Handler) Departures(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("mode")
	mode, err := h.modes.Get(name)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 20 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 20")
			return
		}
		mode.Limit = n
	}

	snapshot, fetchedAt, err := h.feed.Get(r.Context())
	if err != nil {
		h.logger.Error("feed unavailable", "mode", name, "error", err)
		writeError(w, http.StatusBadGateway, "realtime feed unavailable")
		return
	}

	start := time.Now()
	deps := departures.Resolve(snapshot, mode, start)
	h.mets.ResolveDuration.Observe(time.Since(start).Seconds())

	views := make([]departureView, 0, len(deps))
	for _, d := range deps {
		views = append(views, departureView{
			Line:          d.Line,
			Minutes:       d.Minutes,
			Platform:      d.Platform,
			DepartureTime: d.DepartureTime,
		})
	}

	writeJSON(w, http.StatusOK, departuresResponse{
		Mode:       name,
		Departures: views,
		FetchedAt:  fetchedAt,
	})
}
