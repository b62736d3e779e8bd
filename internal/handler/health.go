package handler

import "net/http"

// Health reports liveness. It deliberately doesn't touch the feed cache so a
// flapping upstream never fails the probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
