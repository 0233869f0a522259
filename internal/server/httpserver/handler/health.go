package handler

import (
	"net/http"
	"time"
)

// handleHealth handles GET /healthz.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{
		"status": "alive",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
