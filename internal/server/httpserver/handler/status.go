package handler

import (
	"net/http"
	"time"

	"github.com/atelierlabs/atelier-go/internal/core/service"
)

// handleStatus handles GET /api/status.
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	authMode := "none"
	if h.auth.RequiresAuth() {
		authMode = "password"
	}

	sessions, err := h.sessions.List(r.Context(), &service.ListSessionsRequest{
		Filter: &service.SessionFilter{Status: "active", PageSize: 1},
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	workspaces, err := h.workspaces.Recent(r.Context(), 0)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, StatusResponse{
		Version:        h.version,
		UptimeSeconds:  int64(time.Since(h.startedAt).Seconds()),
		AuthMode:       authMode,
		SessionsActive: sessions.Total,
		Workspaces:     len(workspaces),
	})
}
