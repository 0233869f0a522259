package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/atelierlabs/atelier-go/internal/core/domain"
	"github.com/atelierlabs/atelier-go/internal/core/service"
)

// handleListSessions handles GET /api/sessions.
func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := &service.SessionFilter{Status: q.Get("status")}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(q.Get("page_size")); err == nil {
		filter.PageSize = size
	}

	resp, err := h.sessions.List(r.Context(), &service.ListSessionsRequest{Filter: filter})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	out := ListSessionsResponse{
		Items:    make([]SessionResponse, 0, len(resp.Items)),
		Total:    resp.Total,
		Page:     resp.Page,
		PageSize: resp.PageSize,
	}
	for _, s := range resp.Items {
		out.Items = append(out.Items, sessionToResponse(s))
	}

	h.writeJSON(w, r, http.StatusOK, out)
}

// handleRevokeSession handles DELETE /api/sessions/{id}.
func (h *Handler) handleRevokeSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		h.writeError(w, r, http.StatusBadRequest, "AT-SYS-4000", "session id is required", nil)
		return
	}

	resp, err := h.sessions.Revoke(r.Context(), &service.RevokeSessionRequest{SessionID: sessionID})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.IncSessionRevoked()
	}

	h.writeJSON(w, r, http.StatusOK, RevokeSessionResponse{Revoked: resp.Success})
}

// sessionToResponse converts a domain session to its API form. The
// token hash never leaves the server.
func sessionToResponse(s *domain.Session) SessionResponse {
	return SessionResponse{
		ID:           s.ID,
		IPAddress:    s.IPAddress,
		UserAgent:    s.UserAgent,
		LastAccessIP: s.LastAccessIP,
		CreatedAt:    time.UnixMilli(s.CreatedAt),
		ExpiresAt:    time.UnixMilli(s.ExpiresAt),
		LastActive:   time.UnixMilli(s.LastActive),
	}
}
