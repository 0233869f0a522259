package handler

import (
	"net/http"
	"time"
)

// shellPageData feeds the workspace shell template.
type shellPageData struct {
	AppName     string
	WelcomeText string
	AuthEnabled bool
	Workspaces  []shellWorkspace
}

// shellWorkspace is one row of the recent-workspaces table.
type shellWorkspace struct {
	Path       string
	Kind       string
	LastOpened string
	OpenCount  int64
}

// handleShell handles GET /. It serves the workspace shell page with
// the most recently opened targets.
func (h *Handler) handleShell(w http.ResponseWriter, r *http.Request) {
	recent, err := h.workspaces.Recent(r.Context(), 10)
	if err != nil {
		// The page is still useful without the table.
		h.logger.Warn("failed to load recent workspaces", "error", err)
	}

	data := shellPageData{
		AppName:     h.appName,
		WelcomeText: h.welcomeText,
		AuthEnabled: h.auth.RequiresAuth(),
	}
	for _, ws := range recent {
		data.Workspaces = append(data.Workspaces, shellWorkspace{
			Path:       ws.Path,
			Kind:       string(ws.Kind),
			LastOpened: time.UnixMilli(ws.LastOpened).UTC().Format("2006-01-02 15:04"),
			OpenCount:  ws.OpenCount,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, "shell.html", data); err != nil {
		h.logger.Error("failed to render shell page", "error", err)
	}
}
