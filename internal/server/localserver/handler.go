package localserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/atelierlabs/atelier-go/internal/core/service"
	"github.com/atelierlabs/atelier-go/internal/infra/buildinfo"
	"github.com/atelierlabs/atelier-go/internal/infra/ipc"
)

// Handler executes management requests against the running instance's
// services.
type Handler struct {
	sessions   *service.SessionService
	workspaces *service.WorkspaceService
	logger     *slog.Logger

	// onOpen is notified after a delegated open has been recorded, so
	// the serving layer can surface the new targets.
	onOpen func(*ipc.OpenRequest)

	version   string
	startedAt time.Time
}

// HandlerConfig wires the services a Handler needs.
type HandlerConfig struct {
	Sessions   *service.SessionService
	Workspaces *service.WorkspaceService
	Logger     *slog.Logger

	// Version reported by status and version. Defaults to the build
	// version.
	Version string

	// OnOpen, when non-nil, runs after a delegated open succeeds.
	OnOpen func(*ipc.OpenRequest)
}

// NewHandler creates a Handler.
func NewHandler(cfg *HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	version := cfg.Version
	if version == "" {
		version = buildinfo.Version
	}

	return &Handler{
		sessions:   cfg.Sessions,
		workspaces: cfg.Workspaces,
		logger:     logger,
		onOpen:     cfg.OnOpen,
		version:    version,
		startedAt:  time.Now(),
	}
}

// StatusData is the response payload of the status command.
type StatusData struct {
	Version        string `json:"version"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
	SessionsActive int    `json:"sessions_active"`
	Workspaces     int    `json:"workspaces"`
}

// SessionData is one session in the sessions listing. The token hash
// stays inside the server.
type SessionData struct {
	ID         string `json:"id"`
	IPAddress  string `json:"ip_address,omitempty"`
	UserAgent  string `json:"user_agent,omitempty"`
	CreatedAt  int64  `json:"created_at"`
	ExpiresAt  int64  `json:"expires_at"`
	LastActive int64  `json:"last_active"`
}

// Execute runs one management request and always produces a response;
// failures are carried in the response rather than dropped connections.
func (h *Handler) Execute(ctx context.Context, req *ipc.Request) *ipc.Response {
	h.logger.Debug("management request", "command", req.Command)

	switch req.Command {
	case "ping":
		return ok(nil)
	case "version":
		return ok(buildinfo.Get())
	case "status":
		return h.handleStatus(ctx)
	case "sessions":
		return h.handleSessions(ctx)
	case "revoke":
		return h.handleRevoke(ctx, req.Args)
	case "open":
		return h.handleOpen(ctx, req.Open)
	default:
		return fail("unknown command: " + req.Command)
	}
}

func (h *Handler) handleStatus(ctx context.Context) *ipc.Response {
	listed, err := h.sessions.List(ctx, &service.ListSessionsRequest{
		Filter: &service.SessionFilter{Status: "active", PageSize: 1},
	})
	if err != nil {
		return fail(err.Error())
	}

	recent, err := h.workspaces.Recent(ctx, 0)
	if err != nil {
		return fail(err.Error())
	}

	return ok(StatusData{
		Version:        h.version,
		UptimeSeconds:  int64(time.Since(h.startedAt).Seconds()),
		SessionsActive: listed.Total,
		Workspaces:     len(recent),
	})
}

func (h *Handler) handleSessions(ctx context.Context) *ipc.Response {
	listed, err := h.sessions.List(ctx, &service.ListSessionsRequest{
		Filter: &service.SessionFilter{Status: "active"},
	})
	if err != nil {
		return fail(err.Error())
	}

	out := make([]SessionData, 0, len(listed.Items))
	for _, s := range listed.Items {
		out = append(out, SessionData{
			ID:         s.ID,
			IPAddress:  s.IPAddress,
			UserAgent:  s.UserAgent,
			CreatedAt:  s.CreatedAt,
			ExpiresAt:  s.ExpiresAt,
			LastActive: s.LastActive,
		})
	}
	return ok(out)
}

func (h *Handler) handleRevoke(ctx context.Context, cmdArgs []string) *ipc.Response {
	if len(cmdArgs) != 1 || cmdArgs[0] == "" {
		return fail("revoke needs exactly one session id")
	}

	resp, err := h.sessions.Revoke(ctx, &service.RevokeSessionRequest{SessionID: cmdArgs[0]})
	if err != nil {
		return fail(err.Error())
	}
	return ok(map[string]bool{"revoked": resp.Success})
}

func (h *Handler) handleOpen(ctx context.Context, open *ipc.OpenRequest) *ipc.Response {
	if open == nil {
		return fail("open needs targets")
	}

	targets := make([]string, 0, len(open.Folders)+len(open.Files))
	targets = append(targets, open.Folders...)
	targets = append(targets, open.Files...)

	recorded, err := h.workspaces.Open(ctx, &service.OpenWorkspaceRequest{Targets: targets})
	if err != nil {
		return fail(err.Error())
	}

	h.logger.Info("delegated open accepted",
		"folders", len(open.Folders),
		"files", len(open.Files))
	if h.onOpen != nil {
		h.onOpen(open)
	}
	return ok(map[string]int{"opened": len(recorded.Workspaces)})
}

func ok(data any) *ipc.Response {
	resp := &ipc.Response{OK: true}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return fail("encode response: " + err.Error())
		}
		resp.Data = raw
	}
	return resp
}

func fail(msg string) *ipc.Response {
	return &ipc.Response{Error: msg}
}
