package handler

import (
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/atelierlabs/atelier-go/internal/core/domain"
	"github.com/atelierlabs/atelier-go/internal/core/service"
	"github.com/atelierlabs/atelier-go/internal/infra/buildinfo"
	"github.com/atelierlabs/atelier-go/internal/telemetry/metric"
)

// SessionCookie is the name of the browser session cookie.
const SessionCookie = "atelier_session"

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Config carries the services and branding the handlers need.
type Config struct {
	Auth       *service.AuthService
	Sessions   *service.SessionService
	Workspaces *service.WorkspaceService

	Logger *slog.Logger

	// Metrics receives login and revocation counters when non-nil.
	Metrics *metric.Registry

	// AppName and WelcomeText brand the served pages. AppName defaults
	// to "Atelier".
	AppName     string
	WelcomeText string

	// PasswordNote is shown on the login page and tells the user where
	// the password comes from ("see config.yaml", "set by $PASSWORD").
	PasswordNote string

	// Version reported by /api/status. Defaults to the build version.
	Version string

	// SecureCookie marks the session cookie Secure (HTTPS serving).
	SecureCookie bool
}

// Handler is the main HTTP handler that routes requests to the
// appropriate endpoint methods.
type Handler struct {
	auth       *service.AuthService
	sessions   *service.SessionService
	workspaces *service.WorkspaceService
	logger     *slog.Logger
	metrics    *metric.Registry

	appName      string
	welcomeText  string
	passwordNote string
	version      string
	secureCookie bool
	startedAt    time.Time

	mux *http.ServeMux
}

// New creates a new Handler with the given configuration.
func New(cfg *Config) *Handler {
	appName := cfg.AppName
	if appName == "" {
		appName = "Atelier"
	}
	version := cfg.Version
	if version == "" {
		version = buildinfo.Version
	}

	h := &Handler{
		auth:         cfg.Auth,
		sessions:     cfg.Sessions,
		workspaces:   cfg.Workspaces,
		logger:       cfg.Logger,
		metrics:      cfg.Metrics,
		appName:      appName,
		welcomeText:  cfg.WelcomeText,
		passwordNote: cfg.PasswordNote,
		version:      version,
		secureCookie: cfg.SecureCookie,
		startedAt:    time.Now(),
		mux:          http.NewServeMux(),
	}

	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// registerRoutes registers all HTTP routes.
func (h *Handler) registerRoutes() {
	// Health endpoint (no auth required)
	h.mux.HandleFunc("GET /healthz", h.handleHealth)

	// Login exchange
	h.mux.HandleFunc("GET /login", h.handleLoginPage)
	h.mux.HandleFunc("POST /login", h.handleLogin)
	h.mux.HandleFunc("POST /logout", h.handleLogout)

	// Workspace shell
	h.mux.HandleFunc("GET /{$}", h.handleShell)

	// API endpoints
	h.mux.HandleFunc("GET /api/status", h.handleStatus)
	h.mux.HandleFunc("GET /api/sessions", h.handleListSessions)
	h.mux.HandleFunc("DELETE /api/sessions/{id}", h.handleRevokeSession)
}

// writeJSON writes a JSON response with the standard envelope format.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	requestID := getRequestID(r)
	response := NewResponse(requestID, data)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes an error response with the standard envelope format.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	requestID := getRequestID(r)
	response := NewErrorResponse(requestID, code, message, details)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

// getRequestID extracts the request ID set by the RequestID middleware.
func getRequestID(r *http.Request) string {
	return r.Header.Get("X-Request-ID")
}

// handleServiceError converts service errors to HTTP responses.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if domain.IsDomainError(err, "") {
		code := domain.GetErrorCode(err)
		status := errorCodeToHTTPStatus(code)
		h.writeError(w, r, status, code, err.Error(), nil)
		return
	}

	h.logger.Error("internal error", "error", err)
	h.writeError(w, r, http.StatusInternalServerError, "AT-SYS-5000", "internal server error", nil)
}

// errorCodeToHTTPStatus maps error codes to HTTP status codes.
func errorCodeToHTTPStatus(code string) int {
	switch {
	case strings.HasSuffix(code, "-4040"), strings.HasSuffix(code, "-4041"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "-4090"), strings.HasSuffix(code, "-4091"):
		return http.StatusConflict
	case strings.HasSuffix(code, "-4290"):
		return http.StatusTooManyRequests
	case strings.HasSuffix(code, "-4000"), strings.HasSuffix(code, "-4001"), strings.HasSuffix(code, "-4002"):
		return http.StatusBadRequest
	case strings.HasSuffix(code, "-4010"), strings.HasSuffix(code, "-4011"), strings.HasSuffix(code, "-4012"):
		return http.StatusUnauthorized
	case strings.HasSuffix(code, "-4030"), strings.HasSuffix(code, "-4031"):
		return http.StatusForbidden
	case strings.HasPrefix(code, "AT-ARG-"):
		return http.StatusBadRequest
	case strings.HasPrefix(code, "AT-SYS-5"):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}

	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Fall back to RemoteAddr
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
