package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/atelierlabs/atelier-go/internal/core/service"
	"github.com/atelierlabs/atelier-go/internal/server/httpserver/handler"
	"github.com/atelierlabs/atelier-go/internal/telemetry/metric"
)

// RouterConfig holds the services and settings the router wires together.
type RouterConfig struct {
	// AuthService validates sessions and handles the login exchange.
	AuthService *service.AuthService

	// SessionService backs the /api/sessions endpoints.
	SessionService *service.SessionService

	// WorkspaceService feeds the shell page and /api/status.
	WorkspaceService *service.WorkspaceService

	// Logger for request logging.
	Logger *slog.Logger

	// Metrics receives request counts and durations. Nil disables both
	// the recording middleware and the /metrics endpoint.
	Metrics *metric.Registry

	// AppName and WelcomeText brand the served pages.
	AppName     string
	WelcomeText string

	// PasswordNote tells the login page where the password comes from.
	PasswordNote string

	// Version reported by /api/status. Defaults to the build version.
	Version string

	// ProxyDomains enable host-based port forwarding.
	ProxyDomains []string

	// SecureCookie marks issued cookies Secure; set it when serving TLS.
	SecureCookie bool

	// MetricsAuthRequired gates /metrics behind the session cookie.
	// Scrapers cannot follow a login redirect, so this defaults off.
	MetricsAuthRequired bool
}

// NewRouter creates and configures the HTTP router with all routes and
// middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	h := handler.New(&handler.Config{
		Auth:         cfg.AuthService,
		Sessions:     cfg.SessionService,
		Workspaces:   cfg.WorkspaceService,
		Logger:       cfg.Logger,
		Metrics:      cfg.Metrics,
		AppName:      cfg.AppName,
		WelcomeText:  cfg.WelcomeText,
		PasswordNote: cfg.PasswordNote,
		Version:      cfg.Version,
		SecureCookie: cfg.SecureCookie,
	})

	authGate := SessionAuth(&SessionAuthConfig{
		AuthService: cfg.AuthService,
		Logger:      cfg.Logger,
		Metrics:     cfg.Metrics,
	})

	mux := http.NewServeMux()

	// Health probe and the login exchange stay reachable without a
	// session; everything else sits behind the auth gate.
	mux.Handle("GET /healthz", h)
	mux.Handle("GET /login", h)
	mux.Handle("POST /login", h)
	mux.Handle("POST /logout", h)

	protected := Chain(h, authGate)
	mux.Handle("GET /{$}", protected)
	mux.Handle("GET /api/status", protected)
	mux.Handle("GET /api/sessions", protected)
	mux.Handle("DELETE /api/sessions/{id}", protected)

	if cfg.Metrics != nil {
		metricsHandler := cfg.Metrics.Handler()
		if cfg.MetricsAuthRequired {
			metricsHandler = authGate(metricsHandler)
		}
		mux.Handle("GET /metrics", metricsHandler)
	}

	// Outer chain shared by every route. The proxy sits innermost so
	// forwarded requests are still recovered, identified, and logged.
	middlewares := []Middleware{
		Recover(cfg.Logger),
		RequestID(),
		RequestLog(cfg.Logger),
	}
	if cfg.Metrics != nil {
		middlewares = append(middlewares, Metrics(cfg.Metrics))
	}
	if len(cfg.ProxyDomains) > 0 {
		middlewares = append(middlewares, ProxyDomain(&ProxyConfig{
			Domains: cfg.ProxyDomains,
			Logger:  cfg.Logger,
		}, authGate))
	}

	return Chain(mux, middlewares...)
}
