package httpserver

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/atelierlabs/atelier-go/internal/core/domain"
	"github.com/atelierlabs/atelier-go/internal/core/service"
	"github.com/atelierlabs/atelier-go/internal/server/httpserver/handler"
	"github.com/atelierlabs/atelier-go/internal/telemetry/metric"
	"github.com/atelierlabs/atelier-go/pkg/secret"
)

// Context keys for request-scoped values.
type contextKey string

const (
	// ContextKeyRequestID is the context key for the request ID.
	ContextKeyRequestID contextKey = "request_id"

	// ContextKeySession is the context key for the authenticated session.
	ContextKeySession contextKey = "session"

	// ContextKeyStartTime is the context key for the request start time.
	ContextKeyStartTime contextKey = "start_time"
)

// Middleware wraps an http.Handler with additional functionality.
type Middleware func(http.Handler) http.Handler

// Chain chains multiple middlewares together.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// RequestID adds a unique request ID to each request.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Honor an ID the client already carries
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				if b, err := secret.Bytes(8); err == nil {
					requestID = "req-" + hex.EncodeToString(b)
				} else {
					requestID = "req-unknown"
				}
				// Downstream handlers read the ID off the request header
				r.Header.Set("X-Request-ID", requestID)
			}

			w.Header().Set("X-Request-ID", requestID)

			ctx := context.WithValue(r.Context(), ContextKeyRequestID, requestID)
			ctx = context.WithValue(ctx, ContextKeyStartTime, time.Now())

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionAuthConfig holds configuration for the SessionAuth middleware.
type SessionAuthConfig struct {
	AuthService *service.AuthService
	Logger      *slog.Logger

	// Metrics receives token validation outcomes when non-nil.
	Metrics *metric.Registry
}

// SessionAuth gates requests on a valid session cookie. Browser
// navigation is sent to the login page with the original URL in the
// "to" parameter; API paths get a JSON 401 instead. When authentication
// is disabled every request passes through.
func SessionAuth(cfg *SessionAuthConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.AuthService.RequiresAuth() {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(handler.SessionCookie)
			if err != nil || cookie.Value == "" {
				denySession(w, r, "session cookie missing")
				return
			}

			session, err := cfg.AuthService.ValidateToken(r.Context(), &service.ValidateTokenRequest{
				Token:     cookie.Value,
				IPAddress: getClientIP(r),
				UserAgent: r.UserAgent(),
			})
			if err != nil {
				if cfg.Metrics != nil {
					cfg.Metrics.RecordTokenValidation("invalid")
				}
				denySession(w, r, "session invalid")
				return
			}
			if cfg.Metrics != nil {
				cfg.Metrics.RecordTokenValidation("valid")
			}

			ctx := context.WithValue(r.Context(), ContextKeySession, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// denySession rejects an unauthenticated request: JSON for API callers,
// a redirect to the login page for everyone else.
func denySession(w http.ResponseWriter, r *http.Request, message string) {
	if isAPIRequest(r) {
		writeAuthError(w, "AT-AUTH-4011", message)
		return
	}

	to := r.URL.Path
	if r.URL.RawQuery != "" {
		to += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, "/login?to="+url.QueryEscape(to), http.StatusFound)
}

// isAPIRequest reports whether the caller expects JSON rather than HTML.
func isAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") || r.URL.Path == "/metrics"
}

// RequestLog logs one line per completed request.
func RequestLog(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			requestID, _ := r.Context().Value(ContextKeyRequestID).(string)
			startTime, _ := r.Context().Value(ContextKeyStartTime).(time.Time)
			duration := time.Since(startTime)

			attrs := []any{
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.statusCode,
				"duration_ms", duration.Milliseconds(),
				"client_ip", getClientIP(r),
			}

			switch {
			case wrapped.statusCode >= 500:
				logger.Error("request completed with error", attrs...)
			case wrapped.statusCode >= 400:
				logger.Warn("request completed with client error", attrs...)
			default:
				logger.Info("request completed", attrs...)
			}
		})
	}
}

// Metrics records request counts and latencies into the registry.
func Metrics(reg *metric.Registry) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			reg.RecordRequest("http", r.Method, strconv.Itoa(wrapped.statusCode))
			reg.ObserveRequestDuration("http", r.Method, time.Since(start).Seconds())
		})
	}
}

// Recover recovers from panics and returns a 500 error.
func Recover(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					requestID, _ := r.Context().Value(ContextKeyRequestID).(string)
					logger.Error("panic recovered",
						"request_id", requestID,
						"error", err,
						"path", r.URL.Path,
					)

					w.Header().Set("Content-Type", "application/json")
					w.Header().Set("X-Error-Code", "AT-SYS-5000")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"code":    "AT-SYS-5000",
						"message": "internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// GetSessionFromContext retrieves the authenticated session from context.
func GetSessionFromContext(ctx context.Context) *domain.Session {
	if session, ok := ctx.Value(ContextKeySession).(*domain.Session); ok {
		return session
	}
	return nil
}

// GetRequestIDFromContext retrieves the request ID from context.
func GetRequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return requestID
	}
	return ""
}

// writeAuthError writes an authentication error response.
func writeAuthError(w http.ResponseWriter, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)

	status := http.StatusUnauthorized
	if strings.Contains(code, "-403") {
		status = http.StatusForbidden
	} else if strings.HasSuffix(code, "-4290") {
		status = http.StatusTooManyRequests
	}

	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"code":    code,
		"message": message,
	})
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
	// Use net.SplitHostPort to correctly handle IPv6 addresses like [::1]:8080
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If SplitHostPort fails, return as-is (might be just an IP without port)
		return r.RemoteAddr
	}
	return host
}
