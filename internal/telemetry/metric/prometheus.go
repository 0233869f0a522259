// Package metric provides Prometheus metrics for Atelier.
//
// It exposes metrics in Prometheus format for monitoring session counts,
// request rates, latencies, and login outcomes.
package metric

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "atelier"

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Session metrics
	SessionsActive  prometheus.Gauge
	SessionsCreated prometheus.Counter
	SessionsExpired prometheus.Counter
	SessionsRevoked prometheus.Counter

	// Auth metrics
	LoginsTotal        prometheus.Counter
	AuthFailures       *prometheus.CounterVec
	TokenValidateCalls *prometheus.CounterVec

	// Request metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Workspace metrics
	WorkspaceOpens prometheus.Counter
}

// NewRegistry creates a registry with all application metrics plus the Go
// runtime and process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,

		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of live (unexpired) sessions.",
		}),
		SessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_created_total",
			Help:      "Sessions issued since start.",
		}),
		SessionsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_expired_total",
			Help:      "Sessions removed by the expiry sweeper.",
		}),
		SessionsRevoked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_revoked_total",
			Help:      "Sessions revoked by logout or the admin API.",
		}),

		LoginsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Successful password logins.",
		}),
		AuthFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_failures_total",
			Help:      "Failed authentication attempts by reason.",
		}, []string{"reason"}),
		TokenValidateCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_validate_calls_total",
			Help:      "Session token validations by result.",
		}, []string{"result"}),

		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Requests handled, by protocol, method, and status.",
		}, []string{"protocol", "method", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Request handling latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"protocol", "method"}),

		WorkspaceOpens: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workspace_opens_total",
			Help:      "Open operations recorded in the workspace registry.",
		}),
	}

	reg.MustRegister(
		r.SessionsActive,
		r.SessionsCreated,
		r.SessionsExpired,
		r.SessionsRevoked,
		r.LoginsTotal,
		r.AuthFailures,
		r.TokenValidateCalls,
		r.RequestsTotal,
		r.RequestDuration,
		r.WorkspaceOpens,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// Prometheus returns the underlying registry, for components that register
// their own collectors (the Badger engine, the store-count collector).
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.registry
}

// Handler returns an HTTP handler serving this registry at /metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// ============================================================================
// Recording helpers
// ============================================================================

// IncSessionActive bumps the live-session gauge.
func (r *Registry) IncSessionActive() { r.SessionsActive.Inc() }

// DecSessionActive drops the live-session gauge.
func (r *Registry) DecSessionActive() { r.SessionsActive.Dec() }

// SetSessionActive sets the live-session gauge to an absolute count.
func (r *Registry) SetSessionActive(n float64) { r.SessionsActive.Set(n) }

// IncSessionCreated counts an issued session.
func (r *Registry) IncSessionCreated() { r.SessionsCreated.Inc() }

// IncSessionExpired counts a swept session.
func (r *Registry) IncSessionExpired() { r.SessionsExpired.Inc() }

// IncSessionRevoked counts a revoked session.
func (r *Registry) IncSessionRevoked() { r.SessionsRevoked.Inc() }

// IncLogin counts a successful login.
func (r *Registry) IncLogin() { r.LoginsTotal.Inc() }

// RecordAuthFailure counts a failed authentication attempt.
// Reasons: "bad_password", "rate_limited".
func (r *Registry) RecordAuthFailure(reason string) {
	r.AuthFailures.WithLabelValues(reason).Inc()
}

// RecordTokenValidation counts a token validation.
// Results: "valid", "invalid".
func (r *Registry) RecordTokenValidation(result string) {
	r.TokenValidateCalls.WithLabelValues(result).Inc()
}

// RecordRequest counts a handled request.
func (r *Registry) RecordRequest(protocol, method, status string) {
	r.RequestsTotal.WithLabelValues(protocol, method, status).Inc()
}

// ObserveRequestDuration records request latency in seconds.
func (r *Registry) ObserveRequestDuration(protocol, method string, seconds float64) {
	r.RequestDuration.WithLabelValues(protocol, method).Observe(seconds)
}

// IncWorkspaceOpen counts a recorded open operation.
func (r *Registry) IncWorkspaceOpen() { r.WorkspaceOpens.Inc() }

// ============================================================================
// Global registry
// ============================================================================

var (
	globalOnce sync.Once
	global     *Registry
)

// Global returns the process-wide registry, creating it on first use.
func Global() *Registry {
	globalOnce.Do(func() {
		global = NewRegistry()
	})
	return global
}

// Handler returns the HTTP handler for the global registry.
func Handler() http.Handler {
	return Global().Handler()
}
