package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"net/http/httputil"
	"strconv"
	"strings"
)

// ContextKeyProxyPort carries the target port of a proxied request.
const ContextKeyProxyPort contextKey = "proxy_port"

// ProxyConfig configures host-based port forwarding.
type ProxyConfig struct {
	// Domains are the base domains from --proxy-domain. A request whose
	// Host is "<port>.<domain>" is forwarded to 127.0.0.1:<port>.
	Domains []string

	Logger *slog.Logger
}

// ProxyDomain intercepts requests addressed to a proxy subdomain and
// reverse-proxies them to the local port named by the first host label.
// Other hosts fall through to the regular router.
//
// The auth middleware, when non-nil, gates forwarded requests the same
// way it gates the rest of the server; /login and /logout always fall
// through so the redirect from the gate lands on a real page even on a
// proxy host.
func ProxyDomain(cfg *ProxyConfig, auth Middleware) Middleware {
	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			port, _ := pr.In.Context().Value(ContextKeyProxyPort).(string)
			pr.Out.URL.Scheme = "http"
			pr.Out.URL.Host = net.JoinHostPort("127.0.0.1", port)
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			if cfg.Logger != nil {
				cfg.Logger.Warn("proxy target unreachable",
					"host", r.Host,
					"error", err,
				)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Error-Code", "AT-SYS-5030")
			w.WriteHeader(http.StatusBadGateway)
			json.NewEncoder(w).Encode(map[string]string{
				"code":    "AT-SYS-5030",
				"message": "proxy target is not reachable",
			})
		},
	}

	var forward http.Handler = proxy
	if auth != nil {
		forward = auth(proxy)
	}

	return func(next http.Handler) http.Handler {
		if len(cfg.Domains) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			port, ok := proxyPort(requestHost(r), cfg.Domains)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			if r.URL.Path == "/login" || r.URL.Path == "/logout" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyProxyPort, port)
			forward.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// proxyPort matches a host like "3000.ws.example.com" against the
// configured proxy domains and returns the port label.
func proxyPort(host string, domains []string) (string, bool) {
	host = strings.ToLower(host)
	for _, domain := range domains {
		label, found := strings.CutSuffix(host, "."+strings.ToLower(domain))
		if !found || label == "" || strings.Contains(label, ".") {
			continue
		}
		port, err := strconv.Atoi(label)
		if err != nil || port < 1 || port > 65535 {
			continue
		}
		return label, true
	}
	return "", false
}

// requestHost returns the request host without the port.
func requestHost(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.Host); err == nil {
		return host
	}
	return r.Host
}
