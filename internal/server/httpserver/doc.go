// Package httpserver provides the HTTP/HTTPS server for Atelier.
//
// The server binds either a TCP address or a unix socket (--socket) and
// optionally terminates TLS with certificates resolved per handshake, so
// a certificate reload picks up new files without a restart.
//
// Requests flow through a middleware chain (panic recovery, request IDs,
// request logging, metrics, cookie session auth) into either the route
// handlers of the handler subpackage or, for hosts matching a configured
// proxy domain, a reverse proxy to a local port.
//
// This package contains:
//
//   - server.go: http.Server wrapper with socket and TLS listeners
//   - middleware.go: middleware chain and the session auth gate
//   - proxy.go: host-based port forwarding (<port>.<domain>)
//   - router.go: route table wiring handlers and middleware together
package httpserver
