package httpserver

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"
)

// Config describes where and how the server listens.
type Config struct {
	// Host and Port form the TCP bind address. Ignored when Socket is set.
	Host string
	Port int

	// Socket is a unix socket path. When set it replaces the TCP listener.
	Socket string

	// SocketMode is an octal permission string ("0700") applied to the
	// socket file after binding. Empty keeps the umask result.
	SocketMode string

	// TLS enables HTTPS when non-nil. Pair it with a certs.Watcher via
	// GetCertificate so certificate rotation takes effect live.
	TLS *tls.Config

	Handler http.Handler
}

// Server wraps http.Server with unix-socket and TLS listener setup.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
}

// New binds the listener and returns a server ready to Serve. Binding
// eagerly lets "port 0" callers read the real address before the first
// request arrives.
func New(cfg *Config) (*Server, error) {
	var (
		ln  net.Listener
		err error
	)

	if cfg.Socket != "" {
		// A socket file left behind by a dead process would fail the bind.
		if err := os.Remove(cfg.Socket); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("remove stale socket: %w", err)
		}
		ln, err = net.Listen("unix", cfg.Socket)
		if err != nil {
			return nil, fmt.Errorf("listen on socket %s: %w", cfg.Socket, err)
		}
		if cfg.SocketMode != "" {
			mode, perr := strconv.ParseUint(cfg.SocketMode, 8, 32)
			if perr != nil {
				ln.Close()
				return nil, fmt.Errorf("invalid socket mode %q: %w", cfg.SocketMode, perr)
			}
			if cerr := os.Chmod(cfg.Socket, os.FileMode(mode)); cerr != nil {
				ln.Close()
				return nil, fmt.Errorf("chmod socket: %w", cerr)
			}
		}
	} else {
		addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
		ln, err = net.Listen("tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("listen on %s: %w", addr, err)
		}
	}

	if cfg.TLS != nil {
		ln = tls.NewListener(ln, cfg.TLS)
	}

	return &Server{
		httpServer: &http.Server{
			Handler:           cfg.Handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		listener: ln,
	}, nil
}

// Addr returns the bound address: "127.0.0.1:43051" for TCP listeners,
// the socket path for unix ones.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Serve accepts connections until Shutdown. Like http.Server.Serve it
// returns http.ErrServerClosed after a clean shutdown.
func (s *Server) Serve() error {
	return s.httpServer.Serve(s.listener)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
