package command

import (
	"bufio"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/atelierlabs/atelier-go/internal/infra/ipc"
)

// fakeInstance starts a unix socket that answers management requests
// with handler, returning the socket path.
func fakeInstance(t *testing.T, handler func(*ipc.Request) *ipc.Response) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mgmt.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				conn.SetDeadline(time.Now().Add(5 * time.Second))

				var req ipc.Request
				if err := json.NewDecoder(bufio.NewReader(conn)).Decode(&req); err != nil {
					return
				}
				json.NewEncoder(conn).Encode(handler(&req))
			}(conn)
		}
	}()

	return path
}

// okResponse builds a successful response carrying data.
func okResponse(t *testing.T, data any) *ipc.Response {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal response data: %v", err)
	}
	return &ipc.Response{OK: true, Data: raw}
}

// envelopeServer starts an HTTP server that wraps data in the standard
// response envelope for every request to pattern.
func envelopeServer(t *testing.T, pattern string, status int, data any) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"code":    "OK",
			"message": "success",
			"data":    data,
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// runApp runs the CLI application with the given arguments, pointing
// its settings at an absent file so the host environment never leaks
// into a test.
func runApp(t *testing.T, args ...string) error {
	t.Helper()

	full := []string{"atelier-cli", "--settings", filepath.Join(t.TempDir(), "absent.yaml")}
	full = append(full, args...)
	return App().Run(full)
}
