package localserver

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/atelierlabs/atelier-go/internal/infra/ipc"
)

// connTimeout bounds one request/response exchange. Clients send one
// line and read one line, so anything slower is a stuck peer.
const connTimeout = 10 * time.Second

// Server accepts management connections on a unix domain socket. Each
// connection carries exactly one JSON request line and gets one JSON
// response line back.
type Server struct {
	path    string
	handler *Handler

	listener net.Listener
	running  atomic.Bool
	wg       sync.WaitGroup
}

// New creates a local management server bound to socketPath once
// ListenAndServe runs.
func New(socketPath string, handler *Handler) *Server {
	return &Server{
		path:    socketPath,
		handler: handler,
	}
}

// Path returns the socket path the server binds.
func (s *Server) Path() string {
	return s.path
}

// ListenAndServe binds the socket and accepts connections until
// Shutdown. A stale socket file from a dead process is removed before
// binding; the fresh socket is restricted to the owning user.
func (s *Server) ListenAndServe() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	var err error
	s.listener, err = net.Listen("unix", s.path)
	if err != nil {
		return err
	}
	if err := os.Chmod(s.path, 0o600); err != nil {
		s.listener.Close()
		return err
	}

	s.running.Store(true)

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn)
		}()
	}
}

// Shutdown stops accepting connections, waits for in-flight exchanges
// to finish, and removes the socket file.
func (s *Server) Shutdown(ctx context.Context) error {
	s.running.Store(false)

	var closeErr error
	if s.listener != nil {
		closeErr = s.listener.Close()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return closeErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(connTimeout))

	var req ipc.Request
	if err := json.NewDecoder(bufio.NewReader(conn)).Decode(&req); err != nil {
		json.NewEncoder(conn).Encode(&ipc.Response{
			Error: "malformed request: " + err.Error(),
		})
		return
	}

	resp := s.handler.Execute(context.Background(), &req)
	json.NewEncoder(conn).Encode(resp)
}
