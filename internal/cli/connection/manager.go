// Package connection provides the transports atelier-cli uses to reach
// a server.
package connection

import (
	"errors"

	"github.com/atelierlabs/atelier-go/internal/infra/ipc"
)

// ErrNoInstance is returned when no running instance can be located.
var ErrNoInstance = errors.New("no running atelier instance found (is the server started?)")

// Manager resolves which server an invocation talks to and caches the
// resulting clients for the duration of one CLI run.
type Manager struct {
	socket *SocketClient
	http   *HTTPClient
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// Socket returns a management-socket client. An explicit path wins;
// otherwise the handle file the server wrote at startup locates the
// instance.
func (m *Manager) Socket(explicit string) (*SocketClient, error) {
	if m.socket != nil {
		return m.socket, nil
	}

	path := explicit
	if path == "" {
		handle, err := ipc.ReadHandle()
		if err != nil {
			return nil, err
		}
		path = handle
	}
	if path == "" {
		return nil, ErrNoInstance
	}
	if !ipc.CanConnect(path) {
		return nil, ErrNoInstance
	}

	m.socket = NewSocketClient(path)
	return m.socket, nil
}

// HTTP returns a client for the server's public HTTP API.
func (m *Manager) HTTP(server, token string) *HTTPClient {
	if m.http == nil {
		m.http = NewHTTPClient(server, token)
	}
	return m.http
}

// Reset drops cached clients, forcing the next call to resolve again.
func (m *Manager) Reset() {
	m.socket = nil
	m.http = nil
}
