// Package connection provides the transports atelier-cli uses to reach
// a server.
package connection

import (
	"encoding/json"
	"fmt"

	"github.com/atelierlabs/atelier-go/internal/infra/ipc"
)

// SocketClient talks to a running instance's management socket. Each
// call is one connection carrying one JSON request and one response.
type SocketClient struct {
	path string
}

// NewSocketClient creates a client for the management socket at path.
func NewSocketClient(socketPath string) *SocketClient {
	return &SocketClient{path: socketPath}
}

// Path returns the socket path the client targets.
func (c *SocketClient) Path() string {
	return c.path
}

// Do sends one request and returns the raw response.
func (c *SocketClient) Do(req *ipc.Request) (*ipc.Response, error) {
	return ipc.Send(c.path, req)
}

// Command sends a simple command and returns its data payload, turning
// a server-side failure into an error.
func (c *SocketClient) Command(cmd string, cmdArgs ...string) (json.RawMessage, error) {
	resp, err := c.Do(&ipc.Request{Command: cmd, Args: cmdArgs})
	if err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, fmt.Errorf("server: %s", resp.Error)
	}
	return resp.Data, nil
}

// Open hands open targets to the running instance.
func (c *SocketClient) Open(open *ipc.OpenRequest) error {
	resp, err := c.Do(&ipc.Request{Command: "open", Open: open})
	if err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("server: %s", resp.Error)
	}
	return nil
}
