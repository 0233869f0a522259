package connection

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/atelierlabs/atelier-go/internal/infra/ipc"
)

func TestManager_SocketExplicitPath(t *testing.T) {
	path := fakeInstance(t, func(*ipc.Request) *ipc.Response {
		return &ipc.Response{OK: true}
	})

	m := NewManager()
	client, err := m.Socket(path)
	if err != nil {
		t.Fatalf("Socket() error = %v", err)
	}
	if client.Path() != path {
		t.Errorf("Path() = %q, want %q", client.Path(), path)
	}

	// Second call returns the cached client.
	again, err := m.Socket("somewhere-else")
	if err != nil {
		t.Fatalf("Socket() second call error = %v", err)
	}
	if again != client {
		t.Error("Socket() did not reuse the cached client")
	}
}

func TestManager_SocketDeadInstance(t *testing.T) {
	m := NewManager()
	_, err := m.Socket(filepath.Join(t.TempDir(), "dead.sock"))
	if !errors.Is(err, ErrNoInstance) {
		t.Errorf("Socket() error = %v, want ErrNoInstance", err)
	}
}

func TestManager_HTTPCached(t *testing.T) {
	m := NewManager()
	a := m.HTTP("localhost:8080", "")
	b := m.HTTP("other:9090", "")
	if a != b {
		t.Error("HTTP() did not reuse the cached client")
	}

	m.Reset()
	c := m.HTTP("other:9090", "")
	if c == a {
		t.Error("Reset() did not drop the cached client")
	}
	if c.BaseURL() != "http://other:9090" {
		t.Errorf("BaseURL() = %q, want %q", c.BaseURL(), "http://other:9090")
	}
}
