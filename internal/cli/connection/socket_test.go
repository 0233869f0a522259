package connection

import (
	"bufio"
	"encoding/json"
	"net"
	"path/filepath"
	"testing"

	"github.com/atelierlabs/atelier-go/internal/infra/ipc"
)

// fakeInstance accepts one-line JSON requests and answers with handler.
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

func TestSocketClient_Command(t *testing.T) {
	path := fakeInstance(t, func(req *ipc.Request) *ipc.Response {
		if req.Command != "status" {
			t.Errorf("command = %q, want %q", req.Command, "status")
		}
		return &ipc.Response{OK: true, Data: json.RawMessage(`{"version":"1.2.3"}`)}
	})

	client := NewSocketClient(path)
	data, err := client.Command("status")
	if err != nil {
		t.Fatalf("Command() error = %v", err)
	}

	var payload struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if payload.Version != "1.2.3" {
		t.Errorf("version = %q, want %q", payload.Version, "1.2.3")
	}
}

func TestSocketClient_Command_ServerFailure(t *testing.T) {
	path := fakeInstance(t, func(*ipc.Request) *ipc.Response {
		return &ipc.Response{Error: "session not found"}
	})

	client := NewSocketClient(path)
	if _, err := client.Command("revoke", "asid-missing"); err == nil {
		t.Error("Command() error = nil, want server failure")
	}
}

func TestSocketClient_Command_NoListener(t *testing.T) {
	client := NewSocketClient(filepath.Join(t.TempDir(), "absent.sock"))
	if _, err := client.Command("ping"); err == nil {
		t.Error("Command() error = nil, want connect failure")
	}
}

func TestSocketClient_Open(t *testing.T) {
	var got *ipc.OpenRequest
	path := fakeInstance(t, func(req *ipc.Request) *ipc.Response {
		got = req.Open
		return &ipc.Response{OK: true}
	})

	client := NewSocketClient(path)
	err := client.Open(&ipc.OpenRequest{Folders: []string{"/srv/project"}})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got == nil || len(got.Folders) != 1 || got.Folders[0] != "/srv/project" {
		t.Errorf("server saw open request %+v, want one folder", got)
	}
}
