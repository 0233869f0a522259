package ipc

import (
	"net"
	"os"
	"path/filepath"
	"testing"
)

// tempHandle relocates the well-known handle file for one test.
func tempHandle(t *testing.T) {
	t.Helper()

	orig := handlePath
	handlePath = filepath.Join(t.TempDir(), "ipc.path")
	t.Cleanup(func() { handlePath = orig })
}

// listen starts a throwaway unix listener that accepts and closes
// connections, returning its socket path.
func listen(t *testing.T) string {
	t.Helper()

	sock := filepath.Join(t.TempDir(), "a.sock")
	ln, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()
	return sock
}

func TestHandle_RoundTrip(t *testing.T) {
	tempHandle(t)

	if err := WriteHandle("/run/atelier.sock"); err != nil {
		t.Fatalf("WriteHandle() error = %v", err)
	}

	handle, err := ReadHandle()
	if err != nil {
		t.Fatalf("ReadHandle() error = %v", err)
	}
	if handle != "/run/atelier.sock" {
		t.Errorf("ReadHandle() = %q, want /run/atelier.sock", handle)
	}

	if err := RemoveHandle(); err != nil {
		t.Fatalf("RemoveHandle() error = %v", err)
	}
	handle, err = ReadHandle()
	if err != nil {
		t.Fatalf("ReadHandle() after remove error = %v", err)
	}
	if handle != "" {
		t.Errorf("ReadHandle() = %q after remove, want empty", handle)
	}

	// Removing an absent file is fine.
	if err := RemoveHandle(); err != nil {
		t.Errorf("RemoveHandle() second call error = %v", err)
	}
}

func TestHandle_TrimsWhitespace(t *testing.T) {
	tempHandle(t)

	if err := os.WriteFile(handlePath, []byte("/run/atelier.sock\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	handle, err := ReadHandle()
	if err != nil {
		t.Fatalf("ReadHandle() error = %v", err)
	}
	if handle != "/run/atelier.sock" {
		t.Errorf("ReadHandle() = %q, want trimmed path", handle)
	}
}

func TestCanConnect(t *testing.T) {
	sock := listen(t)

	if !CanConnect(sock) {
		t.Error("CanConnect() = false for a live socket")
	}
	if CanConnect(filepath.Join(t.TempDir(), "dead.sock")) {
		t.Error("CanConnect() = true for a missing socket")
	}
}
