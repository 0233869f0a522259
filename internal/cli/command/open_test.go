package command

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/atelierlabs/atelier-go/internal/infra/ipc"
)

func TestOpenCommand(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	var got *ipc.OpenRequest
	sock := fakeInstance(t, func(req *ipc.Request) *ipc.Response {
		if req.Command != "open" {
			t.Errorf("command = %q, want open", req.Command)
		}
		got = req.Open
		return okResponse(t, map[string]int{"opened": 2})
	})

	err := runApp(t, "--socket", sock, "open", dir, file)
	if err != nil {
		t.Fatalf("open error = %v", err)
	}

	if got == nil {
		t.Fatal("no open request reached the instance")
	}
	if len(got.Folders) != 1 || got.Folders[0] != dir {
		t.Errorf("Folders = %v, want [%s]", got.Folders, dir)
	}
	if len(got.Files) != 1 || got.Files[0] != file {
		t.Errorf("Files = %v, want [%s]", got.Files, file)
	}
}

func TestOpenCommand_NewWindow(t *testing.T) {
	dir := t.TempDir()

	var got *ipc.OpenRequest
	sock := fakeInstance(t, func(req *ipc.Request) *ipc.Response {
		got = req.Open
		return okResponse(t, map[string]int{"opened": 1})
	})

	if err := runApp(t, "--socket", sock, "open", "--new-window", dir); err != nil {
		t.Fatalf("open error = %v", err)
	}
	if got == nil || !got.NewWindow {
		t.Error("NewWindow not carried through")
	}
}

func TestOpenCommand_NewWindowWithFileRejected(t *testing.T) {
	file := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	err := runApp(t, "--socket", "/nonexistent/mgmt.sock", "open", "--new-window", file)
	if err == nil {
		t.Error("expected error: --new-window only accepts folders")
	}
}

func TestOpenCommand_NoTargets(t *testing.T) {
	err := runApp(t, "--socket", "/nonexistent/mgmt.sock", "open")
	if err == nil {
		t.Error("expected error without targets")
	}
}
