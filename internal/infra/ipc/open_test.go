package ipc

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNewOpenRequest_ClassifiesTargets(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	req, err := NewOpenRequest(mustParse(t, "--", dir, file))
	if err != nil {
		t.Fatalf("NewOpenRequest() error = %v", err)
	}

	if !reflect.DeepEqual(req.Folders, []string{dir}) {
		t.Errorf("Folders = %v, want [%s]", req.Folders, dir)
	}
	if !reflect.DeepEqual(req.Files, []string{file}) {
		t.Errorf("Files = %v, want [%s]", req.Files, file)
	}
}

func TestNewOpenRequest_MissingTargetTreatedAsFile(t *testing.T) {
	req, err := NewOpenRequest(mustParse(t, "--", "does-not-exist.txt"))
	if err != nil {
		t.Fatalf("NewOpenRequest() error = %v", err)
	}
	if len(req.Files) != 1 {
		t.Fatalf("Files = %v, want one entry", req.Files)
	}
	if !filepath.IsAbs(req.Files[0]) {
		t.Errorf("Files[0] = %q, want absolute", req.Files[0])
	}
}

func TestNewOpenRequest_WorkspaceBecomesFile(t *testing.T) {
	wsFile := filepath.Join(t.TempDir(), "studio.atelier-workspace")
	if err := os.WriteFile(wsFile, []byte("{}"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	req, err := NewOpenRequest(mustParse(t, wsFile))
	if err != nil {
		t.Fatalf("NewOpenRequest() error = %v", err)
	}
	if !reflect.DeepEqual(req.Files, []string{wsFile}) {
		t.Errorf("Files = %v, want [%s]", req.Files, wsFile)
	}
}

func TestNewOpenRequest_NoTargets(t *testing.T) {
	if _, err := NewOpenRequest(mustParse(t, "--reuse-window")); err == nil {
		t.Error("NewOpenRequest() expected error with nothing to open")
	}
}

func TestNewOpenRequest_NewWindowNeedsFolders(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := NewOpenRequest(mustParse(t, "--new-window", "--", file)); err == nil {
		t.Error("NewOpenRequest() expected error for --new-window with a file target")
	}

	dir := t.TempDir()
	req, err := NewOpenRequest(mustParse(t, "--new-window", "--", dir))
	if err != nil {
		t.Fatalf("NewOpenRequest() error = %v", err)
	}
	if !req.NewWindow {
		t.Error("NewWindow = false, want true")
	}
}

func TestSend_RoundTrip(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "s.sock")
	ln, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	defer ln.Close()

	received := make(chan *Request, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		var req Request
		if err := json.NewDecoder(conn).Decode(&req); err != nil {
			return
		}
		received <- &req
		json.NewEncoder(conn).Encode(&Response{OK: true, Data: json.RawMessage(`{"opened":2}`)})
	}()

	dir := t.TempDir()
	openReq, err := NewOpenRequest(mustParse(t, "--", dir))
	if err != nil {
		t.Fatalf("NewOpenRequest() error = %v", err)
	}

	resp, err := Send(sock, &Request{Command: "open", Open: openReq})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if !resp.OK {
		t.Errorf("Response.OK = false, error = %q", resp.Error)
	}

	req := <-received
	if req.Command != "open" {
		t.Errorf("Command = %q, want open", req.Command)
	}
	if req.Open == nil || len(req.Open.Folders) != 1 {
		t.Errorf("Open payload = %+v, want one folder", req.Open)
	}
}

func TestSend_NoListener(t *testing.T) {
	if _, err := Send(filepath.Join(t.TempDir(), "dead.sock"), &Request{Command: "status"}); err == nil {
		t.Error("Send() expected error with nothing listening")
	}
}
