package repl

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewHistory(t *testing.T) {
	h := NewHistory("")
	if h == nil {
		t.Fatal("NewHistory returned nil")
	}
	if h.maxSize != 1000 {
		t.Errorf("maxSize = %d, want %d", h.maxSize, 1000)
	}
	if h.entries == nil {
		t.Error("entries should be initialized")
	}
}

func TestNewHistory_DefaultLocation(t *testing.T) {
	h := NewHistory("")

	if !filepath.IsAbs(h.file) {
		t.Error("history file path should be absolute")
	}
	if filepath.Base(h.file) != "cli_history" {
		t.Errorf("history file = %q, want cli_history", filepath.Base(h.file))
	}
}

func TestNewHistory_ExplicitFile(t *testing.T) {
	h := NewHistory("/tmp/custom_history")
	if h.file != "/tmp/custom_history" {
		t.Errorf("file = %q, want explicit path", h.file)
	}
}

func TestHistory_Add(t *testing.T) {
	h := NewHistory("")

	h.Add("command1")
	h.Add("command2")
	h.Add("command3")

	if h.Len() != 3 {
		t.Errorf("Len() = %d, want %d", h.Len(), 3)
	}
}

func TestHistory_Add_MaxSize(t *testing.T) {
	h := &History{
		entries: make([]string, 0),
		maxSize: 3,
	}

	h.Add("cmd1")
	h.Add("cmd2")
	h.Add("cmd3")
	h.Add("cmd4") // evicts cmd1

	if len(h.entries) != 3 {
		t.Errorf("len(entries) = %d, want %d", len(h.entries), 3)
	}
	if h.entries[0] != "cmd2" {
		t.Errorf("entries[0] = %q, want %q", h.entries[0], "cmd2")
	}
}

func TestHistory_Get(t *testing.T) {
	h := NewHistory("")
	h.Add("first")
	h.Add("second")
	h.Add("third")

	tests := []struct {
		index int
		want  string
	}{
		{0, "third"}, // most recent
		{1, "second"},
		{2, "first"},
		{3, ""},   // out of range
		{-1, ""},  // negative index
		{100, ""}, // way out of range
	}

	for _, tt := range tests {
		got := h.Get(tt.index)
		if got != tt.want {
			t.Errorf("Get(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestHistory_Get_Empty(t *testing.T) {
	h := NewHistory("")

	if got := h.Get(0); got != "" {
		t.Errorf("Get(0) on empty history = %q, want empty", got)
	}
}

func TestHistory_SaveLoad(t *testing.T) {
	historyFile := filepath.Join(t.TempDir(), "cli_history")

	h := NewHistory(historyFile)
	h.Add("command1")
	h.Add("command2")
	h.Add("command3")

	if err := h.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(historyFile)
	if err != nil {
		t.Fatalf("stat history file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("history file mode = %o, want 600", perm)
	}

	h2 := NewHistory(historyFile)
	if err := h2.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if h2.Len() != 3 {
		t.Errorf("loaded %d entries, want %d", h2.Len(), 3)
	}
	if h2.entries[0] != "command1" {
		t.Errorf("entries[0] = %q, want %q", h2.entries[0], "command1")
	}
}

func TestHistory_Load_NonexistentFile(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "absent"))

	if err := h.Load(); err != nil {
		t.Errorf("Load of nonexistent file should not error: %v", err)
	}
	if h.Len() != 0 {
		t.Error("entries should be empty after loading nonexistent file")
	}
}

func TestHistory_Save_CreateDir(t *testing.T) {
	historyFile := filepath.Join(t.TempDir(), "nested", "dir", "history")

	h := NewHistory(historyFile)
	h.Add("cmd")

	if err := h.Save(); err != nil {
		t.Fatalf("Save failed to create directory: %v", err)
	}
	if _, err := os.Stat(historyFile); os.IsNotExist(err) {
		t.Error("history file was not created")
	}
}
