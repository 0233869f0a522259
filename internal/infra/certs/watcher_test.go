package certs

import (
	"crypto/tls"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewWatcher(t *testing.T) {
	certFile, keyFile := generatePair(t)

	w, err := NewWatcher(certFile, keyFile)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	if w.cert == nil {
		t.Error("NewWatcher() did not load initial certificate")
	}
}

func TestNewWatcher_InvalidPair(t *testing.T) {
	tmpDir := t.TempDir()
	certFile := filepath.Join(tmpDir, "server.crt")
	keyFile := filepath.Join(tmpDir, "server.key")

	os.WriteFile(certFile, []byte("invalid"), 0o644)
	os.WriteFile(keyFile, []byte("invalid"), 0o600)

	if _, err := NewWatcher(certFile, keyFile); err == nil {
		t.Error("NewWatcher() expected error for invalid keypair")
	}
}

func TestNewWatcher_NonexistentFiles(t *testing.T) {
	if _, err := NewWatcher("/nonexistent/cert.pem", "/nonexistent/key.pem"); err == nil {
		t.Error("NewWatcher() expected error for nonexistent files")
	}
}

func TestWatcher_GetCertificate(t *testing.T) {
	certFile, keyFile := generatePair(t)

	w, err := NewWatcher(certFile, keyFile)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	cert, err := w.GetCertificate(nil)
	if err != nil {
		t.Errorf("GetCertificate() error = %v", err)
	}
	if cert == nil {
		t.Error("GetCertificate() returned nil")
	}
}

func TestWatcher_StartStop(t *testing.T) {
	certFile, keyFile := generatePair(t)

	w, err := NewWatcher(certFile, keyFile,
		WithLogger(slog.Default()),
		WithDebounce(100*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	w.StartAsync()
	time.Sleep(50 * time.Millisecond)
	w.Stop()
}

func TestWatcher_ReloadOnChange(t *testing.T) {
	certFile, keyFile := generatePair(t)

	w, err := NewWatcher(certFile, keyFile,
		WithDebounce(50*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	w.StartAsync()
	defer w.Stop()

	// Wait for watcher to be ready
	time.Sleep(100 * time.Millisecond)

	// Replace the pair with a fresh one
	os.Remove(certFile)
	os.Remove(keyFile)
	if _, _, err := Generate("localhost", filepath.Dir(certFile)); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// Wait for reload (debounce + processing)
	time.Sleep(300 * time.Millisecond)

	cert, err := w.GetCertificate(nil)
	if err != nil {
		t.Errorf("GetCertificate() error = %v", err)
	}
	if cert == nil {
		t.Error("certificate is nil after reload")
	}
}

func TestWatcher_Options(t *testing.T) {
	certFile, keyFile := generatePair(t)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	w, err := NewWatcher(certFile, keyFile,
		WithLogger(logger),
		WithDebounce(200*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	if w.logger != logger {
		t.Error("WithLogger() option not applied")
	}
	if w.debounce != 200*time.Millisecond {
		t.Errorf("WithDebounce() option not applied, got %v", w.debounce)
	}
}

func TestWatcher_TLSConfigIntegration(t *testing.T) {
	certFile, keyFile := generatePair(t)

	w, err := NewWatcher(certFile, keyFile)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	tlsConfig := &tls.Config{
		GetCertificate: w.GetCertificate,
		MinVersion:     tls.VersionTLS12,
	}

	cert, err := tlsConfig.GetCertificate(&tls.ClientHelloInfo{})
	if err != nil {
		t.Errorf("GetCertificate() error = %v", err)
	}
	if cert == nil {
		t.Error("GetCertificate() returned nil")
	}
}

// generatePair writes a fresh self-signed pair into a temp dir.
func generatePair(t *testing.T) (certFile, keyFile string) {
	t.Helper()

	certFile, keyFile, err := Generate("localhost", t.TempDir())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return certFile, keyFile
}
