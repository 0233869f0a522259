package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atelierlabs/atelier-go/internal/server/args"
)

func validConfig(t *testing.T) *Config {
	t.Helper()

	cfg := &Config{}
	cfg.Auth = args.AuthNone
	cfg.Host = "localhost"
	cfg.Port = 8080
	cfg.UserDataDir = filepath.Join(t.TempDir(), "data")
	cfg.ExtensionsDir = filepath.Join(cfg.UserDataDir, "extensions")
	return cfg
}

func TestVerify_Valid(t *testing.T) {
	cfg := validConfig(t)

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify() error = %v, want nil", err)
	}
	if _, err := os.Stat(cfg.UserDataDir); err != nil {
		t.Errorf("user data dir not created: %v", err)
	}
	if _, err := os.Stat(cfg.ExtensionsDir); err != nil {
		t.Errorf("extensions dir not created: %v", err)
	}
}

func TestVerify_PortRange(t *testing.T) {
	cfg := validConfig(t)
	cfg.Port = 70000

	err := Verify(cfg)
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Errorf("Verify() error = %v, want port range error", err)
	}
}

func TestVerify_PasswordAuthNeedsPassword(t *testing.T) {
	cfg := validConfig(t)
	cfg.Auth = args.AuthPassword

	if err := Verify(cfg); err == nil {
		t.Error("Verify() expected error for password auth without password")
	}

	cfg.Password = "something"
	if err := Verify(cfg); err != nil {
		t.Errorf("Verify() error = %v with plain password set", err)
	}

	cfg.Password = ""
	cfg.HashedPassword = "$argon2id$..."
	if err := Verify(cfg); err != nil {
		t.Errorf("Verify() error = %v with hashed password set", err)
	}
}

func TestVerify_SocketMode(t *testing.T) {
	cfg := validConfig(t)
	cfg.Socket = "/tmp/atelier.sock"

	cfg.SocketMode = "0700"
	if err := Verify(cfg); err != nil {
		t.Errorf("Verify() error = %v for octal socket-mode", err)
	}

	cfg.SocketMode = "rwx"
	if err := Verify(cfg); err == nil {
		t.Error("Verify() expected error for non-octal socket-mode")
	}
}

func TestVerify_CertFiles(t *testing.T) {
	dir := t.TempDir()
	certFile := filepath.Join(dir, "server.crt")
	keyFile := filepath.Join(dir, "server.key")

	cfg := validConfig(t)
	cfg.Cert = args.OptionalString{Set: true, Value: certFile}
	cfg.CertKey = keyFile

	if err := Verify(cfg); err == nil {
		t.Error("Verify() expected error for missing certificate file")
	}

	os.WriteFile(certFile, []byte("cert"), 0o644)
	if err := Verify(cfg); err == nil {
		t.Error("Verify() expected error for missing key file")
	}

	os.WriteFile(keyFile, []byte("key"), 0o600)
	if err := Verify(cfg); err != nil {
		t.Errorf("Verify() error = %v with both files present", err)
	}
}

func TestVerify_BareCertRequestSkipsFileCheck(t *testing.T) {
	cfg := validConfig(t)
	cfg.Cert = args.OptionalString{Set: true}

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify() error = %v for cert request without value", err)
	}
}
