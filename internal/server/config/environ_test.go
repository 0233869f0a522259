package config

import (
	"os"
	"testing"

	"github.com/atelierlabs/atelier-go/internal/server/args"
)

func TestCaptureEnviron(t *testing.T) {
	t.Setenv(EnvPassword, "pw")
	t.Setenv(EnvHashedPassword, "hashed")
	t.Setenv(EnvPort, "9000")
	t.Setenv(EnvLogLevel, "debug")

	env := CaptureEnviron()

	if env.Password != "pw" {
		t.Errorf("Password = %q, want pw", env.Password)
	}
	if env.HashedPassword != "hashed" {
		t.Errorf("HashedPassword = %q, want hashed", env.HashedPassword)
	}
	if env.Port != "9000" {
		t.Errorf("Port = %q, want 9000", env.Port)
	}
	if env.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", env.LogLevel)
	}
}

func TestEnviron_ScrubSecrets(t *testing.T) {
	t.Setenv(EnvPassword, "pw")
	t.Setenv(EnvHashedPassword, "hashed")

	env := CaptureEnviron()
	env.ScrubSecrets()

	if got := os.Getenv(EnvPassword); got != "" {
		t.Errorf("$PASSWORD = %q after scrub, want empty", got)
	}
	if got := os.Getenv(EnvHashedPassword); got != "" {
		t.Errorf("$HASHED_PASSWORD = %q after scrub, want empty", got)
	}

	// The snapshot keeps what it captured.
	if env.Password != "pw" || env.HashedPassword != "hashed" {
		t.Error("scrub modified the snapshot")
	}
}

func TestEnviron_MirrorLogLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "info")

	env := CaptureEnviron()
	env.MirrorLogLevel(args.LogTrace)

	if got := os.Getenv(EnvLogLevel); got != "trace" {
		t.Errorf("$LOG_LEVEL = %q, want trace", got)
	}
	if env.LogLevel != "trace" {
		t.Errorf("snapshot LogLevel = %q, want trace", env.LogLevel)
	}
}
