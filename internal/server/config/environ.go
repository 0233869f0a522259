package config

import (
	"os"

	"github.com/atelierlabs/atelier-go/internal/server/args"
)

// Environment variables the resolver consumes.
const (
	EnvPassword       = "PASSWORD"
	EnvHashedPassword = "HASHED_PASSWORD"
	EnvPort           = "PORT"
	EnvLogLevel       = "LOG_LEVEL"
)

// Environ is a snapshot of the environment variables the resolver
// reads. Capturing them once keeps resolution deterministic and lets
// tests inject values without touching the process environment.
type Environ struct {
	Password       string
	HashedPassword string
	Port           string
	LogLevel       string
}

// CaptureEnviron snapshots the resolver's environment variables from
// the process environment.
func CaptureEnviron() *Environ {
	return &Environ{
		Password:       os.Getenv(EnvPassword),
		HashedPassword: os.Getenv(EnvHashedPassword),
		Port:           os.Getenv(EnvPort),
		LogLevel:       os.Getenv(EnvLogLevel),
	}
}

// ScrubSecrets deletes the password variables from the process
// environment so child processes cannot read them. The snapshot keeps
// its copies. Runs regardless of whether the values were used.
func (e *Environ) ScrubSecrets() {
	os.Unsetenv(EnvPassword)
	os.Unsetenv(EnvHashedPassword)
}

// MirrorLogLevel writes the resolved log level back into the process
// environment (and the snapshot), where child processes and the logger
// setup read it.
func (e *Environ) MirrorLogLevel(level args.LogLevel) {
	e.LogLevel = string(level)
	os.Setenv(EnvLogLevel, string(level))
}
