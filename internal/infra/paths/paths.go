// Package paths resolves the per-user directories atelier keeps its
// state in. Config and data roots follow the platform conventions the
// standard library exposes, with XDG overrides honored on all
// platforms and a temp-dir fallback when no home directory exists.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appDir = "atelier"

// Config returns the directory that holds the config file.
func Config() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appDir)
	}
	return filepath.Join(dir, appDir)
}

// Data returns the user data directory: session store, generated
// certificates, extension state.
func Data() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appDir)
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support", appDir)
	}
	return filepath.Join(home, ".local", "share", appDir)
}
