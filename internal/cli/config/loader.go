// Package config provides the CLI's own settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	yaml "go.yaml.in/yaml/v3"

	"github.com/atelierlabs/atelier-go/internal/infra/confloader"
	"github.com/atelierlabs/atelier-go/internal/infra/paths"
)

// EnvPrefix is the environment variable prefix for CLI settings, kept
// distinct from the server's so ATELIER_CONFIG never leaks in here.
const EnvPrefix = "ATELIERCLI_"

// DefaultConfigPath returns the default CLI settings file location.
func DefaultConfigPath() string {
	return filepath.Join(paths.Config(), "cli.yaml")
}

// Load reads CLI settings from path (default location when empty),
// layered with ATELIERCLI_* environment variables on top. A missing
// file is not an error; defaults apply.
func Load(path string) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	opts := []confloader.Option{confloader.WithEnvPrefix(EnvPrefix)}
	if _, err := os.Stat(path); err == nil {
		opts = append(opts, confloader.WithConfigFile(path))
	}

	cfg := Default()
	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, fmt.Errorf("cli config: %w", err)
	}
	return cfg, nil
}

// Save writes CLI settings to path (default location when empty) with
// owner-only permissions.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("cli config: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cli config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("cli config: %w", err)
	}
	return nil
}
