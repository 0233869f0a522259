// Package config provides the CLI's own settings.
//
// These are the preferences of atelier-cli itself (default server,
// output format, history location), not the server configuration — the
// server resolves its config through internal/server/args and
// internal/server/config.
//
//   - spec.go: CLIConfig struct and defaults
//   - loader.go: loading via the shared confloader stack
//
// Settings load from <config dir>/atelier/cli.yaml and may be
// overridden by ATELIERCLI_* environment variables.
package config
