// Package config provides the CLI's own settings.
package config

// CLIConfig holds the settings of atelier-cli.
type CLIConfig struct {
	// Server is the HTTP address used by commands that go over the
	// public API (ping).
	Server string `koanf:"server" yaml:"server"`

	// Socket pins the management socket path. Empty means discover the
	// running instance through the handle file.
	Socket string `koanf:"socket" yaml:"socket,omitempty"`

	// Output is the default output format: table, json, or yaml.
	Output string `koanf:"output" yaml:"output"`

	// HistoryFile is where the REPL persists its command history.
	HistoryFile string `koanf:"history_file" yaml:"history_file,omitempty"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Server: "http://localhost:8080",
		Output: "table",
	}
}
