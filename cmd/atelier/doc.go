// Package main provides the entry point for the atelier server.
//
// atelier serves a development workspace over HTTP(S), protected by a
// password or left open, and keeps exactly one instance per user: an
// invocation that only names files or folders to open is handed to the
// running instance instead of starting a second server.
//
// Usage:
//
//	atelier [flags] [folder | workspace-file]
//	atelier --bind-addr 0.0.0.0:9999 ~/project
//	atelier --config /path/to/config.yaml
//
// Configuration is layered: command-line flags win over config-file
// entries, which win over built-in defaults. Passwords come from the
// config file or the PASSWORD/HASHED_PASSWORD environment variables,
// never from flags.
package main
