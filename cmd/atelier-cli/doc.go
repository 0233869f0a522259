// Package main provides the entry point for atelier-cli.
//
// atelier-cli is the administration tool for a running atelier server:
//
//   - Instance status and health checks
//   - Session listing and revocation
//   - Config file location and sanitized display
//   - Handing open targets to the running instance
//
// Usage:
//
//	atelier-cli [command] [flags]
//	atelier-cli sessions list --output json
//	atelier-cli open ~/project
//
// Management commands talk to the instance's unix socket, found through
// the same handle file the server writes at startup; ping talks HTTP.
// The CLI also has an interactive REPL mode (atelier-cli repl).
package main
