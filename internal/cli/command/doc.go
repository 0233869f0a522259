// Package command defines the atelier-cli commands.
//
// Commands that inspect or manage a running instance (status, sessions,
// open) go over the management socket; ping exercises the public HTTP
// API the way a browser would. config inspects the server's YAML
// configuration without needing an instance at all.
//
//   - root.go: application wiring, global flags, shared helpers
//   - status.go: status and version
//   - session.go: sessions list / sessions revoke
//   - open.go: hand open targets to the running instance
//   - config.go: config path / config show
//   - ping.go: HTTP liveness check
//   - repl.go: interactive mode
package command
