// Package ipc locates running Atelier instances and talks to them.
//
// This package implements the single-instance delegation logic:
//
//   - handle.go: Well-known handle file and connectivity checks
//   - probe.go: Should-delegate decision over a parsed command line
//   - open.go: Open-target requests sent to a running instance
//
// A running server records its management socket path in a handle file
// under the system temp directory. Later invocations that only name
// files or folders to open find the socket there and hand their targets
// to the existing instance instead of starting a second server.
package ipc
