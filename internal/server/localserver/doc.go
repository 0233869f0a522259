// Package localserver provides the local management endpoint of a
// running Atelier instance.
//
// The server listens on a unix domain socket under the user data dir
// and answers single-line JSON requests (the ipc package's wire form):
//
//   - status: uptime, version, session and workspace counts
//   - sessions: active session listing
//   - revoke: revoke one session by ID
//   - open: accept the open targets of a delegated invocation
//   - version: build information
//   - ping: liveness check
//
// Access control is the socket file's permission bits; no password is
// required. A second "atelier <path>" invocation finds this socket
// through the handle file and hands its targets to the open command
// instead of starting another server.
package localserver
