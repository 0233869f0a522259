// Package shutdown coordinates orderly teardown of an atelier process.
//
// The server registers hooks while it wires itself up (management
// socket, HTTP listener, store) and then blocks in Wait. On SIGINT,
// SIGTERM, or a programmatic Trigger, hooks run in reverse
// registration order under one deadline, so the pieces come down in
// the opposite order they came up.
package shutdown
