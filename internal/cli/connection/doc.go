// Package connection provides the transports atelier-cli uses to reach
// a server.
//
//   - socket.go: management commands over the instance's unix socket
//   - http.go: the public HTTP API (health, status)
//   - manager.go: target resolution (explicit flag, handle file)
//
// Management commands need no password; the socket file's permissions
// are the access control. The HTTP client is for endpoints a browser
// could also reach.
package connection
