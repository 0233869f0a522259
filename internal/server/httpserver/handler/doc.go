// Package handler implements the HTTP endpoints served by Atelier.
//
// Two kinds of endpoints live here. The browser-facing pages (login form,
// workspace shell) render embedded HTML templates; the /api endpoints and
// the health probe speak JSON with a standard response envelope.
//
// This package contains:
//
//   - handler.go: the Handler, its route table, and the JSON envelope helpers
//   - login.go: login page, login exchange, logout, session cookie handling
//   - shell.go: the workspace shell page with recent open targets
//   - session.go: /api/sessions listing and revocation
//   - status.go: /api/status server summary
//   - health.go: /healthz liveness probe
package handler
