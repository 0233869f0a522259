// Package service provides domain services for Atelier.
//
// Domain services contain pure business logic and orchestrate operations
// on domain models. They define interfaces for storage dependencies,
// allowing for dependency injection and testability.
//
// This package contains:
//
//   - SessionService: session issue, lookup, listing, and lifecycle management
//   - AuthService: password verification, login rate limiting, token validation
//   - WorkspaceService: open-target classification and recent-workspace tracking
//
// Services are stateless and thread-safe. Passwords and plaintext tokens
// never leave this layer: sessions store a SHA-256 token hash only, and a
// plaintext token is returned exactly once at creation time.
package service
