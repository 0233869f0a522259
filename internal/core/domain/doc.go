// Package domain defines the core domain models for Atelier.
//
// Domain models are pure value objects and entities without any
// IO dependencies or framework coupling. This package contains:
//
//   - Session: browser login session with lifecycle management
//   - Workspace: an openable folder, file, or workspace description
//   - Errors: domain-specific error definitions
//
// All domain models implement validation, serialization, and
// version control for optimistic locking.
package domain
