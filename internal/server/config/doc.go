// Package config resolves the final server configuration for Atelier.
//
// This package turns parsed argument sets into one runnable config:
//
//   - config.go: Resolved Config struct
//   - default.go: Default configuration values
//   - environ.go: Environment snapshot (PASSWORD, PORT, LOG_LEVEL, ...)
//   - bindaddr.go: Multi-source bind address resolution
//   - resolve.go: Merge, defaulting, and override rules
//   - verify.go: Business validation (ports, auth, certificate files)
//   - sanitize.go: Log sanitization (hide sensitive values)
//
// Sources layer in a fixed order: hard defaults, then the config file,
// then command-line flags. Within one source the bind address obeys its
// own sub-order (bind-addr, host, $PORT, port).
package config
