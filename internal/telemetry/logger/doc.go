// Package logger provides structured logging for atelier.
//
// This package wraps log/slog for structured logging:
//
//   - logger.go: Logger interface, level handling, global default
//   - context.go: Context-aware logging with request IDs
//   - redact.go: Sensitive data redaction
//
// Features:
//
//   - JSON and text output formats
//   - Trace level below debug for --verbose runs
//   - Automatic masking of passwords and session tokens
//   - Context propagation for request logging
package logger
