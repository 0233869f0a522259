// Package domain defines the core domain models for Atelier.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
type DomainError struct {
	Code    string // Error code (e.g., "AT-SESS-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// Wrap wraps an error with this domain error as the cause.
func (e *DomainError) Wrap(cause error) *DomainError {
	return e.WithCause(cause)
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true // Only check if it's a DomainError
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Session Errors (SESS)
// ============================================================================

var (
	// ErrSessionNotFound indicates the requested session was not found.
	ErrSessionNotFound = NewDomainError("AT-SESS-4040", "session not found")

	// ErrSessionExpired indicates the session has expired.
	ErrSessionExpired = NewDomainError("AT-SESS-4041", "session expired")

	// ErrSessionConflict indicates the session ID already exists.
	ErrSessionConflict = NewDomainError("AT-SESS-4090", "session id conflict")

	// ErrSessionVersionConflict indicates an optimistic lock conflict.
	ErrSessionVersionConflict = NewDomainError("AT-SESS-4091", "version conflict, please retry")

	// ErrSessionValidation indicates session data validation failed.
	ErrSessionValidation = NewDomainError("AT-SESS-4001", "session validation failed")

	// ErrSessionQuotaExceeded indicates the active session quota is exhausted.
	ErrSessionQuotaExceeded = NewDomainError("AT-SESS-4002", "session quota exceeded")
)

// ============================================================================
// Authentication Errors (AUTH)
// ============================================================================

var (
	// ErrPasswordInvalid indicates a failed password check at login.
	ErrPasswordInvalid = NewDomainError("AT-AUTH-4010", "invalid password")

	// ErrTokenInvalid indicates the session token is unknown or malformed.
	ErrTokenInvalid = NewDomainError("AT-AUTH-4011", "invalid session token")

	// ErrAuthRequired indicates the request carries no usable credentials.
	ErrAuthRequired = NewDomainError("AT-AUTH-4012", "authentication required")

	// ErrTokenHashConflict indicates a token hash collision.
	ErrTokenHashConflict = NewDomainError("AT-AUTH-4090", "token hash conflict")

	// ErrRateLimited indicates too many login attempts from one client.
	ErrRateLimited = NewDomainError("AT-AUTH-4290", "too many login attempts")
)

// ============================================================================
// Workspace Errors (WORK)
// ============================================================================

var (
	// ErrWorkspaceNotFound indicates the requested workspace was not found.
	ErrWorkspaceNotFound = NewDomainError("AT-WORK-4040", "workspace not found")

	// ErrWorkspaceConflict indicates the workspace ID already exists.
	ErrWorkspaceConflict = NewDomainError("AT-WORK-4090", "workspace id conflict")

	// ErrWorkspaceValidation indicates workspace validation failed.
	ErrWorkspaceValidation = NewDomainError("AT-WORK-4001", "workspace validation failed")
)

// ============================================================================
// System Errors (SYS)
// ============================================================================

var (
	// ErrInternalServer indicates an internal server error.
	ErrInternalServer = NewDomainError("AT-SYS-5000", "internal server error")

	// ErrStorageError indicates a storage layer error.
	ErrStorageError = NewDomainError("AT-SYS-5001", "storage error")

	// ErrServiceUnavailable indicates the service is temporarily unavailable.
	ErrServiceUnavailable = NewDomainError("AT-SYS-5030", "service unavailable")

	// ErrBadRequest indicates a malformed request.
	ErrBadRequest = NewDomainError("AT-SYS-4000", "bad request")
)
