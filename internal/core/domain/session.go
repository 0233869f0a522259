// Package domain defines the core domain models for Atelier.
package domain

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Session constraints.
const (
	MaxIPAddressLength = 45 // IPv6 max length
	MaxUserAgentLength = 512

	// SessionIDPrefix is the prefix for session IDs.
	SessionIDPrefix = "asid-"
)

// Session represents an authenticated browser session.
//
// A session is minted when a client presents the workspace password and
// is carried afterwards by the session cookie. The plaintext token never
// touches storage; only its hash is kept.
type Session struct {
	// ID is the unique identifier for the session.
	// Format: asid-{ulid_lowercase}, 31 characters total.
	ID string `json:"id"`

	// TokenHash is the SHA-256 hash of the session token.
	TokenHash string `json:"token_hash"`

	// IPAddress is the client IP at login (immutable).
	IPAddress string `json:"ip_address"`

	// UserAgent is the client user agent at login (immutable).
	UserAgent string `json:"user_agent"`

	// LastAccessIP is the client IP of the last access.
	LastAccessIP string `json:"last_access_ip"`

	// LastAccessUA is the client user agent of the last access.
	LastAccessUA string `json:"last_access_ua"`

	// CreatedAt is the session creation timestamp (Unix milliseconds).
	CreatedAt int64 `json:"created_at"`

	// ExpiresAt is the absolute expiration timestamp (Unix milliseconds).
	// Zero means the session never expires.
	ExpiresAt int64 `json:"expires_at"`

	// LastActive is the last activity timestamp (Unix milliseconds).
	LastActive int64 `json:"last_active"`

	// Version is the optimistic lock version number.
	Version uint64 `json:"version"`
}

// NewSession creates a new Session with a generated ID.
// The returned session has ID, CreatedAt, and Version initialized.
func NewSession() (*Session, error) {
	id, err := GenerateSessionID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	return &Session{
		ID:         id,
		CreatedAt:  now,
		LastActive: now,
		Version:    1,
	}, nil
}

// GenerateSessionID generates a new session ID using ULID.
// Format: asid-{ulid_lowercase}, 31 characters total.
func GenerateSessionID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", ErrInternalServer.WithCause(err)
	}
	return SessionIDPrefix + strings.ToLower(id.String()), nil
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	if s.ExpiresAt == 0 {
		return false // No expiration set
	}
	return time.Now().UnixMilli() > s.ExpiresAt
}

// TTLDuration returns the remaining time-to-live as a duration.
// Returns 0 if expired or no expiration is set.
func (s *Session) TTLDuration() time.Duration {
	if s.ExpiresAt == 0 {
		return 0
	}
	remaining := s.ExpiresAt - time.Now().UnixMilli()
	if remaining < 0 {
		return 0
	}
	return time.Duration(remaining) * time.Millisecond
}

// Touch updates the LastActive timestamp and optionally the access info.
func (s *Session) Touch(ip, userAgent string) {
	s.LastActive = time.Now().UnixMilli()
	if ip != "" {
		s.LastAccessIP = ip
	}
	if userAgent != "" {
		s.LastAccessUA = userAgent
	}
}

// IncrVersion increments the version number for optimistic locking.
func (s *Session) IncrVersion() {
	s.Version++
}

// GetVersion returns the current version for optimistic locking.
// Implements the Versioned interface from pkg/cmap.
func (s *Session) GetVersion() uint64 {
	return s.Version
}

// SetVersion sets the version number for optimistic locking.
// Implements the Versioned interface from pkg/cmap.
func (s *Session) SetVersion(v uint64) {
	s.Version = v
}

// Validate validates the session fields against constraints.
// Returns a DomainError with code AT-SESS-4001 if validation fails.
func (s *Session) Validate() error {
	var violations []string

	if s.TokenHash == "" {
		violations = append(violations, "token_hash is required")
	}

	if len(s.IPAddress) > MaxIPAddressLength {
		violations = append(violations, "ip_address exceeds 45 characters")
	}

	if len(s.UserAgent) > MaxUserAgentLength {
		violations = append(violations, "user_agent exceeds 512 characters")
	}

	if len(violations) > 0 {
		return ErrSessionValidation.WithDetails(strings.Join(violations, "; "))
	}

	return nil
}

// SetExpiration sets the expiration time from a TTL duration.
func (s *Session) SetExpiration(ttl time.Duration) {
	s.ExpiresAt = time.Now().Add(ttl).UnixMilli()
}

// ExtendExpiration extends the expiration by the given duration.
func (s *Session) ExtendExpiration(extension time.Duration) {
	if s.ExpiresAt > 0 {
		s.ExpiresAt += extension.Milliseconds()
	}
}

// Clone creates a copy of the session.
func (s *Session) Clone() *Session {
	clone := *s
	return &clone
}

// CreatedAtTime returns CreatedAt as time.Time.
func (s *Session) CreatedAtTime() time.Time {
	return time.UnixMilli(s.CreatedAt)
}

// ExpiresAtTime returns ExpiresAt as time.Time.
func (s *Session) ExpiresAtTime() time.Time {
	if s.ExpiresAt == 0 {
		return time.Time{}
	}
	return time.UnixMilli(s.ExpiresAt)
}

// LastActiveTime returns LastActive as time.Time.
func (s *Session) LastActiveTime() time.Time {
	return time.UnixMilli(s.LastActive)
}

// IsValidSessionID checks if a string is a valid session ID format.
// It normalizes the ID to lowercase before validation.
func IsValidSessionID(id string) bool {
	// Normalize to lowercase
	id = strings.ToLower(id)

	// Check prefix
	if !strings.HasPrefix(id, SessionIDPrefix) {
		return false
	}

	// asid- (5) + ULID (26) = 31 characters
	if len(id) != 31 {
		return false
	}

	// Validate ULID portion
	ulidPart := strings.ToUpper(id[len(SessionIDPrefix):])
	_, err := ulid.Parse(ulidPart)
	return err == nil
}

// NormalizeSessionID normalizes a session ID to lowercase.
// Returns empty string if the ID is invalid.
func NormalizeSessionID(id string) string {
	normalized := strings.ToLower(id)
	if !IsValidSessionID(normalized) {
		return ""
	}
	return normalized
}
