// Package service provides domain services for Atelier.
//
// This file contains AuthService (password verification, login, token
// validation, logout) and the per-address login rate limiter.
package service

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/atelierlabs/atelier-go/internal/core/domain"
	"github.com/atelierlabs/atelier-go/pkg/secret"
)

// AuthService handles password authentication and session tokens.
type AuthService struct {
	sessions *SessionService
	limiters *LoginRateLimiter

	enabled        bool
	password       string
	hashedPassword string
	sessionTTL     time.Duration
}

// AuthServiceConfig holds configuration for AuthService.
type AuthServiceConfig struct {
	// Enabled is true when the server requires a password.
	Enabled bool

	// Password is the plaintext password to compare against.
	Password string

	// HashedPassword is an argon2id PHC string. When set it takes
	// precedence over Password.
	HashedPassword string

	// SessionTTL is the lifetime of sessions issued at login
	// (default: DefaultSessionTTL).
	SessionTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(sessions *SessionService, config *AuthServiceConfig) *AuthService {
	if config == nil {
		config = &AuthServiceConfig{}
	}
	ttl := config.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	return &AuthService{
		sessions:       sessions,
		limiters:       NewLoginRateLimiter(),
		enabled:        config.Enabled,
		password:       config.Password,
		hashedPassword: config.HashedPassword,
		sessionTTL:     ttl,
	}
}

// RequiresAuth reports whether requests must carry a valid session.
func (s *AuthService) RequiresAuth() bool {
	return s.enabled
}

// ============================================================================
// Login
// ============================================================================

// LoginRequest contains parameters for a login attempt.
type LoginRequest struct {
	Password  string
	IPAddress string
	UserAgent string
}

// LoginResponse contains the result of a successful login.
//
// Token is the plaintext session token, surfaced exactly once.
type LoginResponse struct {
	SessionID string
	Token     string
	ExpiresAt int64
}

// Login verifies the password and issues a session.
//
// Failed attempts drain the per-address rate limiter; successful logins do
// not count against it. The limiter is consulted before verification so a
// limited address learns nothing about password correctness.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	// 1. Auth must be enabled for logins to mean anything
	if !s.enabled {
		return nil, domain.ErrBadRequest.WithDetails("authentication is disabled")
	}

	// 2. Rate limit check
	if !s.limiters.CanTry(req.IPAddress) {
		return nil, domain.ErrRateLimited
	}

	// 3. Missing password is a malformed request, not a failed attempt
	if req.Password == "" {
		return nil, domain.ErrBadRequest.WithDetails("password is required")
	}

	// 4. Verify
	if !s.verifyPassword(req.Password) {
		s.limiters.RemoveToken(req.IPAddress)
		return nil, domain.ErrPasswordInvalid
	}

	// 5. Issue session
	created, err := s.sessions.Create(ctx, &CreateSessionRequest{
		IPAddress: req.IPAddress,
		UserAgent: req.UserAgent,
		TTL:       s.sessionTTL,
	})
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		SessionID: created.SessionID,
		Token:     created.Token,
		ExpiresAt: created.ExpiresAt,
	}, nil
}

// verifyPassword compares in constant time. A hashed password takes
// precedence over a plaintext one; with neither configured nothing
// verifies.
func (s *AuthService) verifyPassword(password string) bool {
	if s.hashedPassword != "" {
		return secret.VerifyPassword(password, s.hashedPassword)
	}
	if s.password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
}

// ============================================================================
// Token Validation
// ============================================================================

// ValidateTokenRequest contains parameters for session token validation.
type ValidateTokenRequest struct {
	Token     string
	IPAddress string // Optional: recorded as last access IP
	UserAgent string // Optional: recorded as last access user agent
}

// ValidateToken resolves a plaintext token to its session and updates the
// session's last-activity bookkeeping.
//
// Missing, unknown, and expired tokens all surface as ErrTokenInvalid so
// the response does not reveal whether a session ever existed.
func (s *AuthService) ValidateToken(ctx context.Context, req *ValidateTokenRequest) (*domain.Session, error) {
	if req.Token == "" {
		return nil, domain.ErrTokenInvalid
	}

	session, err := s.sessions.GetByToken(ctx, secret.Hash(req.Token))
	if err != nil {
		return nil, domain.ErrTokenInvalid.WithCause(err)
	}

	// Best effort: a concurrent revoke loses the touch, and the next
	// request fails the lookup anyway.
	_ = s.sessions.Touch(ctx, &TouchSessionRequest{
		SessionID: session.ID,
		IPAddress: req.IPAddress,
		UserAgent: req.UserAgent,
	})

	return session, nil
}

// Logout revokes the session holding the given plaintext token. Unknown
// tokens are fine: the session is gone either way.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.RevokeByToken(ctx, secret.Hash(token))
}

// ============================================================================
// Login Rate Limiting
// ============================================================================

// loginLimiter tracks failed logins from one address. An attempt is allowed
// while either bucket holds a token; a failure drains both. The minute
// bucket absorbs a few typos, the hour bucket stops sustained guessing.
type loginLimiter struct {
	minute *rate.Limiter
	hour   *rate.Limiter
}

func newLoginLimiter() *loginLimiter {
	return &loginLimiter{
		// 2 tokens per minute, 12 per hour
		minute: rate.NewLimiter(rate.Every(30*time.Second), 2),
		hour:   rate.NewLimiter(rate.Every(5*time.Minute), 12),
	}
}

// canTry reports whether a bucket holds a whole token. Tokens accrue
// fractionally, so compare against 1 rather than 0.
func (l *loginLimiter) canTry() bool {
	return l.minute.Tokens() >= 1 || l.hour.Tokens() >= 1
}

// removeToken drains one token from each bucket.
func (l *loginLimiter) removeToken() bool {
	m := l.minute.Allow()
	h := l.hour.Allow()
	return m && h
}

// LoginRateLimiter manages login limiters keyed by client address.
type LoginRateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*loginLimiter
}

// NewLoginRateLimiter creates a new LoginRateLimiter.
func NewLoginRateLimiter() *LoginRateLimiter {
	return &LoginRateLimiter{
		limiters: make(map[string]*loginLimiter),
	}
}

// getOrCreate retrieves an existing limiter or creates a new one.
func (r *LoginRateLimiter) getOrCreate(ip string) *loginLimiter {
	r.mu.RLock()
	limiter, exists := r.limiters[ip]
	r.mu.RUnlock()

	if exists {
		return limiter
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := r.limiters[ip]; exists {
		return limiter
	}

	limiter = newLoginLimiter()
	r.limiters[ip] = limiter

	return limiter
}

// CanTry reports whether the address may attempt a login.
func (r *LoginRateLimiter) CanTry(ip string) bool {
	return r.getOrCreate(ip).canTry()
}

// RemoveToken records a failed attempt against the address.
func (r *LoginRateLimiter) RemoveToken(ip string) bool {
	return r.getOrCreate(ip).removeToken()
}

// Delete removes the limiter for a specific address.
func (r *LoginRateLimiter) Delete(ip string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.limiters, ip)
}

// Clear removes all limiters.
func (r *LoginRateLimiter) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.limiters = make(map[string]*loginLimiter)
}
