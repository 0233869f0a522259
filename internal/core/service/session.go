// Package service provides domain services for Atelier.
//
// This file contains the session repository contract and the core session
// operations: Create, Get, GetByToken, and List.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/atelierlabs/atelier-go/internal/core/domain"
	"github.com/atelierlabs/atelier-go/pkg/secret"
)

// DefaultSessionTTL is the lifetime of a browser session when the caller
// does not choose one. Thirty days matches the longest interval a returning
// single user plausibly leaves between visits.
const DefaultSessionTTL = 30 * 24 * time.Hour

// SessionFilter contains filter criteria for listing sessions.
type SessionFilter struct {
	IPAddress     string     // Matches login IP or last access IP
	Status        string     // "active", "expired", or "" for all
	CreatedAfter  *time.Time // Sessions created after this time
	CreatedBefore *time.Time // Sessions created before this time
	ActiveAfter   *time.Time // Sessions active after this time

	SortBy    string // "created_at" (default) or "last_active"
	SortOrder string // "asc" or "desc" (default)

	Page     int // Page number, 1-based
	PageSize int // Items per page (default 20, max 100)
}

// SessionRepository defines the storage contract for sessions.
type SessionRepository interface {
	// Create persists a new session.
	Create(ctx context.Context, session *domain.Session) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// GetByToken retrieves a session by its token hash.
	GetByToken(ctx context.Context, tokenHash string) (*domain.Session, error)

	// Update persists session changes with optimistic locking.
	Update(ctx context.Context, session *domain.Session, expectedVersion uint64) error

	// Delete removes a session by ID.
	Delete(ctx context.Context, id string) error

	// DeleteByToken removes the session holding the given token hash.
	DeleteByToken(ctx context.Context, tokenHash string) error

	// List retrieves sessions matching the filter and the unpaged total.
	List(ctx context.Context, filter *SessionFilter) ([]*domain.Session, int, error)

	// DeleteAll removes every session and reports how many were removed.
	DeleteAll(ctx context.Context) (int, error)

	// DeleteExpired removes expired sessions and reports how many.
	DeleteExpired(ctx context.Context) (int, error)

	// Touch updates last-activity bookkeeping for a session.
	Touch(ctx context.Context, id, ip, userAgent string) error
}

// SessionService implements session business logic.
type SessionService struct {
	repo   SessionRepository
	ttl    time.Duration
	logger *slog.Logger
}

// SessionServiceConfig holds configuration for SessionService.
type SessionServiceConfig struct {
	// DefaultTTL is applied when a create request carries no TTL.
	DefaultTTL time.Duration

	// Logger receives expiry-sweep reports.
	Logger *slog.Logger
}

// DefaultSessionServiceConfig returns default configuration.
func DefaultSessionServiceConfig() *SessionServiceConfig {
	return &SessionServiceConfig{
		DefaultTTL: DefaultSessionTTL,
		Logger:     slog.Default(),
	}
}

// NewSessionService creates a new SessionService.
func NewSessionService(repo SessionRepository, config *SessionServiceConfig) *SessionService {
	if config == nil {
		config = DefaultSessionServiceConfig()
	}
	if config.DefaultTTL <= 0 {
		config.DefaultTTL = DefaultSessionTTL
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &SessionService{
		repo:   repo,
		ttl:    config.DefaultTTL,
		logger: config.Logger,
	}
}

// ============================================================================
// Session Creation
// ============================================================================

// CreateSessionRequest contains parameters for session creation.
type CreateSessionRequest struct {
	IPAddress string        // Client IP at login
	UserAgent string        // Client user agent at login
	TTL       time.Duration // Optional, defaults to the service TTL
}

// CreateSessionResponse contains the result of session creation.
//
// Token is the plaintext session token. It is returned here exactly once
// and is never stored or logged.
type CreateSessionResponse struct {
	SessionID string
	Token     string
	ExpiresAt int64
	Session   *domain.Session
}

// Create generates a fresh token, builds a session around its hash, and
// persists it.
func (s *SessionService) Create(ctx context.Context, req *CreateSessionRequest) (*CreateSessionResponse, error) {
	// 1. Generate the plaintext token and derive the stored hash
	plainToken, err := secret.Token()
	if err != nil {
		return nil, domain.ErrInternalServer.WithCause(err)
	}
	tokenHash := secret.Hash(plainToken)

	// 2. Create session entity
	session, err := domain.NewSession()
	if err != nil {
		return nil, domain.ErrInternalServer.WithCause(err)
	}
	session.TokenHash = tokenHash
	session.IPAddress = req.IPAddress
	session.UserAgent = req.UserAgent
	session.LastAccessIP = req.IPAddress
	session.LastAccessUA = req.UserAgent

	ttl := req.TTL
	if ttl <= 0 {
		ttl = s.ttl
	}
	session.SetExpiration(ttl)

	// 3. Validate session
	if err := session.Validate(); err != nil {
		return nil, err
	}

	// 4. Persist to storage
	if err := s.repo.Create(ctx, session); err != nil {
		if domain.IsDomainError(err, "AT-SESS-4002") {
			return nil, err
		}
		return nil, domain.ErrStorageError.WithCause(err)
	}

	// 5. Return response (including plaintext token)
	return &CreateSessionResponse{
		SessionID: session.ID,
		Token:     plainToken,
		ExpiresAt: session.ExpiresAt,
		Session:   session,
	}, nil
}

// ============================================================================
// Session Query Operations
// ============================================================================

// GetSessionRequest contains parameters for session retrieval.
type GetSessionRequest struct {
	SessionID string
}

// Get retrieves a session by ID.
func (s *SessionService) Get(ctx context.Context, req *GetSessionRequest) (*domain.Session, error) {
	// 1. Validate input
	if req.SessionID == "" {
		return nil, domain.ErrBadRequest.WithDetails("session_id is required")
	}

	// 2. Retrieve from storage (expired sessions surface as ErrSessionExpired)
	session, err := s.repo.Get(ctx, req.SessionID)
	if err != nil {
		if domain.IsDomainError(err, "AT-SESS-4041") {
			return nil, err
		}
		return nil, domain.ErrSessionNotFound.WithCause(err)
	}

	return session, nil
}

// GetByToken retrieves a session by its token hash.
//
// Callers hold plaintext tokens, not hashes; AuthService.ValidateToken is
// the usual entry point and performs the hashing.
func (s *SessionService) GetByToken(ctx context.Context, tokenHash string) (*domain.Session, error) {
	if tokenHash == "" {
		return nil, domain.ErrBadRequest.WithDetails("token hash is required")
	}

	session, err := s.repo.GetByToken(ctx, tokenHash)
	if err != nil {
		if domain.IsDomainError(err, "AT-SESS-4041") {
			return nil, err
		}
		return nil, domain.ErrSessionNotFound.WithCause(err)
	}

	return session, nil
}

// ============================================================================
// Session Listing
// ============================================================================

// ListSessionsRequest contains parameters for session listing.
type ListSessionsRequest struct {
	Filter *SessionFilter
}

// ListSessionsResponse contains the result of session listing.
type ListSessionsResponse struct {
	Items    []*domain.Session
	Total    int
	Page     int
	PageSize int
}

// List retrieves sessions matching the filter criteria.
func (s *SessionService) List(ctx context.Context, req *ListSessionsRequest) (*ListSessionsResponse, error) {
	filter := req.Filter
	if filter == nil {
		filter = &SessionFilter{}
	}

	// Set defaults
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	} else if filter.PageSize > 100 {
		filter.PageSize = 100 // Max 100 per page
	}
	if filter.SortBy == "" {
		filter.SortBy = "created_at"
	}
	if filter.SortOrder == "" {
		filter.SortOrder = "desc"
	}
	if filter.Status != "" && filter.Status != "active" && filter.Status != "expired" {
		return nil, domain.ErrBadRequest.WithDetails(
			fmt.Sprintf("unknown status filter %q (want active or expired)", filter.Status),
		)
	}

	// Query storage
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, domain.ErrStorageError.WithCause(err)
	}

	return &ListSessionsResponse{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}
