// Package service provides domain services for Atelier.
//
// This file contains session lifecycle operations: Touch, Revoke,
// RevokeByToken, RevokeAll, GC, and the background expiry sweeper.
package service

import (
	"context"
	"time"

	"github.com/atelierlabs/atelier-go/internal/core/domain"
)

// ============================================================================
// Session Lifecycle Operations
// ============================================================================

// TouchSessionRequest contains parameters for session touch operation.
type TouchSessionRequest struct {
	SessionID string
	IPAddress string // Optional: update last access IP
	UserAgent string // Optional: update last access user agent
}

// Touch updates the last-activity bookkeeping of a session. It is a
// lightweight per-request operation and does not extend the session TTL.
func (s *SessionService) Touch(ctx context.Context, req *TouchSessionRequest) error {
	// 1. Validate input
	if req.SessionID == "" {
		return domain.ErrBadRequest.WithDetails("session_id is required")
	}

	// 2. Update in place
	if err := s.repo.Touch(ctx, req.SessionID, req.IPAddress, req.UserAgent); err != nil {
		if domain.IsDomainError(err, "AT-SESS-4040") || domain.IsDomainError(err, "AT-SESS-4041") {
			return err
		}
		return domain.ErrStorageError.WithCause(err)
	}

	return nil
}

// RevokeSessionRequest contains parameters for session revocation.
type RevokeSessionRequest struct {
	SessionID string
}

// RevokeSessionResponse contains the result of session revocation.
type RevokeSessionResponse struct {
	Success bool
}

// Revoke revokes (deletes) a session. Revoking a session that no longer
// exists succeeds: the caller wanted it gone and it is.
func (s *SessionService) Revoke(ctx context.Context, req *RevokeSessionRequest) (*RevokeSessionResponse, error) {
	// 1. Validate input
	if req.SessionID == "" {
		return nil, domain.ErrBadRequest.WithDetails("session_id is required")
	}

	// 2. Delete from storage (idempotent)
	if err := s.repo.Delete(ctx, req.SessionID); err != nil {
		if domain.IsDomainError(err, "AT-SESS-4040") {
			return &RevokeSessionResponse{Success: true}, nil
		}
		return nil, domain.ErrStorageError.WithCause(err)
	}

	return &RevokeSessionResponse{Success: true}, nil
}

// RevokeByToken revokes the session holding the given token hash.
// Like Revoke, a missing session counts as success.
func (s *SessionService) RevokeByToken(ctx context.Context, tokenHash string) error {
	if tokenHash == "" {
		return domain.ErrBadRequest.WithDetails("token hash is required")
	}

	if err := s.repo.DeleteByToken(ctx, tokenHash); err != nil {
		if domain.IsDomainError(err, "AT-SESS-4040") || domain.IsDomainError(err, "AT-SESS-4041") {
			return nil
		}
		return domain.ErrStorageError.WithCause(err)
	}

	return nil
}

// RevokeAll revokes every session and reports how many were removed.
func (s *SessionService) RevokeAll(ctx context.Context) (int, error) {
	count, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, domain.ErrStorageError.WithCause(err)
	}
	return count, nil
}

// GC removes expired sessions. The sweeper calls this periodically; it is
// also safe to invoke directly.
func (s *SessionService) GC(ctx context.Context) (int, error) {
	count, err := s.repo.DeleteExpired(ctx)
	if err != nil {
		return 0, domain.ErrStorageError.WithCause(err)
	}
	return count, nil
}

// RunSweeper blocks, removing expired sessions every interval until the
// context is cancelled. Run it in its own goroutine.
func (s *SessionService) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := s.GC(ctx)
			if err != nil {
				s.logger.Warn("session expiry sweep failed", "error", err)
				continue
			}
			if count > 0 {
				s.logger.Info("session expiry sweep", "removed", count)
			}
		}
	}
}
