// Package storage provides the storage engine for Atelier.
//
// The storage engine pairs the in-memory stores with an embedded
// Badger database so that sessions and the workspace registry survive
// restarts.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/atelierlabs/atelier-go/internal/core/domain"
	"github.com/atelierlabs/atelier-go/internal/core/service"
	"github.com/atelierlabs/atelier-go/internal/storage/memory"
)

// Key prefixes inside the shared Badger keyspace.
const (
	sessionKeyPrefix   = "session/"
	workspaceKeyPrefix = "workspace/"
)

// StateDirName is the subdirectory of the data dir that holds the
// Badger database.
const StateDirName = "state"

// Config configures the storage engine.
type Config struct {
	// DataDir is the base directory for all storage files.
	DataDir string

	// MaxSessions caps concurrently active sessions.
	MaxSessions int

	// Badger configuration.
	Badger BadgerConfig

	// Logger is the structured logger.
	Logger *slog.Logger
}

// DefaultConfig returns the default storage configuration.
func DefaultConfig(dataDir string) Config {
	return Config{
		DataDir: dataDir,
		Badger:  DefaultBadgerConfig(),
		Logger:  slog.Default(),
	}
}

// Engine is the storage engine combining memory stores with Badger.
//
// All reads are served from memory. Writes go to memory first, where
// conflicts and quota are enforced, and are then persisted; a failed
// persist rolls the write back out of memory so that nothing
// unacknowledged can resurrect on the next recovery.
type Engine struct {
	cfg Config

	// Components
	store      *memory.Store
	workspaces *memory.Workspaces
	kv         KVEngine

	// Logger
	logger *slog.Logger
}

// New creates a new storage engine.
//
// This initializes all components but does NOT perform recovery.
// Call Recover() after New() to load existing data.
func New(cfg Config) (*Engine, error) {
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("storage: data_dir is required")
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	// Create memory stores
	storeOpts := []memory.Option{}
	if cfg.MaxSessions > 0 {
		storeOpts = append(storeOpts, memory.WithMaxSessions(cfg.MaxSessions))
	}
	store := memory.New(storeOpts...)

	// Create the durable KV engine
	kvCfg := KVConfig{
		Dir:    filepath.Join(cfg.DataDir, StateDirName),
		Badger: cfg.Badger,
	}
	kv, err := NewBadgerEngine(kvCfg, cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("storage: create kv engine: %w", err)
	}

	return &Engine{
		cfg:        cfg,
		store:      store,
		workspaces: memory.NewWorkspaces(),
		kv:         kv,
		logger:     cfg.Logger,
	}, nil
}

// Recover rebuilds the memory state from Badger.
//
// Expired sessions found during replay are dropped from the database
// instead of being restored.
func (e *Engine) Recover(ctx context.Context) error {
	startTime := time.Now()
	e.logger.Info("storage recovery started")

	restored := 0
	skipped := 0

	err := e.kv.Scan(ctx, []byte(sessionKeyPrefix), func(key, value []byte) bool {
		var session domain.Session
		if err := json.Unmarshal(value, &session); err != nil {
			e.logger.Warn("skipping undecodable session record",
				"key", string(key),
				"error", err)
			return true
		}

		if session.IsExpired() {
			if err := e.kv.Delete(ctx, key); err != nil {
				e.logger.Warn("delete expired session record failed",
					"session_id", session.ID,
					"error", err)
			}
			skipped++
			return true
		}

		if err := e.store.Create(ctx, &session); err != nil {
			e.logger.Warn("failed to restore session",
				"session_id", session.ID,
				"error", err)
			return true
		}

		restored++
		return true
	})
	if err != nil {
		return fmt.Errorf("replay sessions: %w", err)
	}

	if skipped > 0 {
		e.logger.Info("dropped expired sessions during recovery", "count", skipped)
	}

	// Workspaces
	var workspaces []*domain.Workspace
	err = e.kv.Scan(ctx, []byte(workspaceKeyPrefix), func(key, value []byte) bool {
		var ws domain.Workspace
		if err := json.Unmarshal(value, &ws); err != nil {
			e.logger.Warn("skipping undecodable workspace record",
				"key", string(key),
				"error", err)
			return true
		}
		workspaces = append(workspaces, &ws)
		return true
	})
	if err != nil {
		return fmt.Errorf("replay workspaces: %w", err)
	}
	e.workspaces.Load(workspaces)

	e.logger.Info("recovery completed",
		"elapsed", time.Since(startTime),
		"session_count", restored,
		"workspace_count", len(workspaces))

	return nil
}

// ============================================================================
// Sessions
// ============================================================================

func sessionKey(id string) []byte {
	return []byte(sessionKeyPrefix + id)
}

// putSession persists a session record.
func (e *Engine) putSession(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return e.kv.Set(ctx, sessionKey(session.ID), data)
}

// Create creates a new session.
//
// Memory enforces conflicts and quota before anything reaches disk.
func (e *Engine) Create(ctx context.Context, session *domain.Session) error {
	// Step 1: Write to memory
	if err := e.store.Create(ctx, session); err != nil {
		return err
	}

	// Step 2: Persist
	if err := e.putSession(ctx, session); err != nil {
		// Roll the session back out of memory so the caller can
		// trust that a failed create left nothing behind.
		if derr := e.store.Delete(ctx, session.ID); derr != nil {
			e.logger.Error("rollback after failed persist",
				"session_id", session.ID,
				"error", derr)
		}
		return domain.ErrStorageError.WithCause(err)
	}

	return nil
}

// Get retrieves a session by ID.
func (e *Engine) Get(ctx context.Context, id string) (*domain.Session, error) {
	return e.store.Get(ctx, id)
}

// GetByToken retrieves a session by token hash.
func (e *Engine) GetByToken(ctx context.Context, tokenHash string) (*domain.Session, error) {
	return e.store.GetByToken(ctx, tokenHash)
}

// Update updates an existing session with optimistic locking.
//
// A failed durable write is surfaced to the caller; memory keeps the
// accepted state and the next successful write reconciles the copy on
// disk.
func (e *Engine) Update(ctx context.Context, session *domain.Session, expectedVersion uint64) error {
	// Step 1: Memory performs validation and the optimistic-lock check
	if err := e.store.Update(ctx, session, expectedVersion); err != nil {
		return err
	}

	// Step 2: Persist the accepted state
	if err := e.putSession(ctx, session); err != nil {
		e.logger.Warn("persist session update failed",
			"session_id", session.ID,
			"error", err)
		return domain.ErrStorageError.WithCause(err)
	}

	return nil
}

// UpdateSession updates a session without version checking.
//
// This is used for operations like Touch that don't require strict
// versioning.
func (e *Engine) UpdateSession(ctx context.Context, session *domain.Session) error {
	if err := e.store.UpdateSession(ctx, session); err != nil {
		return err
	}

	if err := e.putSession(ctx, session); err != nil {
		e.logger.Warn("persist session update failed",
			"session_id", session.ID,
			"error", err)
		return domain.ErrStorageError.WithCause(err)
	}

	return nil
}

// Delete deletes a session.
func (e *Engine) Delete(ctx context.Context, id string) error {
	if err := e.store.Delete(ctx, id); err != nil {
		return err
	}

	if err := e.kv.Delete(ctx, sessionKey(id)); err != nil {
		// The session is gone from memory; a stale record would be
		// restored on restart, which a later revoke can repeat.
		e.logger.Warn("delete session record failed",
			"session_id", id,
			"error", err)
		return domain.ErrStorageError.WithCause(err)
	}

	return nil
}

// DeleteByToken removes a session by its token hash.
func (e *Engine) DeleteByToken(ctx context.Context, tokenHash string) error {
	session, err := e.store.GetByToken(ctx, tokenHash)
	if err != nil {
		return err
	}
	return e.Delete(ctx, session.ID)
}

// List lists sessions matching the filter.
func (e *Engine) List(ctx context.Context, filter *service.SessionFilter) ([]*domain.Session, int, error) {
	return e.store.List(ctx, filter)
}

// DeleteAll removes every session. Returns the number removed.
func (e *Engine) DeleteAll(ctx context.Context) (int, error) {
	sessions := e.store.All()

	count, err := e.store.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}

	for _, session := range sessions {
		if err := e.kv.Delete(ctx, sessionKey(session.ID)); err != nil {
			e.logger.Warn("delete session record failed",
				"session_id", session.ID,
				"error", err)
		}
	}

	return count, nil
}

// DeleteExpired deletes all expired sessions and returns the count.
func (e *Engine) DeleteExpired(ctx context.Context) (int, error) {
	ids := e.store.CleanupExpired()

	for _, id := range ids {
		if err := e.kv.Delete(ctx, sessionKey(id)); err != nil {
			e.logger.Warn("delete expired session record failed",
				"session_id", id,
				"error", err)
		}
	}

	return len(ids), nil
}

// Touch updates the activity timestamps of a session in memory only.
//
// Activity timestamps are not worth an fsync per request; the durable
// copy catches up on the next full update.
func (e *Engine) Touch(ctx context.Context, id, ip, userAgent string) error {
	return e.store.Touch(ctx, id, ip, userAgent)
}

// Count returns the total number of sessions in storage.
func (e *Engine) Count(ctx context.Context) int {
	return e.store.Count()
}

// Scan iterates over all sessions in storage.
func (e *Engine) Scan(fn func(*domain.Session) bool) {
	e.store.Scan(fn)
}

// ============================================================================
// Workspaces
// ============================================================================

func workspaceKey(id string) []byte {
	return []byte(workspaceKeyPrefix + id)
}

// RecordWorkspace inserts or replaces a workspace registry entry.
func (e *Engine) RecordWorkspace(ctx context.Context, ws *domain.Workspace) error {
	if err := ws.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(ws)
	if err != nil {
		return domain.ErrStorageError.WithCause(err)
	}
	if err := e.kv.Set(ctx, workspaceKey(ws.ID), data); err != nil {
		return domain.ErrStorageError.WithCause(err)
	}

	e.workspaces.Put(ws)
	return nil
}

// WorkspaceByPath retrieves a workspace by its absolute path.
func (e *Engine) WorkspaceByPath(ctx context.Context, path string) (*domain.Workspace, error) {
	ws, ok := e.workspaces.GetByPath(path)
	if !ok {
		return nil, domain.ErrWorkspaceNotFound
	}
	return ws, nil
}

// RecentWorkspaces returns up to limit workspaces ordered by most
// recently opened. A non-positive limit returns all entries.
func (e *Engine) RecentWorkspaces(ctx context.Context, limit int) ([]*domain.Workspace, error) {
	return e.workspaces.Recent(limit), nil
}

// DeleteWorkspace removes a workspace registry entry.
func (e *Engine) DeleteWorkspace(ctx context.Context, id string) error {
	if !e.workspaces.Delete(id) {
		return domain.ErrWorkspaceNotFound
	}

	if err := e.kv.Delete(ctx, workspaceKey(id)); err != nil {
		e.logger.Warn("delete workspace record failed",
			"workspace_id", id,
			"error", err)
		return domain.ErrStorageError.WithCause(err)
	}

	return nil
}

// CountWorkspaces returns the number of workspace registry entries.
func (e *Engine) CountWorkspaces(ctx context.Context) int {
	return e.workspaces.Count()
}

// ============================================================================
// Lifecycle
// ============================================================================

// GC triggers a value-log garbage collection pass on the KV engine.
func (e *Engine) GC(ctx context.Context) (uint64, error) {
	return e.kv.GC(ctx)
}

// Stats returns KV storage statistics.
func (e *Engine) Stats(ctx context.Context) (*KVStats, error) {
	return e.kv.Stats(ctx)
}

// Close gracefully shuts down the storage engine.
func (e *Engine) Close() error {
	e.logger.Info("shutting down storage engine")

	if err := e.kv.Close(); err != nil {
		e.logger.Error("close kv engine failed", "error", err)
		return err
	}

	e.logger.Info("storage engine shutdown complete")
	return nil
}

// IsNotFound reports whether an error is any of the not-found errors
// produced by the engine.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrSessionNotFound) ||
		errors.Is(err, domain.ErrWorkspaceNotFound) ||
		errors.Is(err, ErrKeyNotFound)
}
