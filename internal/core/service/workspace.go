// Package service provides domain services for Atelier.
//
// This file contains WorkspaceService: open-target classification and the
// recent-workspace registry behind the shell page and the open command.
package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/atelierlabs/atelier-go/internal/core/domain"
)

// DefaultWorkspaceExt marks a file as a multi-root workspace description.
// The CLI layer carries the same suffix for its folder/workspace post-pass.
const DefaultWorkspaceExt = ".atelier-workspace"

// WorkspaceRepository defines the storage contract for the workspace
// registry.
type WorkspaceRepository interface {
	// RecordWorkspace inserts or replaces a workspace registry entry.
	RecordWorkspace(ctx context.Context, ws *domain.Workspace) error

	// WorkspaceByPath retrieves a workspace by its absolute path.
	WorkspaceByPath(ctx context.Context, path string) (*domain.Workspace, error)

	// RecentWorkspaces returns up to limit workspaces ordered by most
	// recently opened. A non-positive limit returns all entries.
	RecentWorkspaces(ctx context.Context, limit int) ([]*domain.Workspace, error)

	// DeleteWorkspace removes a workspace registry entry.
	DeleteWorkspace(ctx context.Context, id string) error
}

// WorkspaceService tracks which folders, files, and workspaces have been
// opened, so the shell page and a fresh start can offer them back.
type WorkspaceService struct {
	repo WorkspaceRepository
	ext  string
}

// WorkspaceServiceConfig holds configuration for WorkspaceService.
type WorkspaceServiceConfig struct {
	// WorkspaceExt is the file suffix identifying workspace description
	// files (default: DefaultWorkspaceExt).
	WorkspaceExt string
}

// NewWorkspaceService creates a new WorkspaceService.
func NewWorkspaceService(repo WorkspaceRepository, config *WorkspaceServiceConfig) *WorkspaceService {
	ext := DefaultWorkspaceExt
	if config != nil && config.WorkspaceExt != "" {
		ext = config.WorkspaceExt
	}

	return &WorkspaceService{
		repo: repo,
		ext:  ext,
	}
}

// Classify determines the workspace kind of a path: directories are
// folders, files carrying the workspace suffix are workspaces, and
// anything else is a file. Paths that do not exist yet are classified by
// suffix alone, since opening a missing file creates it.
func (s *WorkspaceService) Classify(path string) domain.WorkspaceKind {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return domain.KindFolder
	}
	if strings.HasSuffix(path, s.ext) {
		return domain.KindWorkspace
	}
	return domain.KindFile
}

// ============================================================================
// Open Tracking
// ============================================================================

// OpenWorkspaceRequest contains the targets of an open operation, as given
// on the command line or in a delegated open.
type OpenWorkspaceRequest struct {
	Targets []string
}

// OpenWorkspaceResponse contains the registry entries the open touched, in
// target order.
type OpenWorkspaceResponse struct {
	Workspaces []*domain.Workspace
}

// Open records that the given paths were opened. Known paths get their
// open count and timestamp bumped; new paths are classified and added.
// Relative targets are resolved against the working directory.
func (s *WorkspaceService) Open(ctx context.Context, req *OpenWorkspaceRequest) (*OpenWorkspaceResponse, error) {
	if len(req.Targets) == 0 {
		return nil, domain.ErrBadRequest.WithDetails("no open targets given")
	}

	out := make([]*domain.Workspace, 0, len(req.Targets))
	for _, target := range req.Targets {
		if target == "" {
			return nil, domain.ErrBadRequest.WithDetails("empty open target")
		}

		abs, err := filepath.Abs(target)
		if err != nil {
			return nil, domain.ErrBadRequest.WithCause(err)
		}

		ws, err := s.repo.WorkspaceByPath(ctx, abs)
		switch {
		case err == nil:
			ws.Touch()
		case domain.IsDomainError(err, "AT-WORK-4040"):
			ws, err = domain.NewWorkspace(abs, s.Classify(abs))
			if err != nil {
				return nil, domain.ErrInternalServer.WithCause(err)
			}
		default:
			return nil, domain.ErrStorageError.WithCause(err)
		}

		if err := s.repo.RecordWorkspace(ctx, ws); err != nil {
			return nil, err
		}
		out = append(out, ws)
	}

	return &OpenWorkspaceResponse{Workspaces: out}, nil
}

// ============================================================================
// Registry Queries
// ============================================================================

// Recent returns up to limit workspaces ordered by most recently opened.
func (s *WorkspaceService) Recent(ctx context.Context, limit int) ([]*domain.Workspace, error) {
	items, err := s.repo.RecentWorkspaces(ctx, limit)
	if err != nil {
		return nil, domain.ErrStorageError.WithCause(err)
	}
	return items, nil
}

// LastOpened returns the most recently opened workspace, or
// ErrWorkspaceNotFound when nothing has been opened yet. A server started
// without targets reopens this unless told to ignore it.
func (s *WorkspaceService) LastOpened(ctx context.Context) (*domain.Workspace, error) {
	items, err := s.Recent(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrWorkspaceNotFound
	}
	return items[0], nil
}

// Forget removes a workspace from the registry. Forgetting an unknown
// workspace succeeds.
func (s *WorkspaceService) Forget(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrBadRequest.WithDetails("workspace id is required")
	}

	if err := s.repo.DeleteWorkspace(ctx, id); err != nil {
		if domain.IsDomainError(err, "AT-WORK-4040") {
			return nil
		}
		return domain.ErrStorageError.WithCause(err)
	}

	return nil
}
