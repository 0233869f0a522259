// Package domain defines the core domain models for Atelier.
package domain

import (
	"crypto/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Workspace constraints.
const (
	MaxWorkspacePathLength = 4096

	// WorkspaceIDPrefix is the prefix for workspace IDs.
	WorkspaceIDPrefix = "awsp-"
)

// WorkspaceKind classifies what a workspace path points at.
type WorkspaceKind string

// Workspace kinds.
const (
	KindFolder    WorkspaceKind = "folder"
	KindFile      WorkspaceKind = "file"
	KindWorkspace WorkspaceKind = "workspace"
)

// Valid reports whether k is one of the known workspace kinds.
func (k WorkspaceKind) Valid() bool {
	switch k {
	case KindFolder, KindFile, KindWorkspace:
		return true
	}
	return false
}

// Workspace records an open target: a folder, a single file, or a
// workspace description file. The registry keeps one entry per path and
// tracks how often and how recently it was opened, which drives the
// "reopen last workspace" behavior at startup.
type Workspace struct {
	// ID is the unique identifier for the workspace.
	// Format: awsp-{ulid_lowercase}, 31 characters total.
	ID string `json:"id"`

	// Path is the absolute path of the open target.
	Path string `json:"path"`

	// Kind classifies the target.
	Kind WorkspaceKind `json:"kind"`

	// FirstOpened is the timestamp of the first open (Unix milliseconds).
	FirstOpened int64 `json:"first_opened"`

	// LastOpened is the timestamp of the most recent open (Unix milliseconds).
	LastOpened int64 `json:"last_opened"`

	// OpenCount is the number of times the target was opened.
	OpenCount int64 `json:"open_count"`

	// Version is the optimistic lock version number.
	Version uint64 `json:"version"`
}

// NewWorkspace creates a new Workspace with a generated ID.
// FirstOpened, LastOpened, and OpenCount record the initial open.
func NewWorkspace(path string, kind WorkspaceKind) (*Workspace, error) {
	id, err := GenerateWorkspaceID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	return &Workspace{
		ID:          id,
		Path:        path,
		Kind:        kind,
		FirstOpened: now,
		LastOpened:  now,
		OpenCount:   1,
		Version:     1,
	}, nil
}

// GenerateWorkspaceID generates a new workspace ID using ULID.
// Format: awsp-{ulid_lowercase}, 31 characters total.
func GenerateWorkspaceID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", ErrInternalServer.WithCause(err)
	}
	return WorkspaceIDPrefix + strings.ToLower(id.String()), nil
}

// Touch records another open of the workspace.
func (w *Workspace) Touch() {
	w.LastOpened = time.Now().UnixMilli()
	w.OpenCount++
}

// IncrVersion increments the version number for optimistic locking.
func (w *Workspace) IncrVersion() {
	w.Version++
}

// GetVersion returns the current version for optimistic locking.
// Implements the Versioned interface from pkg/cmap.
func (w *Workspace) GetVersion() uint64 {
	return w.Version
}

// SetVersion sets the version number for optimistic locking.
// Implements the Versioned interface from pkg/cmap.
func (w *Workspace) SetVersion(v uint64) {
	w.Version = v
}

// Validate validates the workspace fields against constraints.
// Returns a DomainError with code AT-WORK-4001 if validation fails.
func (w *Workspace) Validate() error {
	var violations []string

	if w.Path == "" {
		violations = append(violations, "path is required")
	} else if !filepath.IsAbs(w.Path) {
		violations = append(violations, "path must be absolute")
	}

	if len(w.Path) > MaxWorkspacePathLength {
		violations = append(violations, "path exceeds 4096 characters")
	}

	if !w.Kind.Valid() {
		violations = append(violations, "kind must be folder, file, or workspace")
	}

	if len(violations) > 0 {
		return ErrWorkspaceValidation.WithDetails(strings.Join(violations, "; "))
	}

	return nil
}

// Clone creates a copy of the workspace.
func (w *Workspace) Clone() *Workspace {
	clone := *w
	return &clone
}

// LastOpenedTime returns LastOpened as time.Time.
func (w *Workspace) LastOpenedTime() time.Time {
	return time.UnixMilli(w.LastOpened)
}

// FirstOpenedTime returns FirstOpened as time.Time.
func (w *Workspace) FirstOpenedTime() time.Time {
	return time.UnixMilli(w.FirstOpened)
}

// IsValidWorkspaceID checks if a string is a valid workspace ID format.
func IsValidWorkspaceID(id string) bool {
	id = strings.ToLower(id)

	if !strings.HasPrefix(id, WorkspaceIDPrefix) {
		return false
	}

	// awsp- (5) + ULID (26) = 31 characters
	if len(id) != 31 {
		return false
	}

	ulidPart := strings.ToUpper(id[len(WorkspaceIDPrefix):])
	_, err := ulid.Parse(ulidPart)
	return err == nil
}
