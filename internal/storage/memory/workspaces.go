// Package memory provides in-memory storage for Atelier.
package memory

import (
	"sort"
	"sync"

	"github.com/atelierlabs/atelier-go/internal/core/domain"
	"github.com/atelierlabs/atelier-go/pkg/cmap"
)

// Workspaces provides an in-memory view of the workspace registry.
//
// The registry is small (one entry per path ever opened), so every
// query is served from memory; the persistent copy exists only to
// survive restarts.
type Workspaces struct {
	// Primary index: WorkspaceID -> Workspace
	byID *cmap.Map[string, *domain.Workspace]

	// Secondary index: absolute path -> WorkspaceID
	paths *PathIndex

	// Global lock for operations requiring atomicity across indexes
	mu sync.Mutex
}

// NewWorkspaces creates a new workspace registry view.
func NewWorkspaces() *Workspaces {
	return &Workspaces{
		byID:  cmap.New[string, *domain.Workspace](),
		paths: NewPathIndex(),
	}
}

// Put inserts or replaces a workspace and refreshes the path index.
func (w *Workspaces) Put(ws *domain.Workspace) {
	w.mu.Lock()
	defer w.mu.Unlock()

	clone := ws.Clone()
	w.byID.Set(clone.ID, clone)
	w.paths.Put(clone.Path, clone.ID)
}

// Get retrieves a workspace by ID.
func (w *Workspaces) Get(id string) (*domain.Workspace, bool) {
	ws, ok := w.byID.Get(id)
	if !ok {
		return nil, false
	}
	return ws.Clone(), true
}

// GetByPath retrieves a workspace by its absolute path.
func (w *Workspaces) GetByPath(path string) (*domain.Workspace, bool) {
	id, ok := w.paths.Lookup(path)
	if !ok {
		return nil, false
	}

	ws, ok := w.byID.Get(id)
	if !ok {
		// Index inconsistency - clean up orphaned path
		w.paths.Remove(path)
		return nil, false
	}

	return ws.Clone(), true
}

// Delete removes a workspace by ID.
func (w *Workspaces) Delete(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	ws, ok := w.byID.Pop(id)
	if !ok {
		return false
	}
	w.paths.Remove(ws.Path)
	return true
}

// Recent returns up to limit workspaces ordered by LastOpened descending.
// A non-positive limit returns all entries.
func (w *Workspaces) Recent(limit int) []*domain.Workspace {
	all := w.All()

	sort.Slice(all, func(i, j int) bool {
		return all[i].LastOpened > all[j].LastOpened
	})

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}

// All returns all workspaces as a slice of clones.
func (w *Workspaces) All() []*domain.Workspace {
	out := make([]*domain.Workspace, 0, w.byID.Count())
	w.byID.Range(func(_ string, ws *domain.Workspace) bool {
		out = append(out, ws.Clone())
		return true
	})
	return out
}

// Count returns the number of workspaces.
func (w *Workspaces) Count() int {
	return w.byID.Count()
}

// Load rebuilds the registry view from a list of workspaces.
func (w *Workspaces) Load(workspaces []*domain.Workspace) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.byID.Clear()
	w.paths.Clear()

	for _, ws := range workspaces {
		clone := ws.Clone()
		w.byID.Set(clone.ID, clone)
		w.paths.Put(clone.Path, clone.ID)
	}
}
