// Package memory provides in-memory storage for Atelier.
package memory

import (
	"github.com/atelierlabs/atelier-go/pkg/cmap"
)

// TokenIndex provides secondary indexing for sessions by token hash.
//
// It maintains a mapping from TokenHash to SessionID, enabling the
// cookie-auth path to resolve a presented token in one lookup.
type TokenIndex struct {
	index *cmap.Map[string, string]
}

// NewTokenIndex creates a new token index.
func NewTokenIndex() *TokenIndex {
	return &TokenIndex{
		index: cmap.New[string, string](),
	}
}

// Put maps a token hash to a session ID.
func (i *TokenIndex) Put(tokenHash, sessionID string) {
	if tokenHash == "" {
		return
	}
	i.index.Set(tokenHash, sessionID)
}

// Lookup returns the session ID for a token hash.
func (i *TokenIndex) Lookup(tokenHash string) (string, bool) {
	if tokenHash == "" {
		return "", false
	}
	return i.index.Get(tokenHash)
}

// Has reports whether the token hash is indexed.
func (i *TokenIndex) Has(tokenHash string) bool {
	if tokenHash == "" {
		return false
	}
	return i.index.Has(tokenHash)
}

// Remove deletes a token hash mapping.
func (i *TokenIndex) Remove(tokenHash string) {
	if tokenHash == "" {
		return
	}
	i.index.Delete(tokenHash)
}

// Pop removes and returns the session ID for a token hash.
func (i *TokenIndex) Pop(tokenHash string) (string, bool) {
	if tokenHash == "" {
		return "", false
	}
	return i.index.Pop(tokenHash)
}

// Len returns the number of indexed tokens.
func (i *TokenIndex) Len() int {
	return i.index.Count()
}

// Clear removes all mappings.
func (i *TokenIndex) Clear() {
	i.index.Clear()
}

// PathIndex provides secondary indexing for workspaces by path.
//
// It maintains a mapping from absolute path to WorkspaceID, enabling
// upsert-by-path when a target is opened again.
type PathIndex struct {
	index *cmap.Map[string, string]
}

// NewPathIndex creates a new path index.
func NewPathIndex() *PathIndex {
	return &PathIndex{
		index: cmap.New[string, string](),
	}
}

// Put maps a path to a workspace ID.
func (i *PathIndex) Put(path, workspaceID string) {
	if path == "" {
		return
	}
	i.index.Set(path, workspaceID)
}

// Lookup returns the workspace ID for a path.
func (i *PathIndex) Lookup(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	return i.index.Get(path)
}

// Remove deletes a path mapping.
func (i *PathIndex) Remove(path string) {
	if path == "" {
		return
	}
	i.index.Delete(path)
}

// Len returns the number of indexed paths.
func (i *PathIndex) Len() int {
	return i.index.Count()
}

// Clear removes all mappings.
func (i *PathIndex) Clear() {
	i.index.Clear()
}
