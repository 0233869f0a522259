package memory

import "testing"

func TestTokenIndex(t *testing.T) {
	idx := NewTokenIndex()

	idx.Put("hash-1", "asid-one")
	idx.Put("hash-2", "asid-two")

	if id, ok := idx.Lookup("hash-1"); !ok || id != "asid-one" {
		t.Errorf("Lookup(hash-1) = %q, %v; want asid-one, true", id, ok)
	}
	if !idx.Has("hash-2") {
		t.Error("Has(hash-2) = false, want true")
	}
	if idx.Len() != 2 {
		t.Errorf("Len() = %d, want 2", idx.Len())
	}

	id, ok := idx.Pop("hash-1")
	if !ok || id != "asid-one" {
		t.Errorf("Pop(hash-1) = %q, %v; want asid-one, true", id, ok)
	}
	if _, ok := idx.Lookup("hash-1"); ok {
		t.Error("Lookup after Pop should miss")
	}

	idx.Remove("hash-2")
	if idx.Len() != 0 {
		t.Errorf("Len() after removals = %d, want 0", idx.Len())
	}
}

func TestTokenIndex_EmptyHashIgnored(t *testing.T) {
	idx := NewTokenIndex()

	idx.Put("", "asid-one")
	if idx.Len() != 0 {
		t.Error("empty hash should not be indexed")
	}
	if _, ok := idx.Lookup(""); ok {
		t.Error("Lookup of empty hash should miss")
	}
	if idx.Has("") {
		t.Error("Has of empty hash should be false")
	}
}

func TestPathIndex(t *testing.T) {
	idx := NewPathIndex()

	idx.Put("/home/dev/project", "awsp-one")
	idx.Put("/home/dev/other", "awsp-two")

	if id, ok := idx.Lookup("/home/dev/project"); !ok || id != "awsp-one" {
		t.Errorf("Lookup = %q, %v; want awsp-one, true", id, ok)
	}
	if idx.Len() != 2 {
		t.Errorf("Len() = %d, want 2", idx.Len())
	}

	// Re-Put replaces the mapping
	idx.Put("/home/dev/project", "awsp-three")
	if id, _ := idx.Lookup("/home/dev/project"); id != "awsp-three" {
		t.Errorf("Lookup after re-Put = %q, want awsp-three", id)
	}

	idx.Remove("/home/dev/other")
	if _, ok := idx.Lookup("/home/dev/other"); ok {
		t.Error("Lookup after Remove should miss")
	}

	idx.Clear()
	if idx.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", idx.Len())
	}
}

func TestPathIndex_EmptyPathIgnored(t *testing.T) {
	idx := NewPathIndex()

	idx.Put("", "awsp-one")
	if idx.Len() != 0 {
		t.Error("empty path should not be indexed")
	}
}
