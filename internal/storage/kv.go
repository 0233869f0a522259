// Package storage provides storage abstractions for Atelier.
//
// This file defines the KVEngine interface for embedded KV storage,
// used by the engine for session and workspace persistence.
package storage

import (
	"context"
)

// KVEngine defines the interface for embedded key-value storage.
//
// This abstraction allows the engine to use different embedded KV
// stores (Badger, bbolt, Pebble) without code changes.
//
// Implementation requirements:
// - Thread-safe: concurrent reads/writes must be safe
// - Durable: data must survive process restarts
type KVEngine interface {
	// Get retrieves a value by key.
	// Returns ErrKeyNotFound if key doesn't exist.
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Set stores a key-value pair.
	Set(ctx context.Context, key, value []byte) error

	// Delete removes a key.
	Delete(ctx context.Context, key []byte) error

	// Scan iterates over keys with a given prefix.
	// Callback returns false to stop iteration.
	Scan(ctx context.Context, prefix []byte, fn func(key, value []byte) bool) error

	// GC triggers garbage collection (for LSM-based engines like Badger).
	// Returns bytes reclaimed.
	GC(ctx context.Context) (uint64, error)

	// Stats returns storage statistics (size, keys count, etc.).
	Stats(ctx context.Context) (*KVStats, error)

	// Close gracefully shuts down the KV engine.
	Close() error
}

// KVStats contains storage engine statistics.
type KVStats struct {
	// TotalKeys is the approximate number of keys.
	TotalKeys uint64

	// TotalSize is the total disk usage in bytes.
	TotalSize uint64

	// LSMSize is the LSM tree size (for Badger/Pebble).
	LSMSize uint64

	// ValueLogSize is the value log size (for Badger).
	ValueLogSize uint64

	// LastGCTime is the last GC run timestamp (Unix milliseconds).
	LastGCTime int64

	// GCBytesReclaimed is the total bytes reclaimed by GC.
	GCBytesReclaimed uint64
}

// KVConfig configures an embedded KV engine.
type KVConfig struct {
	// Dir is the storage directory.
	Dir string

	// Badger-specific configuration
	Badger BadgerConfig
}

// BadgerConfig contains Badger-specific tuning parameters.
type BadgerConfig struct {
	// GCInterval is the interval between automatic GC runs.
	// Default: 10m
	GCInterval string

	// GCThreshold is the GC discard ratio threshold (0.0-1.0).
	// Higher values trigger GC more aggressively.
	// Default: 0.5 (run GC when 50% of data is stale)
	GCThreshold float64

	// CacheSize is the block cache size in bytes.
	// Default: 16MB
	CacheSize int64

	// ValueLogFileSize is the max value log file size in bytes.
	// Default: 64MB
	ValueLogFileSize int64

	// NumMemtables is the number of memtables.
	// Default: 2
	NumMemtables int

	// NumLevelZeroTables is the number of Level 0 tables before compaction.
	// Default: 5
	NumLevelZeroTables int

	// NumLevelZeroTablesStall is the number of Level 0 tables that triggers write stall.
	// Default: 10
	NumLevelZeroTablesStall int

	// SyncWrites enables sync writes (fsync after each write).
	// Default: true (Badger is the only durable copy of sessions)
	SyncWrites bool

	// DetectConflicts enables transaction conflict detection.
	// Default: false (the memory store serializes writers)
	DetectConflicts bool
}

// DefaultKVConfig returns the default KV configuration.
func DefaultKVConfig(dir string) KVConfig {
	return KVConfig{
		Dir:    dir,
		Badger: DefaultBadgerConfig(),
	}
}

// DefaultBadgerConfig returns the default Badger configuration.
//
// The defaults are sized for a single-user workspace server: a few
// hundred sessions and workspace records, not millions of keys.
func DefaultBadgerConfig() BadgerConfig {
	return BadgerConfig{
		GCInterval:              "10m",
		GCThreshold:             0.5,
		CacheSize:               16 << 20, // 16MB
		ValueLogFileSize:        64 << 20, // 64MB
		NumMemtables:            2,
		NumLevelZeroTables:      5,
		NumLevelZeroTablesStall: 10,
		SyncWrites:              true,
		DetectConflicts:         false,
	}
}
