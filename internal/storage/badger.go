// Package storage provides Badger-based KV storage implementation.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/prometheus/client_golang/prometheus"
)

// Common errors
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrClosed      = errors.New("kv engine closed")
)

// BadgerEngine implements KVEngine using Badger v3.
type BadgerEngine struct {
	db     *badger.DB
	cfg    BadgerConfig
	logger *slog.Logger

	// Metrics (internal counters)
	lastGCTime       atomic.Int64  // Unix milliseconds
	gcBytesReclaimed atomic.Uint64 // Total bytes reclaimed by GC

	// Prometheus metrics
	metricsLSMSize      prometheus.Gauge
	metricsValueLogSize prometheus.Gauge
	metricsTotalSize    prometheus.Gauge
	metricsLastGCTime   prometheus.Gauge

	// Shutdown
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewBadgerEngine creates a new Badger-based KV engine.
func NewBadgerEngine(cfg KVConfig, logger *slog.Logger) (*BadgerEngine, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("badger: dir is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	// Build Badger options
	opts := badger.DefaultOptions(cfg.Dir)
	opts.Logger = &badgerLogger{logger: logger}

	// Apply custom configuration
	badgerCfg := cfg.Badger
	opts.BlockCacheSize = badgerCfg.CacheSize
	opts.ValueLogFileSize = badgerCfg.ValueLogFileSize
	opts.NumMemtables = badgerCfg.NumMemtables
	opts.NumLevelZeroTables = badgerCfg.NumLevelZeroTables
	opts.NumLevelZeroTablesStall = badgerCfg.NumLevelZeroTablesStall
	opts.SyncWrites = badgerCfg.SyncWrites
	opts.DetectConflicts = badgerCfg.DetectConflicts

	// Open Badger DB
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open db: %w", err)
	}

	engine := &BadgerEngine{
		db:     db,
		cfg:    badgerCfg,
		logger: logger,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}

	// Start background GC loop
	go engine.gcLoop()

	logger.Info("badger engine started",
		"dir", cfg.Dir,
		"cache_size", badgerCfg.CacheSize,
		"gc_interval", badgerCfg.GCInterval)

	return engine, nil
}

// Get retrieves a value by key.
func (e *BadgerEngine) Get(ctx context.Context, key []byte) ([]byte, error) {
	var value []byte

	err := e.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrKeyNotFound
			}
			return err
		}

		value, err = item.ValueCopy(nil)
		return err
	})

	if err != nil {
		return nil, err
	}

	return value, nil
}

// Set stores a key-value pair.
func (e *BadgerEngine) Set(ctx context.Context, key, value []byte) error {
	return e.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Delete removes a key.
func (e *BadgerEngine) Delete(ctx context.Context, key []byte) error {
	return e.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// Scan iterates over keys with a given prefix.
func (e *BadgerEngine) Scan(ctx context.Context, prefix []byte, fn func(key, value []byte) bool) error {
	return e.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := item.Key()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}

			if !fn(key, value) {
				break
			}
		}

		return nil
	})
}

// GC triggers garbage collection.
//
// Badger uses a value log that needs periodic GC to reclaim space.
// Returns bytes reclaimed (approximate).
func (e *BadgerEngine) GC(ctx context.Context) (uint64, error) {
	startTime := time.Now()

	// Run GC until no more can be reclaimed (threshold-based)
	var totalReclaimed uint64
	for {
		err := e.db.RunValueLogGC(e.cfg.GCThreshold)
		if err != nil {
			if errors.Is(err, badger.ErrNoRewrite) {
				// No more GC needed
				break
			}
			return totalReclaimed, fmt.Errorf("gc: %w", err)
		}

		// Estimate reclaimed bytes (Badger doesn't provide exact count)
		totalReclaimed += 1 << 20
	}

	e.lastGCTime.Store(time.Now().UnixMilli())
	e.gcBytesReclaimed.Add(totalReclaimed)

	e.logger.Info("gc completed",
		"bytes_reclaimed", totalReclaimed,
		"elapsed", time.Since(startTime))

	return totalReclaimed, nil
}

// Stats returns storage statistics.
func (e *BadgerEngine) Stats(ctx context.Context) (*KVStats, error) {
	lsm, vlog := e.db.Size()

	return &KVStats{
		TotalKeys:        0, // Badger doesn't provide efficient key count
		TotalSize:        uint64(lsm + vlog),
		LSMSize:          uint64(lsm),
		ValueLogSize:     uint64(vlog),
		LastGCTime:       e.lastGCTime.Load(),
		GCBytesReclaimed: e.gcBytesReclaimed.Load(),
	}, nil
}

// Close gracefully shuts down the Badger engine.
func (e *BadgerEngine) Close() error {
	e.logger.Info("shutting down badger engine")

	// Stop GC loop
	close(e.stopCh)
	<-e.doneCh

	// Close DB
	if err := e.db.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}

	e.logger.Info("badger engine shutdown complete")
	return nil
}

// RegisterMetrics registers Badger metrics with Prometheus.
//
// This should be called once during initialization.
// Returns the engine for method chaining.
func (e *BadgerEngine) RegisterMetrics(registry *prometheus.Registry) *BadgerEngine {
	e.metricsLSMSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "atelier",
		Subsystem: "badger",
		Name:      "lsm_size_bytes",
		Help:      "Badger LSM tree size in bytes",
	})

	e.metricsValueLogSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "atelier",
		Subsystem: "badger",
		Name:      "value_log_size_bytes",
		Help:      "Badger value log size in bytes",
	})

	e.metricsTotalSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "atelier",
		Subsystem: "badger",
		Name:      "total_size_bytes",
		Help:      "Badger total storage size in bytes (LSM + value log)",
	})

	e.metricsLastGCTime = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "atelier",
		Subsystem: "badger",
		Name:      "last_gc_timestamp_seconds",
		Help:      "Unix timestamp of the last Badger GC run",
	})

	registry.MustRegister(
		e.metricsLSMSize,
		e.metricsValueLogSize,
		e.metricsTotalSize,
		e.metricsLastGCTime,
	)

	// Start metrics updater
	go e.metricsUpdateLoop()

	return e
}

// metricsUpdateLoop periodically updates Prometheus metrics.
func (e *BadgerEngine) metricsUpdateLoop() {
	// Only run if metrics are registered
	if e.metricsLSMSize == nil {
		return
	}

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			stats, err := e.Stats(ctx)
			cancel()

			if err != nil {
				// Silently skip on error (engine might be closing)
				continue
			}

			e.metricsLSMSize.Set(float64(stats.LSMSize))
			e.metricsValueLogSize.Set(float64(stats.ValueLogSize))
			e.metricsTotalSize.Set(float64(stats.TotalSize))

			if stats.LastGCTime > 0 {
				e.metricsLastGCTime.Set(float64(stats.LastGCTime) / 1000.0) // Convert ms to seconds
			}

		case <-e.stopCh:
			return
		}
	}
}

// gcLoop runs periodic garbage collection.
func (e *BadgerEngine) gcLoop() {
	defer close(e.doneCh)

	interval, err := time.ParseDuration(e.cfg.GCInterval)
	if err != nil {
		e.logger.Error("invalid gc_interval, using default 10m", "error", err)
		interval = 10 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			if _, err := e.GC(ctx); err != nil {
				e.logger.Error("auto gc failed", "error", err)
			}
			cancel()

		case <-e.stopCh:
			return
		}
	}
}

// badgerLogger adapts slog.Logger to Badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
