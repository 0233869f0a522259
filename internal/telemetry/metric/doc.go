// Package metric provides Prometheus metrics for Atelier.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: Registry with session, auth, and request metrics
//   - collector.go: scrape-time collector for store counts
//
// Metrics include:
//
//   - Request counters and latency histograms
//   - Session lifecycle counters and the active-session gauge
//   - Login and token-validation outcome counters
//   - Store size gauges read at scrape time
//
// Metrics are exposed at /metrics in Prometheus format. The storage layer
// registers its Badger gauges on the same registry.
package metric
