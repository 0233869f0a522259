// Package metric provides Prometheus metrics for Atelier.
package metric

import "github.com/prometheus/client_golang/prometheus"

// StoreCollector reads authoritative store counts at scrape time, rather
// than maintaining gauges on every operation. The count functions must be
// safe for concurrent use.
type StoreCollector struct {
	sessions   func() int
	workspaces func() int

	descSessions   *prometheus.Desc
	descWorkspaces *prometheus.Desc
}

// NewStoreCollector creates a collector over the given count functions.
// Either function may be nil, in which case its metric is not emitted.
func NewStoreCollector(sessions, workspaces func() int) *StoreCollector {
	return &StoreCollector{
		sessions:   sessions,
		workspaces: workspaces,
		descSessions: prometheus.NewDesc(
			namespace+"_store_sessions",
			"Sessions currently held by the store.",
			nil, nil,
		),
		descWorkspaces: prometheus.NewDesc(
			namespace+"_store_workspaces",
			"Workspace registry entries currently held by the store.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	if c.sessions != nil {
		ch <- c.descSessions
	}
	if c.workspaces != nil {
		ch <- c.descWorkspaces
	}
}

// Collect implements prometheus.Collector.
func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	if c.sessions != nil {
		ch <- prometheus.MustNewConstMetric(
			c.descSessions, prometheus.GaugeValue, float64(c.sessions()))
	}
	if c.workspaces != nil {
		ch <- prometheus.MustNewConstMetric(
			c.descWorkspaces, prometheus.GaugeValue, float64(c.workspaces()))
	}
}
