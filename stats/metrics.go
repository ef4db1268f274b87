// Package stats counts page faults, hits and evictions of a simulation run
// and reports them.
package stats

import (
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/sibexico/pagesim/vm"
)

// Metrics tracks paging counters. It implements vm.StatsRecorder.
// Counters are atomic so a reporter may read them while a run is in progress.
type Metrics struct {
	pageFaults atomic.Uint64
	pageHits   atomic.Uint64
	evictions  atomic.Uint64
	writeBacks atomic.Uint64

	// Ticks an evicted page stayed resident
	residency *Histogram

	startTime atomic.Int64
}

// NewMetrics creates a new metrics tracker
func NewMetrics() *Metrics {
	m := &Metrics{
		residency: NewHistogram(10000),
	}
	m.startTime.Store(time.Now().UnixNano())
	return m
}

func (m *Metrics) RecordPageFault() {
	m.pageFaults.Add(1)
}

func (m *Metrics) RecordPageHit() {
	m.pageHits.Add(1)
}

// RecordEviction counts one eviction; a dirty victim also counts a write-back
func (m *Metrics) RecordEviction(dirty bool, resident vm.Tick) {
	m.evictions.Add(1)
	if dirty {
		m.writeBacks.Add(1)
	}
	m.residency.Record(float64(resident))
}

func (m *Metrics) GetPageFaults() uint64 {
	return m.pageFaults.Load()
}

func (m *Metrics) GetPageHits() uint64 {
	return m.pageHits.Load()
}

func (m *Metrics) GetEvictions() uint64 {
	return m.evictions.Load()
}

func (m *Metrics) GetWriteBacks() uint64 {
	return m.writeBacks.Load()
}

// GetAccesses returns hits plus faults
func (m *Metrics) GetAccesses() uint64 {
	return m.pageHits.Load() + m.pageFaults.Load()
}

func (m *Metrics) GetHitRate() float64 {
	hits := m.pageHits.Load()
	total := hits + m.pageFaults.Load()
	if total == 0 {
		return 0.0
	}
	return float64(hits) / float64(total)
}

// GetResidency returns the distribution of ticks evicted pages stayed resident
func (m *Metrics) GetResidency() HistogramSnapshot {
	return m.residency.Snapshot()
}

func (m *Metrics) GetUptime() time.Duration {
	return time.Since(time.Unix(0, m.startTime.Load()))
}

// WriteSummary prints the counters as an aligned report
func (m *Metrics) WriteSummary(w io.Writer) error {
	residency := m.GetResidency()

	lines := []struct {
		name  string
		value string
	}{
		{"Accesses", fmt.Sprintf("%d", m.GetAccesses())},
		{"Page hits", fmt.Sprintf("%d", m.GetPageHits())},
		{"Page faults", fmt.Sprintf("%d", m.GetPageFaults())},
		{"Evictions", fmt.Sprintf("%d", m.GetEvictions())},
		{"Write-backs", fmt.Sprintf("%d", m.GetWriteBacks())},
		{"Hit rate", fmt.Sprintf("%.2f%%", m.GetHitRate()*100)},
		{"Residency mean", fmt.Sprintf("%.1f", residency.Mean)},
		{"Residency p50/p95/p99", fmt.Sprintf("%.0f/%.0f/%.0f", residency.P50, residency.P95, residency.P99)},
	}

	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%-22s %s\n", l.name+":", l.value); err != nil {
			return err
		}
	}
	return nil
}

// LogMetrics logs all metrics using structured logging
func (m *Metrics) LogMetrics(logger *slog.Logger) {
	residency := m.GetResidency()

	logger.Info("Paging Metrics",
		slog.Group("paging",
			slog.Uint64("page_hits", m.GetPageHits()),
			slog.Uint64("page_faults", m.GetPageFaults()),
			slog.Float64("hit_rate", m.GetHitRate()),
			slog.Uint64("evictions", m.GetEvictions()),
			slog.Uint64("write_backs", m.GetWriteBacks()),
		),
		slog.Group("residency_ticks",
			slog.Int("count", residency.Count),
			slog.Float64("mean", residency.Mean),
			slog.Float64("p50", residency.P50),
			slog.Float64("p95", residency.P95),
			slog.Float64("p99", residency.P99),
		),
		slog.Duration("uptime", m.GetUptime()),
	)
}

// Reset resets all metrics
func (m *Metrics) Reset() {
	m.pageFaults.Store(0)
	m.pageHits.Store(0)
	m.evictions.Store(0)
	m.writeBacks.Store(0)
	m.residency.Reset()
	m.startTime.Store(time.Now().UnixNano())
}
