package ppjoin

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    joinCounter    prometheus.Counter
//	    matchHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordJoin(stats ppjoin.Stats, duration time.Duration, err error) {
//	    p.joinCounter.Inc()
//	    p.matchHistogram.Observe(float64(stats.Matches))
//	}
type MetricsCollector interface {
	// RecordJoin is called after every join pass (single or cross-dataset).
	// stats is zero if the join failed before it started.
	RecordJoin(stats Stats, duration time.Duration, err error)

	// RecordCrossJoin is called after each cross-dataset join.
	// matches is the number of pairs left after dropping same-dataset pairs.
	RecordCrossJoin(datasets, matches int, duration time.Duration, err error)

	// RecordMerge is called after matched pairs were folded into records.
	RecordMerge(records int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordJoin(Stats, time.Duration, error)         {}
func (NoopMetricsCollector) RecordCrossJoin(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordMerge(int, time.Duration)                 {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	JoinCount       atomic.Int64
	JoinErrors      atomic.Int64
	JoinTotalNanos  atomic.Int64
	JoinRecords     atomic.Int64
	JoinCandidates  atomic.Int64
	JoinMatches     atomic.Int64
	CrossJoinCount  atomic.Int64
	CrossJoinErrors atomic.Int64
	CrossMatches    atomic.Int64
	MergeCount      atomic.Int64
	MergedRecords   atomic.Int64
}

// RecordJoin implements MetricsCollector.
func (b *BasicMetricsCollector) RecordJoin(stats Stats, duration time.Duration, err error) {
	b.JoinCount.Add(1)
	b.JoinTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.JoinErrors.Add(1)
		return
	}
	b.JoinRecords.Add(int64(stats.Rows))
	b.JoinCandidates.Add(int64(stats.Candidates))
	b.JoinMatches.Add(int64(stats.Matches))
}

// RecordCrossJoin implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCrossJoin(datasets, matches int, duration time.Duration, err error) {
	b.CrossJoinCount.Add(1)
	if err != nil {
		b.CrossJoinErrors.Add(1)
		return
	}
	b.CrossMatches.Add(int64(matches))
}

// RecordMerge implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMerge(records int, duration time.Duration) {
	b.MergeCount.Add(1)
	b.MergedRecords.Add(int64(records))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		JoinCount:       b.JoinCount.Load(),
		JoinErrors:      b.JoinErrors.Load(),
		JoinAvgNanos:    b.getAvgJoinNanos(),
		JoinRecords:     b.JoinRecords.Load(),
		JoinCandidates:  b.JoinCandidates.Load(),
		JoinMatches:     b.JoinMatches.Load(),
		CrossJoinCount:  b.CrossJoinCount.Load(),
		CrossJoinErrors: b.CrossJoinErrors.Load(),
		CrossMatches:    b.CrossMatches.Load(),
		MergeCount:      b.MergeCount.Load(),
		MergedRecords:   b.MergedRecords.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgJoinNanos() int64 {
	count := b.JoinCount.Load()
	if count == 0 {
		return 0
	}
	return b.JoinTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	JoinCount       int64
	JoinErrors      int64
	JoinAvgNanos    int64
	JoinRecords     int64
	JoinCandidates  int64
	JoinMatches     int64
	CrossJoinCount  int64
	CrossJoinErrors int64
	CrossMatches    int64
	MergeCount      int64
	MergedRecords   int64
}
