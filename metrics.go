package fcmeans

import (
	"math"
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordIteration is called after each refinement iteration.
	// shift is the largest squared distance a center moved, objective the
	// weighted within-cluster sum of squared distances of the iteration's
	// memberships.
	RecordIteration(iteration int, shift, objective float64, duration time.Duration)

	// RecordRun is called after each clustering run.
	// err is nil if successful.
	RecordRun(points, clusters, iterations int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIteration(int, float64, float64, time.Duration) {}
func (NoopMetricsCollector) RecordRun(int, int, int, time.Duration, error)       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	IterationCount      atomic.Int64
	IterationTotalNanos atomic.Int64
	RunCount            atomic.Int64
	RunErrors           atomic.Int64
	RunTotalNanos       atomic.Int64
	PointsClustered     atomic.Int64

	lastShift     atomic.Uint64
	lastObjective atomic.Uint64
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(_ int, shift, objective float64, duration time.Duration) {
	b.IterationCount.Add(1)
	b.IterationTotalNanos.Add(duration.Nanoseconds())
	b.lastShift.Store(math.Float64bits(shift))
	b.lastObjective.Store(math.Float64bits(objective))
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(points, _, _ int, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
		return
	}
	b.PointsClustered.Add(int64(points))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		IterationCount:    b.IterationCount.Load(),
		IterationAvgNanos: avg(b.IterationTotalNanos.Load(), b.IterationCount.Load()),
		RunCount:          b.RunCount.Load(),
		RunErrors:         b.RunErrors.Load(),
		RunAvgNanos:       avg(b.RunTotalNanos.Load(), b.RunCount.Load()),
		PointsClustered:   b.PointsClustered.Load(),
		LastShift:         math.Float64frombits(b.lastShift.Load()),
		LastObjective:     math.Float64frombits(b.lastObjective.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	IterationCount    int64
	IterationAvgNanos int64
	RunCount          int64
	RunErrors         int64
	RunAvgNanos       int64
	PointsClustered   int64
	LastShift         float64
	LastObjective     float64
}
