package cache

import "sync/atomic"

// Metrics tracks cache performance statistics.
type Metrics struct {
	hits          atomic.Uint64
	misses        atomic.Uint64
	sets          atomic.Uint64
	errors        atomic.Uint64
	invalidations atomic.Uint64
}

// NewMetrics creates a new metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordHit increments the cache hit counter.
func (m *Metrics) RecordHit() { m.hits.Add(1) }

// RecordMiss increments the cache miss counter.
func (m *Metrics) RecordMiss() { m.misses.Add(1) }

// RecordSet increments the set counter.
func (m *Metrics) RecordSet() { m.sets.Add(1) }

// RecordError increments the swallowed-transport-error counter.
func (m *Metrics) RecordError() { m.errors.Add(1) }

// RecordInvalidation increments the prefix-invalidation counter.
func (m *Metrics) RecordInvalidation() { m.invalidations.Add(1) }

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Hits          uint64  `json:"hits"`
	Misses        uint64  `json:"misses"`
	Sets          uint64  `json:"sets"`
	Errors        uint64  `json:"errors"`
	Invalidations uint64  `json:"invalidations"`
	HitRate       float64 `json:"hit_rate"`
	UsingFallback bool    `json:"using_fallback"`
}

// Snapshot returns current counter values.
func (m *Metrics) Snapshot(fallback bool) MetricsSnapshot {
	s := MetricsSnapshot{
		Hits:          m.hits.Load(),
		Misses:        m.misses.Load(),
		Sets:          m.sets.Load(),
		Errors:        m.errors.Load(),
		Invalidations: m.invalidations.Load(),
		UsingFallback: fallback,
	}
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.Hits) / float64(total)
	}
	return s
}

// Reset zeroes all counters.
func (m *Metrics) Reset() {
	m.hits.Store(0)
	m.misses.Store(0)
	m.sets.Store(0)
	m.errors.Store(0)
	m.invalidations.Store(0)
}
