package qtwirl

import (
	"sort"
	"sync"
	"time"
)

// Metrics records twirl executions and operator-cache behaviour.
type Metrics struct {
	mu sync.RWMutex

	TwirlCount   int64
	FailureCount int64
	CacheHits    int64
	CacheMisses  int64

	TotalTwirlTime time.Duration
	AverageLatency time.Duration
	P95Latency     time.Duration
	P99Latency     time.Duration

	// Sliding window of recent latencies for the percentiles.
	latencyWindow []time.Duration
	windowSize    int
}

func NewMetrics() *Metrics {
	return &Metrics{
		latencyWindow: make([]time.Duration, 0, 1000),
		windowSize:    1000,
	}
}

func (m *Metrics) recordTwirl(startTime time.Time, success bool) {
	duration := time.Since(startTime)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.TwirlCount++
	if !success {
		m.FailureCount++
	}
	m.TotalTwirlTime += duration
	m.AverageLatency = m.TotalTwirlTime / time.Duration(m.TwirlCount)

	m.latencyWindow = append(m.latencyWindow, duration)
	if len(m.latencyWindow) > m.windowSize {
		m.latencyWindow = m.latencyWindow[1:]
	}

	m.updateLatencyPercentiles()
}

// updateLatencyPercentiles expects m.mu to be held.
func (m *Metrics) updateLatencyPercentiles() {
	sorted := make([]time.Duration, len(m.latencyWindow))
	copy(sorted, m.latencyWindow)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	if len(sorted) == 0 {
		return
	}

	p95Index := int(float64(len(sorted)) * 0.95)
	p99Index := int(float64(len(sorted)) * 0.99)
	if p95Index >= len(sorted) {
		p95Index = len(sorted) - 1
	}
	if p99Index >= len(sorted) {
		p99Index = len(sorted) - 1
	}

	m.P95Latency = sorted[p95Index]
	m.P99Latency = sorted[p99Index]
}

func (m *Metrics) recordCache(hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hit {
		m.CacheHits++
		return
	}
	m.CacheMisses++
}

// ExportMetrics returns a snapshot keyed by metric name.
func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"twirl_count":   m.TwirlCount,
		"failure_count": m.FailureCount,
		"cache_hits":    m.CacheHits,
		"cache_misses":  m.CacheMisses,
		"avg_latency":   m.AverageLatency.Milliseconds(),
		"p95_latency":   m.P95Latency.Milliseconds(),
		"p99_latency":   m.P99Latency.Milliseconds(),
	}
}
