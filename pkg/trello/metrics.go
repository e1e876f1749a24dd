package trello

import (
	"fmt"
	"sync"
	"time"
)

// Metrics aggregates call counts and latency for one endpoint.
type Metrics struct {
	TotalRequests   int64
	TotalErrors     int64
	TotalLatency    time.Duration
	AverageLatency  time.Duration
	LastRequestTime time.Time
}

// MetricsCollector records per-endpoint API metrics. It is safe for
// concurrent use; the transport calls Record once per network attempt.
type MetricsCollector struct {
	mu      sync.Mutex
	metrics map[string]*Metrics
}

// NewMetricsCollector creates a new metrics collector.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		metrics: make(map[string]*Metrics),
	}
}

// Record registers one completed attempt against "METHOD path".
func (m *MetricsCollector) Record(method, path string, latency time.Duration, failed bool) {
	endpoint := fmt.Sprintf("%s %s", method, path)

	m.mu.Lock()
	defer m.mu.Unlock()

	metrics, ok := m.metrics[endpoint]
	if !ok {
		metrics = &Metrics{}
		m.metrics[endpoint] = metrics
	}

	metrics.TotalRequests++
	metrics.LastRequestTime = time.Now()
	metrics.TotalLatency += latency
	metrics.AverageLatency = metrics.TotalLatency / time.Duration(metrics.TotalRequests)

	if failed {
		metrics.TotalErrors++
	}
}

// Get returns a copy of the metrics for an endpoint, or nil.
func (m *MetricsCollector) Get(method, path string) *Metrics {
	endpoint := fmt.Sprintf("%s %s", method, path)

	m.mu.Lock()
	defer m.mu.Unlock()

	metrics, ok := m.metrics[endpoint]
	if !ok {
		return nil
	}

	snapshot := *metrics

	return &snapshot
}

// Endpoints returns the recorded endpoint keys.
func (m *MetricsCollector) Endpoints() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(m.metrics))
	for key := range m.metrics {
		keys = append(keys, key)
	}

	return keys
}
