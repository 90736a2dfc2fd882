package observability

import (
	"sync"
	"time"
)

// Metrics keeps in-process counters per route. Auth denials are tracked
// separately because a spike there is this service's main abuse signal.
type Metrics struct {
	mu      sync.Mutex
	routes  map[string]*routeStats
	errors  map[string]int64
	denials int64
}

type routeStats struct {
	count        int64
	failures     int64
	totalLatency time.Duration
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		routes: make(map[string]*routeStats),
		errors: make(map[string]int64),
	}
}

// RecordRequest accounts one completed request.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := m.routes[method+" "+path]
	if stats == nil {
		stats = &routeStats{}
		m.routes[method+" "+path] = stats
	}
	stats.count++
	stats.totalLatency += duration
	if status >= 400 {
		stats.failures++
	}
}

// RecordError counts a request that resolved to the given error code.
func (m *Metrics) RecordError(_, _, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[code]++
	switch code {
	case "UNAUTHENTICATED", "FORBIDDEN", "INVALID_CREDENTIALS", "TOO_MANY_REQUESTS":
		m.denials++
	}
}

// RequestCount returns how many requests the route has served.
func (m *Metrics) RequestCount(method, path string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if stats := m.routes[method+" "+path]; stats != nil {
		return stats.count
	}
	return 0
}

// ErrorCount returns how many requests resolved to the error code.
func (m *Metrics) ErrorCount(code string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors[code]
}

// AuthDenials returns the cumulative count of authentication and
// authorization rejections.
func (m *Metrics) AuthDenials() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.denials
}
