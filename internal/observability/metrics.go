package observability

import (
	"strconv"
	"sync"
	"time"
)

type requestStat struct {
	count       int64
	totalMillis int64
}

// Metrics keeps in-process request and error counters. There is no
// exporter; counters exist for the request logger and for inspection
// under a debugger.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]*requestStat
	errors   map[string]int64
}

// NewMetrics returns empty counter storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]*requestStat),
		errors:   make(map[string]int64),
	}
}

// RecordRequest counts a completed request and accumulates its latency.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := path + " " + method + " " + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	stat, ok := m.requests[key]
	if !ok {
		stat = &requestStat{}
		m.requests[key] = stat
	}
	stat.count++
	stat.totalMillis += duration.Milliseconds()
}

// RequestCount reports how many requests completed with the given
// path, method and status.
func (m *Metrics) RequestCount(path, method string, status int) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if stat, ok := m.requests[path+" "+method+" "+strconv.Itoa(status)]; ok {
		return stat.count
	}
	return 0
}

// RecordError counts a request that terminated with a domain error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[path+" "+method+" "+code]++
}
