package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"net/http"

	"github.com/labstack/echo/v4"
)

// Metrics holds in-process performance counters.
// Thread-safe via atomics and mutex.
type Metrics struct {
	TotalRequests  int64 `json:"total_requests"`
	ActiveRequests int64 `json:"active_requests"`
	TotalErrors    int64 `json:"total_errors"`
	TotalLatencyMs int64 `json:"total_latency_ms"`
	MaxLatencyMs   int64 `json:"max_latency_ms"`

	StartTime      time.Time        `json:"start_time"`
	EndpointCounts map[string]int64 `json:"endpoint_counts"`
	StatusCodes    map[int]int64    `json:"status_codes"`

	mu sync.Mutex
}

var (
	globalMetrics *Metrics
	once          sync.Once
)

// GetMetrics returns the singleton metrics instance
func GetMetrics() *Metrics {
	once.Do(func() {
		globalMetrics = &Metrics{
			StartTime:      time.Now(),
			EndpointCounts: make(map[string]int64),
			StatusCodes:    make(map[int]int64),
		}
	})
	return globalMetrics
}

func (m *Metrics) record(endpoint string, status int, latency time.Duration) {
	atomic.AddInt64(&m.TotalRequests, 1)

	latencyMs := latency.Milliseconds()
	atomic.AddInt64(&m.TotalLatencyMs, latencyMs)

	for {
		current := atomic.LoadInt64(&m.MaxLatencyMs)
		if latencyMs <= current || atomic.CompareAndSwapInt64(&m.MaxLatencyMs, current, latencyMs) {
			break
		}
	}

	if status >= http.StatusInternalServerError {
		atomic.AddInt64(&m.TotalErrors, 1)
	}

	m.mu.Lock()
	m.EndpointCounts[endpoint]++
	m.StatusCodes[status]++
	m.mu.Unlock()
}

type snapshot struct {
	TotalRequests  int64            `json:"total_requests"`
	ActiveRequests int64            `json:"active_requests"`
	TotalErrors    int64            `json:"total_errors"`
	AvgLatencyMs   int64            `json:"avg_latency_ms"`
	MaxLatencyMs   int64            `json:"max_latency_ms"`
	UptimeSeconds  int64            `json:"uptime_seconds"`
	EndpointCounts map[string]int64 `json:"endpoint_counts"`
	StatusCodes    map[int]int64    `json:"status_codes"`
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() any {
	total := atomic.LoadInt64(&m.TotalRequests)

	var avg int64
	if total > 0 {
		avg = atomic.LoadInt64(&m.TotalLatencyMs) / total
	}

	m.mu.Lock()
	endpoints := make(map[string]int64, len(m.EndpointCounts))
	for k, v := range m.EndpointCounts {
		endpoints[k] = v
	}
	statuses := make(map[int]int64, len(m.StatusCodes))
	for k, v := range m.StatusCodes {
		statuses[k] = v
	}
	m.mu.Unlock()

	return snapshot{
		TotalRequests:  total,
		ActiveRequests: atomic.LoadInt64(&m.ActiveRequests),
		TotalErrors:    atomic.LoadInt64(&m.TotalErrors),
		AvgLatencyMs:   avg,
		MaxLatencyMs:   atomic.LoadInt64(&m.MaxLatencyMs),
		UptimeSeconds:  int64(time.Since(m.StartTime).Seconds()),
		EndpointCounts: endpoints,
		StatusCodes:    statuses,
	}
}

// Middleware records request counts, latency, and status codes.
func Middleware() echo.MiddlewareFunc {
	m := GetMetrics()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			atomic.AddInt64(&m.ActiveRequests, 1)
			start := time.Now()

			err := next(c)

			atomic.AddInt64(&m.ActiveRequests, -1)
			m.record(c.Request().Method+" "+c.Path(), c.Response().Status, time.Since(start))

			return err
		}
	}
}

// Handler serves the current counters as JSON.
func Handler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, GetMetrics().Snapshot())
	}
}
