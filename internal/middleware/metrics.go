package middleware

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"
)

// counters for the /api/metrics endpoint
type counters struct {
	requestsTotal      atomic.Uint64
	requestsInProgress atomic.Int64
	requestsSuccess    atomic.Uint64
	requestsFailed     atomic.Uint64
	analysesTotal      atomic.Uint64
	analysesRunning    atomic.Int64
	analysesFailed     atomic.Uint64
	startTime          time.Time
}

var metrics = &counters{startTime: time.Now()}

func IncrementAnalyses()        { metrics.analysesTotal.Add(1) }
func IncrementAnalysesRunning() { metrics.analysesRunning.Add(1) }
func DecrementAnalysesRunning() { metrics.analysesRunning.Add(-1) }
func IncrementAnalysesFailed()  { metrics.analysesFailed.Add(1) }

func (c *counters) snapshot() map[string]any {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return map[string]any{
		"requests_total":       c.requestsTotal.Load(),
		"requests_in_progress": c.requestsInProgress.Load(),
		"requests_success":     c.requestsSuccess.Load(),
		"requests_failed":      c.requestsFailed.Load(),
		"analyses_total":       c.analysesTotal.Load(),
		"analyses_running":     c.analysesRunning.Load(),
		"analyses_failed":      c.analysesFailed.Load(),
		"uptime_seconds":       time.Since(c.startTime).Seconds(),
		"memory": map[string]any{
			"alloc_bytes":       m.Alloc,
			"total_alloc_bytes": m.TotalAlloc,
			"sys_bytes":         m.Sys,
			"num_gc":            m.NumGC,
		},
		"goroutines": runtime.NumGoroutine(),
	}
}

// MetricsMiddleware counts every request and its outcome by status class
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.requestsTotal.Add(1)
		metrics.requestsInProgress.Add(1)
		defer metrics.requestsInProgress.Add(-1)

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		if wrapped.statusCode < 400 {
			metrics.requestsSuccess.Add(1)
		} else {
			metrics.requestsFailed.Add(1)
		}
	})
}

// MetricsHandler serves the counters as JSON
func MetricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metrics.snapshot())
}
