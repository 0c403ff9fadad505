package operation

import (
	"sync"
	"time"
)

// HealthStatus summarises recent request outcomes against the operation server.
type HealthStatus struct {
	Available     bool          `json:"available"`
	Latency       time.Duration `json:"latency"`
	ErrorRate     float64       `json:"error_rate"`
	Requests      int           `json:"requests"`
	Failures      int           `json:"failures"`
	LastSuccessAt time.Time     `json:"last_success_at"`
	LastFailureAt time.Time     `json:"last_failure_at"`
}

// healthTracker handles health bookkeeping shared by client calls.
type healthTracker struct {
	mu           sync.RWMutex
	health       HealthStatus
	totalLatency time.Duration
	successCount int
}

func newHealthTracker() *healthTracker {
	return &healthTracker{
		health: HealthStatus{Available: true},
	}
}

func (h *healthTracker) get() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.health
}

func (h *healthTracker) recordSuccess(latency time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.successCount++
	h.health.Requests++
	h.totalLatency += latency
	h.health.LastSuccessAt = time.Now()
	h.health.Available = true

	h.health.ErrorRate = float64(h.health.Failures) / float64(h.health.Requests)
	h.health.Latency = h.totalLatency / time.Duration(h.successCount)
}

func (h *healthTracker) recordFailure() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.health.Failures++
	h.health.Requests++
	h.health.LastFailureAt = time.Now()

	h.health.ErrorRate = float64(h.health.Failures) / float64(h.health.Requests)
	if h.health.ErrorRate > 0.5 {
		h.health.Available = false
	}
}
