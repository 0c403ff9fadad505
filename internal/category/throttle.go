package category

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Decision is the outcome of a throttle attempt.
type Decision int

const (
	Forwarded Decision = iota
	Suppressed
)

func (d Decision) String() string {
	if d == Forwarded {
		return "forwarded"
	}
	return "suppressed"
}

// Throttle is a leading-edge rate limiter: the first attempt in each window
// is forwarded, every later attempt inside that window is suppressed.
// Suppressed attempts are dropped, not deferred.
type Throttle struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	window  time.Duration
	now     func() time.Time
}

// NewThrottle creates a throttle with the given window. A window <= 0
// forwards every attempt.
func NewThrottle(window time.Duration) *Throttle {
	return newThrottleWithClock(window, time.Now)
}

func newThrottleWithClock(window time.Duration, now func() time.Time) *Throttle {
	limit := rate.Inf
	if window > 0 {
		limit = rate.Every(window)
	}
	return &Throttle{
		limiter: rate.NewLimiter(limit, 1),
		window:  window,
		now:     now,
	}
}

// Attempt reports whether the caller may proceed.
func (t *Throttle) Attempt() Decision {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.limiter.AllowN(t.now(), 1) {
		return Forwarded
	}
	return Suppressed
}

// Window returns the configured window.
func (t *Throttle) Window() time.Duration {
	return t.window
}
