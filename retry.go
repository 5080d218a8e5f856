package panzoom

import "time"

// retryPolicy is a fixed-interval, bounded retry driven by frame time rather
// than timers. At most one retry is pending at a time.
type retryPolicy struct {
	interval    time.Duration
	maxAttempts int

	attempts int
	pending  bool
	elapsed  time.Duration
}

// schedule arms the next retry. It returns false when a retry is already
// pending or the attempt budget is spent.
func (r *retryPolicy) schedule() bool {
	if r.pending || r.attempts >= r.maxAttempts {
		return false
	}
	r.attempts++
	r.pending = true
	r.elapsed = 0
	return true
}

// update advances the pending retry by dt and reports whether it is due.
// A due retry is disarmed before returning.
func (r *retryPolicy) update(dt time.Duration) bool {
	if !r.pending {
		return false
	}
	r.elapsed += dt
	if r.elapsed < r.interval {
		return false
	}
	r.pending = false
	r.elapsed = 0
	return true
}

// exhausted reports whether every attempt has been used.
func (r *retryPolicy) exhausted() bool {
	return !r.pending && r.attempts >= r.maxAttempts
}

// reset clears the attempt count and any pending retry.
func (r *retryPolicy) reset() {
	r.attempts = 0
	r.pending = false
	r.elapsed = 0
}
