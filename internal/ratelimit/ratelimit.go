// Package ratelimit implements the fixed-window per-email counter that
// guards code issuance. State is process-local and lost on restart.
package ratelimit

import (
	"math"
	"sync"
	"time"
)

type record struct {
	count       int
	windowStart time.Time
}

// Result reports the admission decision plus the budget information
// exposed to clients through X-RateLimit-* headers.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter int       // seconds until the window resets, set on rejection
	ResetAt    time.Time // end of the current window
}

// Limiter counts issuance requests per email within a fixed window.
// Safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	records map[string]*record

	window time.Duration
	max    int
	now    func() time.Time
}

func New(window time.Duration, max int) *Limiter {
	return NewWithClock(window, max, time.Now)
}

// NewWithClock builds a limiter reading time from now instead of the
// wall clock, so window expiry is testable without sleeping.
func NewWithClock(window time.Duration, max int, now func() time.Time) *Limiter {
	return &Limiter{
		records: make(map[string]*record),
		window:  window,
		max:     max,
		now:     now,
	}
}

// Admit decides whether a request for email may proceed. An empty
// email bypasses the limiter entirely: only identified requests are
// throttled.
func (l *Limiter) Admit(email string) Result {
	if email == "" {
		return Result{Allowed: true, Limit: l.max, Remaining: l.max}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	rec, ok := l.records[email]
	if ok && now.Sub(rec.windowStart) > l.window {
		delete(l.records, email)
		rec, ok = nil, false
	}

	if !ok {
		l.records[email] = &record{count: 1, windowStart: now}
		return Result{
			Allowed:   true,
			Limit:     l.max,
			Remaining: l.max - 1,
			ResetAt:   now.Add(l.window),
		}
	}

	resetAt := rec.windowStart.Add(l.window)

	if rec.count >= l.max {
		retry := int(math.Ceil(resetAt.Sub(now).Seconds()))
		return Result{
			Allowed:    false,
			Limit:      l.max,
			RetryAfter: retry,
			ResetAt:    resetAt,
		}
	}

	rec.count++
	return Result{
		Allowed:   true,
		Limit:     l.max,
		Remaining: l.max - rec.count,
		ResetAt:   resetAt,
	}
}
