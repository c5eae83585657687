// Package ratelimit implements the per-client admission quota for
// contact form submissions: a fixed-window counter keyed by client
// identity, with TTL-based eviction of stale entries.
package ratelimit

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/casacomune/community-api/pkg/metrics"
)

// Default policy: at most 3 submissions per client per 15 minutes.
const (
	DefaultMaxPerWindow = 3
	DefaultWindow       = 15 * time.Minute
)

// entry tracks one client's submissions inside the current window.
// Mutated only while holding its own mutex, so concurrent requests
// from the same identity serialize without a global lock.
type entry struct {
	mu          sync.Mutex
	count       int
	windowStart time.Time
}

// FixedWindowLimiter admits or rejects submissions per client identity
// using a fixed-window counter. Entries are stored in a TTL cache and
// swept by its janitor once their window has long expired, so memory
// stays bounded for long-running processes.
type FixedWindowLimiter struct {
	entries *gocache.Cache
	max     int
	window  time.Duration
	now     func() time.Time
}

// NewFixedWindowLimiter creates a limiter admitting at most max
// submissions per identity within each window.
func NewFixedWindowLimiter(max int, window time.Duration) *FixedWindowLimiter {
	// Entries linger for two windows past their last write; the
	// janitor sweeps them once per window.
	return &FixedWindowLimiter{
		entries: gocache.New(2*window, window),
		max:     max,
		window:  window,
		now:     time.Now,
	}
}

// Admit decides whether a submission from identity may proceed.
// Rejection is a normal outcome, not an error.
func (l *FixedWindowLimiter) Admit(identity string) bool {
	e := l.getEntry(identity)

	e.mu.Lock()
	now := l.now()

	var admitted bool
	switch {
	case e.count == 0 || now.Sub(e.windowStart) > l.window:
		// New or elapsed window. Strict > keeps a request landing
		// exactly on the boundary inside the fresh window.
		e.count = 1
		e.windowStart = now
		admitted = true
	case e.count >= l.max:
		admitted = false
	default:
		e.count++
		admitted = true
	}
	e.mu.Unlock()

	if admitted {
		// Refresh the TTL so a live window is never swept out from
		// under an active client.
		l.entries.Set(identity, e, gocache.DefaultExpiration)
		metrics.RateLimiterDecisions.WithLabelValues("admitted").Inc()
	} else {
		metrics.RateLimiterDecisions.WithLabelValues("rejected").Inc()
	}
	metrics.RateLimiterEntries.Set(float64(l.entries.ItemCount()))

	return admitted
}

// getEntry returns the entry for identity, creating it on first use.
func (l *FixedWindowLimiter) getEntry(identity string) *entry {
	for {
		if v, ok := l.entries.Get(identity); ok {
			return v.(*entry)
		}
		e := &entry{}
		if err := l.entries.Add(identity, e, gocache.DefaultExpiration); err == nil {
			return e
		}
		// Lost the creation race; loop and fetch the winner's entry.
	}
}
