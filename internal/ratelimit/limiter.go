package ratelimit

import (
	"sync"
	"time"
)

// pruneThreshold bounds memory growth from churned keys; expired entries are
// swept once the map passes this size.
const pruneThreshold = 4096

// Result reports the outcome of a limit check.
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

type entry struct {
	count   int
	resetAt time.Time
}

// Limiter is an advisory fixed-window request counter keyed by an arbitrary
// identifier, typically the client IP. It is process-local; loss of precision
// across instances is acceptable for its purpose.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

// New creates an empty limiter.
func New() *Limiter {
	return &Limiter{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Allow counts one request for the key and reports whether it fits inside
// limit requests per window.
func (l *Limiter) Allow(key string, limit int, window time.Duration) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	e, ok := l.entries[key]
	if !ok || !e.resetAt.After(now) {
		if len(l.entries) >= pruneThreshold {
			l.pruneLocked(now)
		}
		l.entries[key] = &entry{count: 1, resetAt: now.Add(window)}
		return Result{Allowed: true, Remaining: limit - 1}
	}

	if e.count >= limit {
		return Result{Allowed: false, Remaining: 0, RetryAfter: e.resetAt.Sub(now)}
	}

	e.count++
	return Result{Allowed: true, Remaining: limit - e.count}
}

func (l *Limiter) pruneLocked(now time.Time) {
	for key, e := range l.entries {
		if !e.resetAt.After(now) {
			delete(l.entries, key)
		}
	}
}
