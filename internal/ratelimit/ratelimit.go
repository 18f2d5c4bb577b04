// Package ratelimit provides a keyed fixed-window request limiter guarding
// the chat assistant. Two implementations exist: an instance-local in-memory
// limiter and a store-backed limiter that shares its counters across
// instances.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter decides whether a request for the given key may proceed. It is a
// best-effort guard, not a security boundary.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// MemoryLimiter is a per-process fixed-window limiter. Each key holds the
// timestamps of its recent requests; entries older than the window are
// dropped on every call. A rejected attempt is NOT recorded, so hammering
// the limiter does not extend the lockout.
type MemoryLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	buckets map[string][]time.Time
	now     func() time.Time
}

// NewMemoryLimiter creates an in-memory limiter allowing max requests per
// window for each key.
func NewMemoryLimiter(window time.Duration, max int) *MemoryLimiter {
	return &MemoryLimiter{
		window:  window,
		max:     max,
		buckets: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// Allow reports whether a request for key may proceed, recording it if so.
func (l *MemoryLimiter) Allow(_ context.Context, key string) bool {
	now := l.now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.buckets[key][:0]
	for _, t := range l.buckets[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= l.max {
		l.buckets[key] = recent
		return false
	}

	l.buckets[key] = append(recent, now)
	return true
}

// CounterStore is a shared keyed counter with fixed-window expiry. Incr
// returns the count within the current window including this request; Decr
// refunds a rejected request.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration, now time.Time) (int, error)
	Decr(ctx context.Context, key string) error
}

// StoreLimiter enforces the fixed window through an external counter store,
// so the limit holds across horizontally scaled instances. Store failures
// degrade to allow.
type StoreLimiter struct {
	store  CounterStore
	window time.Duration
	max    int
	now    func() time.Time
}

// NewStoreLimiter creates a store-backed limiter allowing max requests per
// window for each key.
func NewStoreLimiter(store CounterStore, window time.Duration, max int) *StoreLimiter {
	return &StoreLimiter{
		store:  store,
		window: window,
		max:    max,
		now:    time.Now,
	}
}

// Allow reports whether a request for key may proceed.
func (l *StoreLimiter) Allow(ctx context.Context, key string) bool {
	count, err := l.store.Incr(ctx, key, l.window, l.now())
	if err != nil {
		return true
	}
	if count > l.max {
		// Refund so rejected attempts do not consume the window budget.
		_ = l.store.Decr(ctx, key)
		return false
	}
	return true
}
