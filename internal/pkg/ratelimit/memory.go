package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MemoryLimiter keeps one token bucket per key in process memory.
// Used when Redis is not configured; counters are per-instance only.
type MemoryLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*memoryBucket
	max      int
	window   time.Duration
	lastSeen time.Duration
}

type memoryBucket struct {
	limiter *rate.Limiter
	touched time.Time
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		buckets: make(map[string]*memoryBucket),
		max:     max,
		window:  window,
		// idle buckets older than two windows are dropped on access
		lastSeen: 2 * window,
	}
}

// Allow reserves a token from the key's bucket. A full bucket admits a
// burst of max requests, refilling evenly over the window.
func (l *MemoryLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	l.mu.Lock()
	b, found := l.buckets[key]
	if !found {
		b = &memoryBucket{
			limiter: rate.NewLimiter(rate.Every(l.window/time.Duration(l.max)), l.max),
		}
		l.buckets[key] = b
	}
	b.touched = time.Now()
	l.prune()
	l.mu.Unlock()

	r := b.limiter.Reserve()
	if !r.OK() {
		return false, l.window, nil
	}
	if delay := r.Delay(); delay > 0 {
		r.Cancel()
		return false, delay, nil
	}
	return true, 0, nil
}

// prune drops idle buckets. Callers must hold l.mu.
func (l *MemoryLimiter) prune() {
	cutoff := time.Now().Add(-l.lastSeen)
	for key, b := range l.buckets {
		if b.touched.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}
