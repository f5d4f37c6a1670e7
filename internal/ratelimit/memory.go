package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter keeps one token bucket per key in process memory. It is used
// when Redis is not configured and only limits the local instance.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	config  Config
	every   rate.Limit
	now     func() time.Time
}

// NewMemoryLimiter creates an in-memory limiter refilling RequestsPerWindow tokens per window.
func NewMemoryLimiter(config Config) *MemoryLimiter {
	config = config.normalized()
	return &MemoryLimiter{
		buckets: make(map[string]*bucket),
		config:  config,
		every:   rate.Every(config.WindowSize / time.Duration(config.RequestsPerWindow)),
		now:     time.Now,
	}
}

// Allow takes a token from key's bucket when one is available.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (*Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.every, l.config.RequestsPerWindow)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	if b.limiter.AllowN(now, 1) {
		return &Result{
			Allowed:   true,
			Remaining: int(b.limiter.TokensAt(now)),
			ResetAt:   now.Add(l.config.WindowSize),
		}, nil
	}

	missing := 1 - b.limiter.TokensAt(now)
	retryAfter := time.Duration(missing / float64(l.every) * float64(time.Second))
	return &Result{
		Allowed:    false,
		Remaining:  0,
		ResetAt:    now.Add(retryAfter),
		RetryAfter: retryAfter,
	}, nil
}

// Cleanup forgets keys idle for a full window; their buckets would be full again anyway.
func (l *MemoryLimiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := l.now().Add(-l.config.WindowSize)
	removed := 0
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
