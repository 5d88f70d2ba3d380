package ratelimit

import (
	"context"
	"sync"
	"time"
)

type counter struct {
	start time.Time
	count int
}

// MemoryLimiter keeps fixed-window counters in process memory.
type MemoryLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu       sync.Mutex
	counters map[string]*counter
}

// NewMemoryLimiter allows limit requests per key in each window.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:    limit,
		window:   window,
		now:      time.Now,
		counters: make(map[string]*counter),
	}
}

// Allow implements Limiter.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	now := l.now()
	start := window(now, l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.counters[key]
	if !ok || !c.start.Equal(start) {
		if !ok {
			l.sweep(start)
		}
		c = &counter{start: start}
		l.counters[key] = c
	}
	c.count++

	return result(c.count, l.limit, start.Add(l.window)), nil
}

// sweep drops counters from earlier windows. Called with mu held.
func (l *MemoryLimiter) sweep(current time.Time) {
	for k, c := range l.counters {
		if c.start.Before(current) {
			delete(l.counters, k)
		}
	}
}
