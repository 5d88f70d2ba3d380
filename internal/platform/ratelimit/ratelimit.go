// Package ratelimit counts requests per client in fixed time windows. The
// Redis limiter shares counters across instances; the in-memory limiter
// serves single-instance deployments and tests.
package ratelimit

import (
	"context"
	"time"
)

// Result describes the state of a client's window after one request.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter records a request for key and reports whether it is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// window returns the start of the fixed window containing now.
func window(now time.Time, size time.Duration) time.Time {
	return now.Truncate(size)
}

func result(count, limit int, resetAt time.Time) Result {
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}
