package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 10, 0, time.UTC)
	l := NewMemoryLimiter(2, time.Minute)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	r, err := l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, r.Allowed)
	assert.Equal(t, 2, r.Limit)
	assert.Equal(t, 1, r.Remaining)
	assert.Equal(t, time.Date(2026, 1, 1, 12, 1, 0, 0, time.UTC), r.ResetAt)

	r, _ = l.Allow(ctx, "1.2.3.4")
	assert.True(t, r.Allowed)
	assert.Zero(t, r.Remaining)

	r, _ = l.Allow(ctx, "1.2.3.4")
	assert.False(t, r.Allowed)
	assert.Zero(t, r.Remaining)

	other, _ := l.Allow(ctx, "5.6.7.8")
	assert.True(t, other.Allowed, "keys are counted separately")

	now = now.Add(time.Minute)
	r, _ = l.Allow(ctx, "1.2.3.4")
	assert.True(t, r.Allowed, "a new window resets the count")
	assert.Equal(t, 1, r.Remaining)
}

func TestMemoryLimiter_Concurrent(t *testing.T) {
	l := NewMemoryLimiter(50, time.Hour)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := l.Allow(ctx, "client")
			assert.NoError(t, err)
			if r.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}
