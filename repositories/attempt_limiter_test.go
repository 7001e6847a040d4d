package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAttemptLimiterCapsAttempts(t *testing.T) {
	limiter := NewMemoryAttemptLimiter(5, time.Hour)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, "+96171000001")
		require.NoError(t, err)
		assert.True(t, allowed, "attempt %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "+96171000001")
	require.NoError(t, err)
	assert.False(t, allowed, "sixth attempt must be refused")
}

func TestMemoryAttemptLimiterIsPerPhone(t *testing.T) {
	limiter := NewMemoryAttemptLimiter(1, time.Hour)
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "+96171000002")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "+96171000003")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestMemoryAttemptLimiterRollingWindow(t *testing.T) {
	limiter := NewMemoryAttemptLimiter(2, time.Hour)
	ctx := context.Background()

	current := time.Now()
	limiter.now = func() time.Time { return current }

	allowed, _ := limiter.Allow(ctx, "+96171000004")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow(ctx, "+96171000004")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow(ctx, "+96171000004")
	assert.False(t, allowed)

	// The first attempt falls out of the window, freeing one slot
	current = current.Add(61 * time.Minute)
	allowed, _ = limiter.Allow(ctx, "+96171000004")
	assert.True(t, allowed)
}
