package ratelimiter

import (
	"context"
	"sleepclinic-service/internal/app/services/core/inmemory"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLimiter(now time.Time) (*resourceLimiter, *inmemory.RedisRepository) {
	redis := inmemory.NewRedisRepository()
	limiter := NewResourceLimiter(redis, zap.NewNop()).(*resourceLimiter)
	limiter.now = func() time.Time { return now }
	return limiter, redis
}

func TestResourceLimiter_Allow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.March, 15, 9, 0, 30, 0, time.UTC)

	t.Run("Allows up to maxAttempts then blocks", func(t *testing.T) {
		limiter, _ := newTestLimiter(now)

		for i := 0; i < 3; i++ {
			allowed, retryAfter, err := limiter.Allow(ctx, "login_attempt", "D1@clinic.test", 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed, "attempt %d should be allowed", i+1)
			assert.Zero(t, retryAfter)
		}

		allowed, retryAfter, err := limiter.Allow(ctx, "login_attempt", "d1@clinic.test", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Equal(t, 31*time.Second, retryAfter, "retry lands one second after the next window starts")
	})

	t.Run("Resources are counted independently", func(t *testing.T) {
		limiter, _ := newTestLimiter(now)

		allowed, _, err := limiter.Allow(ctx, "login_attempt", "a@clinic.test", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, _, err = limiter.Allow(ctx, "login_attempt", "b@clinic.test", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("Next window resets the counter", func(t *testing.T) {
		limiter, _ := newTestLimiter(now)

		allowed, _, err := limiter.Allow(ctx, "login_attempt", "a@clinic.test", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)

		limiter.now = func() time.Time { return now.Add(time.Minute) }
		allowed, _, err = limiter.Allow(ctx, "login_attempt", "a@clinic.test", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("Non-positive maxAttempts disables the limit", func(t *testing.T) {
		limiter, redis := newTestLimiter(now)

		allowed, _, err := limiter.Allow(ctx, "login_attempt", "a@clinic.test", 0, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Empty(t, redis.Counter)
	})

	t.Run("Blank resource is refused", func(t *testing.T) {
		limiter, _ := newTestLimiter(now)

		allowed, _, err := limiter.Allow(ctx, "login_attempt", "   ", 5, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("Redis failure is returned", func(t *testing.T) {
		limiter, redis := newTestLimiter(now)
		redis.Err = assert.AnError

		allowed, _, err := limiter.Allow(ctx, "login_attempt", "a@clinic.test", 5, time.Minute)
		assert.ErrorIs(t, err, assert.AnError)
		assert.False(t, allowed)
	})
}
