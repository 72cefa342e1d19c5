package locker

import (
	"context"
	"errors"
	"sleepclinic-service/internal/app/services/core/inmemory"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLocker(redisRepository *inmemory.RedisRepository) *lockService {
	values := []string{"owner-a", "owner-b"}
	service := NewLockService(redisRepository, zap.NewNop()).(*lockService)
	service.NewLockValue = func() string {
		value := values[0]
		values = values[1:]
		return value
	}
	return service
}

func TestTryLock(t *testing.T) {
	ctx := context.Background()
	redisRepository := inmemory.NewRedisRepository()
	locker := newTestLocker(redisRepository)

	acquired, lockValue, err := locker.TryLock(ctx, "sweep", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
	assert.Equal(t, "owner-a", lockValue)

	acquired, lockValue, err = locker.TryLock(ctx, "sweep", time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired)
	assert.Empty(t, lockValue)
}

func TestUnlock(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner releases the lock", func(t *testing.T) {
		redisRepository := inmemory.NewRedisRepository()
		locker := newTestLocker(redisRepository)

		_, lockValue, err := locker.TryLock(ctx, "sweep", time.Minute)
		require.NoError(t, err)

		require.NoError(t, locker.Unlock(ctx, "sweep", lockValue))
		assert.NotContains(t, redisRepository.Values, "sweep")

		acquired, _, err := locker.TryLock(ctx, "sweep", time.Minute)
		require.NoError(t, err)
		assert.True(t, acquired)
	})

	t.Run("Other value cannot release the lock", func(t *testing.T) {
		redisRepository := inmemory.NewRedisRepository()
		locker := newTestLocker(redisRepository)

		_, _, err := locker.TryLock(ctx, "sweep", time.Minute)
		require.NoError(t, err)

		err = locker.Unlock(ctx, "sweep", "owner-b")
		assert.Error(t, err)
		assert.Contains(t, redisRepository.Values, "sweep")
	})

	t.Run("Missing lock is a no-op", func(t *testing.T) {
		locker := newTestLocker(inmemory.NewRedisRepository())
		assert.NoError(t, locker.Unlock(ctx, "sweep", "owner-a"))
	})

	t.Run("Redis error", func(t *testing.T) {
		redisRepository := inmemory.NewRedisRepository()
		redisRepository.Err = errors.New("connection refused")
		locker := newTestLocker(redisRepository)

		acquired, _, err := locker.TryLock(ctx, "sweep", time.Minute)
		assert.Error(t, err)
		assert.False(t, acquired)
	})
}
