package ratelimiter

import (
	"context"
	"fmt"
	"sleepclinic-service/internal/app/contracts"
	"sleepclinic-service/internal/pkg/constvars"
	"strings"
	"time"

	"go.uber.org/zap"
)

// resourceLimiter is a fixed-window counter stored in Redis with a TTL equal
// to the window duration.
type resourceLimiter struct {
	redis contracts.RedisRepository
	log   *zap.Logger
	now   func() time.Time
}

func NewResourceLimiter(redis contracts.RedisRepository, log *zap.Logger) contracts.AttemptLimiter {
	return &resourceLimiter{redis: redis, log: log, now: time.Now}
}

// Allow counts one attempt against group/resource and reports whether the
// attempt is still within maxAttempts for the current window.
func (l *resourceLimiter) Allow(ctx context.Context, group, resource string, maxAttempts int, window time.Duration) (bool, time.Duration, error) {
	if maxAttempts <= 0 {
		return true, 0, nil
	}
	if window <= 0 {
		window = time.Minute
	}

	resource = strings.ToLower(strings.TrimSpace(resource))
	group = strings.ToUpper(strings.TrimSpace(group))
	if resource == "" || group == "" {
		return false, window, nil
	}

	now := l.now().UTC()
	windowSec := int64(window / time.Second)
	if windowSec <= 0 {
		windowSec = 1
	}
	windowID := now.Unix() / windowSec
	key := fmt.Sprintf("%s:%s:%d", group, resource, windowID)

	count, err := l.redis.IncrementWithTTL(ctx, key, window+time.Second)
	if err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		l.log.Error("resourceLimiter.Allow increment failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return false, 0, err
	}

	if count > maxAttempts {
		nextWindowStart := time.Unix((windowID+1)*windowSec, 0)
		return false, nextWindowStart.Sub(now) + time.Second, nil
	}
	return true, 0, nil
}
