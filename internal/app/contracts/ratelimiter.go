package contracts

import (
	"context"
	"time"
)

// AttemptLimiter counts attempts against a named resource in fixed windows.
type AttemptLimiter interface {
	Allow(ctx context.Context, group, resource string, maxAttempts int, window time.Duration) (allowed bool, retryAfter time.Duration, err error)
}
