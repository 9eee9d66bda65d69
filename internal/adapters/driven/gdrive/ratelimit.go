package gdrive

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Drive allows 10 requests per second per user; stay under it.
const (
	defaultRequestsPerSecond = 8.0
	defaultBurstSize         = 10
)

// rateLimiter wraps a token bucket with a backoff window for 429
// responses from the Drive API.
type rateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

func newRateLimiter() *rateLimiter {
	return &rateLimiter{
		limiter: rate.NewLimiter(rate.Limit(defaultRequestsPerSecond), defaultBurstSize),
	}
}

// wait blocks until the next request is permitted, honouring any backoff
// window before consuming a token.
func (r *rateLimiter) wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if until := time.Until(retryAt); until > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(until):
		}
	}

	return r.limiter.Wait(ctx)
}

// recordRateLimitError opens a backoff window after a 429 response.
func (r *rateLimiter) recordRateLimitError(retryAfter time.Duration) {
	if retryAfter <= 0 {
		retryAfter = 60 * time.Second
	}

	r.mu.Lock()
	r.retryAt = time.Now().Add(retryAfter)
	r.mu.Unlock()
}
