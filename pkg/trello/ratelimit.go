package trello

import (
	"context"
	"time"
)

// RateLimitWindow is the interval Trello's published quota applies to.
const RateLimitWindow = 10 * time.Second

// Limiter is a token bucket used as optional admission control ahead of the
// transport. It spreads requests so a burst does not eat the whole
// per-token quota at once; the retry controller remains the authority on
// 429s that still get through.
type Limiter struct {
	bucket chan struct{}
	done   chan struct{}
}

// NewLimiter builds a limiter admitting requestsPerWindow requests per
// RateLimitWindow. Values below one are clamped to one request per window.
// Close must be called when the limiter is retired.
func NewLimiter(requestsPerWindow int) *Limiter {
	if requestsPerWindow < 1 {
		requestsPerWindow = 1
	}

	limiter := &Limiter{
		bucket: make(chan struct{}, requestsPerWindow),
		done:   make(chan struct{}),
	}

	for range requestsPerWindow {
		limiter.bucket <- struct{}{}
	}

	go limiter.refill(RateLimitWindow / time.Duration(requestsPerWindow))

	return limiter
}

func (l *Limiter) refill(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			select {
			case l.bucket <- struct{}{}:
			default:
				// Bucket is full
			}
		case <-l.done:
			return
		}
	}
}

// Wait blocks until a token is available or the context is done. The wait
// suspends only the calling goroutine.
func (l *Limiter) Wait(ctx context.Context) error {
	select {
	case <-l.bucket:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the refill goroutine.
func (l *Limiter) Close() {
	close(l.done)
}
