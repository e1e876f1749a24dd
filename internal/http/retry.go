package http

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/kanban-io/trello-client/internal/constants"
	"github.com/kanban-io/trello-client/pkg/trello"
)

// Policy is the retry configuration for one client. It is built once and
// never mutated, so concurrent calls share it freely.
type Policy struct {
	// MaxAttempts is the total number of transport invocations for one
	// logical call, including the first.
	MaxAttempts int
	// BaseDelay is the backoff before the first retry.
	BaseDelay time.Duration
	// Multiplier grows the delay per attempt.
	Multiplier float64
	// MaxDelay caps the computed backoff before jitter.
	MaxDelay time.Duration
	// JitterMax bounds the random jitter added to every wait.
	JitterMax time.Duration
	// Retryable lists the error kinds eligible for retry.
	Retryable []trello.ErrorKind
}

// DefaultPolicy retries transient failures up to three attempts total with
// capped exponential backoff.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: constants.DefaultRetryMax,
		BaseDelay:   constants.DefaultRetryWaitMin,
		Multiplier:  2,
		MaxDelay:    constants.DefaultRetryWaitMax,
		JitterMax:   constants.DefaultRetryJitterMax,
		Retryable:   []trello.ErrorKind{trello.ErrorKindRateLimit, trello.ErrorKindNetwork},
	}
}

func (p Policy) withDefaults() Policy {
	defaults := DefaultPolicy()

	if p.MaxAttempts <= 0 {
		p.MaxAttempts = defaults.MaxAttempts
	}

	if p.BaseDelay <= 0 {
		p.BaseDelay = defaults.BaseDelay
	}

	if p.Multiplier <= 1 {
		p.Multiplier = defaults.Multiplier
	}

	if p.MaxDelay <= 0 {
		p.MaxDelay = defaults.MaxDelay
	}

	if p.Retryable == nil {
		p.Retryable = defaults.Retryable
	}

	return p
}

func (p Policy) retryable(kind trello.ErrorKind) bool {
	for _, eligible := range p.Retryable {
		if eligible == kind {
			return true
		}
	}

	return false
}

// Backoff computes the wait before the retry following the given attempt
// (zero-based). For rate-limit errors the server-provided retry-after wins
// when it is larger than the computed backoff.
func (p Policy) Backoff(attempt int, retryAfter time.Duration) time.Duration {
	delay := time.Duration(float64(p.BaseDelay) * math.Pow(p.Multiplier, float64(attempt)))
	if delay > p.MaxDelay || delay <= 0 {
		delay = p.MaxDelay
	}

	if p.JitterMax > 0 {
		delay += rand.N(p.JitterMax)
	}

	if retryAfter > delay {
		return retryAfter
	}

	return delay
}

// doWithRetry is the retry controller: it attempts the call through Do and
// retries classified transient failures until the policy's attempt budget
// is spent. The last classified error is returned unchanged; it is never
// wrapped a second time. No retry is scheduled once the context is done.
func (c *Client) doWithRetry(ctx context.Context, req *Request) (*Response, error) {
	var (
		resp *Response
		err  error
	)

	for attempt := 0; attempt < c.policy.MaxAttempts; attempt++ {
		req.Attempt = attempt

		resp, err = c.Do(ctx, req)
		if err == nil {
			return resp, nil
		}

		classified := &trello.Error{}
		if !errors.As(err, &classified) {
			return resp, err
		}

		if !c.policy.retryable(classified.Kind) || attempt+1 >= c.policy.MaxAttempts {
			return resp, err
		}

		wait := c.policy.Backoff(attempt, classified.RetryAfter)

		if c.logger != nil {
			c.logger.Warn("retrying after transient failure", map[string]interface{}{
				"method":  req.Method,
				"path":    req.Path,
				"kind":    string(classified.Kind),
				"attempt": attempt + 1,
				"wait":    wait.String(),
			})
		}

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()

			return resp, err
		}
	}

	return resp, err
}
