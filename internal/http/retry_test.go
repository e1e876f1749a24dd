package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	trellohttp "github.com/kanban-io/trello-client/internal/http"
	"github.com/kanban-io/trello-client/pkg/trello"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(maxAttempts int) trellohttp.Policy {
	return trellohttp.Policy{
		MaxAttempts: maxAttempts,
		BaseDelay:   time.Millisecond,
		Multiplier:  2,
		MaxDelay:    5 * time.Millisecond,
		JitterMax:   time.Millisecond,
	}
}

func TestRetryExhaustsAttemptBudgetOnPersistentRateLimit(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}, trellohttp.WithRetryPolicy(fastPolicy(3)))

	_, err := client.Get(context.Background(), "/members/me", nil)

	require.Error(t, err)
	assert.True(t, trello.IsRateLimit(err))
	assert.Equal(t, int32(3), calls.Load(), "three attempts total, then give up")
}

func TestRetryStopsOnFirstSuccess(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)

			return
		}

		_, _ = w.Write([]byte(`{"id": "abc"}`))
	}, trellohttp.WithRetryPolicy(fastPolicy(5)))

	resp, err := client.Get(context.Background(), "/members/me", nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestNonTransientFailuresAreNeverRetried(t *testing.T) {
	t.Parallel()

	statuses := []int{
		http.StatusUnauthorized,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusBadRequest,
		http.StatusUnprocessableEntity,
		http.StatusInternalServerError,
	}

	for _, status := range statuses {
		var calls atomic.Int32

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(status)
		}, trellohttp.WithRetryPolicy(fastPolicy(3)))

		_, err := client.Get(context.Background(), "/boards/662f000000000000000000aa", nil)

		require.Error(t, err)
		assert.Equal(t, int32(1), calls.Load(), "status %d must not be retried", status)
	}
}

func TestRetryReturnsLastClassifiedErrorUnchanged(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}, trellohttp.WithRetryPolicy(fastPolicy(2)))

	_, err := client.Get(context.Background(), "/members/me", nil)

	classified := &trello.Error{}
	require.ErrorAs(t, err, &classified)
	assert.Equal(t, trello.ErrorKindRateLimit, classified.Kind)
	assert.Equal(t, http.StatusTooManyRequests, classified.StatusCode)
}

func TestRetryHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		// A large Retry-After forces a long backoff wait the context
		// will interrupt.
		w.Header().Set("Retry-After", "60")
		w.WriteHeader(http.StatusTooManyRequests)
	}, trellohttp.WithRetryPolicy(fastPolicy(5)))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.Get(ctx, "/members/me", nil)

	require.Error(t, err)
	assert.True(t, trello.IsRateLimit(err))
	assert.Equal(t, int32(1), calls.Load(), "no retry once the context is done")
	assert.Less(t, time.Since(start), time.Second)
}

func TestBackoffGrowsAndIsCapped(t *testing.T) {
	t.Parallel()

	policy := trellohttp.Policy{
		MaxAttempts: 5,
		BaseDelay:   time.Second,
		Multiplier:  2,
		MaxDelay:    5 * time.Second,
	}

	assert.Equal(t, 1*time.Second, policy.Backoff(0, 0))
	assert.Equal(t, 2*time.Second, policy.Backoff(1, 0))
	assert.Equal(t, 4*time.Second, policy.Backoff(2, 0))
	assert.Equal(t, 5*time.Second, policy.Backoff(3, 0), "capped at MaxDelay")
	assert.Equal(t, 5*time.Second, policy.Backoff(10, 0), "stays capped")
}

func TestBackoffJitterStaysInBounds(t *testing.T) {
	t.Parallel()

	policy := trellohttp.Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Multiplier:  2,
		MaxDelay:    30 * time.Second,
		JitterMax:   500 * time.Millisecond,
	}

	for range 100 {
		wait := policy.Backoff(0, 0)
		assert.GreaterOrEqual(t, wait, time.Second)
		assert.Less(t, wait, time.Second+500*time.Millisecond)
	}
}

func TestBackoffPrefersLargerServerRetryAfter(t *testing.T) {
	t.Parallel()

	policy := trellohttp.Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Multiplier:  2,
		MaxDelay:    30 * time.Second,
	}

	assert.Equal(t, 10*time.Second, policy.Backoff(0, 10*time.Second))
	assert.Equal(t, 2*time.Second, policy.Backoff(1, time.Millisecond), "smaller hint loses to computed backoff")
}

func TestNetworkFailuresAreRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			// Abort the connection mid-response to surface as a
			// transport failure on the client side.
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)

			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			_ = conn.Close()

			return
		}

		_, _ = w.Write([]byte(`{"id": "abc"}`))
	}))
	t.Cleanup(server.Close)

	client := trellohttp.NewClient(server.URL, "test-key", "test-token",
		trellohttp.WithRetryPolicy(fastPolicy(3)))

	resp, err := client.Get(context.Background(), "/members/me", nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(2), calls.Load())
}
