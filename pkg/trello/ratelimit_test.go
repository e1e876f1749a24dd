package trello_test

import (
	"context"
	"testing"
	"time"

	"github.com/kanban-io/trello-client/pkg/trello"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterAdmitsUpToBucketSize(t *testing.T) {
	t.Parallel()

	limiter := trello.NewLimiter(3)
	defer limiter.Close()

	ctx := context.Background()
	for range 3 {
		require.NoError(t, limiter.Wait(ctx))
	}
}

func TestLimiterClampsNonPositiveSize(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, -5} {
		limiter := trello.NewLimiter(size)

		require.NoError(t, limiter.Wait(context.Background()))
		limiter.Close()
	}
}

func TestLimiterWaitHonorsContext(t *testing.T) {
	t.Parallel()

	limiter := trello.NewLimiter(1)
	defer limiter.Close()

	ctx := context.Background()
	require.NoError(t, limiter.Wait(ctx))

	// Bucket is empty; a bounded wait must fail with the context error
	// instead of blocking.
	timeoutCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()

	err := limiter.Wait(timeoutCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
