package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	trellohttp "github.com/kanban-io/trello-client/internal/http"
	"github.com/kanban-io/trello-client/pkg/trello"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...trellohttp.Option) *trellohttp.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return trellohttp.NewClient(server.URL, "test-key", "test-token", opts...)
}

func TestClientAttachesCredentials(t *testing.T) {
	t.Parallel()

	var captured url.Values

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		captured = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "abc"}`))
	})

	resp, err := client.Get(context.Background(), "/members/me", url.Values{"fields": []string{"id"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "test-key", captured.Get("key"))
	assert.Equal(t, "test-token", captured.Get("token"))
	assert.Equal(t, "id", captured.Get("fields"))
}

func TestClientSetsUserAgent(t *testing.T) {
	t.Parallel()

	var userAgent string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{}`))
	}, trellohttp.WithUserAgent("custom-agent/1.0"))

	_, err := client.Get(context.Background(), "/members/me", nil)
	require.NoError(t, err)
	assert.Equal(t, "custom-agent/1.0", userAgent)
}

func TestDoPerformsExactlyOneCall(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Do(context.Background(), &trellohttp.Request{
		Method: http.MethodGet,
		Path:   "/boards/662f000000000000000000aa",
	})

	require.Error(t, err)
	assert.True(t, trello.IsRateLimit(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestMutationsAreNotRetried(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		call func(client *trellohttp.Client) error
	}{
		{
			name: "post",
			call: func(client *trellohttp.Client) error {
				_, err := client.Post(context.Background(), "/boards", url.Values{"name": []string{"x"}})

				return err
			},
		},
		{
			name: "put",
			call: func(client *trellohttp.Client) error {
				_, err := client.Put(context.Background(), "/boards/662f000000000000000000aa", nil)

				return err
			},
		},
		{
			name: "delete",
			call: func(client *trellohttp.Client) error {
				_, err := client.Delete(context.Background(), "/boards/662f000000000000000000aa")

				return err
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32

			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.Header().Set("Retry-After", "0")
				w.WriteHeader(http.StatusTooManyRequests)
			}, trellohttp.WithRetryPolicy(trellohttp.Policy{
				MaxAttempts: 3,
				BaseDelay:   time.Millisecond,
				JitterMax:   time.Millisecond,
			}))

			err := test.call(client)
			require.Error(t, err)
			assert.True(t, trello.IsRateLimit(err))
			assert.Equal(t, int32(1), calls.Load(), "mutating calls must be issued exactly once")
		})
	}
}

func TestErrorsNeverContainCredentials(t *testing.T) {
	t.Parallel()

	statuses := []int{
		http.StatusUnauthorized,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusTooManyRequests,
		http.StatusBadRequest,
		http.StatusInternalServerError,
	}

	for _, status := range statuses {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`server detail`))
		}, trellohttp.WithRetryPolicy(trellohttp.Policy{
			MaxAttempts: 1,
			BaseDelay:   time.Millisecond,
		}))

		_, err := client.Get(context.Background(), "/boards/662f000000000000000000aa", nil)
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "test-key")
		assert.NotContains(t, err.Error(), "test-token")
	}
}

func TestClassifiedErrorNamesResourceFromPath(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Get(context.Background(), "/boards/662f000000000000000000aa", nil)
	require.Error(t, err)

	classified := &trello.Error{}
	require.ErrorAs(t, err, &classified)
	assert.Equal(t, "Board", classified.Resource)
	assert.Equal(t, "662f000000000000000000aa", classified.ResourceID)
}

func TestTransportFailureIsNetworkKind(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // force connection refused

	client := trellohttp.NewClient(server.URL, "test-key", "test-token",
		trellohttp.WithRetryPolicy(trellohttp.Policy{MaxAttempts: 1, BaseDelay: time.Millisecond}))

	_, err := client.Get(context.Background(), "/members/me", nil)
	require.Error(t, err)
	assert.True(t, trello.IsNetwork(err))
	assert.NotContains(t, err.Error(), "test-key")
	assert.NotContains(t, err.Error(), "test-token")
}

func TestMetricsRecordEveryAttempt(t *testing.T) {
	t.Parallel()

	metrics := trello.NewMetricsCollector()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}, trellohttp.WithMetrics(metrics))

	_, err := client.Get(context.Background(), "/members/me", nil)
	require.NoError(t, err)

	recorded := metrics.Get(http.MethodGet, "/members/me")
	require.NotNil(t, recorded)
	assert.Equal(t, int64(1), recorded.TotalRequests)
	assert.Equal(t, int64(0), recorded.TotalErrors)
}

func TestLimiterIsConsultedBeforeTheCall(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	limiter := trello.NewLimiter(1)
	t.Cleanup(limiter.Close)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{}`))
	}, trellohttp.WithLimiter(limiter))

	_, err := client.Get(context.Background(), "/members/me", nil)
	require.NoError(t, err)

	// Bucket is now empty; a cancelled context must fail without reaching
	// the network.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = client.Get(ctx, "/members/me", nil)
	require.Error(t, err)
	assert.True(t, trello.IsNetwork(err))
	assert.Equal(t, int32(1), calls.Load())
}
