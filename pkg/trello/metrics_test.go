package trello_test

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/kanban-io/trello-client/pkg/trello"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCollectorRecord(t *testing.T) {
	t.Parallel()

	collector := trello.NewMetricsCollector()

	collector.Record(http.MethodGet, "/boards/abc", 100*time.Millisecond, false)
	collector.Record(http.MethodGet, "/boards/abc", 300*time.Millisecond, true)

	metrics := collector.Get(http.MethodGet, "/boards/abc")
	require.NotNil(t, metrics)
	assert.Equal(t, int64(2), metrics.TotalRequests)
	assert.Equal(t, int64(1), metrics.TotalErrors)
	assert.Equal(t, 400*time.Millisecond, metrics.TotalLatency)
	assert.Equal(t, 200*time.Millisecond, metrics.AverageLatency)
	assert.False(t, metrics.LastRequestTime.IsZero())
}

func TestMetricsCollectorGetUnknownEndpoint(t *testing.T) {
	t.Parallel()

	collector := trello.NewMetricsCollector()
	assert.Nil(t, collector.Get(http.MethodGet, "/nope"))
}

func TestMetricsCollectorConcurrentRecord(t *testing.T) {
	t.Parallel()

	collector := trello.NewMetricsCollector()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			collector.Record(http.MethodGet, "/members/me", time.Millisecond, false)
		}()
	}

	wg.Wait()

	metrics := collector.Get(http.MethodGet, "/members/me")
	require.NotNil(t, metrics)
	assert.Equal(t, int64(50), metrics.TotalRequests)
	assert.Len(t, collector.Endpoints(), 1)
}
