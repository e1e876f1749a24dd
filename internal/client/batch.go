package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/kanban-io/trello-client/internal/constants"
	"github.com/kanban-io/trello-client/internal/http"
	"github.com/kanban-io/trello-client/pkg/trello"
)

// BatchClient implements trello.BatchClient. The batch endpoint accepts up
// to ten read URLs and answers each independently, so one failing entry does
// not fail the batch.
type BatchClient struct {
	httpClient *http.Client
}

// NewBatchClient creates a new batch client.
func NewBatchClient(httpClient *http.Client) *BatchClient {
	return &BatchClient{httpClient: httpClient}
}

// batchEntry is the raw per-URL answer. Successes arrive keyed by status
// code ("200"); failures arrive flat with name, message, and statusCode.
type batchEntry map[string]json.RawMessage

// Get implements trello.BatchClient.Get. URLs are API paths relative to the
// version root, e.g. "/boards/<id>".
func (c *BatchClient) Get(ctx context.Context, urls []string) ([]trello.BatchResult, error) {
	if len(urls) == 0 {
		return nil, trello.ErrEmptyBatch
	}

	if len(urls) > constants.MaxBatchURLs {
		return nil, fmt.Errorf("%w: got %d, limit is %d", trello.ErrTooManyBatchURLs,
			len(urls), constants.MaxBatchURLs)
	}

	for _, u := range urls {
		if !strings.HasPrefix(u, "/") {
			return nil, trello.NewValidationError(fmt.Sprintf(
				"batch url %q must start with /", u))
		}
	}

	query := url.Values{"urls": []string{strings.Join(urls, ",")}}

	resp, err := c.httpClient.Get(ctx, "/batch", query)
	if err != nil {
		return nil, fmt.Errorf("executing batch: %w", err)
	}

	var entries []batchEntry
	if err := decode(resp.Body, &entries, "batch results"); err != nil {
		return nil, err
	}

	results := make([]trello.BatchResult, 0, len(entries))
	for _, entry := range entries {
		results = append(results, flattenBatchEntry(entry))
	}

	return results, nil
}

func flattenBatchEntry(entry batchEntry) trello.BatchResult {
	result := trello.BatchResult{}

	for key, raw := range entry {
		if code, err := strconv.Atoi(key); err == nil {
			result.StatusCode = code
			result.Body = []byte(raw)

			continue
		}

		switch key {
		case "name":
			_ = json.Unmarshal(raw, &result.Name)
		case "message":
			_ = json.Unmarshal(raw, &result.Message)
		case "statusCode":
			_ = json.Unmarshal(raw, &result.StatusCode)
		}
	}

	return result
}
