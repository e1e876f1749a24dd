package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/kanban-io/trello-client/internal/constants"
	"github.com/kanban-io/trello-client/internal/http"
	"github.com/kanban-io/trello-client/pkg/trello"
)

// SearchClient implements trello.SearchClient.
type SearchClient struct {
	httpClient *http.Client
}

// NewSearchClient creates a new search client.
func NewSearchClient(httpClient *http.Client) *SearchClient {
	return &SearchClient{httpClient: httpClient}
}

// Search implements trello.SearchClient.Search.
func (c *SearchClient) Search(ctx context.Context, request *trello.SearchRequest) (*trello.SearchResult, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, "/search", request.Values())
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}

	var result trello.SearchResult
	if err := decode(resp.Body, &result, "search results"); err != nil {
		return nil, err
	}

	return &result, nil
}

// Members implements trello.SearchClient.Members.
func (c *SearchClient) Members(ctx context.Context, query string, limit int) ([]trello.Member, error) {
	if query == "" {
		return nil, trello.NewValidationError("query must not be empty")
	}

	if limit <= 0 {
		limit = constants.DefaultMemberSearchLimit
	}

	params := url.Values{
		"query": []string{query},
		"limit": []string{strconv.Itoa(limit)},
	}

	resp, err := c.httpClient.Get(ctx, "/search/members", params)
	if err != nil {
		return nil, fmt.Errorf("searching members: %w", err)
	}

	var members []trello.Member
	if err := decode(resp.Body, &members, "members"); err != nil {
		return nil, err
	}

	return members, nil
}
