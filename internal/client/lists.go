package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/kanban-io/trello-client/internal/http"
	"github.com/kanban-io/trello-client/pkg/trello"
)

// ListsClient implements trello.ListsClient.
type ListsClient struct {
	httpClient *http.Client
	validator  *ValidationService
}

// NewListsClient creates a new lists client.
func NewListsClient(httpClient *http.Client, validator *ValidationService) *ListsClient {
	return &ListsClient{httpClient: httpClient, validator: validator}
}

// Get implements trello.ListsClient.Get.
func (c *ListsClient) Get(ctx context.Context, listID string) (*trello.List, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/lists/%s", listID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting list: %w", err)
	}

	var list trello.List
	if err := decode(resp.Body, &list, "list"); err != nil {
		return nil, err
	}

	return &list, nil
}

// ForBoard implements trello.ListsClient.ForBoard.
func (c *ListsClient) ForBoard(ctx context.Context, boardID string) ([]trello.List, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/boards/%s/lists", boardID), nil)
	if err != nil {
		return nil, fmt.Errorf("listing board lists: %w", err)
	}

	var lists []trello.List
	if err := decode(resp.Body, &lists, "lists"); err != nil {
		return nil, err
	}

	return lists, nil
}

// Create implements trello.ListsClient.Create. The target board must exist
// before the write is issued.
func (c *ListsClient) Create(ctx context.Context, request *trello.CreateListRequest) (*trello.List, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if err := c.validator.ResourceExists(ctx, trello.ResourceBoard, request.IDBoard); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "/lists", request.Values())
	if err != nil {
		return nil, fmt.Errorf("creating list: %w", err)
	}

	var list trello.List
	if err := decode(resp.Body, &list, "list"); err != nil {
		return nil, err
	}

	return &list, nil
}

// Update implements trello.ListsClient.Update.
func (c *ListsClient) Update(ctx context.Context, listID string, request *trello.UpdateListRequest) (*trello.List, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if err := c.validator.ResourceExists(ctx, trello.ResourceList, listID); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, fmt.Sprintf("/lists/%s", listID), request.Values())
	if err != nil {
		return nil, fmt.Errorf("updating list: %w", err)
	}

	var list trello.List
	if err := decode(resp.Body, &list, "list"); err != nil {
		return nil, err
	}

	return &list, nil
}

// Archive implements trello.ListsClient.Archive. Lists cannot be deleted;
// closing them is the closest operation the API offers.
func (c *ListsClient) Archive(ctx context.Context, listID string) (*trello.List, error) {
	if err := c.validator.ResourceExists(ctx, trello.ResourceList, listID); err != nil {
		return nil, err
	}

	query := url.Values{"value": []string{"true"}}

	resp, err := c.httpClient.Put(ctx, fmt.Sprintf("/lists/%s/closed", listID), query)
	if err != nil {
		return nil, fmt.Errorf("archiving list: %w", err)
	}

	var list trello.List
	if err := decode(resp.Body, &list, "list"); err != nil {
		return nil, err
	}

	return &list, nil
}

// Move implements trello.ListsClient.Move. Both the list and the
// destination board must exist.
func (c *ListsClient) Move(ctx context.Context, listID, boardID string) (*trello.List, error) {
	if err := c.validator.ResourceExists(ctx, trello.ResourceList, listID); err != nil {
		return nil, err
	}

	if err := c.validator.ResourceExists(ctx, trello.ResourceBoard, boardID); err != nil {
		return nil, err
	}

	query := url.Values{"value": []string{boardID}}

	resp, err := c.httpClient.Put(ctx, fmt.Sprintf("/lists/%s/idBoard", listID), query)
	if err != nil {
		return nil, fmt.Errorf("moving list: %w", err)
	}

	var list trello.List
	if err := decode(resp.Body, &list, "list"); err != nil {
		return nil, err
	}

	return &list, nil
}
