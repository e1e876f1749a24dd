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

// BoardsClient implements trello.BoardsClient.
type BoardsClient struct {
	httpClient *http.Client
	validator  *ValidationService
}

// NewBoardsClient creates a new boards client.
func NewBoardsClient(httpClient *http.Client, validator *ValidationService) *BoardsClient {
	return &BoardsClient{httpClient: httpClient, validator: validator}
}

// Get implements trello.BoardsClient.Get.
func (c *BoardsClient) Get(ctx context.Context, boardID string) (*trello.Board, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/boards/%s", boardID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting board: %w", err)
	}

	var board trello.Board
	if err := decode(resp.Body, &board, "board"); err != nil {
		return nil, err
	}

	return &board, nil
}

// List implements trello.BoardsClient.List. It returns the boards of the
// member owning the configured token.
func (c *BoardsClient) List(ctx context.Context) ([]trello.Board, error) {
	resp, err := c.httpClient.Get(ctx, "/members/me/boards", nil)
	if err != nil {
		return nil, fmt.Errorf("listing boards: %w", err)
	}

	var boards []trello.Board
	if err := decode(resp.Body, &boards, "boards"); err != nil {
		return nil, err
	}

	return boards, nil
}

// Create implements trello.BoardsClient.Create. Shape is validated locally
// first; when a workspace is named, its existence and the caller's
// membership are confirmed before the write is issued.
func (c *BoardsClient) Create(ctx context.Context, request *trello.CreateBoardRequest) (*trello.Board, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if request.IDOrganization != "" {
		if err := c.validator.ResourceExists(ctx, trello.ResourceWorkspace, request.IDOrganization); err != nil {
			return nil, err
		}

		if err := c.validator.HasPermission(ctx, trello.ResourceWorkspace, request.IDOrganization, trello.PermissionMember); err != nil {
			return nil, err
		}
	}

	resp, err := c.httpClient.Post(ctx, "/boards", request.Values())
	if err != nil {
		return nil, fmt.Errorf("creating board: %w", err)
	}

	var board trello.Board
	if err := decode(resp.Body, &board, "board"); err != nil {
		return nil, err
	}

	return &board, nil
}

// Update implements trello.BoardsClient.Update.
func (c *BoardsClient) Update(ctx context.Context, boardID string, request *trello.UpdateBoardRequest) (*trello.Board, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if err := c.validator.ResourceExists(ctx, trello.ResourceBoard, boardID); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, fmt.Sprintf("/boards/%s", boardID), request.Values())
	if err != nil {
		return nil, fmt.Errorf("updating board: %w", err)
	}

	var board trello.Board
	if err := decode(resp.Body, &board, "board"); err != nil {
		return nil, err
	}

	return &board, nil
}

// Delete implements trello.BoardsClient.Delete. Deletion is permanent, so
// both existence and admin permission are confirmed before the call.
func (c *BoardsClient) Delete(ctx context.Context, boardID string) error {
	if err := c.validator.ResourceExists(ctx, trello.ResourceBoard, boardID); err != nil {
		return err
	}

	if err := c.validator.HasPermission(ctx, trello.ResourceBoard, boardID, trello.PermissionAdmin); err != nil {
		return err
	}

	_, err := c.httpClient.Delete(ctx, fmt.Sprintf("/boards/%s", boardID))
	if err != nil {
		return fmt.Errorf("deleting board: %w", err)
	}

	return nil
}

// Labels implements trello.BoardsClient.Labels.
func (c *BoardsClient) Labels(ctx context.Context, boardID string) ([]trello.Label, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/boards/%s/labels", boardID), nil)
	if err != nil {
		return nil, fmt.Errorf("listing board labels: %w", err)
	}

	var labels []trello.Label
	if err := decode(resp.Body, &labels, "labels"); err != nil {
		return nil, err
	}

	return labels, nil
}

// CreateLabel implements trello.BoardsClient.CreateLabel.
func (c *BoardsClient) CreateLabel(ctx context.Context, boardID string, request *trello.CreateLabelRequest) (*trello.Label, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if err := c.validator.ResourceExists(ctx, trello.ResourceBoard, boardID); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, fmt.Sprintf("/boards/%s/labels", boardID), request.Values())
	if err != nil {
		return nil, fmt.Errorf("creating board label: %w", err)
	}

	var label trello.Label
	if err := decode(resp.Body, &label, "label"); err != nil {
		return nil, err
	}

	return &label, nil
}

// Memberships implements trello.BoardsClient.Memberships.
func (c *BoardsClient) Memberships(ctx context.Context, boardID string) ([]trello.Membership, error) {
	query := url.Values{"member": []string{"true"}}

	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/boards/%s/memberships", boardID), query)
	if err != nil {
		return nil, fmt.Errorf("listing board memberships: %w", err)
	}

	var memberships []trello.Membership
	if err := decode(resp.Body, &memberships, "memberships"); err != nil {
		return nil, err
	}

	return memberships, nil
}

// Actions implements trello.BoardsClient.Actions. An empty filter returns
// all action types.
func (c *BoardsClient) Actions(ctx context.Context, boardID string, filter string, limit int) ([]trello.Action, error) {
	if limit <= 0 {
		limit = constants.DefaultActionLimit
	}

	query := url.Values{"limit": []string{strconv.Itoa(limit)}}
	if filter != "" {
		query.Set("filter", filter)
	}

	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/boards/%s/actions", boardID), query)
	if err != nil {
		return nil, fmt.Errorf("listing board actions: %w", err)
	}

	var actions []trello.Action
	if err := decode(resp.Body, &actions, "actions"); err != nil {
		return nil, err
	}

	return actions, nil
}
