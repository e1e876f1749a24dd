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

// CommentsClient implements trello.CommentsClient. Comments are actions of
// type commentCard in the activity feed.
type CommentsClient struct {
	httpClient *http.Client
	validator  *ValidationService
}

// NewCommentsClient creates a new comments client.
func NewCommentsClient(httpClient *http.Client, validator *ValidationService) *CommentsClient {
	return &CommentsClient{httpClient: httpClient, validator: validator}
}

// ForCard implements trello.CommentsClient.ForCard.
func (c *CommentsClient) ForCard(ctx context.Context, cardID string) ([]trello.Action, error) {
	return c.CardActions(ctx, cardID, "commentCard", 0)
}

// Add implements trello.CommentsClient.Add. The card must exist before the
// write is issued.
func (c *CommentsClient) Add(ctx context.Context, cardID string, request *trello.CommentRequest) (*trello.Action, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if err := c.validator.ResourceExists(ctx, trello.ResourceCard, cardID); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, fmt.Sprintf("/cards/%s/actions/comments", cardID), request.Values())
	if err != nil {
		return nil, fmt.Errorf("adding comment: %w", err)
	}

	var action trello.Action
	if err := decode(resp.Body, &action, "comment"); err != nil {
		return nil, err
	}

	return &action, nil
}

// Update implements trello.CommentsClient.Update. Only the comment author
// can edit; the API enforces that and the failure surfaces as Forbidden.
func (c *CommentsClient) Update(ctx context.Context, actionID string, request *trello.CommentRequest) (*trello.Action, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if err := trello.ValidateID(trello.ResourceAction, actionID); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, fmt.Sprintf("/actions/%s", actionID), request.Values())
	if err != nil {
		return nil, fmt.Errorf("updating comment: %w", err)
	}

	var action trello.Action
	if err := decode(resp.Body, &action, "comment"); err != nil {
		return nil, err
	}

	return &action, nil
}

// Delete implements trello.CommentsClient.Delete.
func (c *CommentsClient) Delete(ctx context.Context, actionID string) error {
	if err := trello.ValidateID(trello.ResourceAction, actionID); err != nil {
		return err
	}

	_, err := c.httpClient.Delete(ctx, fmt.Sprintf("/actions/%s", actionID))
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}

	return nil
}

// CardActions implements trello.CommentsClient.CardActions. An empty filter
// returns all action types.
func (c *CommentsClient) CardActions(ctx context.Context, cardID, filter string, limit int) ([]trello.Action, error) {
	if limit <= 0 {
		limit = constants.DefaultActionLimit
	}

	query := url.Values{"limit": []string{strconv.Itoa(limit)}}
	if filter != "" {
		query.Set("filter", filter)
	}

	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/cards/%s/actions", cardID), query)
	if err != nil {
		return nil, fmt.Errorf("listing card actions: %w", err)
	}

	var actions []trello.Action
	if err := decode(resp.Body, &actions, "actions"); err != nil {
		return nil, err
	}

	return actions, nil
}
