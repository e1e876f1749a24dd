package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/kanban-io/trello-client/internal/http"
	"github.com/kanban-io/trello-client/pkg/trello"
)

// CardsClient implements trello.CardsClient.
type CardsClient struct {
	httpClient *http.Client
	validator  *ValidationService
}

// NewCardsClient creates a new cards client.
func NewCardsClient(httpClient *http.Client, validator *ValidationService) *CardsClient {
	return &CardsClient{httpClient: httpClient, validator: validator}
}

// Get implements trello.CardsClient.Get.
func (c *CardsClient) Get(ctx context.Context, cardID string) (*trello.Card, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/cards/%s", cardID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting card: %w", err)
	}

	var card trello.Card
	if err := decode(resp.Body, &card, "card"); err != nil {
		return nil, err
	}

	return &card, nil
}

// ForList implements trello.CardsClient.ForList.
func (c *CardsClient) ForList(ctx context.Context, listID string) ([]trello.Card, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/lists/%s/cards", listID), nil)
	if err != nil {
		return nil, fmt.Errorf("listing list cards: %w", err)
	}

	var cards []trello.Card
	if err := decode(resp.Body, &cards, "cards"); err != nil {
		return nil, err
	}

	return cards, nil
}

// ForBoard implements trello.CardsClient.ForBoard.
func (c *CardsClient) ForBoard(ctx context.Context, boardID string) ([]trello.Card, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/boards/%s/cards", boardID), nil)
	if err != nil {
		return nil, fmt.Errorf("listing board cards: %w", err)
	}

	var cards []trello.Card
	if err := decode(resp.Body, &cards, "cards"); err != nil {
		return nil, err
	}

	return cards, nil
}

// Create implements trello.CardsClient.Create. The target list must exist
// before the write is issued.
func (c *CardsClient) Create(ctx context.Context, request *trello.CreateCardRequest) (*trello.Card, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if err := c.validator.ResourceExists(ctx, trello.ResourceList, request.IDList); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "/cards", request.Values())
	if err != nil {
		return nil, fmt.Errorf("creating card: %w", err)
	}

	var card trello.Card
	if err := decode(resp.Body, &card, "card"); err != nil {
		return nil, err
	}

	return &card, nil
}

// Update implements trello.CardsClient.Update. When the update moves the
// card to another list, the destination list must exist.
func (c *CardsClient) Update(ctx context.Context, cardID string, request *trello.UpdateCardRequest) (*trello.Card, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if err := c.validator.ResourceExists(ctx, trello.ResourceCard, cardID); err != nil {
		return nil, err
	}

	if request.IDList != "" {
		if err := c.validator.ResourceExists(ctx, trello.ResourceList, request.IDList); err != nil {
			return nil, err
		}
	}

	resp, err := c.httpClient.Put(ctx, fmt.Sprintf("/cards/%s", cardID), request.Values())
	if err != nil {
		return nil, fmt.Errorf("updating card: %w", err)
	}

	var card trello.Card
	if err := decode(resp.Body, &card, "card"); err != nil {
		return nil, err
	}

	return &card, nil
}

// Delete implements trello.CardsClient.Delete. Deletion is permanent.
func (c *CardsClient) Delete(ctx context.Context, cardID string) error {
	if err := c.validator.ResourceExists(ctx, trello.ResourceCard, cardID); err != nil {
		return err
	}

	_, err := c.httpClient.Delete(ctx, fmt.Sprintf("/cards/%s", cardID))
	if err != nil {
		return fmt.Errorf("deleting card: %w", err)
	}

	return nil
}

// Move implements trello.CardsClient.Move.
func (c *CardsClient) Move(ctx context.Context, cardID, listID string) (*trello.Card, error) {
	if err := c.validator.ResourceExists(ctx, trello.ResourceCard, cardID); err != nil {
		return nil, err
	}

	if err := c.validator.ResourceExists(ctx, trello.ResourceList, listID); err != nil {
		return nil, err
	}

	query := url.Values{"idList": []string{listID}}

	resp, err := c.httpClient.Put(ctx, fmt.Sprintf("/cards/%s", cardID), query)
	if err != nil {
		return nil, fmt.Errorf("moving card: %w", err)
	}

	var card trello.Card
	if err := decode(resp.Body, &card, "card"); err != nil {
		return nil, err
	}

	return &card, nil
}

// Members implements trello.CardsClient.Members.
func (c *CardsClient) Members(ctx context.Context, cardID string) ([]trello.Member, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/cards/%s/members", cardID), nil)
	if err != nil {
		return nil, fmt.Errorf("listing card members: %w", err)
	}

	var members []trello.Member
	if err := decode(resp.Body, &members, "members"); err != nil {
		return nil, err
	}

	return members, nil
}

// AddMember implements trello.CardsClient.AddMember. Both the card and the
// member must exist.
func (c *CardsClient) AddMember(ctx context.Context, cardID, memberID string) ([]trello.Member, error) {
	if err := c.validator.ResourceExists(ctx, trello.ResourceCard, cardID); err != nil {
		return nil, err
	}

	if err := c.validator.ResourceExists(ctx, trello.ResourceMember, memberID); err != nil {
		return nil, err
	}

	query := url.Values{"value": []string{memberID}}

	resp, err := c.httpClient.Post(ctx, fmt.Sprintf("/cards/%s/idMembers", cardID), query)
	if err != nil {
		return nil, fmt.Errorf("adding card member: %w", err)
	}

	var members []trello.Member
	if err := decode(resp.Body, &members, "members"); err != nil {
		return nil, err
	}

	return members, nil
}

// RemoveMember implements trello.CardsClient.RemoveMember.
func (c *CardsClient) RemoveMember(ctx context.Context, cardID, memberID string) error {
	if err := trello.ValidateID(trello.ResourceCard, cardID); err != nil {
		return err
	}

	if err := trello.ValidateID(trello.ResourceMember, memberID); err != nil {
		return err
	}

	_, err := c.httpClient.Delete(ctx, fmt.Sprintf("/cards/%s/idMembers/%s", cardID, memberID))
	if err != nil {
		return fmt.Errorf("removing card member: %w", err)
	}

	return nil
}

// Labels implements trello.CardsClient.Labels.
func (c *CardsClient) Labels(ctx context.Context, cardID string) ([]trello.Label, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/cards/%s/labels", cardID), nil)
	if err != nil {
		return nil, fmt.Errorf("listing card labels: %w", err)
	}

	var labels []trello.Label
	if err := decode(resp.Body, &labels, "labels"); err != nil {
		return nil, err
	}

	return labels, nil
}

// AddLabel implements trello.CardsClient.AddLabel.
func (c *CardsClient) AddLabel(ctx context.Context, cardID, labelID string) error {
	if err := c.validator.ResourceExists(ctx, trello.ResourceCard, cardID); err != nil {
		return err
	}

	if err := trello.ValidateID(trello.ResourceLabel, labelID); err != nil {
		return err
	}

	query := url.Values{"value": []string{labelID}}

	_, err := c.httpClient.Post(ctx, fmt.Sprintf("/cards/%s/idLabels", cardID), query)
	if err != nil {
		return fmt.Errorf("adding card label: %w", err)
	}

	return nil
}

// RemoveLabel implements trello.CardsClient.RemoveLabel.
func (c *CardsClient) RemoveLabel(ctx context.Context, cardID, labelID string) error {
	if err := trello.ValidateID(trello.ResourceCard, cardID); err != nil {
		return err
	}

	if err := trello.ValidateID(trello.ResourceLabel, labelID); err != nil {
		return err
	}

	_, err := c.httpClient.Delete(ctx, fmt.Sprintf("/cards/%s/idLabels/%s", cardID, labelID))
	if err != nil {
		return fmt.Errorf("removing card label: %w", err)
	}

	return nil
}
