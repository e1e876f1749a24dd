package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/kanban-io/trello-client/internal/http"
	"github.com/kanban-io/trello-client/pkg/trello"
)

// ChecklistsClient implements trello.ChecklistsClient.
type ChecklistsClient struct {
	httpClient *http.Client
	validator  *ValidationService
}

// NewChecklistsClient creates a new checklists client.
func NewChecklistsClient(httpClient *http.Client, validator *ValidationService) *ChecklistsClient {
	return &ChecklistsClient{httpClient: httpClient, validator: validator}
}

// Get implements trello.ChecklistsClient.Get.
func (c *ChecklistsClient) Get(ctx context.Context, checklistID string) (*trello.Checklist, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/checklists/%s", checklistID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting checklist: %w", err)
	}

	var checklist trello.Checklist
	if err := decode(resp.Body, &checklist, "checklist"); err != nil {
		return nil, err
	}

	return &checklist, nil
}

// ForCard implements trello.ChecklistsClient.ForCard.
func (c *ChecklistsClient) ForCard(ctx context.Context, cardID string) ([]trello.Checklist, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/cards/%s/checklists", cardID), nil)
	if err != nil {
		return nil, fmt.Errorf("listing card checklists: %w", err)
	}

	var checklists []trello.Checklist
	if err := decode(resp.Body, &checklists, "checklists"); err != nil {
		return nil, err
	}

	return checklists, nil
}

// Create implements trello.ChecklistsClient.Create. The target card must
// exist before the write is issued.
func (c *ChecklistsClient) Create(ctx context.Context, request *trello.CreateChecklistRequest) (*trello.Checklist, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if err := c.validator.ResourceExists(ctx, trello.ResourceCard, request.IDCard); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "/checklists", request.Values())
	if err != nil {
		return nil, fmt.Errorf("creating checklist: %w", err)
	}

	var checklist trello.Checklist
	if err := decode(resp.Body, &checklist, "checklist"); err != nil {
		return nil, err
	}

	return &checklist, nil
}

// Update implements trello.ChecklistsClient.Update. Only the name can be
// changed.
func (c *ChecklistsClient) Update(ctx context.Context, checklistID string, name string) (*trello.Checklist, error) {
	if name == "" {
		return nil, trello.NewValidationError("name must not be empty")
	}

	if err := c.validator.ResourceExists(ctx, trello.ResourceChecklist, checklistID); err != nil {
		return nil, err
	}

	query := url.Values{"name": []string{name}}

	resp, err := c.httpClient.Put(ctx, fmt.Sprintf("/checklists/%s", checklistID), query)
	if err != nil {
		return nil, fmt.Errorf("updating checklist: %w", err)
	}

	var checklist trello.Checklist
	if err := decode(resp.Body, &checklist, "checklist"); err != nil {
		return nil, err
	}

	return &checklist, nil
}

// Delete implements trello.ChecklistsClient.Delete.
func (c *ChecklistsClient) Delete(ctx context.Context, checklistID string) error {
	if err := c.validator.ResourceExists(ctx, trello.ResourceChecklist, checklistID); err != nil {
		return err
	}

	_, err := c.httpClient.Delete(ctx, fmt.Sprintf("/checklists/%s", checklistID))
	if err != nil {
		return fmt.Errorf("deleting checklist: %w", err)
	}

	return nil
}

// AddItem implements trello.ChecklistsClient.AddItem.
func (c *ChecklistsClient) AddItem(ctx context.Context, checklistID string, request *trello.CheckItemRequest) (*trello.CheckItem, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if err := c.validator.ResourceExists(ctx, trello.ResourceChecklist, checklistID); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, fmt.Sprintf("/checklists/%s/checkItems", checklistID), request.Values())
	if err != nil {
		return nil, fmt.Errorf("adding checklist item: %w", err)
	}

	var item trello.CheckItem
	if err := decode(resp.Body, &item, "check item"); err != nil {
		return nil, err
	}

	return &item, nil
}

// UpdateItem implements trello.ChecklistsClient.UpdateItem. Check items are
// updated through their card, not their checklist.
func (c *ChecklistsClient) UpdateItem(ctx context.Context, cardID, itemID string, request *trello.UpdateCheckItemRequest) (*trello.CheckItem, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if err := trello.ValidateID(trello.ResourceCheckItem, itemID); err != nil {
		return nil, err
	}

	if err := c.validator.ResourceExists(ctx, trello.ResourceCard, cardID); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, fmt.Sprintf("/cards/%s/checkItem/%s", cardID, itemID), request.Values())
	if err != nil {
		return nil, fmt.Errorf("updating checklist item: %w", err)
	}

	var item trello.CheckItem
	if err := decode(resp.Body, &item, "check item"); err != nil {
		return nil, err
	}

	return &item, nil
}

// DeleteItem implements trello.ChecklistsClient.DeleteItem.
func (c *ChecklistsClient) DeleteItem(ctx context.Context, checklistID, itemID string) error {
	if err := trello.ValidateID(trello.ResourceCheckItem, itemID); err != nil {
		return err
	}

	if err := c.validator.ResourceExists(ctx, trello.ResourceChecklist, checklistID); err != nil {
		return err
	}

	_, err := c.httpClient.Delete(ctx, fmt.Sprintf("/checklists/%s/checkItems/%s", checklistID, itemID))
	if err != nil {
		return fmt.Errorf("deleting checklist item: %w", err)
	}

	return nil
}
