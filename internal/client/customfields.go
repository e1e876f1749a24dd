package client

import (
	"context"
	"fmt"

	"github.com/kanban-io/trello-client/internal/http"
	"github.com/kanban-io/trello-client/pkg/trello"
)

// CustomFieldsClient implements trello.CustomFieldsClient. Field definitions
// hang off a board; values hang off cards. Unlike most of the API these
// endpoints take JSON bodies rather than query parameters.
type CustomFieldsClient struct {
	httpClient *http.Client
	validator  *ValidationService
}

// NewCustomFieldsClient creates a new custom fields client.
func NewCustomFieldsClient(httpClient *http.Client, validator *ValidationService) *CustomFieldsClient {
	return &CustomFieldsClient{httpClient: httpClient, validator: validator}
}

// ForBoard implements trello.CustomFieldsClient.ForBoard.
func (c *CustomFieldsClient) ForBoard(ctx context.Context, boardID string) ([]trello.CustomField, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/boards/%s/customFields", boardID), nil)
	if err != nil {
		return nil, fmt.Errorf("listing custom fields: %w", err)
	}

	var fields []trello.CustomField
	if err := decode(resp.Body, &fields, "custom fields"); err != nil {
		return nil, err
	}

	return fields, nil
}

// Create implements trello.CustomFieldsClient.Create. The target board is
// checked for existence before the definition is posted.
func (c *CustomFieldsClient) Create(ctx context.Context, request *trello.CreateCustomFieldRequest) (*trello.CustomField, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if err := c.validator.ResourceExists(ctx, trello.ResourceBoard, request.IDBoard); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.PostJSON(ctx, "/customFields", request.Body())
	if err != nil {
		return nil, fmt.Errorf("creating custom field: %w", err)
	}

	var field trello.CustomField
	if err := decode(resp.Body, &field, "custom field"); err != nil {
		return nil, err
	}

	return &field, nil
}

// Update implements trello.CustomFieldsClient.Update.
func (c *CustomFieldsClient) Update(ctx context.Context, fieldID string, request *trello.UpdateCustomFieldRequest) (*trello.CustomField, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if err := c.validator.ResourceExists(ctx, trello.ResourceCustomField, fieldID); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, fmt.Sprintf("/customFields/%s", fieldID), request.Values())
	if err != nil {
		return nil, fmt.Errorf("updating custom field: %w", err)
	}

	var field trello.CustomField
	if err := decode(resp.Body, &field, "custom field"); err != nil {
		return nil, err
	}

	return &field, nil
}

// Delete implements trello.CustomFieldsClient.Delete. Deleting a definition
// discards every card value it held.
func (c *CustomFieldsClient) Delete(ctx context.Context, fieldID string) error {
	if err := c.validator.ResourceExists(ctx, trello.ResourceCustomField, fieldID); err != nil {
		return err
	}

	_, err := c.httpClient.Delete(ctx, fmt.Sprintf("/customFields/%s", fieldID))
	if err != nil {
		return fmt.Errorf("deleting custom field: %w", err)
	}

	return nil
}

// ItemsForCard implements trello.CustomFieldsClient.ItemsForCard.
func (c *CustomFieldsClient) ItemsForCard(ctx context.Context, cardID string) ([]trello.CustomFieldItem, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/cards/%s/customFieldItems", cardID), nil)
	if err != nil {
		return nil, fmt.Errorf("listing custom field items: %w", err)
	}

	var items []trello.CustomFieldItem
	if err := decode(resp.Body, &items, "custom field items"); err != nil {
		return nil, err
	}

	return items, nil
}

// SetValue implements trello.CustomFieldsClient.SetValue. The card is
// checked for existence; the field ID is shape-checked only, since a stale
// field surfaces as a 404 from the write itself.
func (c *CustomFieldsClient) SetValue(ctx context.Context, cardID, fieldID string, request *trello.SetCustomFieldValueRequest) error {
	if err := request.Validate(); err != nil {
		return err
	}

	if err := trello.ValidateID(trello.ResourceCustomField, fieldID); err != nil {
		return err
	}

	if err := c.validator.ResourceExists(ctx, trello.ResourceCard, cardID); err != nil {
		return err
	}

	_, err := c.httpClient.PutJSON(ctx,
		fmt.Sprintf("/cards/%s/customField/%s/item", cardID, fieldID), request.Body())
	if err != nil {
		return fmt.Errorf("setting custom field value: %w", err)
	}

	return nil
}

// AddOption implements trello.CustomFieldsClient.AddOption. Only list-type
// fields carry options; adding one to another type fails server-side.
func (c *CustomFieldsClient) AddOption(ctx context.Context, fieldID string, request *trello.CustomFieldOptionRequest) (*trello.CustomFieldOption, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if err := c.validator.ResourceExists(ctx, trello.ResourceCustomField, fieldID); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.PostJSON(ctx, fmt.Sprintf("/customFields/%s/options", fieldID), request.Body())
	if err != nil {
		return nil, fmt.Errorf("adding custom field option: %w", err)
	}

	var option trello.CustomFieldOption
	if err := decode(resp.Body, &option, "custom field option"); err != nil {
		return nil, err
	}

	return &option, nil
}

// UpdateOption implements trello.CustomFieldsClient.UpdateOption.
func (c *CustomFieldsClient) UpdateOption(ctx context.Context, optionID string, request *trello.CustomFieldOptionRequest) (*trello.CustomFieldOption, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if err := trello.ValidateID(trello.ResourceCustomFieldOption, optionID); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.PutJSON(ctx, fmt.Sprintf("/customFieldOptions/%s", optionID), request.Body())
	if err != nil {
		return nil, fmt.Errorf("updating custom field option: %w", err)
	}

	var option trello.CustomFieldOption
	if err := decode(resp.Body, &option, "custom field option"); err != nil {
		return nil, err
	}

	return &option, nil
}

// DeleteOption implements trello.CustomFieldsClient.DeleteOption.
func (c *CustomFieldsClient) DeleteOption(ctx context.Context, optionID string) error {
	if err := trello.ValidateID(trello.ResourceCustomFieldOption, optionID); err != nil {
		return err
	}

	_, err := c.httpClient.Delete(ctx, fmt.Sprintf("/customFieldOptions/%s", optionID))
	if err != nil {
		return fmt.Errorf("deleting custom field option: %w", err)
	}

	return nil
}
