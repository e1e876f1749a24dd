package client

import (
	"context"
	"fmt"

	"github.com/kanban-io/trello-client/internal/http"
	"github.com/kanban-io/trello-client/pkg/trello"
)

// LabelsClient implements trello.LabelsClient. Label creation is scoped to a
// board and lives on BoardsClient.
type LabelsClient struct {
	httpClient *http.Client
	validator  *ValidationService
}

// NewLabelsClient creates a new labels client.
func NewLabelsClient(httpClient *http.Client, validator *ValidationService) *LabelsClient {
	return &LabelsClient{httpClient: httpClient, validator: validator}
}

// Update implements trello.LabelsClient.Update.
func (c *LabelsClient) Update(ctx context.Context, labelID string, request *trello.UpdateLabelRequest) (*trello.Label, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if err := c.validator.ResourceExists(ctx, trello.ResourceLabel, labelID); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, fmt.Sprintf("/labels/%s", labelID), request.Values())
	if err != nil {
		return nil, fmt.Errorf("updating label: %w", err)
	}

	var label trello.Label
	if err := decode(resp.Body, &label, "label"); err != nil {
		return nil, err
	}

	return &label, nil
}

// Delete implements trello.LabelsClient.Delete.
func (c *LabelsClient) Delete(ctx context.Context, labelID string) error {
	if err := c.validator.ResourceExists(ctx, trello.ResourceLabel, labelID); err != nil {
		return err
	}

	_, err := c.httpClient.Delete(ctx, fmt.Sprintf("/labels/%s", labelID))
	if err != nil {
		return fmt.Errorf("deleting label: %w", err)
	}

	return nil
}
