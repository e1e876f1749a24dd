package client

import (
	"context"
	"fmt"

	"github.com/kanban-io/trello-client/internal/http"
	"github.com/kanban-io/trello-client/pkg/trello"
)

// WebhooksClient implements trello.WebhooksClient.
type WebhooksClient struct {
	httpClient *http.Client
	validator  *ValidationService
}

// NewWebhooksClient creates a new webhooks client.
func NewWebhooksClient(httpClient *http.Client, validator *ValidationService) *WebhooksClient {
	return &WebhooksClient{httpClient: httpClient, validator: validator}
}

// Get implements trello.WebhooksClient.Get.
func (c *WebhooksClient) Get(ctx context.Context, webhookID string) (*trello.Webhook, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/webhooks/%s", webhookID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting webhook: %w", err)
	}

	var webhook trello.Webhook
	if err := decode(resp.Body, &webhook, "webhook"); err != nil {
		return nil, err
	}

	return &webhook, nil
}

// List implements trello.WebhooksClient.List. Webhooks are scoped to the
// token that registered them.
func (c *WebhooksClient) List(ctx context.Context) ([]trello.Webhook, error) {
	resp, err := c.httpClient.Get(ctx, "/tokens/me/webhooks", nil)
	if err != nil {
		return nil, fmt.Errorf("listing webhooks: %w", err)
	}

	var webhooks []trello.Webhook
	if err := decode(resp.Body, &webhooks, "webhooks"); err != nil {
		return nil, err
	}

	return webhooks, nil
}

// Create implements trello.WebhooksClient.Create. The watched model is
// checked for existence as a board, the usual target; the callback URL must
// answer a HEAD probe from the API or the create fails server-side.
func (c *WebhooksClient) Create(ctx context.Context, request *trello.CreateWebhookRequest) (*trello.Webhook, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if err := c.validator.ResourceExists(ctx, trello.ResourceBoard, request.IDModel); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "/webhooks", request.Values())
	if err != nil {
		return nil, fmt.Errorf("creating webhook: %w", err)
	}

	var webhook trello.Webhook
	if err := decode(resp.Body, &webhook, "webhook"); err != nil {
		return nil, err
	}

	return &webhook, nil
}

// Update implements trello.WebhooksClient.Update.
func (c *WebhooksClient) Update(ctx context.Context, webhookID string, request *trello.UpdateWebhookRequest) (*trello.Webhook, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if err := c.validator.ResourceExists(ctx, trello.ResourceWebhook, webhookID); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, fmt.Sprintf("/webhooks/%s", webhookID), request.Values())
	if err != nil {
		return nil, fmt.Errorf("updating webhook: %w", err)
	}

	var webhook trello.Webhook
	if err := decode(resp.Body, &webhook, "webhook"); err != nil {
		return nil, err
	}

	return &webhook, nil
}

// Delete implements trello.WebhooksClient.Delete.
func (c *WebhooksClient) Delete(ctx context.Context, webhookID string) error {
	if err := c.validator.ResourceExists(ctx, trello.ResourceWebhook, webhookID); err != nil {
		return err
	}

	_, err := c.httpClient.Delete(ctx, fmt.Sprintf("/webhooks/%s", webhookID))
	if err != nil {
		return fmt.Errorf("deleting webhook: %w", err)
	}

	return nil
}
