package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/kanban-io/trello-client/internal/http"
	"github.com/kanban-io/trello-client/pkg/trello"
)

// AttachmentsClient implements trello.AttachmentsClient. Only URL
// attachments are supported; file uploads need multipart bodies the API
// layer does not speak.
type AttachmentsClient struct {
	httpClient *http.Client
	validator  *ValidationService
}

// NewAttachmentsClient creates a new attachments client.
func NewAttachmentsClient(httpClient *http.Client, validator *ValidationService) *AttachmentsClient {
	return &AttachmentsClient{httpClient: httpClient, validator: validator}
}

// ForCard implements trello.AttachmentsClient.ForCard.
func (c *AttachmentsClient) ForCard(ctx context.Context, cardID string) ([]trello.Attachment, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/cards/%s/attachments", cardID), nil)
	if err != nil {
		return nil, fmt.Errorf("listing card attachments: %w", err)
	}

	var attachments []trello.Attachment
	if err := decode(resp.Body, &attachments, "attachments"); err != nil {
		return nil, err
	}

	return attachments, nil
}

// Get implements trello.AttachmentsClient.Get.
func (c *AttachmentsClient) Get(ctx context.Context, cardID, attachmentID string) (*trello.Attachment, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/cards/%s/attachments/%s", cardID, attachmentID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting attachment: %w", err)
	}

	var attachment trello.Attachment
	if err := decode(resp.Body, &attachment, "attachment"); err != nil {
		return nil, err
	}

	return &attachment, nil
}

// AttachURL implements trello.AttachmentsClient.AttachURL. The card must
// exist before the write is issued.
func (c *AttachmentsClient) AttachURL(ctx context.Context, cardID string, request *trello.AttachURLRequest) (*trello.Attachment, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if err := c.validator.ResourceExists(ctx, trello.ResourceCard, cardID); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, fmt.Sprintf("/cards/%s/attachments", cardID), request.Values())
	if err != nil {
		return nil, fmt.Errorf("attaching url: %w", err)
	}

	var attachment trello.Attachment
	if err := decode(resp.Body, &attachment, "attachment"); err != nil {
		return nil, err
	}

	return &attachment, nil
}

// Delete implements trello.AttachmentsClient.Delete.
func (c *AttachmentsClient) Delete(ctx context.Context, cardID, attachmentID string) error {
	if err := trello.ValidateID(trello.ResourceCard, cardID); err != nil {
		return err
	}

	_, err := c.httpClient.Delete(ctx, fmt.Sprintf("/cards/%s/attachments/%s", cardID, attachmentID))
	if err != nil {
		return fmt.Errorf("deleting attachment: %w", err)
	}

	return nil
}

// SetCover implements trello.AttachmentsClient.SetCover. Passing the
// attachment as idAttachmentCover makes it the card front image.
func (c *AttachmentsClient) SetCover(ctx context.Context, cardID, attachmentID string) (*trello.Card, error) {
	if err := c.validator.ResourceExists(ctx, trello.ResourceCard, cardID); err != nil {
		return nil, err
	}

	query := url.Values{"idAttachmentCover": []string{attachmentID}}

	resp, err := c.httpClient.Put(ctx, fmt.Sprintf("/cards/%s", cardID), query)
	if err != nil {
		return nil, fmt.Errorf("setting card cover: %w", err)
	}

	var card trello.Card
	if err := decode(resp.Body, &card, "card"); err != nil {
		return nil, err
	}

	return &card, nil
}
