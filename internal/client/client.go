// Package client implements the trello.Client interface over the transport
// in internal/http.
package client

import (
	"encoding/json"
	"fmt"

	"github.com/kanban-io/trello-client/internal/constants"
	"github.com/kanban-io/trello-client/internal/http"
	"github.com/kanban-io/trello-client/pkg/trello"
)

// Client implements the trello.Client interface.
type Client struct {
	httpClient *http.Client
	logger     trello.Logger

	boards       *BoardsClient
	lists        *ListsClient
	cards        *CardsClient
	checklists   *ChecklistsClient
	workspaces   *WorkspacesClient
	members      *MembersClient
	labels       *LabelsClient
	comments     *CommentsClient
	attachments  *AttachmentsClient
	customFields *CustomFieldsClient
	webhooks     *WebhooksClient
	search       *SearchClient
	batch        *BatchClient
	export       *ExportClient
	validator    *ValidationService
}

// New creates a concrete client from an immutable configuration. The
// credential check lives in trelloclient.New; this constructor assumes the
// pair is present.
func New(config *trello.Config) (*Client, error) {
	if config == nil {
		return nil, trello.ErrConfigRequired
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
	}

	httpOpts := buildHTTPOptions(config)
	httpClient := http.NewClient(baseURL, config.APIKey, config.Token, httpOpts...)

	client := &Client{
		httpClient: httpClient,
		logger:     config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// buildHTTPOptions translates client configuration into transport options.
func buildHTTPOptions(config *trello.Config) []http.Option {
	var opts []http.Option

	if config.Logger != nil {
		opts = append(opts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 || config.RetryWaitMin > 0 || config.RetryWaitMax > 0 {
		opts = append(opts, http.WithRetryPolicy(http.Policy{
			MaxAttempts: config.RetryMax,
			BaseDelay:   config.RetryWaitMin,
			MaxDelay:    config.RetryWaitMax,
			JitterMax:   config.RetryJitterMax,
		}))
	}

	if config.RequestsPerWindow > 0 {
		opts = append(opts, http.WithLimiter(trello.NewLimiter(config.RequestsPerWindow)))
	}

	if config.Metrics != nil {
		opts = append(opts, http.WithMetrics(config.Metrics))
	}

	return opts
}

func (c *Client) initializeResourceClients() {
	c.validator = NewValidationService(c.httpClient)
	c.boards = NewBoardsClient(c.httpClient, c.validator)
	c.lists = NewListsClient(c.httpClient, c.validator)
	c.cards = NewCardsClient(c.httpClient, c.validator)
	c.checklists = NewChecklistsClient(c.httpClient, c.validator)
	c.workspaces = NewWorkspacesClient(c.httpClient, c.validator)
	c.members = NewMembersClient(c.httpClient, c.validator)
	c.labels = NewLabelsClient(c.httpClient, c.validator)
	c.comments = NewCommentsClient(c.httpClient, c.validator)
	c.attachments = NewAttachmentsClient(c.httpClient, c.validator)
	c.customFields = NewCustomFieldsClient(c.httpClient, c.validator)
	c.webhooks = NewWebhooksClient(c.httpClient, c.validator)
	c.search = NewSearchClient(c.httpClient)
	c.batch = NewBatchClient(c.httpClient)
	c.export = NewExportClient(c.boards, c.lists, c.cards, c.checklists)
}

// Boards implements trello.Client.Boards.
func (c *Client) Boards() trello.BoardsClient { return c.boards }

// Lists implements trello.Client.Lists.
func (c *Client) Lists() trello.ListsClient { return c.lists }

// Cards implements trello.Client.Cards.
func (c *Client) Cards() trello.CardsClient { return c.cards }

// Checklists implements trello.Client.Checklists.
func (c *Client) Checklists() trello.ChecklistsClient { return c.checklists }

// Workspaces implements trello.Client.Workspaces.
func (c *Client) Workspaces() trello.WorkspacesClient { return c.workspaces }

// Members implements trello.Client.Members.
func (c *Client) Members() trello.MembersClient { return c.members }

// Labels implements trello.Client.Labels.
func (c *Client) Labels() trello.LabelsClient { return c.labels }

// Comments implements trello.Client.Comments.
func (c *Client) Comments() trello.CommentsClient { return c.comments }

// Attachments implements trello.Client.Attachments.
func (c *Client) Attachments() trello.AttachmentsClient { return c.attachments }

// CustomFields implements trello.Client.CustomFields.
func (c *Client) CustomFields() trello.CustomFieldsClient { return c.customFields }

// Webhooks implements trello.Client.Webhooks.
func (c *Client) Webhooks() trello.WebhooksClient { return c.webhooks }

// Search implements trello.Client.Search.
func (c *Client) Search() trello.SearchClient { return c.search }

// Batch implements trello.Client.Batch.
func (c *Client) Batch() trello.BatchClient { return c.batch }

// Export implements trello.Client.Export.
func (c *Client) Export() trello.ExportClient { return c.export }

// Validate implements trello.Client.Validate.
func (c *Client) Validate() trello.Validator { return c.validator }

// decode unmarshals a response body, wrapping parse failures with the
// operation name.
func decode(body []byte, out any, operation string) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing %s response: %w", operation, err)
	}

	return nil
}
