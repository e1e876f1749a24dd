package trello

import (
	"context"
	"time"
)

// BoardsClient provides access to board operations.
type BoardsClient interface {
	Get(ctx context.Context, boardID string) (*Board, error)
	List(ctx context.Context) ([]Board, error)
	Create(ctx context.Context, request *CreateBoardRequest) (*Board, error)
	Update(ctx context.Context, boardID string, request *UpdateBoardRequest) (*Board, error)
	Delete(ctx context.Context, boardID string) error
	Labels(ctx context.Context, boardID string) ([]Label, error)
	CreateLabel(ctx context.Context, boardID string, request *CreateLabelRequest) (*Label, error)
	Memberships(ctx context.Context, boardID string) ([]Membership, error)
	Actions(ctx context.Context, boardID string, filter string, limit int) ([]Action, error)
}

// ListsClient provides access to list operations. Lists cannot be deleted;
// Archive closes them instead.
type ListsClient interface {
	Get(ctx context.Context, listID string) (*List, error)
	ForBoard(ctx context.Context, boardID string) ([]List, error)
	Create(ctx context.Context, request *CreateListRequest) (*List, error)
	Update(ctx context.Context, listID string, request *UpdateListRequest) (*List, error)
	Archive(ctx context.Context, listID string) (*List, error)
	Move(ctx context.Context, listID, boardID string) (*List, error)
}

// CardsClient provides access to card operations.
type CardsClient interface {
	Get(ctx context.Context, cardID string) (*Card, error)
	ForList(ctx context.Context, listID string) ([]Card, error)
	ForBoard(ctx context.Context, boardID string) ([]Card, error)
	Create(ctx context.Context, request *CreateCardRequest) (*Card, error)
	Update(ctx context.Context, cardID string, request *UpdateCardRequest) (*Card, error)
	Delete(ctx context.Context, cardID string) error
	Move(ctx context.Context, cardID, listID string) (*Card, error)
	Members(ctx context.Context, cardID string) ([]Member, error)
	AddMember(ctx context.Context, cardID, memberID string) ([]Member, error)
	RemoveMember(ctx context.Context, cardID, memberID string) error
	Labels(ctx context.Context, cardID string) ([]Label, error)
	AddLabel(ctx context.Context, cardID, labelID string) error
	RemoveLabel(ctx context.Context, cardID, labelID string) error
}

// ChecklistsClient provides access to checklist and check item operations.
type ChecklistsClient interface {
	Get(ctx context.Context, checklistID string) (*Checklist, error)
	ForCard(ctx context.Context, cardID string) ([]Checklist, error)
	Create(ctx context.Context, request *CreateChecklistRequest) (*Checklist, error)
	Update(ctx context.Context, checklistID string, name string) (*Checklist, error)
	Delete(ctx context.Context, checklistID string) error
	AddItem(ctx context.Context, checklistID string, request *CheckItemRequest) (*CheckItem, error)
	UpdateItem(ctx context.Context, cardID, itemID string, request *UpdateCheckItemRequest) (*CheckItem, error)
	DeleteItem(ctx context.Context, checklistID, itemID string) error
}

// WorkspacesClient provides access to workspace (organization) operations.
type WorkspacesClient interface {
	Get(ctx context.Context, workspaceID string) (*Workspace, error)
	List(ctx context.Context) ([]Workspace, error)
	Boards(ctx context.Context, workspaceID, filter string) ([]Board, error)
	Create(ctx context.Context, request *CreateWorkspaceRequest) (*Workspace, error)
	Update(ctx context.Context, workspaceID string, request *UpdateWorkspaceRequest) (*Workspace, error)
	Delete(ctx context.Context, workspaceID string) error
	Members(ctx context.Context, workspaceID string) ([]Member, error)
}

// MembersClient provides access to member operations. Me resolves the
// member owning the configured token.
type MembersClient interface {
	Get(ctx context.Context, memberID string) (*Member, error)
	Me(ctx context.Context) (*Member, error)
	ForBoard(ctx context.Context, boardID string) ([]Member, error)
	AddToBoard(ctx context.Context, boardID string, request *AddBoardMemberRequest) ([]Member, error)
	UpdateBoardRole(ctx context.Context, boardID, memberID, memberType string) error
	RemoveFromBoard(ctx context.Context, boardID, memberID string) error
}

// LabelsClient provides access to label operations not scoped to a board.
type LabelsClient interface {
	Update(ctx context.Context, labelID string, request *UpdateLabelRequest) (*Label, error)
	Delete(ctx context.Context, labelID string) error
}

// CommentsClient provides access to card comments and activity feeds.
type CommentsClient interface {
	ForCard(ctx context.Context, cardID string) ([]Action, error)
	Add(ctx context.Context, cardID string, request *CommentRequest) (*Action, error)
	Update(ctx context.Context, actionID string, request *CommentRequest) (*Action, error)
	Delete(ctx context.Context, actionID string) error
	CardActions(ctx context.Context, cardID, filter string, limit int) ([]Action, error)
}

// AttachmentsClient provides access to card attachments.
type AttachmentsClient interface {
	ForCard(ctx context.Context, cardID string) ([]Attachment, error)
	Get(ctx context.Context, cardID, attachmentID string) (*Attachment, error)
	AttachURL(ctx context.Context, cardID string, request *AttachURLRequest) (*Attachment, error)
	Delete(ctx context.Context, cardID, attachmentID string) error
	SetCover(ctx context.Context, cardID, attachmentID string) (*Card, error)
}

// CustomFieldsClient provides access to board custom field definitions and
// the per-card values they hold.
type CustomFieldsClient interface {
	ForBoard(ctx context.Context, boardID string) ([]CustomField, error)
	Create(ctx context.Context, request *CreateCustomFieldRequest) (*CustomField, error)
	Update(ctx context.Context, fieldID string, request *UpdateCustomFieldRequest) (*CustomField, error)
	Delete(ctx context.Context, fieldID string) error
	ItemsForCard(ctx context.Context, cardID string) ([]CustomFieldItem, error)
	SetValue(ctx context.Context, cardID, fieldID string, request *SetCustomFieldValueRequest) error
	AddOption(ctx context.Context, fieldID string, request *CustomFieldOptionRequest) (*CustomFieldOption, error)
	UpdateOption(ctx context.Context, optionID string, request *CustomFieldOptionRequest) (*CustomFieldOption, error)
	DeleteOption(ctx context.Context, optionID string) error
}

// WebhooksClient provides access to webhook operations.
type WebhooksClient interface {
	Get(ctx context.Context, webhookID string) (*Webhook, error)
	List(ctx context.Context) ([]Webhook, error)
	Create(ctx context.Context, request *CreateWebhookRequest) (*Webhook, error)
	Update(ctx context.Context, webhookID string, request *UpdateWebhookRequest) (*Webhook, error)
	Delete(ctx context.Context, webhookID string) error
}

// SearchClient provides access to the search endpoints.
type SearchClient interface {
	Search(ctx context.Context, request *SearchRequest) (*SearchResult, error)
	Members(ctx context.Context, query string, limit int) ([]Member, error)
}

// BatchClient fans a set of read URLs into a single batch request.
type BatchClient interface {
	Get(ctx context.Context, urls []string) ([]BatchResult, error)
}

// ExportClient assembles a full board snapshot from read calls.
type ExportClient interface {
	Board(ctx context.Context, boardID string) (*BoardExport, error)
}

// Validator exposes the pre-flight checks the operation layer runs before a
// mutating call. Outcomes are computed fresh per call; a pass does not
// guarantee the state still holds when the write lands.
type Validator interface {
	ResourceExists(ctx context.Context, kind ResourceKind, id string) error
	HasPermission(ctx context.Context, kind ResourceKind, id string, level PermissionRequirement) error
}

// PermissionRequirement is the access level HasPermission verifies.
type PermissionRequirement string

const (
	// PermissionMember requires the caller to be a member of the resource.
	PermissionMember PermissionRequirement = "member"

	// PermissionAdmin requires the caller to hold the admin role.
	PermissionAdmin PermissionRequirement = "admin"
)

// Client is the full Trello API surface.
type Client interface {
	Boards() BoardsClient
	Lists() ListsClient
	Cards() CardsClient
	Checklists() ChecklistsClient
	Workspaces() WorkspacesClient
	Members() MembersClient
	Labels() LabelsClient
	Comments() CommentsClient
	Attachments() AttachmentsClient
	CustomFields() CustomFieldsClient
	Webhooks() WebhooksClient
	Search() SearchClient
	Batch() BatchClient
	Export() ExportClient
	Validate() Validator
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config holds the immutable client configuration. It is read once at
// construction; nothing mutates it afterwards, so concurrent calls share it
// without synchronization. APIKey and Token are required and are never
// logged or embedded in error messages.
type Config struct {
	// APIKey is the Trello application key.
	APIKey string
	// Token is the member token authorizing the key.
	Token string

	// BaseURL defaults to "https://api.trello.com/1" when empty.
	BaseURL string

	// HTTPTimeout bounds each individual request. Defaults to 30s.
	HTTPTimeout time.Duration

	// RetryMax is the total number of attempts for retry-eligible calls,
	// including the first one. Defaults to 3. Only transient failures
	// (rate limit, network) are retried.
	RetryMax int
	// RetryWaitMin is the base backoff delay. Defaults to 1s.
	RetryWaitMin time.Duration
	// RetryWaitMax caps the computed backoff. Defaults to 30s.
	RetryWaitMax time.Duration
	// RetryJitterMax bounds the random jitter added to each backoff.
	// Defaults to 500ms.
	RetryJitterMax time.Duration

	// RequestsPerWindow, when positive, enables a local token bucket
	// admitting at most this many requests per 10-second window, ahead of
	// the wire. Trello enforces a fixed per-token quota on the same
	// window; the bucket reduces observed 429s but is optional.
	RequestsPerWindow int

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Metrics, when set, records every transport attempt per endpoint.
	Metrics *MetricsCollector

	// Debug enables request/response logging when a Logger is set.
	Debug bool
	// Logger receives structured log output. Credentials are redacted
	// before anything is logged.
	Logger Logger
}
