package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/kanban-io/trello-client/internal/http"
	"github.com/kanban-io/trello-client/pkg/trello"
)

// WorkspacesClient implements trello.WorkspacesClient. Workspaces are called
// organizations on the wire.
type WorkspacesClient struct {
	httpClient *http.Client
	validator  *ValidationService
}

// NewWorkspacesClient creates a new workspaces client.
func NewWorkspacesClient(httpClient *http.Client, validator *ValidationService) *WorkspacesClient {
	return &WorkspacesClient{httpClient: httpClient, validator: validator}
}

// Get implements trello.WorkspacesClient.Get.
func (c *WorkspacesClient) Get(ctx context.Context, workspaceID string) (*trello.Workspace, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/organizations/%s", workspaceID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting workspace: %w", err)
	}

	var workspace trello.Workspace
	if err := decode(resp.Body, &workspace, "workspace"); err != nil {
		return nil, err
	}

	return &workspace, nil
}

// List implements trello.WorkspacesClient.List. It returns the workspaces of
// the member owning the configured token.
func (c *WorkspacesClient) List(ctx context.Context) ([]trello.Workspace, error) {
	resp, err := c.httpClient.Get(ctx, "/members/me/organizations", nil)
	if err != nil {
		return nil, fmt.Errorf("listing workspaces: %w", err)
	}

	var workspaces []trello.Workspace
	if err := decode(resp.Body, &workspaces, "workspaces"); err != nil {
		return nil, err
	}

	return workspaces, nil
}

// Boards implements trello.WorkspacesClient.Boards. An empty filter returns
// all boards.
func (c *WorkspacesClient) Boards(ctx context.Context, workspaceID, filter string) ([]trello.Board, error) {
	if filter != "" && !contains(trello.BoardFilters, filter) {
		return nil, trello.NewValidationError(fmt.Sprintf(
			"filter must be one of %v, got %q", trello.BoardFilters, filter))
	}

	var query url.Values
	if filter != "" {
		query = url.Values{"filter": []string{filter}}
	}

	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/organizations/%s/boards", workspaceID), query)
	if err != nil {
		return nil, fmt.Errorf("listing workspace boards: %w", err)
	}

	var boards []trello.Board
	if err := decode(resp.Body, &boards, "boards"); err != nil {
		return nil, err
	}

	return boards, nil
}

// Create implements trello.WorkspacesClient.Create.
func (c *WorkspacesClient) Create(ctx context.Context, request *trello.CreateWorkspaceRequest) (*trello.Workspace, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "/organizations", request.Values())
	if err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}

	var workspace trello.Workspace
	if err := decode(resp.Body, &workspace, "workspace"); err != nil {
		return nil, err
	}

	return &workspace, nil
}

// Update implements trello.WorkspacesClient.Update.
func (c *WorkspacesClient) Update(ctx context.Context, workspaceID string, request *trello.UpdateWorkspaceRequest) (*trello.Workspace, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if err := c.validator.ResourceExists(ctx, trello.ResourceWorkspace, workspaceID); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, fmt.Sprintf("/organizations/%s", workspaceID), request.Values())
	if err != nil {
		return nil, fmt.Errorf("updating workspace: %w", err)
	}

	var workspace trello.Workspace
	if err := decode(resp.Body, &workspace, "workspace"); err != nil {
		return nil, err
	}

	return &workspace, nil
}

// Delete implements trello.WorkspacesClient.Delete. Deletion is permanent,
// so both existence and membership are confirmed before the call.
func (c *WorkspacesClient) Delete(ctx context.Context, workspaceID string) error {
	if err := c.validator.ResourceExists(ctx, trello.ResourceWorkspace, workspaceID); err != nil {
		return err
	}

	if err := c.validator.HasPermission(ctx, trello.ResourceWorkspace, workspaceID, trello.PermissionMember); err != nil {
		return err
	}

	_, err := c.httpClient.Delete(ctx, fmt.Sprintf("/organizations/%s", workspaceID))
	if err != nil {
		return fmt.Errorf("deleting workspace: %w", err)
	}

	return nil
}

// Members implements trello.WorkspacesClient.Members.
func (c *WorkspacesClient) Members(ctx context.Context, workspaceID string) ([]trello.Member, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/organizations/%s/members", workspaceID), nil)
	if err != nil {
		return nil, fmt.Errorf("listing workspace members: %w", err)
	}

	var members []trello.Member
	if err := decode(resp.Body, &members, "members"); err != nil {
		return nil, err
	}

	return members, nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}

	return false
}
