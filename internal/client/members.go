package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/kanban-io/trello-client/internal/http"
	"github.com/kanban-io/trello-client/pkg/trello"
)

// MembersClient implements trello.MembersClient.
type MembersClient struct {
	httpClient *http.Client
	validator  *ValidationService
}

// NewMembersClient creates a new members client.
func NewMembersClient(httpClient *http.Client, validator *ValidationService) *MembersClient {
	return &MembersClient{httpClient: httpClient, validator: validator}
}

// Get implements trello.MembersClient.Get. memberID may be an ID or a
// username.
func (c *MembersClient) Get(ctx context.Context, memberID string) (*trello.Member, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/members/%s", memberID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting member: %w", err)
	}

	var member trello.Member
	if err := decode(resp.Body, &member, "member"); err != nil {
		return nil, err
	}

	return &member, nil
}

// Me implements trello.MembersClient.Me.
func (c *MembersClient) Me(ctx context.Context) (*trello.Member, error) {
	return c.Get(ctx, "me")
}

// ForBoard implements trello.MembersClient.ForBoard.
func (c *MembersClient) ForBoard(ctx context.Context, boardID string) ([]trello.Member, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/boards/%s/members", boardID), nil)
	if err != nil {
		return nil, fmt.Errorf("listing board members: %w", err)
	}

	var members []trello.Member
	if err := decode(resp.Body, &members, "members"); err != nil {
		return nil, err
	}

	return members, nil
}

// AddToBoard implements trello.MembersClient.AddToBoard. The caller must be
// an admin of the board to invite members.
func (c *MembersClient) AddToBoard(ctx context.Context, boardID string, request *trello.AddBoardMemberRequest) ([]trello.Member, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if err := c.validator.ResourceExists(ctx, trello.ResourceBoard, boardID); err != nil {
		return nil, err
	}

	if err := c.validator.HasPermission(ctx, trello.ResourceBoard, boardID, trello.PermissionAdmin); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, fmt.Sprintf("/boards/%s/members", boardID), request.Values())
	if err != nil {
		return nil, fmt.Errorf("adding board member: %w", err)
	}

	var members []trello.Member
	if err := decode(resp.Body, &members, "members"); err != nil {
		return nil, err
	}

	return members, nil
}

// UpdateBoardRole implements trello.MembersClient.UpdateBoardRole.
func (c *MembersClient) UpdateBoardRole(ctx context.Context, boardID, memberID, memberType string) error {
	if !contains(trello.MemberTypes, memberType) {
		return trello.NewValidationError(fmt.Sprintf(
			"type must be one of %v, got %q", trello.MemberTypes, memberType))
	}

	if err := trello.ValidateID(trello.ResourceMember, memberID); err != nil {
		return err
	}

	if err := c.validator.HasPermission(ctx, trello.ResourceBoard, boardID, trello.PermissionAdmin); err != nil {
		return err
	}

	query := url.Values{"type": []string{memberType}}

	_, err := c.httpClient.Put(ctx, fmt.Sprintf("/boards/%s/members/%s", boardID, memberID), query)
	if err != nil {
		return fmt.Errorf("updating board member role: %w", err)
	}

	return nil
}

// RemoveFromBoard implements trello.MembersClient.RemoveFromBoard.
func (c *MembersClient) RemoveFromBoard(ctx context.Context, boardID, memberID string) error {
	if err := trello.ValidateID(trello.ResourceMember, memberID); err != nil {
		return err
	}

	if err := c.validator.HasPermission(ctx, trello.ResourceBoard, boardID, trello.PermissionAdmin); err != nil {
		return err
	}

	_, err := c.httpClient.Delete(ctx, fmt.Sprintf("/boards/%s/members/%s", boardID, memberID))
	if err != nil {
		return fmt.Errorf("removing board member: %w", err)
	}

	return nil
}
