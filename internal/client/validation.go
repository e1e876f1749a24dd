package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/kanban-io/trello-client/internal/http"
	"github.com/kanban-io/trello-client/pkg/trello"
)

// ValidationService runs the pre-flight checks the operation layer consults
// before a mutating call: ID shape, resource existence, and permission.
// Checks run cheapest first and every outcome is computed fresh; a pass can
// still be stale by the time the write lands, in which case the write's own
// classified error is reported normally.
type ValidationService struct {
	httpClient *http.Client
}

// NewValidationService creates a validation service over the transport.
func NewValidationService(httpClient *http.Client) *ValidationService {
	return &ValidationService{httpClient: httpClient}
}

// ResourceExists verifies that a resource exists and is accessible, using a
// minimal read that requests only the ID field. A nil return is a pass.
func (v *ValidationService) ResourceExists(ctx context.Context, kind trello.ResourceKind, id string) error {
	if err := trello.ValidateID(kind, id); err != nil {
		return err
	}

	path := fmt.Sprintf("/%s/%s", kind.CollectionPath(), id)

	_, err := v.httpClient.Get(ctx, path, url.Values{"fields": []string{"id"}})
	if err != nil {
		return err
	}

	return nil
}

// HasPermission verifies the caller holds the required level on a resource.
// Admin checks read the board's membership list; member checks read the
// caller's membership record directly.
func (v *ValidationService) HasPermission(ctx context.Context, kind trello.ResourceKind, id string, level trello.PermissionRequirement) error {
	if err := trello.ValidateID(kind, id); err != nil {
		return err
	}

	switch level {
	case trello.PermissionAdmin:
		return v.checkAdmin(ctx, kind, id)
	case trello.PermissionMember:
		return v.checkMembership(ctx, kind, id)
	default:
		return trello.NewValidationError(fmt.Sprintf("unknown permission requirement %q", level))
	}
}

// checkAdmin reads the resource's memberships filtered to the caller and
// requires the admin role. A successful read without an admin entry is a
// role mismatch, reported as Forbidden naming the required level.
func (v *ValidationService) checkAdmin(ctx context.Context, kind trello.ResourceKind, id string) error {
	path := fmt.Sprintf("/%s/%s/memberships", kind.CollectionPath(), id)
	query := url.Values{
		"member":        []string{"true"},
		"member_fields": []string{"id"},
	}

	resp, err := v.httpClient.Get(ctx, path, query)
	if err != nil {
		return err
	}

	var memberships []trello.Membership
	if err := decode(resp.Body, &memberships, "memberships"); err != nil {
		return err
	}

	for _, membership := range memberships {
		if membership.MemberType == "admin" {
			return nil
		}
	}

	return trello.NewForbiddenError(string(kind), id, "modify (admin permission required)")
}

// checkMembership verifies the caller is a member of the resource. The API
// answers 404 for non-members, which here means the permission is missing,
// not that the resource is.
func (v *ValidationService) checkMembership(ctx context.Context, kind trello.ResourceKind, id string) error {
	path := fmt.Sprintf("/%s/%s/members/me", kind.CollectionPath(), id)

	_, err := v.httpClient.Get(ctx, path, url.Values{"fields": []string{"id"}})
	if err != nil {
		classified := &trello.Error{}
		if errors.As(err, &classified) && classified.Kind == trello.ErrorKindNotFound {
			return trello.NewForbiddenError(string(kind), id, "access (membership required for)")
		}

		return err
	}

	return nil
}
