package client_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/kanban-io/trello-client/pkg/trello"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspacesCreateValidatesBeforeAnyCall(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		request *trello.CreateWorkspaceRequest
	}{
		{name: "empty display name", request: &trello.CreateWorkspaceRequest{}},
		{name: "bad short name", request: &trello.CreateWorkspaceRequest{
			DisplayName: "Engineering",
			Name:        "Eng Team",
		}},
		{name: "bad website", request: &trello.CreateWorkspaceRequest{
			DisplayName: "Engineering",
			Website:     "ftp://example.com",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stub := newAPIStub(t)
			cli := stub.newClient()

			_, err := cli.Workspaces().Create(context.Background(), tt.request)
			require.Error(t, err)
			assert.True(t, trello.IsValidation(err))
			assert.Empty(t, stub.seen(), "shape failures must not reach the network")
		})
	}
}

func TestWorkspacesCreate(t *testing.T) {
	t.Parallel()

	stub := newAPIStub(t)
	stub.on(http.MethodPost, "/organizations", http.StatusOK,
		fmt.Sprintf(`{"id": %q, "displayName": "Engineering", "name": "eng_team"}`, workspaceID))

	cli := stub.newClient()

	workspace, err := cli.Workspaces().Create(context.Background(), &trello.CreateWorkspaceRequest{
		DisplayName: "Engineering",
		Name:        "eng_team",
	})
	require.NoError(t, err)
	assert.Equal(t, workspaceID, workspace.ID)
	assert.Equal(t, []string{"POST /organizations"}, stub.seen())
}

func TestWorkspacesBoardsRejectsUnknownFilter(t *testing.T) {
	t.Parallel()

	stub := newAPIStub(t)
	cli := stub.newClient()

	_, err := cli.Workspaces().Boards(context.Background(), workspaceID, "archived")
	require.Error(t, err)
	assert.True(t, trello.IsValidation(err))
	assert.Empty(t, stub.seen())
}

func TestWorkspacesDeletePreflight(t *testing.T) {
	t.Parallel()

	stub := newAPIStub(t)
	stub.on(http.MethodGet, "/organizations/"+workspaceID, http.StatusOK,
		fmt.Sprintf(`{"id": %q}`, workspaceID))
	stub.on(http.MethodGet, "/organizations/"+workspaceID+"/members/me", http.StatusOK,
		`{"id": "662f0000000000000000ee99"}`)
	stub.on(http.MethodDelete, "/organizations/"+workspaceID, http.StatusOK, `{}`)

	cli := stub.newClient()

	require.NoError(t, cli.Workspaces().Delete(context.Background(), workspaceID))
	assert.Equal(t, []string{
		"GET /organizations/" + workspaceID,
		"GET /organizations/" + workspaceID + "/members/me",
		"DELETE /organizations/" + workspaceID,
	}, stub.seen())
}
