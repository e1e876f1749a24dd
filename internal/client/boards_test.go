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

func TestBoardsGet(t *testing.T) {
	t.Parallel()

	stub := newAPIStub(t)
	stub.on(http.MethodGet, "/boards/"+boardID, http.StatusOK,
		fmt.Sprintf(`{"id": %q, "name": "Roadmap", "closed": false}`, boardID))

	cli := stub.newClient()

	board, err := cli.Boards().Get(context.Background(), boardID)
	require.NoError(t, err)
	assert.Equal(t, "Roadmap", board.Name)
	assert.Equal(t, boardID, board.ID)
}

func TestBoardsCreateValidatesShapeBeforeAnyCall(t *testing.T) {
	t.Parallel()

	stub := newAPIStub(t)
	cli := stub.newClient()

	_, err := cli.Boards().Create(context.Background(), &trello.CreateBoardRequest{})
	require.Error(t, err)
	assert.True(t, trello.IsValidation(err))
	assert.Empty(t, stub.seen(), "shape failures must not reach the network")
}

func TestBoardsCreateChecksWorkspaceBeforeWrite(t *testing.T) {
	t.Parallel()

	t.Run("missing workspace stops the create", func(t *testing.T) {
		t.Parallel()

		stub := newAPIStub(t)
		stub.on(http.MethodGet, "/organizations/"+workspaceID, http.StatusNotFound, "")

		cli := stub.newClient()

		_, err := cli.Boards().Create(context.Background(), &trello.CreateBoardRequest{
			Name:           "Roadmap",
			IDOrganization: workspaceID,
		})
		require.Error(t, err)
		assert.True(t, trello.IsNotFound(err))

		for _, seen := range stub.seen() {
			assert.NotEqual(t, "POST /boards", seen, "create must not be issued")
		}
	})

	t.Run("existing workspace with membership proceeds", func(t *testing.T) {
		t.Parallel()

		stub := newAPIStub(t)
		stub.on(http.MethodGet, "/organizations/"+workspaceID, http.StatusOK, fmt.Sprintf(`{"id": %q}`, workspaceID))
		stub.on(http.MethodGet, "/organizations/"+workspaceID+"/members/me", http.StatusOK, `{"id": "m1"}`)
		stub.on(http.MethodPost, "/boards", http.StatusOK,
			fmt.Sprintf(`{"id": %q, "name": "Roadmap", "idOrganization": %q}`, boardID, workspaceID))

		cli := stub.newClient()

		board, err := cli.Boards().Create(context.Background(), &trello.CreateBoardRequest{
			Name:           "Roadmap",
			IDOrganization: workspaceID,
		})
		require.NoError(t, err)
		assert.Equal(t, workspaceID, board.IDOrganization)
	})
}

func TestBoardsDeletePreflight(t *testing.T) {
	t.Parallel()

	t.Run("deletes after existence and admin checks pass", func(t *testing.T) {
		t.Parallel()

		stub := newAPIStub(t)
		stub.on(http.MethodGet, "/boards/"+boardID, http.StatusOK, fmt.Sprintf(`{"id": %q}`, boardID))
		stub.on(http.MethodGet, "/boards/"+boardID+"/memberships", http.StatusOK,
			`[{"id": "m1", "memberType": "admin"}]`)
		stub.on(http.MethodDelete, "/boards/"+boardID, http.StatusOK, `{}`)

		cli := stub.newClient()

		require.NoError(t, cli.Boards().Delete(context.Background(), boardID))
		assert.Equal(t, []string{
			"GET /boards/" + boardID,
			"GET /boards/" + boardID + "/memberships",
			"DELETE /boards/" + boardID,
		}, stub.seen())
	})

	t.Run("missing board stops before the permission check", func(t *testing.T) {
		t.Parallel()

		stub := newAPIStub(t)
		stub.on(http.MethodGet, "/boards/"+boardID, http.StatusNotFound, "")

		cli := stub.newClient()

		err := cli.Boards().Delete(context.Background(), boardID)
		require.Error(t, err)
		assert.True(t, trello.IsNotFound(err))
		assert.Equal(t, []string{"GET /boards/" + boardID}, stub.seen())
	})

	t.Run("non-admin caller is stopped before the delete", func(t *testing.T) {
		t.Parallel()

		stub := newAPIStub(t)
		stub.on(http.MethodGet, "/boards/"+boardID, http.StatusOK, fmt.Sprintf(`{"id": %q}`, boardID))
		stub.on(http.MethodGet, "/boards/"+boardID+"/memberships", http.StatusOK,
			`[{"id": "m1", "memberType": "normal"}]`)

		cli := stub.newClient()

		err := cli.Boards().Delete(context.Background(), boardID)
		require.Error(t, err)
		assert.True(t, trello.IsForbidden(err))

		for _, seen := range stub.seen() {
			assert.NotContains(t, seen, "DELETE", "delete must never be issued")
		}
	})
}

func TestBoardsList(t *testing.T) {
	t.Parallel()

	stub := newAPIStub(t)
	stub.on(http.MethodGet, "/members/me/boards", http.StatusOK,
		fmt.Sprintf(`[{"id": %q, "name": "One"}, {"id": %q, "name": "Two"}]`, boardID, listID))

	cli := stub.newClient()

	boards, err := cli.Boards().List(context.Background())
	require.NoError(t, err)
	require.Len(t, boards, 2)
	assert.Equal(t, "One", boards[0].Name)
}

func TestBoardsCreateLabel(t *testing.T) {
	t.Parallel()

	stub := newAPIStub(t)
	stub.on(http.MethodGet, "/boards/"+boardID, http.StatusOK, fmt.Sprintf(`{"id": %q}`, boardID))
	stub.on(http.MethodPost, "/boards/"+boardID+"/labels", http.StatusOK,
		`{"id": "662f0000000000000000ee11", "name": "bug", "color": "red"}`)

	cli := stub.newClient()

	label, err := cli.Boards().CreateLabel(context.Background(), boardID, &trello.CreateLabelRequest{
		Name:  "bug",
		Color: "red",
	})
	require.NoError(t, err)
	assert.Equal(t, "red", label.Color)
}
