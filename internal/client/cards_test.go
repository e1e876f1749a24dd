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

func TestCardsCreateChecksListFirst(t *testing.T) {
	t.Parallel()

	t.Run("missing list stops the create", func(t *testing.T) {
		t.Parallel()

		stub := newAPIStub(t)
		stub.on(http.MethodGet, "/lists/"+listID, http.StatusNotFound, "")

		cli := stub.newClient()

		_, err := cli.Cards().Create(context.Background(), &trello.CreateCardRequest{
			Name:   "Fix login bug",
			IDList: listID,
		})
		require.Error(t, err)
		assert.True(t, trello.IsNotFound(err))
		assert.Equal(t, []string{"GET /lists/" + listID}, stub.seen())
	})

	t.Run("existing list proceeds to the write", func(t *testing.T) {
		t.Parallel()

		stub := newAPIStub(t)
		stub.on(http.MethodGet, "/lists/"+listID, http.StatusOK, fmt.Sprintf(`{"id": %q}`, listID))
		stub.on(http.MethodPost, "/cards", http.StatusOK,
			fmt.Sprintf(`{"id": %q, "name": "Fix login bug", "idList": %q}`, cardID, listID))

		cli := stub.newClient()

		card, err := cli.Cards().Create(context.Background(), &trello.CreateCardRequest{
			Name:   "Fix login bug",
			IDList: listID,
		})
		require.NoError(t, err)
		assert.Equal(t, listID, card.IDList)
	})
}

func TestCardsUpdateChecksDestinationList(t *testing.T) {
	t.Parallel()

	stub := newAPIStub(t)
	stub.on(http.MethodGet, "/cards/"+cardID, http.StatusOK, fmt.Sprintf(`{"id": %q}`, cardID))
	stub.on(http.MethodGet, "/lists/"+listID, http.StatusNotFound, "")

	cli := stub.newClient()

	_, err := cli.Cards().Update(context.Background(), cardID, &trello.UpdateCardRequest{IDList: listID})
	require.Error(t, err)
	assert.True(t, trello.IsNotFound(err))

	for _, seen := range stub.seen() {
		assert.NotContains(t, seen, "PUT", "update must not be issued")
	}
}

func TestCardsDelete(t *testing.T) {
	t.Parallel()

	stub := newAPIStub(t)
	stub.on(http.MethodGet, "/cards/"+cardID, http.StatusOK, fmt.Sprintf(`{"id": %q}`, cardID))
	stub.on(http.MethodDelete, "/cards/"+cardID, http.StatusOK, `{}`)

	cli := stub.newClient()

	require.NoError(t, cli.Cards().Delete(context.Background(), cardID))
	assert.Equal(t, []string{
		"GET /cards/" + cardID,
		"DELETE /cards/" + cardID,
	}, stub.seen())
}

func TestCardsMove(t *testing.T) {
	t.Parallel()

	stub := newAPIStub(t)
	stub.on(http.MethodGet, "/cards/"+cardID, http.StatusOK, fmt.Sprintf(`{"id": %q}`, cardID))
	stub.on(http.MethodGet, "/lists/"+listID, http.StatusOK, fmt.Sprintf(`{"id": %q}`, listID))
	stub.on(http.MethodPut, "/cards/"+cardID, http.StatusOK,
		fmt.Sprintf(`{"id": %q, "idList": %q}`, cardID, listID))

	cli := stub.newClient()

	card, err := cli.Cards().Move(context.Background(), cardID, listID)
	require.NoError(t, err)
	assert.Equal(t, listID, card.IDList)
}

func TestCommentsAddChecksCard(t *testing.T) {
	t.Parallel()

	t.Run("empty text fails before any call", func(t *testing.T) {
		t.Parallel()

		stub := newAPIStub(t)
		cli := stub.newClient()

		_, err := cli.Comments().Add(context.Background(), cardID, &trello.CommentRequest{})
		require.Error(t, err)
		assert.True(t, trello.IsValidation(err))
		assert.Empty(t, stub.seen())
	})

	t.Run("existing card gets the comment", func(t *testing.T) {
		t.Parallel()

		stub := newAPIStub(t)
		stub.on(http.MethodGet, "/cards/"+cardID, http.StatusOK, fmt.Sprintf(`{"id": %q}`, cardID))
		stub.on(http.MethodPost, "/cards/"+cardID+"/actions/comments", http.StatusOK,
			`{"id": "662f0000000000000000ff11", "type": "commentCard", "data": {"text": "looks good"}}`)

		cli := stub.newClient()

		action, err := cli.Comments().Add(context.Background(), cardID, &trello.CommentRequest{Text: "looks good"})
		require.NoError(t, err)
		assert.Equal(t, "looks good", action.CommentText())
	})
}
