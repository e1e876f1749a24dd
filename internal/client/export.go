package client

import (
	"context"
	"fmt"
	"time"

	"github.com/kanban-io/trello-client/pkg/trello"
)

// ExportClient implements trello.ExportClient. There is no server-side
// export endpoint; the snapshot is assembled from read calls, so it is not
// atomic and concurrent edits can show in different sections.
type ExportClient struct {
	boards     trello.BoardsClient
	lists      trello.ListsClient
	cards      trello.CardsClient
	checklists trello.ChecklistsClient
}

// NewExportClient creates a new export client on top of the read clients.
func NewExportClient(boards trello.BoardsClient, lists trello.ListsClient, cards trello.CardsClient, checklists trello.ChecklistsClient) *ExportClient {
	return &ExportClient{boards: boards, lists: lists, cards: cards, checklists: checklists}
}

// Board implements trello.ExportClient.Board. The board read runs first so a
// missing board fails fast with a single call.
func (c *ExportClient) Board(ctx context.Context, boardID string) (*trello.BoardExport, error) {
	board, err := c.boards.Get(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("exporting board: %w", err)
	}

	lists, err := c.lists.ForBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("exporting board lists: %w", err)
	}

	cards, err := c.cards.ForBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("exporting board cards: %w", err)
	}

	export := &trello.BoardExport{
		Board:      board,
		Lists:      lists,
		Cards:      cards,
		Checklists: []trello.Checklist{},
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}

	for _, card := range cards {
		checklists, err := c.checklists.ForCard(ctx, card.ID)
		if err != nil {
			return nil, fmt.Errorf("exporting card checklists: %w", err)
		}

		export.Checklists = append(export.Checklists, checklists...)
	}

	actions, err := c.boards.Actions(ctx, boardID, "", 0)
	if err != nil {
		return nil, fmt.Errorf("exporting board actions: %w", err)
	}

	export.Actions = actions

	return export, nil
}
