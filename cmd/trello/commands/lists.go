package commands

import (
	"fmt"
	"os"

	"github.com/kanban-io/trello-client/pkg/trello"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewListsCommand creates the lists command group.
func NewListsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lists",
		Aliases: []string{"list"},
		Short:   "Manage lists",
		Long:    "List, create, rename, archive, and move board lists",
	}

	cmd.AddCommand(newListsListCommand())
	cmd.AddCommand(newListsCreateCommand())
	cmd.AddCommand(newListsRenameCommand())
	cmd.AddCommand(newListsArchiveCommand())
	cmd.AddCommand(newListsMoveCommand())

	return cmd
}

func newListsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list BOARD_ID",
		Short: "List the lists on a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			lists, err := client.Lists().ForBoard(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if done, err := structuredOutput(lists); done {
				return err
			}

			if len(lists) == 0 {
				fmt.Println("No lists found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "ID", "Closed", "Position")

			for _, list := range lists {
				_ = table.Append(list.Name, list.ID, yesNo(list.Closed), fmt.Sprintf("%.0f", list.Pos))
			}

			_ = table.Render()

			return nil
		},
	}
}

func newListsCreateCommand() *cobra.Command {
	var (
		boardID string
		pos     string
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a list on a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if boardID == "" {
				return ErrBoardIDRequired
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			request := &trello.CreateListRequest{
				Name:    args[0],
				IDBoard: boardID,
				Pos:     pos,
			}

			list, err := client.Lists().Create(cmd.Context(), request)
			if err != nil {
				return err
			}

			fmt.Printf("Created list %s (%s)\n", list.Name, list.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&boardID, "board", "b", "", "board ID to create the list on")
	cmd.Flags().StringVar(&pos, "pos", "", "position (top, bottom, or a number)")

	return cmd
}

func newListsRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename LIST_ID NAME",
		Short: "Rename a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			request := &trello.UpdateListRequest{Name: args[1]}

			list, err := client.Lists().Update(cmd.Context(), args[0], request)
			if err != nil {
				return err
			}

			fmt.Printf("Renamed list to %s\n", list.Name)

			return nil
		},
	}
}

func newListsArchiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "archive LIST_ID",
		Short: "Archive a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			list, err := client.Lists().Archive(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Archived list %s (%s)\n", list.Name, list.ID)

			return nil
		},
	}
}

func newListsMoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move LIST_ID BOARD_ID",
		Short: "Move a list to another board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			list, err := client.Lists().Move(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Printf("Moved list %s to board %s\n", list.Name, list.IDBoard)

			return nil
		},
	}
}
