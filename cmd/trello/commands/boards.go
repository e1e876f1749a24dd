package commands

import (
	"fmt"
	"os"

	"github.com/kanban-io/trello-client/pkg/trello"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewBoardsCommand creates the boards command group.
func NewBoardsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "boards",
		Aliases: []string{"board"},
		Short:   "Manage boards",
		Long:    "List, create, update, delete, and export Trello boards",
	}

	cmd.AddCommand(newBoardsListCommand())
	cmd.AddCommand(newBoardsGetCommand())
	cmd.AddCommand(newBoardsCreateCommand())
	cmd.AddCommand(newBoardsUpdateCommand())
	cmd.AddCommand(newBoardsDeleteCommand())
	cmd.AddCommand(newBoardsLabelsCommand())
	cmd.AddCommand(newBoardsMembersCommand())
	cmd.AddCommand(newBoardsExportCommand())

	return cmd
}

func newBoardsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your boards",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			boards, err := client.Boards().List(cmd.Context())
			if err != nil {
				return err
			}

			if done, err := structuredOutput(boards); done {
				return err
			}

			if len(boards) == 0 {
				fmt.Println("No boards found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "ID", "Closed", "Workspace", "URL")

			for _, board := range boards {
				_ = table.Append(board.Name, board.ID, yesNo(board.Closed), board.IDOrganization, board.ShortURL)
			}

			_ = table.Render()

			return nil
		},
	}
}

func newBoardsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get BOARD_ID",
		Short: "Show a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			board, err := client.Boards().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if done, err := structuredOutput(board); done {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Field", "Value")
			_ = table.Append("Name", board.Name)
			_ = table.Append("ID", board.ID)
			_ = table.Append("Description", board.Desc)
			_ = table.Append("Closed", yesNo(board.Closed))
			_ = table.Append("Workspace", board.IDOrganization)
			_ = table.Append("URL", board.URL)

			if board.Prefs != nil {
				_ = table.Append("Permission Level", board.Prefs.PermissionLevel)
			}

			_ = table.Render()

			return nil
		},
	}
}

func newBoardsCreateCommand() *cobra.Command {
	var (
		desc         string
		workspace    string
		permission   string
		defaultLists bool
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			request := &trello.CreateBoardRequest{
				Name:            args[0],
				Desc:            desc,
				IDOrganization:  workspace,
				PermissionLevel: permission,
				DefaultLists:    &defaultLists,
			}

			board, err := client.Boards().Create(cmd.Context(), request)
			if err != nil {
				return err
			}

			fmt.Printf("Created board %s (%s)\n", board.Name, board.ID)
			fmt.Println(board.URL)

			return nil
		},
	}

	cmd.Flags().StringVarP(&desc, "desc", "d", "", "board description")
	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "workspace ID to create the board in")
	cmd.Flags().StringVar(&permission, "permission", "", "permission level (private, org, public)")
	cmd.Flags().BoolVar(&defaultLists, "default-lists", false, "create the To Do / Doing / Done lists")

	return cmd
}

func newBoardsUpdateCommand() *cobra.Command {
	var (
		name       string
		desc       string
		permission string
		closed     bool
	)

	cmd := &cobra.Command{
		Use:   "update BOARD_ID",
		Short: "Update a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			request := &trello.UpdateBoardRequest{
				Name:            name,
				Desc:            desc,
				PermissionLevel: permission,
			}
			if cmd.Flags().Changed("closed") {
				request.Closed = &closed
			}

			board, err := client.Boards().Update(cmd.Context(), args[0], request)
			if err != nil {
				return err
			}

			fmt.Printf("Updated board %s (%s)\n", board.Name, board.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "new board name")
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "new board description")
	cmd.Flags().StringVar(&permission, "permission", "", "permission level (private, org, public)")
	cmd.Flags().BoolVar(&closed, "closed", false, "close or reopen the board")

	return cmd
}

func newBoardsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete BOARD_ID",
		Short: "Delete a board permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Printf("This permanently deletes board %s. Continue? (y/N): ", args[0])

				var response string

				_, _ = fmt.Scanln(&response)

				if response != "y" && response != "Y" {
					fmt.Println("Cancelled")

					return nil
				}
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			if err := client.Boards().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Printf("Deleted board %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}

func newBoardsLabelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "labels BOARD_ID",
		Short: "List board labels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			labels, err := client.Boards().Labels(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if done, err := structuredOutput(labels); done {
				return err
			}

			if len(labels) == 0 {
				fmt.Println("No labels found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "ID", "Color")

			for _, label := range labels {
				_ = table.Append(label.Name, label.ID, label.Color)
			}

			_ = table.Render()

			return nil
		},
	}
}

func newBoardsMembersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "members BOARD_ID",
		Short: "List board memberships",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			memberships, err := client.Boards().Memberships(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if done, err := structuredOutput(memberships); done {
				return err
			}

			if len(memberships) == 0 {
				fmt.Println("No memberships found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Member ID", "Role", "Confirmed")

			for _, membership := range memberships {
				_ = table.Append(membership.IDMember, membership.MemberType, yesNo(!membership.Unconfirmed))
			}

			_ = table.Render()

			return nil
		},
	}
}

func newBoardsExportCommand() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export BOARD_ID",
		Short: "Export a board snapshot as JSON",
		Long: `Assemble a board snapshot (board, lists, cards, checklists, activity)
from read calls and write it as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			export, err := client.Export().Board(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if outFile == "" {
				return renderJSON(export)
			}

			file, err := os.Create(outFile)
			if err != nil {
				return fmt.Errorf("creating export file: %w", err)
			}
			defer file.Close()

			encoder := jsonEncoder(file)
			if err := encoder.Encode(export); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}

			fmt.Printf("Exported board %s to %s\n", args[0], outFile)

			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "out", "o", "", "write the export to a file instead of stdout")

	return cmd
}
