package commands

import (
	"fmt"
	"os"

	"github.com/kanban-io/trello-client/pkg/trello"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewWorkspacesCommand creates the workspaces command group.
func NewWorkspacesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspaces",
		Aliases: []string{"workspace", "orgs"},
		Short:   "Manage workspaces",
		Long:    "List, create, update, and delete Trello workspaces (organizations)",
	}

	cmd.AddCommand(newWorkspacesListCommand())
	cmd.AddCommand(newWorkspacesGetCommand())
	cmd.AddCommand(newWorkspacesBoardsCommand())
	cmd.AddCommand(newWorkspacesCreateCommand())
	cmd.AddCommand(newWorkspacesDeleteCommand())
	cmd.AddCommand(newWorkspacesMembersCommand())

	return cmd
}

func newWorkspacesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your workspaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			workspaces, err := client.Workspaces().List(cmd.Context())
			if err != nil {
				return err
			}

			if done, err := structuredOutput(workspaces); done {
				return err
			}

			if len(workspaces) == 0 {
				fmt.Println("No workspaces found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Display Name", "ID", "Short Name", "URL")

			for _, workspace := range workspaces {
				_ = table.Append(workspace.DisplayName, workspace.ID, workspace.Name, workspace.URL)
			}

			_ = table.Render()

			return nil
		},
	}
}

func newWorkspacesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get WORKSPACE_ID",
		Short: "Show a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			workspace, err := client.Workspaces().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if done, err := structuredOutput(workspace); done {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Field", "Value")
			_ = table.Append("Display Name", workspace.DisplayName)
			_ = table.Append("ID", workspace.ID)
			_ = table.Append("Short Name", workspace.Name)
			_ = table.Append("Description", workspace.Desc)
			_ = table.Append("Website", workspace.Website)
			_ = table.Append("URL", workspace.URL)
			_ = table.Render()

			return nil
		},
	}
}

func newWorkspacesBoardsCommand() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "boards WORKSPACE_ID",
		Short: "List the boards in a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			boards, err := client.Workspaces().Boards(cmd.Context(), args[0], filter)
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
			table.Header("Name", "ID", "Closed", "URL")

			for _, board := range boards {
				_ = table.Append(board.Name, board.ID, yesNo(board.Closed), board.ShortURL)
			}

			_ = table.Render()

			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "board filter (all, open, closed, members, organization, public)")

	return cmd
}

func newWorkspacesCreateCommand() *cobra.Command {
	var (
		desc      string
		shortName string
		website   string
	)

	cmd := &cobra.Command{
		Use:   "create DISPLAY_NAME",
		Short: "Create a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			request := &trello.CreateWorkspaceRequest{
				DisplayName: args[0],
				Desc:        desc,
				Name:        shortName,
				Website:     website,
			}

			workspace, err := client.Workspaces().Create(cmd.Context(), request)
			if err != nil {
				return err
			}

			fmt.Printf("Created workspace %s (%s)\n", workspace.DisplayName, workspace.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&desc, "desc", "d", "", "workspace description")
	cmd.Flags().StringVar(&shortName, "short-name", "", "short name used in the workspace URL")
	cmd.Flags().StringVar(&website, "website", "", "workspace website URL")

	return cmd
}

func newWorkspacesDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete WORKSPACE_ID",
		Short: "Delete a workspace permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Printf("This permanently deletes workspace %s. Continue? (y/N): ", args[0])

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

			if err := client.Workspaces().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Printf("Deleted workspace %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}

func newWorkspacesMembersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "members WORKSPACE_ID",
		Short: "List workspace members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			members, err := client.Workspaces().Members(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if done, err := structuredOutput(members); done {
				return err
			}

			if len(members) == 0 {
				fmt.Println("No members found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Username", "ID", "Full Name")

			for _, member := range members {
				_ = table.Append(member.Username, member.ID, member.FullName)
			}

			_ = table.Render()

			return nil
		},
	}
}
