package commands

import (
	"fmt"
	"os"

	"github.com/kanban-io/trello-client/pkg/trello"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewSearchCommand creates the search command group.
func NewSearchCommand() *cobra.Command {
	var (
		boards     []string
		workspaces []string
		types      []string
		partial    bool
	)

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search boards, cards, members, and workspaces",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			request := &trello.SearchRequest{
				Query:           args[0],
				IDBoards:        boards,
				IDOrganizations: workspaces,
				ModelTypes:      types,
				Partial:         partial,
			}

			result, err := client.Search().Search(cmd.Context(), request)
			if err != nil {
				return err
			}

			if done, err := structuredOutput(result); done {
				return err
			}

			renderSearchResult(result)

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&boards, "board", nil, "restrict to this board ID (repeatable)")
	cmd.Flags().StringSliceVar(&workspaces, "workspace", nil, "restrict to this workspace ID (repeatable)")
	cmd.Flags().StringSliceVar(&types, "type", nil, "model types to search (cards, boards, members, organizations)")
	cmd.Flags().BoolVar(&partial, "partial", false, "match partial words")

	cmd.AddCommand(newSearchMembersCommand())

	return cmd
}

func renderSearchResult(result *trello.SearchResult) {
	if len(result.Boards) > 0 {
		fmt.Println("Boards:")

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Name", "ID")

		for _, board := range result.Boards {
			_ = table.Append(board.Name, board.ID)
		}

		_ = table.Render()
	}

	if len(result.Cards) > 0 {
		fmt.Println("Cards:")

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Name", "ID", "Board")

		for _, card := range result.Cards {
			_ = table.Append(card.Name, card.ID, card.IDBoard)
		}

		_ = table.Render()
	}

	if len(result.Members) > 0 {
		fmt.Println("Members:")

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Username", "ID", "Full Name")

		for _, member := range result.Members {
			_ = table.Append(member.Username, member.ID, member.FullName)
		}

		_ = table.Render()
	}

	if len(result.Organizations) > 0 {
		fmt.Println("Workspaces:")

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Display Name", "ID")

		for _, workspace := range result.Organizations {
			_ = table.Append(workspace.DisplayName, workspace.ID)
		}

		_ = table.Render()
	}

	if len(result.Boards) == 0 && len(result.Cards) == 0 &&
		len(result.Members) == 0 && len(result.Organizations) == 0 {
		fmt.Println("No results found")
	}
}

func newSearchMembersCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "members QUERY",
		Short: "Search members by name or username",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			members, err := client.Search().Members(cmd.Context(), args[0], limit)
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

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of members to return")

	return cmd
}
