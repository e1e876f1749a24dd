package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/kanban-io/trello-client/pkg/trello"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewCardsCommand creates the cards command group.
func NewCardsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cards",
		Aliases: []string{"card"},
		Short:   "Manage cards",
		Long:    "List, create, update, move, delete, and comment on cards",
	}

	cmd.AddCommand(newCardsListCommand())
	cmd.AddCommand(newCardsGetCommand())
	cmd.AddCommand(newCardsCreateCommand())
	cmd.AddCommand(newCardsUpdateCommand())
	cmd.AddCommand(newCardsMoveCommand())
	cmd.AddCommand(newCardsDeleteCommand())
	cmd.AddCommand(newCardsCommentCommand())
	cmd.AddCommand(newCardsCommentsCommand())
	cmd.AddCommand(newCardsAttachCommand())

	return cmd
}

func newCardsListCommand() *cobra.Command {
	var boardID string

	cmd := &cobra.Command{
		Use:   "list [LIST_ID]",
		Short: "List cards in a list or on a board",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			var cards []trello.Card

			switch {
			case len(args) == 1:
				cards, err = client.Cards().ForList(cmd.Context(), args[0])
			case boardID != "":
				cards, err = client.Cards().ForBoard(cmd.Context(), boardID)
			default:
				return ErrListIDRequired
			}

			if err != nil {
				return err
			}

			if done, err := structuredOutput(cards); done {
				return err
			}

			if len(cards) == 0 {
				fmt.Println("No cards found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "ID", "List", "Due", "Labels")

			for _, card := range cards {
				names := make([]string, 0, len(card.Labels))
				for _, label := range card.Labels {
					names = append(names, label.Name)
				}

				_ = table.Append(card.Name, card.ID, card.IDList, card.Due, strings.Join(names, ", "))
			}

			_ = table.Render()

			return nil
		},
	}

	cmd.Flags().StringVarP(&boardID, "board", "b", "", "list every card on this board instead")

	return cmd
}

func newCardsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CARD_ID",
		Short: "Show a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			card, err := client.Cards().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if done, err := structuredOutput(card); done {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Field", "Value")
			_ = table.Append("Name", card.Name)
			_ = table.Append("ID", card.ID)
			_ = table.Append("Description", card.Desc)
			_ = table.Append("List", card.IDList)
			_ = table.Append("Board", card.IDBoard)
			_ = table.Append("Due", card.Due)
			_ = table.Append("Due complete", yesNo(card.DueDone))
			_ = table.Append("Closed", yesNo(card.Closed))
			_ = table.Append("URL", card.ShortURL)
			_ = table.Render()

			return nil
		},
	}
}

func newCardsCreateCommand() *cobra.Command {
	var (
		listID  string
		desc    string
		due     string
		members []string
		labels  []string
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a card in a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if listID == "" {
				return ErrListIDRequired
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			request := &trello.CreateCardRequest{
				Name:      args[0],
				Desc:      desc,
				IDList:    listID,
				Due:       due,
				IDMembers: members,
				IDLabels:  labels,
			}

			card, err := client.Cards().Create(cmd.Context(), request)
			if err != nil {
				return err
			}

			fmt.Printf("Created card %s (%s)\n", card.Name, card.ID)
			fmt.Println(card.ShortURL)

			return nil
		},
	}

	cmd.Flags().StringVarP(&listID, "list", "l", "", "list ID to create the card in")
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "card description")
	cmd.Flags().StringVar(&due, "due", "", "due date (ISO 8601)")
	cmd.Flags().StringSliceVar(&members, "member", nil, "member ID to assign (repeatable)")
	cmd.Flags().StringSliceVar(&labels, "label", nil, "label ID to apply (repeatable)")

	return cmd
}

func newCardsUpdateCommand() *cobra.Command {
	var (
		name        string
		desc        string
		due         string
		closed      bool
		dueComplete bool
	)

	cmd := &cobra.Command{
		Use:   "update CARD_ID",
		Short: "Update a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			request := &trello.UpdateCardRequest{
				Name: name,
				Desc: desc,
				Due:  due,
			}
			if cmd.Flags().Changed("closed") {
				request.Closed = &closed
			}

			if cmd.Flags().Changed("due-complete") {
				request.DueComplete = &dueComplete
			}

			card, err := client.Cards().Update(cmd.Context(), args[0], request)
			if err != nil {
				return err
			}

			fmt.Printf("Updated card %s (%s)\n", card.Name, card.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "new card name")
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "new card description")
	cmd.Flags().StringVar(&due, "due", "", "due date (ISO 8601)")
	cmd.Flags().BoolVar(&closed, "closed", false, "archive or unarchive the card")
	cmd.Flags().BoolVar(&dueComplete, "due-complete", false, "mark the due date complete")

	return cmd
}

func newCardsMoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move CARD_ID LIST_ID",
		Short: "Move a card to another list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			card, err := client.Cards().Move(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Printf("Moved card %s to list %s\n", card.Name, card.IDList)

			return nil
		},
	}
}

func newCardsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete CARD_ID",
		Short: "Delete a card permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Printf("This permanently deletes card %s. Continue? (y/N): ", args[0])

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

			if err := client.Cards().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Printf("Deleted card %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}

func newCardsCommentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "comment CARD_ID TEXT",
		Short: "Add a comment to a card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			request := &trello.CommentRequest{Text: args[1]}

			action, err := client.Comments().Add(cmd.Context(), args[0], request)
			if err != nil {
				return err
			}

			fmt.Printf("Added comment %s\n", action.ID)

			return nil
		},
	}
}

func newCardsCommentsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "comments CARD_ID",
		Short: "List the comments on a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			actions, err := client.Comments().CardActions(cmd.Context(), args[0], "commentCard", limit)
			if err != nil {
				return err
			}

			if done, err := structuredOutput(actions); done {
				return err
			}

			if len(actions) == 0 {
				fmt.Println("No comments found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Date", "Author", "Text")

			for _, action := range actions {
				author := action.IDMemberCreator
				if action.MemberCreator != nil {
					author = action.MemberCreator.Username
				}

				_ = table.Append(action.Date, author, action.CommentText())
			}

			_ = table.Render()

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of comments to show")

	return cmd
}

func newCardsAttachCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "attach CARD_ID URL",
		Short: "Attach a URL to a card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			request := &trello.AttachURLRequest{URL: args[1], Name: name}

			attachment, err := client.Attachments().AttachURL(cmd.Context(), args[0], request)
			if err != nil {
				return err
			}

			fmt.Printf("Attached %s (%s)\n", attachment.URL, attachment.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "display name for the attachment")

	return cmd
}
