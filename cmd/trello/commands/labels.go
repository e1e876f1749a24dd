package commands

import (
	"fmt"

	"github.com/kanban-io/trello-client/pkg/trello"
	"github.com/spf13/cobra"
)

// NewLabelsCommand creates the labels command group.
func NewLabelsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "labels",
		Aliases: []string{"label"},
		Short:   "Manage labels",
		Long:    "Create, update, and delete board labels",
	}

	cmd.AddCommand(newLabelsCreateCommand())
	cmd.AddCommand(newLabelsUpdateCommand())
	cmd.AddCommand(newLabelsDeleteCommand())

	return cmd
}

func newLabelsCreateCommand() *cobra.Command {
	var (
		boardID string
		color   string
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a label on a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if boardID == "" {
				return ErrBoardIDRequired
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			request := &trello.CreateLabelRequest{Name: args[0], Color: color}

			label, err := client.Boards().CreateLabel(cmd.Context(), boardID, request)
			if err != nil {
				return err
			}

			fmt.Printf("Created label %s (%s)\n", label.Name, label.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&boardID, "board", "b", "", "board ID to create the label on")
	cmd.Flags().StringVar(&color, "color", "", "label color (red, orange, yellow, green, blue, purple, ...)")

	return cmd
}

func newLabelsUpdateCommand() *cobra.Command {
	var (
		name  string
		color string
	)

	cmd := &cobra.Command{
		Use:   "update LABEL_ID",
		Short: "Rename or recolor a label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			request := &trello.UpdateLabelRequest{Name: name, Color: color}

			label, err := client.Labels().Update(cmd.Context(), args[0], request)
			if err != nil {
				return err
			}

			fmt.Printf("Updated label %s (%s)\n", label.Name, label.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "new label name")
	cmd.Flags().StringVar(&color, "color", "", "new label color")

	return cmd
}

func newLabelsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete LABEL_ID",
		Short: "Delete a label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			if err := client.Labels().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Printf("Deleted label %s\n", args[0])

			return nil
		},
	}
}
