package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewBatchCommand creates the batch command.
func NewBatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "batch URL...",
		Short: "Issue up to ten read calls in one request",
		Long: `Issue up to ten GET requests in a single round trip. URLs are API
paths relative to the version root, for example /boards/<id> or
/members/me. Each entry succeeds or fails independently.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			results, err := client.Batch().Get(cmd.Context(), args)
			if err != nil {
				return err
			}

			if done, err := structuredOutput(results); done {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("URL", "Status", "Result")

			for i, result := range results {
				summary := fmt.Sprintf("%d bytes", len(result.Body))
				if result.Message != "" {
					summary = result.Message
				}

				_ = table.Append(args[i], fmt.Sprintf("%d", result.StatusCode), summary)
			}

			_ = table.Render()

			return nil
		},
	}
}
