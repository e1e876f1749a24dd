package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/kanban-io/trello-client/pkg/trello"
	"github.com/nats-io/nats.go"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewWebhooksCommand creates the webhooks command group.
func NewWebhooksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "webhooks",
		Aliases: []string{"webhook"},
		Short:   "Manage webhooks",
		Long:    "List, create, and delete webhooks, and relay callback events",
	}

	cmd.AddCommand(newWebhooksListCommand())
	cmd.AddCommand(newWebhooksCreateCommand())
	cmd.AddCommand(newWebhooksDeleteCommand())
	cmd.AddCommand(newWebhooksRelayCommand())

	return cmd
}

func newWebhooksListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the webhooks registered by your token",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			webhooks, err := client.Webhooks().List(cmd.Context())
			if err != nil {
				return err
			}

			if done, err := structuredOutput(webhooks); done {
				return err
			}

			if len(webhooks) == 0 {
				fmt.Println("No webhooks found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Model", "Callback URL", "Active", "Description")

			for _, webhook := range webhooks {
				_ = table.Append(webhook.ID, webhook.IDModel, webhook.CallbackURL,
					yesNo(webhook.Active), webhook.Description)
			}

			_ = table.Render()

			return nil
		},
	}
}

func newWebhooksCreateCommand() *cobra.Command {
	var (
		callback    string
		modelID     string
		description string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a webhook against a model",
		RunE: func(cmd *cobra.Command, args []string) error {
			if callback == "" {
				return ErrCallbackRequired
			}

			if modelID == "" {
				return ErrModelIDRequired
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			request := &trello.CreateWebhookRequest{
				CallbackURL: callback,
				IDModel:     modelID,
				Description: description,
			}

			webhook, err := client.Webhooks().Create(cmd.Context(), request)
			if err != nil {
				return err
			}

			fmt.Printf("Created webhook %s for model %s\n", webhook.ID, webhook.IDModel)

			return nil
		},
	}

	cmd.Flags().StringVar(&callback, "callback", "", "callback URL the API will POST events to")
	cmd.Flags().StringVarP(&modelID, "model", "m", "", "board ID to watch")
	cmd.Flags().StringVarP(&description, "description", "d", "", "webhook description")

	return cmd
}

func newWebhooksDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete WEBHOOK_ID",
		Short: "Delete a webhook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			if err := client.Webhooks().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Printf("Deleted webhook %s\n", args[0])

			return nil
		},
	}
}

func newWebhooksRelayCommand() *cobra.Command {
	var (
		listen   string
		natsURL  string
		subject  string
		forward  string
		retryMax int
	)

	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Receive webhook callbacks and relay them",
		Long: `Run a local HTTP endpoint that answers the API's HEAD verification
probe and receives callback POSTs. Each event is published to a NATS
subject and can additionally be forwarded to another HTTP endpoint with
retries.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen == "" {
				return ErrRelayBindRequired
			}

			if natsURL == "" {
				return ErrNatsURLRequired
			}

			conn, err := nats.Connect(natsURL, nats.Name("trello-webhook-relay"))
			if err != nil {
				return fmt.Errorf("connecting to NATS: %w", err)
			}
			defer conn.Close()

			var forwarder *retryablehttp.Client
			if forward != "" {
				forwarder = retryablehttp.NewClient()
				forwarder.RetryMax = retryMax
				forwarder.Logger = nil
			}

			relay := &webhookRelay{
				conn:      conn,
				subject:   subject,
				forward:   forward,
				forwarder: forwarder,
			}

			server := &http.Server{
				Addr:              listen,
				Handler:           relay,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.ListenAndServe()
			}()

			fmt.Printf("Relaying webhook events from %s to NATS subject %q\n", listen, subject)

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("relay server: %w", err)
				}
			case <-stop:
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				_ = server.Shutdown(shutdownCtx)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&listen, "listen", ":8085", "address to listen on for callbacks")
	cmd.Flags().StringVar(&natsURL, "nats", nats.DefaultURL, "NATS server URL")
	cmd.Flags().StringVar(&subject, "subject", "trello.webhooks", "NATS subject to publish events to")
	cmd.Flags().StringVar(&forward, "forward", "", "also forward events to this HTTP endpoint")
	cmd.Flags().IntVar(&retryMax, "forward-retries", 3, "retry attempts for forwarded events")

	return cmd
}

// webhookRelay answers the API's verification probe and fans callback events
// out to NATS and the optional forward endpoint.
type webhookRelay struct {
	conn      *nats.Conn
	subject   string
	forward   string
	forwarder *retryablehttp.Client
}

func (r *webhookRelay) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// The API probes the callback URL with HEAD (and sometimes GET) when a
	// webhook is created; a 200 confirms the endpoint.
	if req.Method == http.MethodHead || req.Method == http.MethodGet {
		w.WriteHeader(http.StatusOK)

		return
	}

	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)

		return
	}

	body, err := io.ReadAll(io.LimitReader(req.Body, 1<<20))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)

		return
	}

	if err := r.conn.Publish(r.subject, body); err != nil {
		fmt.Fprintf(os.Stderr, "publishing event: %v\n", err)
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	if r.forwarder != nil {
		fwdReq, err := retryablehttp.NewRequestWithContext(req.Context(),
			http.MethodPost, r.forward, bytes.NewReader(body))
		if err == nil {
			fwdReq.Header.Set("Content-Type", "application/json")

			if resp, err := r.forwarder.Do(fwdReq); err != nil {
				fmt.Fprintf(os.Stderr, "forwarding event: %v\n", err)
			} else {
				_ = resp.Body.Close()
			}
		}
	}

	w.WriteHeader(http.StatusOK)
}
