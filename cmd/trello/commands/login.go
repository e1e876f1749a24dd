package commands

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/kanban-io/trello-client/internal/constants"
	"github.com/kanban-io/trello-client/pkg/trello"
	"github.com/kanban-io/trello-client/pkg/trelloclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// credentialsFile is the on-disk shape of ~/.trello/config.yml.
type credentialsFile struct {
	APIKey  string `yaml:"api_key"`
	Token   string `yaml:"token"`
	BaseURL string `yaml:"base_url,omitempty"`
}

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		apiKey string
		token  string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store Trello API credentials",
		Long: `Store a Trello API key and member token in ~/.trello/config.yml.

The credentials are verified with a single read call before being saved.
Generate them at https://trello.com/power-ups/admin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)

			if apiKey == "" {
				fmt.Print("API key: ")
				line, _ := reader.ReadString('\n')
				apiKey = strings.TrimSpace(line)
			}

			if apiKey == "" {
				return trello.ErrCredentialsRequired
			}

			if token == "" {
				fmt.Print("Token (hidden): ")

				tokenBytes, err := term.ReadPassword(syscall.Stdin)

				fmt.Println()

				if err != nil {
					return fmt.Errorf("reading token: %w", err)
				}

				token = strings.TrimSpace(string(tokenBytes))
			}

			if token == "" {
				return trello.ErrCredentialsRequired
			}

			client, err := trelloclient.New(&trello.Config{
				APIKey:      apiKey,
				Token:       token,
				HTTPTimeout: constants.ShortHTTPTimeout,
			})
			if err != nil {
				return err
			}

			me, err := client.Members().Me(cmd.Context())
			if err != nil {
				return fmt.Errorf("verifying credentials: %w", err)
			}

			if err := saveCredentials(apiKey, token); err != nil {
				return err
			}

			fmt.Printf("Logged in as %s (%s)\n", me.Username, me.FullName)

			return nil
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "Trello API key")
	cmd.Flags().StringVar(&token, "token", "", "Trello member token")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := credentialsPath()
			if err != nil {
				return err
			}

			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("removing credentials: %w", err)
			}

			fmt.Println("Logged out")

			return nil
		},
	}
}

func credentialsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}

	return filepath.Join(home, ".trello", "config.yml"), nil
}

func saveCredentials(apiKey, token string) error {
	path, err := credentialsPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(&credentialsFile{
		APIKey:  apiKey,
		Token:   token,
		BaseURL: viper.GetString("base_url"),
	})
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}

	if err := os.WriteFile(path, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}

	return nil
}
