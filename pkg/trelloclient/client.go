// Package trelloclient provides the main entry point for creating Trello API clients
package trelloclient

import (
	"fmt"
	"strings"

	"github.com/kanban-io/trello-client/internal/client"
	"github.com/kanban-io/trello-client/internal/constants"
	"github.com/kanban-io/trello-client/pkg/trello"
)

// New creates a new Trello API client. Both APIKey and Token are required;
// construction fails before any network call when either is missing.
func New(config *trello.Config) (trello.Client, error) {
	if config == nil {
		return nil, trello.ErrConfigRequired
	}

	if config.APIKey == "" || config.Token == "" {
		return nil, trello.ErrCredentialsRequired
	}

	config.BaseURL = normalizeBaseURL(config.BaseURL)

	client, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return client, nil
}

// NewWithCredentials wraps New for the common key/token case.
func NewWithCredentials(apiKey, token string) (trello.Client, error) {
	return New(&trello.Config{APIKey: apiKey, Token: token})
}

func normalizeBaseURL(baseURL string) string {
	if baseURL == "" {
		return constants.DefaultBaseURL
	}

	baseURL = strings.TrimSuffix(baseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}
