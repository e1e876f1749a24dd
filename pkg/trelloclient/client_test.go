package trelloclient_test

import (
	"testing"

	"github.com/kanban-io/trello-client/pkg/trello"
	"github.com/kanban-io/trello-client/pkg/trelloclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("creates client with config", func(t *testing.T) {
		t.Parallel()

		config := &trello.Config{
			APIKey: "test-key",
			Token:  "test-token",
		}

		client, err := trelloclient.New(config)
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		client, err := trelloclient.New(nil)
		require.ErrorIs(t, err, trello.ErrConfigRequired)
		assert.Nil(t, client)
	})

	t.Run("requires credentials before any network call", func(t *testing.T) {
		t.Parallel()

		client, err := trelloclient.New(&trello.Config{APIKey: "test-key"})
		require.ErrorIs(t, err, trello.ErrCredentialsRequired)
		assert.Nil(t, client)

		client, err = trelloclient.New(&trello.Config{Token: "test-token"})
		require.ErrorIs(t, err, trello.ErrCredentialsRequired)
		assert.Nil(t, client)
	})

	t.Run("normalizes base URL", func(t *testing.T) {
		t.Parallel()

		config := &trello.Config{
			APIKey:  "test-key",
			Token:   "test-token",
			BaseURL: "api.example.com/1/",
		}

		client, err := trelloclient.New(config)
		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.Equal(t, "https://api.example.com/1", config.BaseURL)
	})

	t.Run("defaults base URL when empty", func(t *testing.T) {
		t.Parallel()

		config := &trello.Config{
			APIKey: "test-key",
			Token:  "test-token",
		}

		_, err := trelloclient.New(config)
		require.NoError(t, err)
		assert.Equal(t, "https://api.trello.com/1", config.BaseURL)
	})
}

func TestNewWithCredentials(t *testing.T) {
	t.Parallel()

	client, err := trelloclient.NewWithCredentials("test-key", "test-token")
	require.NoError(t, err)
	assert.NotNil(t, client)

	assert.NotNil(t, client.Boards())
	assert.NotNil(t, client.Cards())
	assert.NotNil(t, client.Validate())
}
