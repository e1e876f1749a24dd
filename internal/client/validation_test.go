package client_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/kanban-io/trello-client/internal/client"
	trellohttp "github.com/kanban-io/trello-client/internal/http"
	"github.com/kanban-io/trello-client/pkg/trello"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	boardID     = "662f000000000000000000aa"
	listID      = "662f000000000000000000bb"
	cardID      = "662f000000000000000000cc"
	workspaceID = "662f000000000000000000dd"
)

// apiStub scripts responses per "METHOD /path" and records every request it
// receives, in order.
type apiStub struct {
	t *testing.T

	mu        sync.Mutex
	responses map[string]stubResponse
	requests  []string

	server *httptest.Server
}

type stubResponse struct {
	status int
	body   string
}

func newAPIStub(t *testing.T) *apiStub {
	t.Helper()

	stub := &apiStub{
		t:         t,
		responses: make(map[string]stubResponse),
	}

	stub.server = httptest.NewServer(http.HandlerFunc(stub.handle))
	t.Cleanup(stub.server.Close)

	return stub
}

func (s *apiStub) on(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.responses[method+" "+path] = stubResponse{status: status, body: body}
}

func (s *apiStub) handle(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path

	s.mu.Lock()
	s.requests = append(s.requests, key)
	response, ok := s.responses[key]
	s.mu.Unlock()

	if !ok {
		s.t.Errorf("unexpected request: %s", key)
		w.WriteHeader(http.StatusTeapot)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(response.status)
	_, _ = w.Write([]byte(response.body))
}

func (s *apiStub) seen() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.requests...)
}

func (s *apiStub) newClient() trello.Client {
	cli, err := client.New(&trello.Config{
		APIKey:  "test-key",
		Token:   "test-token",
		BaseURL: s.server.URL,
	})
	require.NoError(s.t, err)

	return cli
}

func newValidationService(s *apiStub) *client.ValidationService {
	return client.NewValidationService(
		trellohttp.NewClient(s.server.URL, "test-key", "test-token"))
}

func TestResourceExists(t *testing.T) {
	t.Parallel()

	t.Run("passes when the resource answers", func(t *testing.T) {
		t.Parallel()

		stub := newAPIStub(t)
		stub.on(http.MethodGet, "/boards/"+boardID, http.StatusOK, fmt.Sprintf(`{"id": %q}`, boardID))

		validator := newValidationService(stub)
		require.NoError(t, validator.ResourceExists(context.Background(), trello.ResourceBoard, boardID))
	})

	t.Run("reports NotFound for a missing resource", func(t *testing.T) {
		t.Parallel()

		stub := newAPIStub(t)
		stub.on(http.MethodGet, "/boards/"+boardID, http.StatusNotFound, "")

		validator := newValidationService(stub)
		err := validator.ResourceExists(context.Background(), trello.ResourceBoard, boardID)
		require.Error(t, err)
		assert.True(t, trello.IsNotFound(err))
	})

	t.Run("rejects a malformed ID without touching the network", func(t *testing.T) {
		t.Parallel()

		stub := newAPIStub(t)

		validator := newValidationService(stub)
		err := validator.ResourceExists(context.Background(), trello.ResourceBoard, "not-an-id")
		require.Error(t, err)
		assert.True(t, trello.IsValidation(err))
		assert.Empty(t, stub.seen())
	})
}

func TestHasPermission(t *testing.T) {
	t.Parallel()

	t.Run("admin passes when the caller holds the admin role", func(t *testing.T) {
		t.Parallel()

		stub := newAPIStub(t)
		stub.on(http.MethodGet, "/boards/"+boardID+"/memberships", http.StatusOK,
			`[{"id": "m1", "memberType": "admin"}]`)

		validator := newValidationService(stub)
		err := validator.HasPermission(context.Background(), trello.ResourceBoard, boardID, trello.PermissionAdmin)
		require.NoError(t, err)
	})

	t.Run("admin fails as Forbidden on a role mismatch", func(t *testing.T) {
		t.Parallel()

		stub := newAPIStub(t)
		stub.on(http.MethodGet, "/boards/"+boardID+"/memberships", http.StatusOK,
			`[{"id": "m1", "memberType": "normal"}]`)

		validator := newValidationService(stub)
		err := validator.HasPermission(context.Background(), trello.ResourceBoard, boardID, trello.PermissionAdmin)
		require.Error(t, err)
		assert.True(t, trello.IsForbidden(err))
		assert.Contains(t, err.Error(), "admin permission required")
	})

	t.Run("membership passes for a member", func(t *testing.T) {
		t.Parallel()

		stub := newAPIStub(t)
		stub.on(http.MethodGet, "/organizations/"+workspaceID+"/members/me", http.StatusOK, `{"id": "m1"}`)

		validator := newValidationService(stub)
		err := validator.HasPermission(context.Background(), trello.ResourceWorkspace, workspaceID, trello.PermissionMember)
		require.NoError(t, err)
	})

	t.Run("membership remaps NotFound to Forbidden", func(t *testing.T) {
		t.Parallel()

		stub := newAPIStub(t)
		stub.on(http.MethodGet, "/organizations/"+workspaceID+"/members/me", http.StatusNotFound, "")

		validator := newValidationService(stub)
		err := validator.HasPermission(context.Background(), trello.ResourceWorkspace, workspaceID, trello.PermissionMember)
		require.Error(t, err)
		assert.True(t, trello.IsForbidden(err))
		assert.False(t, trello.IsNotFound(err))
	})

	t.Run("unauthorized passes through unchanged", func(t *testing.T) {
		t.Parallel()

		stub := newAPIStub(t)
		stub.on(http.MethodGet, "/organizations/"+workspaceID+"/members/me", http.StatusUnauthorized, "")

		validator := newValidationService(stub)
		err := validator.HasPermission(context.Background(), trello.ResourceWorkspace, workspaceID, trello.PermissionMember)
		require.Error(t, err)
		assert.True(t, trello.IsUnauthorized(err))
	})
}
