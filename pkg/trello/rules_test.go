package trello_test

import (
	"strings"
	"testing"

	"github.com/kanban-io/trello-client/pkg/trello"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateID(t *testing.T) {
	t.Parallel()

	t.Run("accepts 24-character hex", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, trello.ValidateID(trello.ResourceBoard, "662f000000000000000000aa"))
	})

	t.Run("rejects empty", func(t *testing.T) {
		t.Parallel()

		err := trello.ValidateID(trello.ResourceBoard, "")
		require.Error(t, err)
		assert.True(t, trello.IsValidation(err))
	})

	t.Run("rejects malformed", func(t *testing.T) {
		t.Parallel()

		for _, id := range []string{
			"not-an-id",
			"662f000000000000000000AA", // uppercase
			"662f0000000000000000aa",   // too short
			"662f000000000000000000aabb",
		} {
			err := trello.ValidateID(trello.ResourceCard, id)
			require.Error(t, err, id)
			assert.True(t, trello.IsValidation(err))
			assert.Contains(t, err.Error(), "24-character hexadecimal")
		}
	})
}

func TestCreateBoardRequestValidate(t *testing.T) {
	t.Parallel()

	t.Run("accepts minimal payload", func(t *testing.T) {
		t.Parallel()

		request := &trello.CreateBoardRequest{Name: "Sprint 12"}
		assert.NoError(t, request.Validate())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		t.Parallel()

		request := &trello.CreateBoardRequest{}
		err := request.Validate()
		require.Error(t, err)
		assert.True(t, trello.IsValidation(err))
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("rejects oversized name", func(t *testing.T) {
		t.Parallel()

		request := &trello.CreateBoardRequest{Name: strings.Repeat("x", trello.MaxTextLength+1)}
		err := request.Validate()
		require.Error(t, err)
		assert.True(t, trello.IsValidation(err))
	})

	t.Run("rejects invalid permission level naming the accepted set", func(t *testing.T) {
		t.Parallel()

		request := &trello.CreateBoardRequest{Name: "Sprint 12", PermissionLevel: "invalid"}
		err := request.Validate()
		require.Error(t, err)
		assert.True(t, trello.IsValidation(err))
		assert.Contains(t, err.Error(), "private, org, public")
	})

	t.Run("accepts every documented permission level", func(t *testing.T) {
		t.Parallel()

		for _, level := range trello.PermissionLevels {
			request := &trello.CreateBoardRequest{Name: "Sprint 12", PermissionLevel: level}
			assert.NoError(t, request.Validate(), level)
		}
	})

	t.Run("rejects malformed workspace ID", func(t *testing.T) {
		t.Parallel()

		request := &trello.CreateBoardRequest{Name: "Sprint 12", IDOrganization: "engineering"}
		err := request.Validate()
		require.Error(t, err)
		assert.True(t, trello.IsValidation(err))
	})
}

func TestCreateWorkspaceRequestValidate(t *testing.T) {
	t.Parallel()

	t.Run("requires display name", func(t *testing.T) {
		t.Parallel()

		request := &trello.CreateWorkspaceRequest{}
		err := request.Validate()
		require.Error(t, err)
		assert.True(t, trello.IsValidation(err))
		assert.Contains(t, err.Error(), "displayName is required")
	})

	t.Run("accepts valid short name", func(t *testing.T) {
		t.Parallel()

		request := &trello.CreateWorkspaceRequest{DisplayName: "Engineering", Name: "eng_team2"}
		assert.NoError(t, request.Validate())
	})

	t.Run("rejects short names under three characters or with uppercase", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"ab", "Eng", "eng team"} {
			request := &trello.CreateWorkspaceRequest{DisplayName: "Engineering", Name: name}
			err := request.Validate()
			require.Error(t, err, name)
			assert.True(t, trello.IsValidation(err))
		}
	})

	t.Run("rejects invalid website URL", func(t *testing.T) {
		t.Parallel()

		request := &trello.CreateWorkspaceRequest{DisplayName: "Engineering", Website: "not a url"}
		err := request.Validate()
		require.Error(t, err)
		assert.True(t, trello.IsValidation(err))
		assert.Contains(t, err.Error(), "valid HTTP or HTTPS URL")
	})

	t.Run("accepts http and https URLs", func(t *testing.T) {
		t.Parallel()

		for _, site := range []string{
			"https://example.com",
			"http://example.com/path?x=1",
			"https://localhost:8080",
			"http://10.0.0.1/status",
		} {
			request := &trello.CreateWorkspaceRequest{DisplayName: "Engineering", Website: site}
			assert.NoError(t, request.Validate(), site)
		}
	})
}

func TestAttachURLRequestValidate(t *testing.T) {
	t.Parallel()

	t.Run("requires the URL", func(t *testing.T) {
		t.Parallel()

		err := (&trello.AttachURLRequest{}).Validate()
		require.Error(t, err)
		assert.True(t, trello.IsValidation(err))
	})

	t.Run("rejects non-http schemes", func(t *testing.T) {
		t.Parallel()

		err := (&trello.AttachURLRequest{URL: "ftp://example.com/file"}).Validate()
		require.Error(t, err)
		assert.True(t, trello.IsValidation(err))
	})
}

func TestCreateLabelRequestValidate(t *testing.T) {
	t.Parallel()

	t.Run("rejects colors outside the palette", func(t *testing.T) {
		t.Parallel()

		err := (&trello.CreateLabelRequest{Name: "bug", Color: "maroon"}).Validate()
		require.Error(t, err)
		assert.True(t, trello.IsValidation(err))
	})

	t.Run("accepts every palette color", func(t *testing.T) {
		t.Parallel()

		for _, color := range trello.LabelColors {
			assert.NoError(t, (&trello.CreateLabelRequest{Name: "bug", Color: color}).Validate(), color)
		}
	})
}

func TestRuleSetValidateAll(t *testing.T) {
	t.Parallel()

	rules := trello.RuleSet{
		{Field: "name", Required: true},
		{Field: "color", Enum: trello.LabelColors},
	}

	err := rules.ValidateAll(map[string]string{"name": "", "color": "maroon"})
	require.Error(t, err)
	assert.True(t, trello.IsValidation(err))
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "color must be one of")
}

func TestUpdateCheckItemRequestValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, (&trello.UpdateCheckItemRequest{State: "complete"}).Validate())
	assert.NoError(t, (&trello.UpdateCheckItemRequest{State: "incomplete"}).Validate())

	err := (&trello.UpdateCheckItemRequest{State: "done"}).Validate()
	require.Error(t, err)
	assert.True(t, trello.IsValidation(err))
}

func TestSearchRequestValidate(t *testing.T) {
	t.Parallel()

	t.Run("requires a query", func(t *testing.T) {
		t.Parallel()

		err := (&trello.SearchRequest{}).Validate()
		require.Error(t, err)
		assert.True(t, trello.IsValidation(err))
	})

	t.Run("checks board ID shape", func(t *testing.T) {
		t.Parallel()

		request := &trello.SearchRequest{Query: "roadmap", IDBoards: []string{"bogus"}}
		err := request.Validate()
		require.Error(t, err)
		assert.True(t, trello.IsValidation(err))
	})
}

func TestCreateCustomFieldRequestValidate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a known type", func(t *testing.T) {
		t.Parallel()
		request := &trello.CreateCustomFieldRequest{
			IDBoard: "662f000000000000000000aa",
			Name:    "Severity",
			Type:    "number",
		}
		assert.NoError(t, request.Validate())
	})

	t.Run("rejects an unknown type", func(t *testing.T) {
		t.Parallel()
		request := &trello.CreateCustomFieldRequest{
			IDBoard: "662f000000000000000000aa",
			Name:    "Severity",
			Type:    "dropdown",
		}
		err := request.Validate()
		require.Error(t, err)
		assert.True(t, trello.IsValidation(err))
	})

	t.Run("rejects a name past the cap", func(t *testing.T) {
		t.Parallel()
		request := &trello.CreateCustomFieldRequest{
			IDBoard: "662f000000000000000000aa",
			Name:    strings.Repeat("x", trello.MaxFieldNameLength+1),
			Type:    "text",
		}
		err := request.Validate()
		require.Error(t, err)
		assert.True(t, trello.IsValidation(err))
	})
}

func TestCreateCustomFieldRequestBody(t *testing.T) {
	t.Parallel()

	t.Run("defaults pos to bottom", func(t *testing.T) {
		t.Parallel()
		request := &trello.CreateCustomFieldRequest{
			IDBoard: "662f000000000000000000aa",
			Name:    "Severity",
			Type:    "text",
		}
		body := request.Body()
		assert.Equal(t, "bottom", body["pos"])
		assert.Equal(t, "board", body["modelType"])
		assert.NotContains(t, body, "options")
	})

	t.Run("seeds options for a list field", func(t *testing.T) {
		t.Parallel()
		request := &trello.CreateCustomFieldRequest{
			IDBoard: "662f000000000000000000aa",
			Name:    "Severity",
			Type:    "list",
			Options: []string{"low", "high"},
		}
		body := request.Body()
		options, ok := body["options"].([]map[string]any)
		require.True(t, ok)
		require.Len(t, options, 2)
		assert.Equal(t, map[string]string{"text": "low"}, options[0]["value"])
	})
}

func TestSetCustomFieldValueRequestValidate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a single typed slot", func(t *testing.T) {
		t.Parallel()
		request := &trello.SetCustomFieldValueRequest{Value: map[string]string{"checked": "true"}}
		assert.NoError(t, request.Validate())
	})

	t.Run("accepts a list option reference", func(t *testing.T) {
		t.Parallel()
		request := &trello.SetCustomFieldValueRequest{IDValue: "662f000000000000000000ff"}
		assert.NoError(t, request.Validate())
	})

	t.Run("rejects a malformed option reference", func(t *testing.T) {
		t.Parallel()
		request := &trello.SetCustomFieldValueRequest{IDValue: "nope"}
		err := request.Validate()
		require.Error(t, err)
		assert.True(t, trello.IsValidation(err))
	})
}

func TestCustomFieldOptionRequestBody(t *testing.T) {
	t.Parallel()

	request := &trello.CustomFieldOptionRequest{Text: "low"}
	body := request.Body()
	assert.Equal(t, "none", body["color"])
	assert.Equal(t, "bottom", body["pos"])
	assert.Equal(t, map[string]string{"text": "low"}, body["value"])
}
