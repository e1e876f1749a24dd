package trello

import (
	"net/url"
	"strconv"
	"strings"
)

// Request payloads for mutating operations. Each payload declares its shape
// rules as a RuleSet and converts itself to the query parameters the API
// expects. Validate never touches the network.

// boolParam renders an optional bool the way the API expects.
func boolParam(values url.Values, key string, value *bool) {
	if value != nil {
		values.Set(key, strconv.FormatBool(*value))
	}
}

func optParam(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}

// CreateBoardRequest creates a new board.
type CreateBoardRequest struct {
	Name           string
	Desc           string
	IDOrganization string
	// DefaultLists controls whether To Do / Doing / Done are created.
	DefaultLists  *bool
	DefaultLabels *bool
	// PermissionLevel defaults to "private" when empty.
	PermissionLevel string
	Voting          string
	Comments        string
}

var createBoardRules = RuleSet{
	{Field: "name", Required: true, MinLen: 1, MaxLen: MaxTextLength},
	{Field: "desc", MaxLen: MaxTextLength},
	IDRule("idOrganization", false),
	{Field: "prefs_permissionLevel", Enum: PermissionLevels},
	{Field: "prefs_voting", Enum: ActivityPermissions},
	{Field: "prefs_comments", Enum: ActivityPermissions},
}

// Validate checks the payload shape without a network call.
func (r *CreateBoardRequest) Validate() error {
	return createBoardRules.Validate(map[string]string{
		"name":                  r.Name,
		"desc":                  r.Desc,
		"idOrganization":        r.IDOrganization,
		"prefs_permissionLevel": r.PermissionLevel,
		"prefs_voting":          r.Voting,
		"prefs_comments":        r.Comments,
	})
}

// Values converts the payload to API query parameters.
func (r *CreateBoardRequest) Values() url.Values {
	values := url.Values{}
	values.Set("name", r.Name)
	optParam(values, "desc", r.Desc)
	optParam(values, "idOrganization", r.IDOrganization)
	boolParam(values, "defaultLists", r.DefaultLists)
	boolParam(values, "defaultLabels", r.DefaultLabels)
	optParam(values, "prefs_permissionLevel", r.PermissionLevel)
	optParam(values, "prefs_voting", r.Voting)
	optParam(values, "prefs_comments", r.Comments)

	return values
}

// UpdateBoardRequest updates an existing board. Only set fields are sent.
type UpdateBoardRequest struct {
	Name            string
	Desc            string
	Closed          *bool
	PermissionLevel string
	Voting          string
	Comments        string
}

var updateBoardRules = RuleSet{
	{Field: "name", MaxLen: MaxTextLength},
	{Field: "desc", MaxLen: MaxTextLength},
	{Field: "prefs/permissionLevel", Enum: PermissionLevels},
	{Field: "prefs/voting", Enum: ActivityPermissions},
	{Field: "prefs/comments", Enum: ActivityPermissions},
}

func (r *UpdateBoardRequest) Validate() error {
	return updateBoardRules.Validate(map[string]string{
		"name":                  r.Name,
		"desc":                  r.Desc,
		"prefs/permissionLevel": r.PermissionLevel,
		"prefs/voting":          r.Voting,
		"prefs/comments":        r.Comments,
	})
}

func (r *UpdateBoardRequest) Values() url.Values {
	values := url.Values{}
	optParam(values, "name", r.Name)
	optParam(values, "desc", r.Desc)
	boolParam(values, "closed", r.Closed)
	optParam(values, "prefs/permissionLevel", r.PermissionLevel)
	optParam(values, "prefs/voting", r.Voting)
	optParam(values, "prefs/comments", r.Comments)

	return values
}

// CreateListRequest creates a list on a board.
type CreateListRequest struct {
	Name    string
	IDBoard string
	// Pos is "top", "bottom", or a positive number rendered as a string.
	Pos string
}

var createListRules = RuleSet{
	{Field: "name", Required: true, MinLen: 1, MaxLen: MaxTextLength},
	IDRule("idBoard", true),
}

func (r *CreateListRequest) Validate() error {
	return createListRules.Validate(map[string]string{
		"name":    r.Name,
		"idBoard": r.IDBoard,
	})
}

func (r *CreateListRequest) Values() url.Values {
	values := url.Values{}
	values.Set("name", r.Name)
	values.Set("idBoard", r.IDBoard)
	optParam(values, "pos", r.Pos)

	return values
}

// UpdateListRequest updates or archives a list.
type UpdateListRequest struct {
	Name   string
	Closed *bool
	Pos    string
}

var updateListRules = RuleSet{
	{Field: "name", MaxLen: MaxTextLength},
}

func (r *UpdateListRequest) Validate() error {
	return updateListRules.Validate(map[string]string{"name": r.Name})
}

func (r *UpdateListRequest) Values() url.Values {
	values := url.Values{}
	optParam(values, "name", r.Name)
	boolParam(values, "closed", r.Closed)
	optParam(values, "pos", r.Pos)

	return values
}

// CreateCardRequest creates a card in a list.
type CreateCardRequest struct {
	Name      string
	Desc      string
	IDList    string
	Due       string
	Pos       string
	IDMembers []string
	IDLabels  []string
}

var createCardRules = RuleSet{
	{Field: "name", Required: true, MinLen: 1, MaxLen: MaxTextLength},
	{Field: "desc", MaxLen: MaxTextLength},
	IDRule("idList", true),
}

func (r *CreateCardRequest) Validate() error {
	if err := createCardRules.Validate(map[string]string{
		"name":   r.Name,
		"desc":   r.Desc,
		"idList": r.IDList,
	}); err != nil {
		return err
	}

	for _, id := range r.IDMembers {
		if err := ValidateID(ResourceMember, id); err != nil {
			return err
		}
	}

	for _, id := range r.IDLabels {
		if err := ValidateID(ResourceLabel, id); err != nil {
			return err
		}
	}

	return nil
}

func (r *CreateCardRequest) Values() url.Values {
	values := url.Values{}
	values.Set("name", r.Name)
	values.Set("idList", r.IDList)
	optParam(values, "desc", r.Desc)
	optParam(values, "due", r.Due)
	optParam(values, "pos", r.Pos)

	if len(r.IDMembers) > 0 {
		values.Set("idMembers", strings.Join(r.IDMembers, ","))
	}

	if len(r.IDLabels) > 0 {
		values.Set("idLabels", strings.Join(r.IDLabels, ","))
	}

	return values
}

// UpdateCardRequest updates an existing card.
type UpdateCardRequest struct {
	Name        string
	Desc        string
	Closed      *bool
	IDList      string
	Due         string
	DueComplete *bool
	Pos         string
}

var updateCardRules = RuleSet{
	{Field: "name", MaxLen: MaxTextLength},
	{Field: "desc", MaxLen: MaxTextLength},
	IDRule("idList", false),
}

func (r *UpdateCardRequest) Validate() error {
	return updateCardRules.Validate(map[string]string{
		"name":   r.Name,
		"desc":   r.Desc,
		"idList": r.IDList,
	})
}

func (r *UpdateCardRequest) Values() url.Values {
	values := url.Values{}
	optParam(values, "name", r.Name)
	optParam(values, "desc", r.Desc)
	boolParam(values, "closed", r.Closed)
	optParam(values, "idList", r.IDList)
	optParam(values, "due", r.Due)
	boolParam(values, "dueComplete", r.DueComplete)
	optParam(values, "pos", r.Pos)

	return values
}

// CreateChecklistRequest creates a checklist on a card.
type CreateChecklistRequest struct {
	IDCard string
	Name   string
	Pos    string
}

var createChecklistRules = RuleSet{
	IDRule("idCard", true),
	{Field: "name", Required: true, MinLen: 1, MaxLen: MaxTextLength},
}

func (r *CreateChecklistRequest) Validate() error {
	return createChecklistRules.Validate(map[string]string{
		"idCard": r.IDCard,
		"name":   r.Name,
	})
}

func (r *CreateChecklistRequest) Values() url.Values {
	values := url.Values{}
	values.Set("idCard", r.IDCard)
	values.Set("name", r.Name)
	optParam(values, "pos", r.Pos)

	return values
}

// CheckItemRequest adds an item to a checklist.
type CheckItemRequest struct {
	Name    string
	Checked *bool
	Pos     string
}

var checkItemRules = RuleSet{
	{Field: "name", Required: true, MinLen: 1, MaxLen: MaxTextLength},
}

func (r *CheckItemRequest) Validate() error {
	return checkItemRules.Validate(map[string]string{"name": r.Name})
}

func (r *CheckItemRequest) Values() url.Values {
	values := url.Values{}
	values.Set("name", r.Name)
	boolParam(values, "checked", r.Checked)
	optParam(values, "pos", r.Pos)

	return values
}

// UpdateCheckItemRequest updates a checklist item on a card.
type UpdateCheckItemRequest struct {
	Name string
	// State is "complete" or "incomplete".
	State string
	Pos   string
}

var updateCheckItemRules = RuleSet{
	{Field: "name", MaxLen: MaxTextLength},
	{Field: "state", Enum: []string{"complete", "incomplete"}},
}

func (r *UpdateCheckItemRequest) Validate() error {
	return updateCheckItemRules.Validate(map[string]string{
		"name":  r.Name,
		"state": r.State,
	})
}

func (r *UpdateCheckItemRequest) Values() url.Values {
	values := url.Values{}
	optParam(values, "name", r.Name)
	optParam(values, "state", r.State)
	optParam(values, "pos", r.Pos)

	return values
}

// CreateWorkspaceRequest creates a workspace.
type CreateWorkspaceRequest struct {
	DisplayName string
	Desc        string
	// Name is the short name used in the workspace URL.
	Name    string
	Website string
}

var createWorkspaceRules = RuleSet{
	{Field: "displayName", Required: true, MinLen: 1, MaxLen: MaxTextLength},
	{Field: "desc", MaxLen: MaxTextLength},
	{Field: "name", Pattern: ShortNamePattern, PatternHint: "at least 3 lowercase letters, numbers, or underscores"},
	{Field: "website", URL: true},
}

func (r *CreateWorkspaceRequest) Validate() error {
	return createWorkspaceRules.Validate(map[string]string{
		"displayName": r.DisplayName,
		"desc":        r.Desc,
		"name":        r.Name,
		"website":     r.Website,
	})
}

func (r *CreateWorkspaceRequest) Values() url.Values {
	values := url.Values{}
	values.Set("displayName", r.DisplayName)
	optParam(values, "desc", r.Desc)
	optParam(values, "name", r.Name)
	optParam(values, "website", r.Website)

	return values
}

// UpdateWorkspaceRequest updates a workspace.
type UpdateWorkspaceRequest struct {
	DisplayName string
	Desc        string
	Name        string
	Website     string
}

var updateWorkspaceRules = RuleSet{
	{Field: "displayName", MaxLen: MaxTextLength},
	{Field: "desc", MaxLen: MaxTextLength},
	{Field: "name", Pattern: ShortNamePattern, PatternHint: "at least 3 lowercase letters, numbers, or underscores"},
	{Field: "website", URL: true},
}

func (r *UpdateWorkspaceRequest) Validate() error {
	return updateWorkspaceRules.Validate(map[string]string{
		"displayName": r.DisplayName,
		"desc":        r.Desc,
		"name":        r.Name,
		"website":     r.Website,
	})
}

func (r *UpdateWorkspaceRequest) Values() url.Values {
	values := url.Values{}
	optParam(values, "displayName", r.DisplayName)
	optParam(values, "desc", r.Desc)
	optParam(values, "name", r.Name)
	optParam(values, "website", r.Website)

	return values
}

// CreateLabelRequest creates a label on a board.
type CreateLabelRequest struct {
	Name  string
	Color string
}

var createLabelRules = RuleSet{
	{Field: "name", Required: true, MinLen: 1, MaxLen: MaxTextLength},
	{Field: "color", Enum: LabelColors},
}

func (r *CreateLabelRequest) Validate() error {
	return createLabelRules.Validate(map[string]string{
		"name":  r.Name,
		"color": r.Color,
	})
}

func (r *CreateLabelRequest) Values() url.Values {
	values := url.Values{}
	values.Set("name", r.Name)
	optParam(values, "color", r.Color)

	return values
}

// UpdateLabelRequest renames or recolors a label.
type UpdateLabelRequest struct {
	Name  string
	Color string
}

var updateLabelRules = RuleSet{
	{Field: "name", MaxLen: MaxTextLength},
	{Field: "color", Enum: LabelColors},
}

func (r *UpdateLabelRequest) Validate() error {
	return updateLabelRules.Validate(map[string]string{
		"name":  r.Name,
		"color": r.Color,
	})
}

func (r *UpdateLabelRequest) Values() url.Values {
	values := url.Values{}
	optParam(values, "name", r.Name)
	optParam(values, "color", r.Color)

	return values
}

// AddBoardMemberRequest invites a member to a board by email.
type AddBoardMemberRequest struct {
	Email    string
	FullName string
	// Type defaults to "normal" when empty.
	Type string
}

var addBoardMemberRules = RuleSet{
	{Field: "email", Required: true, MinLen: 3},
	{Field: "type", Enum: MemberTypes},
}

func (r *AddBoardMemberRequest) Validate() error {
	return addBoardMemberRules.Validate(map[string]string{
		"email": r.Email,
		"type":  r.Type,
	})
}

func (r *AddBoardMemberRequest) Values() url.Values {
	values := url.Values{}
	values.Set("email", r.Email)
	optParam(values, "fullName", r.FullName)
	optParam(values, "type", r.Type)

	return values
}

// CommentRequest adds or edits a comment on a card.
type CommentRequest struct {
	Text string
}

var commentRules = RuleSet{
	{Field: "text", Required: true, MinLen: 1, MaxLen: MaxTextLength},
}

func (r *CommentRequest) Validate() error {
	return commentRules.Validate(map[string]string{"text": r.Text})
}

func (r *CommentRequest) Values() url.Values {
	values := url.Values{}
	values.Set("text", r.Text)

	return values
}

// AttachURLRequest attaches a URL to a card.
type AttachURLRequest struct {
	URL      string
	Name     string
	SetCover *bool
}

var attachURLRules = RuleSet{
	{Field: "url", Required: true, URL: true},
	{Field: "name", MaxLen: 256},
}

func (r *AttachURLRequest) Validate() error {
	return attachURLRules.Validate(map[string]string{
		"url":  r.URL,
		"name": r.Name,
	})
}

func (r *AttachURLRequest) Values() url.Values {
	values := url.Values{}
	values.Set("url", r.URL)
	optParam(values, "name", r.Name)
	boolParam(values, "setCover", r.SetCover)

	return values
}

// CreateWebhookRequest registers a webhook against a model ID.
type CreateWebhookRequest struct {
	CallbackURL string
	IDModel     string
	Description string
	Active      *bool
}

var createWebhookRules = RuleSet{
	{Field: "callbackURL", Required: true, URL: true},
	IDRule("idModel", true),
	{Field: "description", MaxLen: MaxTextLength},
}

func (r *CreateWebhookRequest) Validate() error {
	return createWebhookRules.Validate(map[string]string{
		"callbackURL": r.CallbackURL,
		"idModel":     r.IDModel,
		"description": r.Description,
	})
}

func (r *CreateWebhookRequest) Values() url.Values {
	values := url.Values{}
	values.Set("callbackURL", r.CallbackURL)
	values.Set("idModel", r.IDModel)
	optParam(values, "description", r.Description)
	boolParam(values, "active", r.Active)

	return values
}

// UpdateWebhookRequest updates a webhook's callback, description, or state.
type UpdateWebhookRequest struct {
	CallbackURL string
	Description string
	Active      *bool
}

var updateWebhookRules = RuleSet{
	{Field: "callbackURL", URL: true},
	{Field: "description", MaxLen: MaxTextLength},
}

func (r *UpdateWebhookRequest) Validate() error {
	return updateWebhookRules.Validate(map[string]string{
		"callbackURL": r.CallbackURL,
		"description": r.Description,
	})
}

func (r *UpdateWebhookRequest) Values() url.Values {
	values := url.Values{}
	optParam(values, "callbackURL", r.CallbackURL)
	optParam(values, "description", r.Description)
	boolParam(values, "active", r.Active)

	return values
}

// SearchRequest queries across boards, cards, members, and workspaces.
type SearchRequest struct {
	Query           string
	IDBoards        []string
	IDOrganizations []string
	// ModelTypes restricts the result groups, e.g. "cards,boards".
	ModelTypes []string
	Partial    bool
}

var searchRules = RuleSet{
	{Field: "query", Required: true, MinLen: 1, MaxLen: MaxTextLength},
}

func (r *SearchRequest) Validate() error {
	if err := searchRules.Validate(map[string]string{"query": r.Query}); err != nil {
		return err
	}

	for _, id := range r.IDBoards {
		if err := ValidateID(ResourceBoard, id); err != nil {
			return err
		}
	}

	for _, id := range r.IDOrganizations {
		if err := ValidateID(ResourceWorkspace, id); err != nil {
			return err
		}
	}

	return nil
}

func (r *SearchRequest) Values() url.Values {
	values := url.Values{}
	values.Set("query", r.Query)

	if len(r.IDBoards) > 0 {
		values.Set("idBoards", strings.Join(r.IDBoards, ","))
	}

	if len(r.IDOrganizations) > 0 {
		values.Set("idOrganizations", strings.Join(r.IDOrganizations, ","))
	}

	if len(r.ModelTypes) > 0 {
		values.Set("modelTypes", strings.Join(r.ModelTypes, ","))
	}

	if r.Partial {
		values.Set("partial", "true")
	}

	return values
}

// CreateCustomFieldRequest defines a new custom field on a board. List-type
// fields may seed their options with initial texts.
type CreateCustomFieldRequest struct {
	IDBoard string
	Name    string
	Type    string
	// Pos is "top", "bottom", or a numeric string. Defaults to bottom.
	Pos     string
	Options []string
}

var createCustomFieldRules = RuleSet{
	IDRule("idModel", true),
	{Field: "name", Required: true, MinLen: 1, MaxLen: MaxFieldNameLength},
	{Field: "type", Required: true, Enum: CustomFieldTypes},
}

func (r *CreateCustomFieldRequest) Validate() error {
	return createCustomFieldRules.Validate(map[string]string{
		"idModel": r.IDBoard,
		"name":    r.Name,
		"type":    r.Type,
	})
}

// Body converts the payload to the JSON body the custom-fields endpoint
// expects; it does not accept query parameters the way the rest of the API
// does.
func (r *CreateCustomFieldRequest) Body() map[string]any {
	pos := r.Pos
	if pos == "" {
		pos = "bottom"
	}

	body := map[string]any{
		"idModel":   r.IDBoard,
		"modelType": "board",
		"name":      r.Name,
		"type":      r.Type,
		"pos":       pos,
	}

	if r.Type == "list" && len(r.Options) > 0 {
		options := make([]map[string]any, 0, len(r.Options))
		for _, text := range r.Options {
			options = append(options, map[string]any{
				"value": map[string]string{"text": text},
			})
		}

		body["options"] = options
	}

	return body
}

// UpdateCustomFieldRequest renames or repositions a custom field.
type UpdateCustomFieldRequest struct {
	Name string
	Pos  string
}

var updateCustomFieldRules = RuleSet{
	{Field: "name", MaxLen: MaxFieldNameLength},
}

func (r *UpdateCustomFieldRequest) Validate() error {
	return updateCustomFieldRules.Validate(map[string]string{"name": r.Name})
}

func (r *UpdateCustomFieldRequest) Values() url.Values {
	values := url.Values{}
	optParam(values, "name", r.Name)
	optParam(values, "pos", r.Pos)

	return values
}

// SetCustomFieldValueRequest writes a card's value for one custom field.
// Exactly one of Value and IDValue is set: IDValue selects a list option,
// Value fills one CustomFieldValueKeys slot for the other types.
type SetCustomFieldValueRequest struct {
	Value   map[string]string
	IDValue string
}

func (r *SetCustomFieldValueRequest) Validate() error {
	if len(r.Value) == 0 && r.IDValue == "" {
		return NewValidationError("either value or idValue is required")
	}

	if len(r.Value) > 0 && r.IDValue != "" {
		return NewValidationError("value and idValue are mutually exclusive")
	}

	if r.IDValue != "" {
		return ValidateID(ResourceCustomFieldOption, r.IDValue)
	}

	for key := range r.Value {
		if !contains(CustomFieldValueKeys, key) {
			return NewValidationError(
				"value keys must be one of: " + strings.Join(CustomFieldValueKeys, ", "))
		}
	}

	return nil
}

// Body converts the payload to the JSON body the card item endpoint expects.
func (r *SetCustomFieldValueRequest) Body() map[string]any {
	if r.IDValue != "" {
		return map[string]any{"idValue": r.IDValue}
	}

	return map[string]any{"value": r.Value}
}

// CustomFieldOptionRequest adds or edits an option of a list-type field.
type CustomFieldOptionRequest struct {
	Text  string
	Color string
	Pos   string
}

var customFieldOptionRules = RuleSet{
	{Field: "text", Required: true, MinLen: 1, MaxLen: MaxFieldNameLength},
}

func (r *CustomFieldOptionRequest) Validate() error {
	return customFieldOptionRules.Validate(map[string]string{"text": r.Text})
}

// Body converts the payload to the JSON body the options endpoints expect.
func (r *CustomFieldOptionRequest) Body() map[string]any {
	color := r.Color
	if color == "" {
		color = "none"
	}

	pos := r.Pos
	if pos == "" {
		pos = "bottom"
	}

	return map[string]any{
		"value": map[string]string{"text": r.Text},
		"color": color,
		"pos":   pos,
	}
}
