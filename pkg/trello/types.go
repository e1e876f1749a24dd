package trello

// ResourceKind names a Trello resource type for validation and error
// reporting. Values match the singular forms used in error messages.
type ResourceKind string

const (
	ResourceBoard     ResourceKind = "Board"
	ResourceList      ResourceKind = "List"
	ResourceCard      ResourceKind = "Card"
	ResourceChecklist ResourceKind = "Checklist"
	ResourceCheckItem ResourceKind = "CheckItem"
	ResourceWorkspace ResourceKind = "Organization"
	ResourceMember    ResourceKind = "Member"
	ResourceLabel     ResourceKind = "Label"
	ResourceAction    ResourceKind = "Action"
	ResourceWebhook   ResourceKind = "Webhook"

	ResourceCustomField       ResourceKind = "CustomField"
	ResourceCustomFieldOption ResourceKind = "CustomFieldOption"
)

// path returns the API collection segment for the resource kind.
func (k ResourceKind) path() string {
	switch k {
	case ResourceBoard:
		return "boards"
	case ResourceList:
		return "lists"
	case ResourceCard:
		return "cards"
	case ResourceChecklist:
		return "checklists"
	case ResourceCheckItem:
		return "checkItems"
	case ResourceWorkspace:
		return "organizations"
	case ResourceMember:
		return "members"
	case ResourceLabel:
		return "labels"
	case ResourceAction:
		return "actions"
	case ResourceWebhook:
		return "webhooks"
	case ResourceCustomField:
		return "customFields"
	case ResourceCustomFieldOption:
		return "customFieldOptions"
	default:
		return ""
	}
}

// CollectionPath exposes the API collection segment for a resource kind.
func (k ResourceKind) CollectionPath() string {
	return k.path()
}

// BoardPrefs carries the subset of board preferences the client reads.
type BoardPrefs struct {
	PermissionLevel string `json:"permissionLevel"`
	Voting          string `json:"voting"`
	Comments        string `json:"comments"`
	Background      string `json:"background"`
}

// Board represents a Trello board.
type Board struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Desc           string      `json:"desc"`
	Closed         bool        `json:"closed"`
	IDOrganization string      `json:"idOrganization"`
	URL            string      `json:"url"`
	ShortURL       string      `json:"shortUrl"`
	Prefs          *BoardPrefs `json:"prefs,omitempty"`
}

// List represents a list (column) on a board.
type List struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Closed  bool    `json:"closed"`
	IDBoard string  `json:"idBoard"`
	Pos     float64 `json:"pos"`
}

// Card represents a card on a board.
type Card struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Desc      string   `json:"desc"`
	Closed    bool     `json:"closed"`
	IDList    string   `json:"idList"`
	IDBoard   string   `json:"idBoard"`
	IDMembers []string `json:"idMembers"`
	IDLabels  []string `json:"idLabels"`
	Labels    []Label  `json:"labels"`
	Due       string   `json:"due"`
	DueDone   bool     `json:"dueComplete"`
	Pos       float64  `json:"pos"`
	URL       string   `json:"url"`
	ShortURL  string   `json:"shortUrl"`
}

// CheckItem represents a single item in a checklist. State is "complete" or
// "incomplete".
type CheckItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	State string  `json:"state"`
	Pos   float64 `json:"pos"`
}

// Checklist represents a checklist attached to a card.
type Checklist struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	IDCard     string      `json:"idCard"`
	IDBoard    string      `json:"idBoard"`
	Pos        float64     `json:"pos"`
	CheckItems []CheckItem `json:"checkItems"`
}

// Workspace represents a Trello workspace (called "organization" on the
// wire; both names appear in the API).
type Workspace struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Desc        string `json:"desc"`
	URL         string `json:"url"`
	Website     string `json:"website"`
}

// Member represents a Trello member.
type Member struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	Initials  string `json:"initials"`
	AvatarURL string `json:"avatarUrl"`
}

// Membership describes a member's role on a board or in a workspace.
// MemberType is "admin", "normal", or "observer".
type Membership struct {
	ID          string  `json:"id"`
	IDMember    string  `json:"idMember"`
	MemberType  string  `json:"memberType"`
	Unconfirmed bool    `json:"unconfirmed"`
	Member      *Member `json:"member,omitempty"`
}

// Label represents a board label.
type Label struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
	IDBoard string `json:"idBoard"`
}

// Action represents an entry in a board or card activity feed. Comments are
// actions of type "commentCard" with the text under Data["text"].
type Action struct {
	ID              string         `json:"id"`
	Type            string         `json:"type"`
	Date            string         `json:"date"`
	IDMemberCreator string         `json:"idMemberCreator"`
	Data            map[string]any `json:"data"`
	MemberCreator   *Member        `json:"memberCreator,omitempty"`
}

// CommentText returns the comment text for commentCard actions, or "".
func (a *Action) CommentText() string {
	text, _ := a.Data["text"].(string)

	return text
}

// Attachment represents a card attachment.
type Attachment struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	MimeType string `json:"mimeType"`
	Date     string `json:"date"`
	IsUpload bool   `json:"isUpload"`
	IDMember string `json:"idMember"`
}

// Webhook represents a webhook registered against a model ID.
type Webhook struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	IDModel     string `json:"idModel"`
	CallbackURL string `json:"callbackURL"`
	Active      bool   `json:"active"`
}

// CustomField is a typed field defined on a board. Type is one of
// CustomFieldTypes; list-type fields carry their options.
type CustomField struct {
	ID        string              `json:"id"`
	IDModel   string              `json:"idModel"`
	ModelType string              `json:"modelType"`
	Name      string              `json:"name"`
	Type      string              `json:"type"`
	Pos       float64             `json:"pos"`
	Options   []CustomFieldOption `json:"options,omitempty"`
}

// CustomFieldOption is one selectable entry of a list-type custom field.
type CustomFieldOption struct {
	ID            string                 `json:"id"`
	IDCustomField string                 `json:"idCustomField"`
	Value         CustomFieldOptionValue `json:"value"`
	Color         string                 `json:"color"`
	Pos           float64                `json:"pos"`
}

// CustomFieldOptionValue holds the display text of an option.
type CustomFieldOptionValue struct {
	Text string `json:"text"`
}

// CustomFieldItem is the value a card holds for one custom field. List
// fields reference the chosen option by IDValue; other types carry one
// CustomFieldValueKeys entry in Value.
type CustomFieldItem struct {
	ID            string            `json:"id"`
	IDCustomField string            `json:"idCustomField"`
	IDModel       string            `json:"idModel"`
	IDValue       string            `json:"idValue,omitempty"`
	Value         map[string]string `json:"value,omitempty"`
}

// SearchResult is the grouped response of the search endpoint.
type SearchResult struct {
	Cards         []Card      `json:"cards"`
	Boards        []Board     `json:"boards"`
	Members       []Member    `json:"members"`
	Organizations []Workspace `json:"organizations"`
}

// BatchResult is one entry in a batch response. Exactly one of the numeric
// status keys is set per entry; the API nests the payload under the status
// code as a string key, which the batch client flattens into this shape.
type BatchResult struct {
	StatusCode int
	Name       string
	Message    string
	Body       []byte
}

// BoardExport is a client-side assembly of a board and its contents,
// collected through read calls. There is no single export endpoint; the
// export client issues the reads and stitches the result.
type BoardExport struct {
	Board      *Board      `json:"board"`
	Lists      []List      `json:"lists"`
	Cards      []Card      `json:"cards"`
	Checklists []Checklist `json:"checklists"`
	Actions    []Action    `json:"actions"`
	ExportedAt string      `json:"exportedAt"`
}
