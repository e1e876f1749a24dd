package trello

import (
	"fmt"
	"regexp"
	"strings"
)

// Enumerated value sets accepted by the Trello API. Shape rules reference
// these so every call site rejects the same bad input the same way.
var (
	// PermissionLevels are the board/workspace visibility levels.
	PermissionLevels = []string{"private", "org", "public"}

	// ActivityPermissions govern who may vote or comment on a board.
	ActivityPermissions = []string{"disabled", "members", "observers", "org", "public"}

	// BoardFilters are accepted by workspace board listings.
	BoardFilters = []string{"all", "open", "closed", "members", "organization", "public"}

	// LabelColors is the label palette. The empty string clears the color.
	LabelColors = []string{"yellow", "purple", "blue", "red", "green", "orange", "black", "sky", "pink", "lime"}

	// MemberTypes are the roles a board member can hold.
	MemberTypes = []string{"admin", "normal", "observer"}

	// CustomFieldTypes are the kinds a board custom field can take.
	CustomFieldTypes = []string{"checkbox", "date", "list", "number", "text"}

	// CustomFieldValueKeys are the typed slots a card's field value may
	// fill. Exactly one is set per value; number and checked travel as
	// strings on the wire.
	CustomFieldValueKeys = []string{"checked", "date", "number", "text"}
)

// Field patterns. Trello IDs are 24-character lowercase hex strings;
// workspace short names are lowercase alphanumerics and underscores.
var (
	HexIDPattern     = regexp.MustCompile(`^[a-f0-9]{24}$`)
	ShortNamePattern = regexp.MustCompile(`^[a-z0-9_]{3,}$`)

	urlPattern = regexp.MustCompile(`(?i)^https?://` +
		`(?:(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,6}\.?|` +
		`localhost|` +
		`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
		`(?::\d+)?` +
		`(?:/?|[/?]\S+)$`)
)

// MaxTextLength is the Trello-wide limit on free-text fields.
const MaxTextLength = 16384

// MaxFieldNameLength caps custom field and option names.
const MaxFieldNameLength = 255

// Rule is one declarative constraint on a named field. Zero-valued checks
// are skipped, so a Rule lists only what it cares about. Optional fields
// that are absent from the payload pass untouched.
type Rule struct {
	Field    string
	Required bool
	MinLen   int
	MaxLen   int
	Enum     []string
	Pattern  *regexp.Regexp
	// PatternHint names the expected format in the violation message.
	PatternHint string
	URL         bool
}

// check returns the violation message for a value, or "".
func (r Rule) check(value string, present bool) string {
	if !present || value == "" {
		if r.Required {
			return fmt.Sprintf("%s is required", r.Field)
		}

		return ""
	}

	if r.MinLen > 0 && len(value) < r.MinLen {
		return fmt.Sprintf("%s must be at least %d characters", r.Field, r.MinLen)
	}

	if r.MaxLen > 0 && len(value) > r.MaxLen {
		return fmt.Sprintf("%s must be at most %d characters", r.Field, r.MaxLen)
	}

	if len(r.Enum) > 0 && !contains(r.Enum, value) {
		return fmt.Sprintf("%s must be one of: %s", r.Field, strings.Join(r.Enum, ", "))
	}

	if r.Pattern != nil && !r.Pattern.MatchString(value) {
		hint := r.PatternHint
		if hint == "" {
			hint = r.Pattern.String()
		}

		return fmt.Sprintf("%s has invalid format: expected %s, got %q", r.Field, hint, value)
	}

	if r.URL && !urlPattern.MatchString(value) {
		return fmt.Sprintf("%s must be a valid HTTP or HTTPS URL", r.Field)
	}

	return ""
}

// RuleSet is the declarative shape specification for one payload. New
// resources declare a table instead of hand-rolling checks.
type RuleSet []Rule

// Validate applies the rules against the payload's string fields and
// returns a Validation error for the first violated rule, or nil.
// No network call is ever made.
func (rs RuleSet) Validate(values map[string]string) error {
	for _, rule := range rs {
		value, present := values[rule.Field]
		if msg := rule.check(value, present); msg != "" {
			return NewValidationError(msg)
		}
	}

	return nil
}

// ValidateAll is like Validate but composes every violation into a single
// error, for callers that want full reporting.
func (rs RuleSet) ValidateAll(values map[string]string) error {
	var violations []string

	for _, rule := range rs {
		value, present := values[rule.Field]
		if msg := rule.check(value, present); msg != "" {
			violations = append(violations, msg)
		}
	}

	if len(violations) == 0 {
		return nil
	}

	return NewValidationError(strings.Join(violations, "; "))
}

// IDRule builds the standard rule for a Trello resource ID field.
func IDRule(field string, required bool) Rule {
	return Rule{
		Field:       field,
		Required:    required,
		Pattern:     HexIDPattern,
		PatternHint: "24-character hexadecimal string",
	}
}

// ValidateID checks a single resource ID against the Trello ID format,
// naming the resource kind in the violation message.
func ValidateID(kind ResourceKind, id string) error {
	if id == "" {
		return NewValidationError(fmt.Sprintf("%s ID cannot be empty", kind))
	}

	if !HexIDPattern.MatchString(id) {
		return NewValidationError(fmt.Sprintf(
			"invalid %s ID format: expected 24-character hexadecimal string, got %q", kind, id))
	}

	return nil
}

func contains(set []string, value string) bool {
	for _, entry := range set {
		if entry == value {
			return true
		}
	}

	return false
}
