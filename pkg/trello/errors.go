package trello

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrorKind is the closed set of failure categories the client reports.
// Every non-2xx response and every transport failure is mapped to exactly
// one kind before it reaches a caller; raw status codes never propagate.
type ErrorKind string

const (
	ErrorKindNotFound     ErrorKind = "not_found"
	ErrorKindUnauthorized ErrorKind = "unauthorized"
	ErrorKindForbidden    ErrorKind = "forbidden"
	ErrorKindValidation   ErrorKind = "validation"
	ErrorKindRateLimit    ErrorKind = "rate_limit"
	ErrorKindBadRequest   ErrorKind = "bad_request"
	ErrorKindNetwork      ErrorKind = "network"
	ErrorKindUnknown      ErrorKind = "unknown"
)

// DefaultRetryAfter is used for 429 responses that omit a Retry-After header.
const DefaultRetryAfter = 60 * time.Second

// Error is the classified form of any Trello API failure.
//
// Resource and ResourceID are filled in when they can be derived from the
// request; RetryAfter is meaningful only for ErrorKindRateLimit. Credentials
// are never part of the message.
type Error struct {
	Kind       ErrorKind
	Resource   string
	ResourceID string
	Message    string
	StatusCode int
	RetryAfter time.Duration
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Retryable reports whether the error is transient: expected to succeed on a
// later attempt without caller intervention.
func (e *Error) Retryable() bool {
	return e.Kind == ErrorKindRateLimit || e.Kind == ErrorKindNetwork
}

// Static errors for conditions detected before any request is issued.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrCredentialsRequired = errors.New("API key and token are required")
	ErrTooManyBatchURLs    = errors.New("at most 10 URLs allowed per batch request")
	ErrEmptyBatch          = errors.New("at least one URL is required for a batch request")
)

// apiErrorBody is the JSON shape Trello uses for error responses. Plain-text
// bodies are also common; both are handled by ClassifyResponse.
type apiErrorBody struct {
	Message string `json:"message"`
	Err     string `json:"error"`
}

// ClassifyResponse maps a non-2xx HTTP response to a classified Error. The
// mapping is total: every status code lands on exactly one kind. The body is
// only ever echoed for unclassified statuses; credentials are never present
// because they travel in query parameters that are not part of the body.
func ClassifyResponse(status int, header http.Header, body []byte, resource, resourceID string) *Error {
	classified := &Error{
		Resource:   resource,
		ResourceID: resourceID,
		StatusCode: status,
	}

	switch status {
	case http.StatusUnauthorized:
		classified.Kind = ErrorKindUnauthorized
		classified.Message = "invalid API key or token: check your credentials"

	case http.StatusForbidden:
		classified.Kind = ErrorKindForbidden
		classified.Message = fmt.Sprintf("permission denied to access %s: check your board or workspace permissions",
			describeResource(resource, resourceID))

	case http.StatusNotFound:
		classified.Kind = ErrorKindNotFound
		classified.Message = fmt.Sprintf("%s not found: verify the ID and try again",
			describeResource(resource, resourceID))

	case http.StatusTooManyRequests:
		classified.Kind = ErrorKindRateLimit
		classified.RetryAfter = parseRetryAfter(header)
		classified.Message = fmt.Sprintf("Trello API rate limit exceeded: retry after %s", classified.RetryAfter)

	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		// Trello does not document the difference between a malformed
		// request and a field-level validation failure on 400. Treat a
		// structured body as field-level detail; this is best effort.
		detail := errorDetail(body)
		if status == http.StatusUnprocessableEntity || detail != "" {
			classified.Kind = ErrorKindValidation
		} else {
			classified.Kind = ErrorKindBadRequest
		}

		if detail == "" {
			detail = "check your parameters"
		}

		classified.Message = fmt.Sprintf("invalid request for %s: %s",
			describeResource(resource, resourceID), detail)

	default:
		classified.Kind = ErrorKindUnknown
		classified.Message = fmt.Sprintf("HTTP %d for %s: %s",
			status, describeResource(resource, resourceID), strings.TrimSpace(string(body)))
	}

	return classified
}

// ClassifyTransport maps a connection-level failure (dial error, timeout,
// aborted body read) to a Network-kind Error. A received error status is
// never passed here; that is ClassifyResponse's job.
func ClassifyTransport(err error, resource, resourceID string) *Error {
	return &Error{
		Kind:       ErrorKindNetwork,
		Resource:   resource,
		ResourceID: resourceID,
		Message: fmt.Sprintf("network error while contacting Trello for %s: %v",
			describeResource(resource, resourceID), redactCredentials(err)),
	}
}

// redactCredentials strips the query string from a url.Error before it is
// rendered. The request URL carries the key and token parameters, which must
// never reach an error message.
func redactCredentials(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}

	parsed, parseErr := url.Parse(urlErr.URL)
	if parseErr != nil {
		return urlErr.Err
	}

	parsed.RawQuery = ""

	return &url.Error{Op: urlErr.Op, URL: parsed.String(), Err: urlErr.Err}
}

// errorDetail extracts field-level detail from a structured error body.
// Returns "" when the body is empty or not Trello's JSON error shape.
func errorDetail(body []byte) string {
	var parsed apiErrorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}

	if parsed.Message != "" {
		return parsed.Message
	}

	return parsed.Err
}

// parseRetryAfter reads the Retry-After header as a second count, falling
// back to DefaultRetryAfter when the header is absent or malformed. The
// result is never negative.
func parseRetryAfter(header http.Header) time.Duration {
	raw := header.Get("Retry-After")
	if raw == "" {
		return DefaultRetryAfter
	}

	seconds, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || seconds < 0 {
		return DefaultRetryAfter
	}

	return time.Duration(seconds) * time.Second
}

func describeResource(resource, resourceID string) string {
	switch {
	case resource != "" && resourceID != "":
		return fmt.Sprintf("%s '%s'", resource, resourceID)
	case resource != "":
		return resource
	default:
		return "resource"
	}
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return kindOf(err) == ErrorKindNotFound
}

// IsUnauthorized checks if the error is an authentication error.
func IsUnauthorized(err error) bool {
	return kindOf(err) == ErrorKindUnauthorized
}

// IsForbidden checks if the error is a permission error.
func IsForbidden(err error) bool {
	return kindOf(err) == ErrorKindForbidden
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return kindOf(err) == ErrorKindValidation
}

// IsRateLimit checks if the error is a rate limit error.
func IsRateLimit(err error) bool {
	return kindOf(err) == ErrorKindRateLimit
}

// IsNetwork checks if the error is a transport failure.
func IsNetwork(err error) bool {
	return kindOf(err) == ErrorKindNetwork
}

func kindOf(err error) ErrorKind {
	classified := &Error{}
	if errors.As(err, &classified) {
		return classified.Kind
	}

	return ""
}

// NewValidationError builds a Validation-kind error for a failure detected
// locally, before any network call.
func NewValidationError(message string) *Error {
	return &Error{
		Kind:       ErrorKindValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewForbiddenError builds a Forbidden-kind error for a precondition the
// validation service resolved locally (for example a role mismatch in an
// otherwise successful membership read).
func NewForbiddenError(resource, resourceID, requirement string) *Error {
	return &Error{
		Kind:       ErrorKindForbidden,
		Resource:   resource,
		ResourceID: resourceID,
		StatusCode: http.StatusForbidden,
		Message: fmt.Sprintf("permission denied to %s %s", requirement,
			describeResource(resource, resourceID)),
	}
}
