// Package constants centralizes shared defaults for the Trello client.
package constants

import "time"

// API endpoints and identity.
const (
	// DefaultBaseURL is the Trello REST API root.
	DefaultBaseURL = "https://api.trello.com/1"

	// DefaultUserAgent identifies the client on the wire.
	DefaultUserAgent = "trello-client-go"
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry defaults.
const (
	// DefaultRetryMax is the total attempt budget per logical call.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the base backoff delay.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax caps the computed backoff.
	DefaultRetryWaitMax = 30 * time.Second

	// DefaultRetryJitterMax bounds the random jitter per wait.
	DefaultRetryJitterMax = 500 * time.Millisecond
)

// Batch and listing limits.
const (
	// MaxBatchURLs is the Trello /batch request limit.
	MaxBatchURLs = 10

	// DefaultActionLimit is the default activity feed page size.
	DefaultActionLimit = 50

	// DefaultMemberSearchLimit matches the API default for member search.
	DefaultMemberSearchLimit = 8
)
