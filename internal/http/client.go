// Package http implements the transport layer of the Trello client: a
// single authenticated HTTP call per invocation, error classification, and
// an explicit retry controller for transient failures.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kanban-io/trello-client/internal/constants"
	"github.com/kanban-io/trello-client/pkg/trello"
)

// Request describes a single API call. A Request is owned by the call in
// progress and must not be shared across concurrent calls. Attempt is set
// by the retry controller.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	Body    any

	// Idempotent marks the call as safe to repeat on transient failure.
	// Reads set it; mutating call sites opt in explicitly.
	Idempotent bool

	// Attempt counts prior transport invocations for this logical call.
	Attempt int
}

// Response carries the raw result of one transport call.
type Response struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger for the client.
func WithLogger(logger trello.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout sets the per-request timeout. The timeout is always finite;
// the default is constants.DefaultHTTPTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRetryPolicy replaces the default retry policy.
func WithRetryPolicy(policy Policy) Option {
	return func(c *Client) {
		c.policy = policy.withDefaults()
	}
}

// WithLimiter installs a token bucket consulted before every network call.
func WithLimiter(limiter *trello.Limiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}

// WithMetrics installs a collector that records every transport attempt.
func WithMetrics(metrics *trello.MetricsCollector) Option {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// Client issues authenticated requests against the Trello API. The zero
// value is not usable; construct with NewClient. A Client holds no per-call
// mutable state and is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	token      string
	httpClient *nethttp.Client
	policy     Policy
	limiter    *trello.Limiter
	metrics    *trello.MetricsCollector
	logger     trello.Logger
	debug      bool
	userAgent  string
}

// NewClient creates a transport bound to one credential pair. Credentials
// are attached to every request and never accepted from callers.
func NewClient(baseURL, apiKey, token string, opts ...Option) *Client {
	client := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		token:   token,
		httpClient: &nethttp.Client{
			Timeout: constants.DefaultHTTPTimeout,
		},
		policy:    DefaultPolicy(),
		userAgent: constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do performs exactly one network call. It never retries; Execute layers
// retry on top for eligible requests. On a non-2xx status the response is
// returned alongside the classified error.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	resource, resourceID := resourceFromPath(req.Path)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, trello.ClassifyTransport(err, resource, resourceID)
		}
	}

	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":  req.Method,
			"path":    req.Path,
			"attempt": req.Attempt,
		})
	}

	start := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.record(req, start, true)

		return nil, trello.ClassifyTransport(err, resource, resourceID)
	}

	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		c.record(req, start, true)

		return nil, trello.ClassifyTransport(err, resource, resourceID)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	failed := httpResp.StatusCode < 200 || httpResp.StatusCode >= 300
	c.record(req, start, failed)

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"path":        req.Path,
			"status_code": resp.StatusCode,
		})
	}

	if failed {
		return resp, trello.ClassifyResponse(resp.StatusCode, resp.Headers, body, resource, resourceID)
	}

	return resp, nil
}

// Execute runs the request through the retry controller when it is marked
// idempotent, and as a single shot otherwise.
func (c *Client) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Idempotent {
		return c.doWithRetry(ctx, req)
	}

	return c.Do(ctx, req)
}

// Get performs a GET request. Reads are always retry-eligible.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Execute(ctx, &Request{
		Method:     nethttp.MethodGet,
		Path:       path,
		Query:      query,
		Idempotent: true,
	})
}

// Post performs a POST request. Mutations are issued exactly once; a caller
// that knows its POST is safely repeatable uses Execute with Idempotent set.
func (c *Client) Post(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Execute(ctx, &Request{
		Method: nethttp.MethodPost,
		Path:   path,
		Query:  query,
	})
}

// PostJSON performs a POST request carrying a JSON body, issued exactly
// once. A handful of endpoints take their payload this way instead of as
// query parameters.
func (c *Client) PostJSON(ctx context.Context, path string, body any) (*Response, error) {
	return c.Execute(ctx, &Request{
		Method: nethttp.MethodPost,
		Path:   path,
		Body:   body,
	})
}

// PutJSON performs a PUT request carrying a JSON body, issued exactly once.
func (c *Client) PutJSON(ctx context.Context, path string, body any) (*Response, error) {
	return c.Execute(ctx, &Request{
		Method: nethttp.MethodPut,
		Path:   path,
		Body:   body,
	})
}

// Put performs a PUT request, issued exactly once.
func (c *Client) Put(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Execute(ctx, &Request{
		Method: nethttp.MethodPut,
		Path:   path,
		Query:  query,
	})
}

// Delete performs a DELETE request, issued exactly once.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Execute(ctx, &Request{
		Method: nethttp.MethodDelete,
		Path:   path,
	})
}

func (c *Client) buildRequest(ctx context.Context, req *Request) (*nethttp.Request, error) {
	query := url.Values{}
	for key, values := range req.Query {
		query[key] = values
	}

	query.Set("key", c.apiKey)
	query.Set("token", c.token)

	fullURL := c.baseURL + req.Path + "?" + query.Encode()

	var bodyReader io.Reader

	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		bodyReader = bytes.NewReader(payload)
	}

	httpReq, err := nethttp.NewRequestWithContext(ctx, req.Method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}

func (c *Client) record(req *Request, start time.Time, failed bool) {
	if c.metrics != nil {
		c.metrics.Record(req.Method, req.Path, time.Since(start), failed)
	}
}

// resourceFromPath derives the resource kind and ID for error messages from
// a path like "/boards/<id>/lists". The Trello API does not echo them back.
func resourceFromPath(path string) (string, string) {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		return "", ""
	}

	resource := singularName(segments[0])

	if len(segments) > 1 && trello.HexIDPattern.MatchString(segments[1]) {
		return resource, segments[1]
	}

	return resource, ""
}

func singularName(collection string) string {
	switch collection {
	case "organizations":
		return string(trello.ResourceWorkspace)
	case "search", "batch":
		return strings.ToUpper(collection[:1]) + collection[1:]
	default:
		singular := strings.TrimSuffix(collection, "s")
		if singular == "" {
			return ""
		}

		return strings.ToUpper(singular[:1]) + singular[1:]
	}
}
