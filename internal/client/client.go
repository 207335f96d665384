// Package client fetches pages of exception logs from the remote API.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/encoding/json"

	"github.com/watchfire-io/exlogs/internal/buildinfo"
	"github.com/watchfire-io/exlogs/internal/models"
	"github.com/watchfire-io/exlogs/internal/query"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody bounds how much of a failed response body is kept.
const maxErrorBody = 512

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("exception logs API returned %s", e.Status)
	}
	return fmt.Sprintf("exception logs API returned %s: %s", e.Status, e.Body)
}

// Options configures a Client.
type Options struct {
	Endpoint   string
	Timeout    time.Duration
	Headers    map[string]string
	HTTPClient *http.Client
}

// Client issues GET requests against the exception-logs resource.
type Client struct {
	endpoint   *url.URL
	timeout    time.Duration
	headers    map[string]string
	httpClient *http.Client
}

// New creates a client for the given endpoint.
func New(opts Options) (*Client, error) {
	if opts.Endpoint == "" {
		opts.Endpoint = models.DefaultEndpoint
	}
	u, err := url.Parse(opts.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", opts.Endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("endpoint %q must be an http(s) URL", opts.Endpoint)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   u,
		timeout:    opts.Timeout,
		headers:    opts.Headers,
		httpClient: httpClient,
	}, nil
}

// FromSettings creates a client for the endpoint, timeout and headers in s.
func FromSettings(s *models.Settings) (*Client, error) {
	return New(Options{
		Endpoint: s.Endpoint,
		Timeout:  s.Timeout,
		Headers:  s.Headers,
	})
}

// Endpoint returns the configured resource URL.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// URL returns the exact URL Fetch would request for the state.
func (c *Client) URL(s query.State) string {
	u := *c.endpoint
	q := s.Params().Encode()
	switch {
	case q == "":
	case u.RawQuery == "":
		u.RawQuery = q
	default:
		u.RawQuery = u.RawQuery + "&" + q
	}
	return u.String()
}

// Fetch requests the page of records matching the state.
func (c *Client) Fetch(ctx context.Context, s query.State) (*models.ResultSet, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target := c.URL(s)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "exlogs/"+buildinfo.Version)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch exception logs: %w", err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("component", "client").
		Str("operation", "Fetch").
		Str("request_id", requestID).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("exception logs response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	var rs models.ResultSet
	if err := json.NewDecoder(resp.Body).Decode(&rs); err != nil {
		return nil, fmt.Errorf("decode exception logs (request %s): %w", requestID, err)
	}
	return &rs, nil
}
