package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cookanything/pantry/internal/recipe"
)

// RecordSource yields raw recipe records. *Client is the production
// implementation.
type RecordSource interface {
	FetchRecords(ctx context.Context) ([]recipe.Raw, error)
}

// Ensure Client implements RecordSource at compile time.
var _ RecordSource = (*Client)(nil)

var (
	// ErrNoEndpoint is returned when no source URL is configured.
	ErrNoEndpoint = errors.New("recipe source url not configured")
	// ErrStatus wraps non-2xx responses.
	ErrStatus = errors.New("unexpected status")
	// ErrBody marks a response that parsed as JSON but is not a list of
	// records.
	ErrBody = errors.New("not a list of records")
)

// Client talks to the spreadsheet endpoint that publishes the recipe list.
type Client struct {
	endpoint  *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "pantry/dev"
	requestTimeout   = 15 * time.Second
)

// ClientOptions tune NewClient. Zero values use defaults.
type ClientOptions struct {
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
}

// NewClient builds a Client for endpoint, which must be an absolute http(s) URL.
func NewClient(endpoint string, opts ClientOptions) (*Client, error) {
	u, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = requestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{endpoint: u, http: httpClient, userAgent: userAgent}, nil
}

// Endpoint returns the configured URL.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// FetchRecords issues exactly one GET and decodes the JSON array body.
func (c *Client) FetchRecords(ctx context.Context) ([]recipe.Raw, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("source returned %d: %w", resp.StatusCode, ErrStatus)
	}

	return decodeRecords(resp.Body)
}

// decodeRecords reads exactly one JSON array of objects.
func decodeRecords(r io.Reader) ([]recipe.Raw, error) {
	dec := json.NewDecoder(r)
	var records []recipe.Raw
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if records == nil {
		return nil, fmt.Errorf("decode response: %w", ErrBody)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode response: trailing data: %w", ErrBody)
	}
	for i, rec := range records {
		if rec == nil {
			return nil, fmt.Errorf("decode response: record %d is null: %w", i, ErrBody)
		}
	}
	return records, nil
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, ErrNoEndpoint
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse source url %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("source url %q: want an absolute http(s) url", endpoint)
	}
	return u, nil
}

// Unavailable returns a RecordSource that always fails with err. It stands in
// for a Client that could not be built so the failure surfaces through the
// normal fetch path.
func Unavailable(err error) RecordSource {
	return unavailable{err: err}
}

type unavailable struct{ err error }

func (u unavailable) FetchRecords(context.Context) ([]recipe.Raw, error) {
	return nil, u.err
}
