// Package openlibrary provides a client for the Open Library API and the
// dimension-normalization pipeline used when importing books.
package openlibrary

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"shelfdex/internal/ratelimit"
)

const (
	defaultBaseURL       = "https://openlibrary.org"
	defaultCoversBaseURL = "https://covers.openlibrary.org/b"
	defaultTimeout       = 12 * time.Second
	defaultEditionLimit  = 50
	defaultRatePerSecond = 1 // Open Library asks for a gentle request rate
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is an Open Library API client.
type Client struct {
	baseURL       string
	coversBaseURL string
	httpClient    HTTPDoer
	rateLimiter   *ratelimit.Limiter
	editionLimit  int
}

// NewClient creates a new Open Library client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:       defaultBaseURL,
		coversBaseURL: defaultCoversBaseURL,
		httpClient:    &http.Client{Timeout: defaultTimeout},
		rateLimiter:   ratelimit.New("OpenLibrary", defaultRatePerSecond),
		editionLimit:  defaultEditionLimit,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the Open Library API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithCoversBaseURL sets a custom base URL for cover images.
func WithCoversBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.coversBaseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithRateLimiter sets a custom rate limiter for the client.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		if limiter != nil {
			client.rateLimiter = limiter
		}
	}
}

// WithEditionLimit caps how many editions are requested per work.
func WithEditionLimit(limit int) Option {
	return func(client *Client) {
		if limit > 0 {
			client.editionLimit = limit
		}
	}
}

// CoverURL synthesizes a cover image URL from a numeric cover identifier
// and a size code ("S", "M" or "L"). No remote call is involved; a
// non-positive id means there is no cover.
func (c *Client) CoverURL(coverID int, size string) string {
	if coverID <= 0 {
		return ""
	}
	if size == "" {
		size = "L"
	}
	return fmt.Sprintf("%s/id/%d-%s.jpg", c.coversBaseURL, coverID, size)
}
