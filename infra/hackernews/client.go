package hackernews

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"hnterm/infra/logging"
)

// DefaultBaseURL is the public Firebase endpoint for the Hacker News API.
const DefaultBaseURL = "https://hacker-news.firebaseio.com/v0"

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "hnterm"
)

// Client is a thin HTTP wrapper for the Hacker News API. It handles base URL
// construction, a politeness rate limit, and status checking. Callers own
// cache and retry policy: the underlying retryable client is configured for
// a single attempt.
type Client struct {
	baseURL   string
	userAgent string
	limiter   *rate.Limiter
	http      *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (used by tests and mirrors).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLimiter overrides the request rate limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// NewClient creates a Hacker News API client.
func NewClient(opts ...Option) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 0 // single attempt; retries are the caller's decision
	rc.Logger = nil
	rc.HTTPClient.Timeout = defaultTimeout

	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: defaultUserAgent,
		limiter:   rate.NewLimiter(rate.Limit(30), 30),
		http:      rc.StandardClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET request against the API and returns the raw body.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logging.Log.WithField("path", path).WithField("status", resp.StatusCode).Debug("api error")
		return nil, fmt.Errorf("API GET %s returned %d", path, resp.StatusCode)
	}

	return data, nil
}
