package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout is the per-attempt timeout applied when none is
// configured.
const DefaultTimeout = 30 * time.Second

// Client executes authenticated HTTP calls against the Intelligent
// Data API. Every API call passes through Do, which applies the
// per-attempt timeout, resolves credentials before each attempt and
// retries transient failures per the configured retry policy.
type Client struct {
	baseURL     string
	credentials CredentialProvider
	httpClient  *http.Client
	timeout     time.Duration
	retry       *RetryConfig
	logger      RequestLogger
	userAgent   string
}

// Config configures the API client.
type Config struct {
	// BaseURL is the API root, without a trailing slash.
	BaseURL string
	// Credentials resolves the authorization header for each attempt.
	Credentials CredentialProvider
	// HTTPClient is the underlying HTTP client. Defaults to a fresh
	// client; the per-attempt timeout is enforced via context, not
	// http.Client.Timeout.
	HTTPClient *http.Client
	// Timeout bounds each individual attempt, not the whole call.
	Timeout time.Duration
	// Retry is the retry policy. Defaults to DefaultRetryConfig.
	Retry *RetryConfig
	// Logger receives request, retry and error logs.
	Logger RequestLogger
	// UserAgent is sent on every request.
	UserAgent string
}

// New creates a new API client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.Credentials == nil {
		return nil, fmt.Errorf("credentials are required")
	}

	c := &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		credentials: cfg.Credentials,
		httpClient:  cfg.HTTPClient,
		timeout:     cfg.Timeout,
		retry:       cfg.Retry,
		logger:      cfg.Logger,
		userAgent:   cfg.UserAgent,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.retry == nil {
		c.retry = DefaultRetryConfig()
	}
	if c.logger == nil {
		c.logger = &NoopLogger{}
	}
	return c, nil
}

// CloseIdleConnections releases any idle connections held by the
// underlying HTTP client.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// Do executes an API call. body is marshalled to JSON when non-nil.
// Transient failures (network errors, timeouts, 5xx, 429) are retried
// up to the attempt ceiling with exponential backoff; a Retry-After
// value on a 429 takes precedence over the computed delay. When
// retries are exhausted the last classified error is returned
// unchanged so callers see the true cause.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		payload = data
	}

	maxAttempts := c.retry.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := c.attempt(ctx, attempt, method, path, payload)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if attempt == maxAttempts-1 || !c.shouldRetry(ctx, err) {
			break
		}

		delay := c.retry.Delay(attempt)
		var rle *RateLimitError
		if errors.As(err, &rle) && rle.RetryAfter > 0 {
			delay = rle.RetryAfter
		}

		c.logger.Warnf("%s %s attempt %d failed, retrying in %v: %v",
			method, path, attempt+1, delay, err)

		if werr := c.retry.Wait(ctx, delay); werr != nil {
			return nil, werr
		}
	}

	return nil, lastErr
}

// attempt performs a single HTTP exchange bounded by the per-attempt
// timeout. Credentials are resolved fresh on every attempt since a
// token may expire mid-retry-sequence.
func (c *Client) attempt(ctx context.Context, attempt int, method, path string, payload []byte) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	if err := c.credentials.Apply(ctx, req); err != nil {
		return nil, err
	}

	c.logger.Debugf("%s %s attempt %d", method, path, attempt+1)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err, URL: url, Attempt: attempt}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err, URL: url, Attempt: attempt}
	}

	return classify(resp.StatusCode, resp.Header, respBody)
}

// shouldRetry reports whether an attempt error is transient.
// Authentication failures, context cancellation, DNS resolution
// failures and non-retryable statuses fail immediately.
func (c *Client) shouldRetry(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		return false
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		if errors.Is(netErr.Err, context.Canceled) {
			return false
		}
		var dnsErr *net.DNSError
		if errors.As(netErr.Err, &dnsErr) {
			return false
		}
		return true
	}

	var rle *RateLimitError
	if errors.As(err, &rle) {
		return c.retry.RetryableOn(rle.StatusCode)
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return c.retry.RetryableOn(apiErr.StatusCode)
	}

	return false
}
