package intelligentdata

import (
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.smartvmapi.com"
	defaultTimeout = 30 * time.Second

	// defaultTokenPath is appended to the base URL when no explicit
	// token URL is configured.
	defaultTokenPath = "/api/oauth/token"

	userAgent = "intelligentdata-go-sdk/" + Version
)

// Version is the SDK version, sent in the User-Agent header.
const Version = "0.1.0"

// clientConfig holds configuration for the client.
type clientConfig struct {
	apiKey       string
	clientID     string
	clientSecret string
	tokenURL     string

	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     RequestLogger

	maxAttempts      int
	retryWaitTime    time.Duration
	retryMaxWaitTime time.Duration
}

// Option configures the client.
type Option func(*clientConfig)

// WithAPIKey configures API key authentication. Mutually exclusive
// with [WithClientCredentials].
func WithAPIKey(key string) Option {
	return func(c *clientConfig) {
		c.apiKey = key
	}
}

// WithClientCredentials configures OAuth2 client credentials
// authentication. Mutually exclusive with [WithAPIKey].
func WithClientCredentials(clientID, clientSecret string) Option {
	return func(c *clientConfig) {
		c.clientID = clientID
		c.clientSecret = clientSecret
	}
}

// WithTokenURL overrides the OAuth2 token endpoint. The default is the
// base URL plus /api/oauth/token.
func WithTokenURL(url string) Option {
	return func(c *clientConfig) {
		c.tokenURL = url
	}
}

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithTimeout sets the timeout applied to each individual request
// attempt. Default: 30 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithMaxAttempts sets the total number of attempts per call,
// including the first. Default: 3.
func WithMaxAttempts(attempts int) Option {
	return func(c *clientConfig) {
		if attempts >= 1 {
			c.maxAttempts = attempts
		}
	}
}

// WithRetryWaitTime sets the base delay between retry attempts.
// Default: 500ms.
func WithRetryWaitTime(waitTime time.Duration) Option {
	return func(c *clientConfig) {
		if waitTime > 0 {
			c.retryWaitTime = waitTime
		}
	}
}

// WithRetryMaxWaitTime sets the maximum delay between retry attempts.
// Default: 10 seconds.
func WithRetryMaxWaitTime(maxWaitTime time.Duration) Option {
	return func(c *clientConfig) {
		if maxWaitTime > 0 {
			c.retryMaxWaitTime = maxWaitTime
		}
	}
}

// WithRequestLogger sets the logger used for request, retry and error
// logs. The default discards all output. Ensure your implementation
// redacts credentials before persisting logs.
func WithRequestLogger(logger RequestLogger) Option {
	return func(c *clientConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}
