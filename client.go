package intelligentdata

import (
	"context"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/intelligentdata/client-go/internal/api"
)

// Client is the Intelligent Data API client. It is safe for use from
// multiple goroutines; the only shared mutable state is the OAuth2
// token cache inside the credential provider.
//
// Use [New] to create a client and Close to release its connection
// resources when done.
type Client struct {
	api        *api.Client
	httpClient *http.Client

	mu     sync.RWMutex
	closed bool
}

// New creates a new client. Exactly one authentication mode must be
// configured: [WithAPIKey] or [WithClientCredentials]. Configuration
// errors are detected here, before any request reaches the network.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		baseURL: defaultBaseURL,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	credentials, err := buildCredentials(cfg)
	if err != nil {
		return nil, err
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	retry := api.DefaultRetryConfig()
	if cfg.maxAttempts >= 1 {
		retry.MaxAttempts = cfg.maxAttempts
	}
	if cfg.retryWaitTime > 0 {
		retry.BaseDelay = cfg.retryWaitTime
	}
	if cfg.retryMaxWaitTime > 0 {
		retry.MaxDelay = cfg.retryMaxWaitTime
	}

	apiClient, err := api.New(api.Config{
		BaseURL:     cfg.baseURL,
		Credentials: credentials,
		HTTPClient:  httpClient,
		Timeout:     cfg.timeout,
		Retry:       retry,
		Logger:      cfg.logger,
		UserAgent:   userAgent,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		api:        apiClient,
		httpClient: httpClient,
	}, nil
}

// NewFromEnv creates a client configured from environment variables:
// INTELLIGENTDATA_API_KEY, or INTELLIGENTDATA_CLIENT_ID and
// INTELLIGENTDATA_CLIENT_SECRET, plus optional INTELLIGENTDATA_BASE_URL
// and INTELLIGENTDATA_TOKEN_URL. Explicit options override the
// environment.
func NewFromEnv(opts ...Option) (*Client, error) {
	var envOpts []Option
	if key := os.Getenv("INTELLIGENTDATA_API_KEY"); key != "" {
		envOpts = append(envOpts, WithAPIKey(key))
	}
	clientID := os.Getenv("INTELLIGENTDATA_CLIENT_ID")
	clientSecret := os.Getenv("INTELLIGENTDATA_CLIENT_SECRET")
	if clientID != "" || clientSecret != "" {
		envOpts = append(envOpts, WithClientCredentials(clientID, clientSecret))
	}
	if baseURL := os.Getenv("INTELLIGENTDATA_BASE_URL"); baseURL != "" {
		envOpts = append(envOpts, WithBaseURL(baseURL))
	}
	if tokenURL := os.Getenv("INTELLIGENTDATA_TOKEN_URL"); tokenURL != "" {
		envOpts = append(envOpts, WithTokenURL(tokenURL))
	}

	return New(append(envOpts, opts...)...)
}

// buildCredentials validates the configured auth mode and constructs
// the matching credential provider.
func buildCredentials(cfg *clientConfig) (api.CredentialProvider, error) {
	hasKey := cfg.apiKey != ""
	hasOAuth := cfg.clientID != "" || cfg.clientSecret != ""

	switch {
	case hasKey && hasOAuth:
		return nil, ErrAmbiguousCredentials
	case !hasKey && !hasOAuth:
		return nil, ErrMissingCredentials
	case hasKey:
		return api.NewAPIKeyCredentials(cfg.apiKey), nil
	}

	if cfg.clientID == "" || cfg.clientSecret == "" {
		return nil, ErrIncompleteCredentials
	}

	tokenURL := cfg.tokenURL
	if tokenURL == "" {
		tokenURL = strings.TrimRight(cfg.baseURL, "/") + defaultTokenPath
	}

	return api.NewClientCredentials(api.ClientCredentialsConfig{
		ClientID:     cfg.clientID,
		ClientSecret: cfg.clientSecret,
		TokenURL:     tokenURL,
		HTTPClient:   cfg.httpClient,
		Timeout:      cfg.timeout,
		Logger:       cfg.logger,
	})
}

// checkClosed returns ErrClientClosed if the client has been closed.
func (c *Client) checkClosed() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// post executes a domain operation through the transport engine.
func (c *Client) post(ctx context.Context, path string, body any) (*api.Response, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	return c.api.Do(ctx, http.MethodPost, path, body)
}

// Close releases the client's connection resources. The client cannot
// be used afterwards; operations return ErrClientClosed. Close is
// idempotent.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.httpClient.CloseIdleConnections()
	return nil
}
