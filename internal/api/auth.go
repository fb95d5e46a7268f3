package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-querystring/query"
)

const (
	// tokenSafetyMargin is subtracted from a token's expiry when
	// deciding whether it is still usable, so a token is never
	// attached moments before it expires server-side.
	tokenSafetyMargin = 30 * time.Second

	// defaultTokenTTL is assumed when the token endpoint reports no
	// expiry and the token itself carries no exp claim.
	defaultTokenTTL = time.Hour
)

// CredentialProvider resolves the authorization header for a request.
// Apply is called before every attempt, so implementations must be safe
// for concurrent use and cheap when no refresh is needed.
type CredentialProvider interface {
	Apply(ctx context.Context, req *http.Request) error
}

// APIKeyCredentials authenticates requests with a fixed API key. It is
// stateless and never performs I/O.
type APIKeyCredentials struct {
	key string
}

// NewAPIKeyCredentials returns a provider that attaches the given key
// as the X-Api-Key header.
func NewAPIKeyCredentials(key string) *APIKeyCredentials {
	return &APIKeyCredentials{key: key}
}

// Apply sets the X-Api-Key header.
func (a *APIKeyCredentials) Apply(_ context.Context, req *http.Request) error {
	req.Header.Set("X-Api-Key", a.key)
	return nil
}

// ClientCredentials authenticates requests with an OAuth2 client
// credentials grant, caching the access token until shortly before it
// expires. Concurrent callers that both observe an expired token may
// each perform a refresh; the last write to the cache wins.
type ClientCredentials struct {
	clientID     string
	clientSecret string
	tokenURL     string
	httpClient   *http.Client
	timeout      time.Duration
	logger       RequestLogger

	mu    sync.Mutex
	token *cachedToken
}

// cachedToken is an access token plus its expiry. It is replaced
// wholesale on every refresh, never mutated.
type cachedToken struct {
	accessToken string
	expiresAt   time.Time
}

func (t *cachedToken) valid(now time.Time) bool {
	return t != nil && now.Before(t.expiresAt.Add(-tokenSafetyMargin))
}

// ClientCredentialsConfig configures a ClientCredentials provider.
type ClientCredentialsConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	HTTPClient   *http.Client
	Timeout      time.Duration
	Logger       RequestLogger
}

// NewClientCredentials creates an OAuth2 client credentials provider.
func NewClientCredentials(cfg ClientCredentialsConfig) (*ClientCredentials, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("client ID and client secret are required")
	}
	if cfg.TokenURL == "" {
		return nil, fmt.Errorf("token URL is required")
	}

	c := &ClientCredentials{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		tokenURL:     cfg.TokenURL,
		httpClient:   cfg.HTTPClient,
		timeout:      cfg.Timeout,
		logger:       cfg.Logger,
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	if c.timeout <= 0 {
		c.timeout = 30 * time.Second
	}
	if c.logger == nil {
		c.logger = &NoopLogger{}
	}
	return c, nil
}

// Apply sets a bearer Authorization header, refreshing the cached
// token first if needed.
func (c *ClientCredentials) Apply(ctx context.Context, req *http.Request) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

// Invalidate discards the cached token so the next call fetches a
// fresh one.
func (c *ClientCredentials) Invalidate() {
	c.mu.Lock()
	c.token = nil
	c.mu.Unlock()
}

// accessToken returns a valid access token, fetching a new one if the
// cache is empty or about to expire. The lock is never held across the
// network exchange.
func (c *ClientCredentials) accessToken(ctx context.Context) (string, error) {
	now := time.Now()

	c.mu.Lock()
	token := c.token
	c.mu.Unlock()

	if token.valid(now) {
		return token.accessToken, nil
	}

	c.logger.Debugf("fetching OAuth2 access token from %s", c.tokenURL)
	fresh, err := c.fetchToken(ctx)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.token = fresh
	c.mu.Unlock()

	return fresh.accessToken, nil
}

// tokenRequest is the client credentials grant form body.
type tokenRequest struct {
	GrantType    string `url:"grant_type"`
	ClientID     string `url:"client_id"`
	ClientSecret string `url:"client_secret"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// fetchToken performs the client credentials exchange. It shares the
// engine's per-attempt timeout but is never retried: a failure here is
// an authentication error, not a transient fault.
func (c *ClientCredentials) fetchToken(ctx context.Context) (*cachedToken, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	form, err := query.Values(tokenRequest{
		GrantType:    "client_credentials",
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
	})
	if err != nil {
		return nil, fmt.Errorf("encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &AuthError{Message: fmt.Sprintf("token request failed: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &AuthError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("read token response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw := decodeErrorBody(body)
		return nil, &AuthError{
			StatusCode: resp.StatusCode,
			Message:    messageFrom(raw, fmt.Sprintf("token endpoint returned status %d", resp.StatusCode)),
			Raw:        raw,
		}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, &AuthError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("malformed token response: %v", err)}
	}
	if tr.AccessToken == "" {
		return nil, &AuthError{StatusCode: resp.StatusCode, Message: "token response contains no access token"}
	}

	return &cachedToken{
		accessToken: tr.AccessToken,
		expiresAt:   tokenExpiry(tr, time.Now()),
	}, nil
}

// tokenExpiry determines when a token expires. The expires_in field
// wins; without it, a JWT exp claim is used, and failing that the
// default TTL.
func tokenExpiry(tr tokenResponse, now time.Time) time.Time {
	if tr.ExpiresIn > 0 {
		return now.Add(time.Duration(tr.ExpiresIn) * time.Second)
	}
	if exp, ok := jwtExpiry(tr.AccessToken); ok {
		return exp
	}
	return now.Add(defaultTokenTTL)
}

// jwtExpiry extracts the exp claim from a JWT access token. The token
// is not verified; the expiry is only a refresh hint, the server
// remains the authority on validity.
func jwtExpiry(token string) (time.Time, bool) {
	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
