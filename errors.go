package intelligentdata

import (
	"errors"

	"github.com/intelligentdata/client-go/internal/api"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingCredentials is returned when neither an API key nor
	// OAuth2 client credentials are configured.
	ErrMissingCredentials = errors.New("either an API key or client credentials are required")

	// ErrAmbiguousCredentials is returned when both an API key and
	// OAuth2 client credentials are configured.
	ErrAmbiguousCredentials = errors.New("configure either an API key or client credentials, not both")

	// ErrIncompleteCredentials is returned when only one of client ID
	// and client secret is configured.
	ErrIncompleteCredentials = errors.New("client ID and client secret must both be set")

	// ErrClientClosed is returned when operations are attempted on a
	// closed client.
	ErrClientClosed = errors.New("client has been closed")

	// ErrUnauthorized is returned when the API rejects the configured
	// credentials or the token exchange fails.
	ErrUnauthorized = api.ErrUnauthorized

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = api.ErrRateLimited
)

// APIError represents an HTTP error from the Intelligent Data API.
type APIError = api.APIError

// RateLimitError represents a 429 response, optionally carrying the
// server-suggested retry delay.
type RateLimitError = api.RateLimitError

// AuthError represents a failed authentication exchange.
type AuthError = api.AuthError

// NetworkError represents a network-level failure.
type NetworkError = api.NetworkError

// RequestLogger is the interface used for logging HTTP requests,
// retries and errors. Supply an implementation via [WithRequestLogger].
type RequestLogger = api.RequestLogger

// NoopLogger is a [RequestLogger] that discards all log output. It is
// the default when no logger is configured.
type NoopLogger = api.NoopLogger
