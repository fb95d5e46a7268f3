package api

import (
	"errors"
	"fmt"
	"time"
)

// Common API errors that can be checked with errors.Is.
var (
	// ErrUnauthorized indicates the credentials were rejected by the API.
	ErrUnauthorized = errors.New("invalid or expired credentials")
	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// APIError represents an HTTP error from the Intelligent Data API.
// Raw holds the decoded error body when the server returned one.
type APIError struct {
	StatusCode int
	Message    string
	Raw        map[string]any
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 401, 403:
		return target == ErrUnauthorized
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// RateLimitError represents a 429 response. RetryAfter carries the
// server-suggested delay when the response included a Retry-After
// header, and is zero otherwise.
type RateLimitError struct {
	APIError
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("API error 429: %s (retry after %v)", e.Message, e.RetryAfter)
	}
	return e.APIError.Error()
}

// AuthError represents a failed authentication exchange: either the
// API rejected the request credentials (401/403) or the OAuth2 token
// endpoint refused to issue a token. Authentication failures are never
// retried so that bad credentials are not masked as transient faults.
type AuthError struct {
	StatusCode int
	Message    string
	Raw        map[string]any
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("authentication failed: %s", e.Message)
	}
	return "authentication failed"
}

// Is implements errors.Is for sentinel error matching.
func (e *AuthError) Is(target error) bool {
	return target == ErrUnauthorized
}

// NetworkError represents a network-level failure.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}
