package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Response is the outcome of a successful API call. Raw always holds
// the fully decoded response body so that fields not mapped by the SDK
// remain accessible; Body is the undecoded payload for typed projection
// by the caller.
type Response struct {
	StatusCode int
	Raw        map[string]any
	Body       []byte
}

// classify maps an HTTP status and body into either a Response or a
// typed error. Rules, in priority order: 2xx success (a body that fails
// to decode is a malformed-response error, not success), 429 rate
// limit, 5xx retryable server error, other 4xx non-retryable client
// error, anything else a generic error carrying the raw status.
func classify(statusCode int, header http.Header, body []byte) (*Response, error) {
	if statusCode >= 200 && statusCode < 300 {
		raw := map[string]any{}
		if len(body) > 0 {
			if err := json.Unmarshal(body, &raw); err != nil {
				return nil, &APIError{
					StatusCode: statusCode,
					Message:    fmt.Sprintf("malformed response body: %v", err),
				}
			}
		}
		return &Response{StatusCode: statusCode, Raw: raw, Body: body}, nil
	}

	raw := decodeErrorBody(body)

	switch {
	case statusCode == http.StatusTooManyRequests:
		retryAfter, _ := parseRetryAfter(header.Get("Retry-After"))
		return nil, &RateLimitError{
			APIError: APIError{
				StatusCode: statusCode,
				Message:    messageFrom(raw, "rate limit exceeded"),
				Raw:        raw,
			},
			RetryAfter: retryAfter,
		}

	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return nil, &AuthError{
			StatusCode: statusCode,
			Message:    messageFrom(raw, "authentication failed"),
			Raw:        raw,
		}

	case statusCode >= 500 && statusCode < 600:
		return nil, &APIError{
			StatusCode: statusCode,
			Message:    messageFrom(raw, "server error"),
			Raw:        raw,
		}

	case statusCode >= 400 && statusCode < 500:
		return nil, &APIError{
			StatusCode: statusCode,
			Message:    messageFrom(raw, fmt.Sprintf("request failed: %s", http.StatusText(statusCode))),
			Raw:        raw,
		}

	default:
		return nil, &APIError{
			StatusCode: statusCode,
			Message:    fmt.Sprintf("unexpected status %d", statusCode),
			Raw:        raw,
		}
	}
}

// decodeErrorBody decodes an error body as a JSON object, returning nil
// for empty or non-JSON bodies.
func decodeErrorBody(body []byte) map[string]any {
	if len(body) == 0 {
		return nil
	}
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil
	}
	return raw
}

// messageFrom extracts a human-readable message from a decoded error
// body, trying the "message" then "error" fields.
func messageFrom(raw map[string]any, fallback string) string {
	for _, key := range []string{"message", "error"} {
		if msg, ok := raw[key].(string); ok && msg != "" {
			return msg
		}
	}
	return fallback
}

// parseRetryAfter parses a Retry-After header value, which may be a
// number of seconds or an HTTP date.
func parseRetryAfter(value string) (time.Duration, bool) {
	if value == "" {
		return 0, false
	}
	if secs, err := strconv.ParseFloat(value, 64); err == nil && secs >= 0 {
		return time.Duration(secs * float64(time.Second)), true
	}
	if when, err := http.ParseTime(value); err == nil {
		if d := time.Until(when); d > 0 {
			return d, true
		}
		return 0, true
	}
	return 0, false
}
