package api

import (
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestClassify_Success(t *testing.T) {
	body := []byte(`{"isValid":true,"confidenceScore":0.95,"vendorRef":"abc"}`)

	resp, err := classify(200, http.Header{}, body)
	if err != nil {
		t.Fatalf("classify() error = %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if resp.Raw["isValid"] != true {
		t.Errorf("Raw[isValid] = %v, want true", resp.Raw["isValid"])
	}
	// Unmapped fields remain accessible through Raw.
	if resp.Raw["vendorRef"] != "abc" {
		t.Errorf("Raw[vendorRef] = %v, want abc", resp.Raw["vendorRef"])
	}
	if string(resp.Body) != string(body) {
		t.Errorf("Body = %s, want original payload", resp.Body)
	}
}

func TestClassify_EmptySuccessBody(t *testing.T) {
	resp, err := classify(204, http.Header{}, nil)
	if err != nil {
		t.Fatalf("classify() error = %v", err)
	}
	if resp.Raw == nil || len(resp.Raw) != 0 {
		t.Errorf("Raw = %v, want empty map", resp.Raw)
	}
}

func TestClassify_MalformedSuccessBody(t *testing.T) {
	_, err := classify(200, http.Header{}, []byte(`not json`))

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *APIError", err)
	}
	if apiErr.StatusCode != 200 {
		t.Errorf("StatusCode = %d, want 200", apiErr.StatusCode)
	}
}

func TestClassify_RateLimit(t *testing.T) {
	tests := []struct {
		name       string
		retryAfter string
		body       string
		wantDelay  time.Duration
		wantMsg    string
	}{
		{"with seconds header", "5", `{"message":"slow down"}`, 5 * time.Second, "slow down"},
		{"with fractional seconds", "1.5", "", 1500 * time.Millisecond, "rate limit exceeded"},
		{"without header", "", `{"error":"too many requests"}`, 0, "too many requests"},
		{"garbage header", "soon", "", 0, "rate limit exceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.retryAfter != "" {
				header.Set("Retry-After", tt.retryAfter)
			}

			_, err := classify(429, header, []byte(tt.body))

			var rle *RateLimitError
			if !errors.As(err, &rle) {
				t.Fatalf("error = %T, want *RateLimitError", err)
			}
			if rle.RetryAfter != tt.wantDelay {
				t.Errorf("RetryAfter = %v, want %v", rle.RetryAfter, tt.wantDelay)
			}
			if rle.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", rle.Message, tt.wantMsg)
			}
			if !errors.Is(err, ErrRateLimited) {
				t.Error("errors.Is(err, ErrRateLimited) = false")
			}
		})
	}
}

func TestClassify_RetryAfterHTTPDate(t *testing.T) {
	header := http.Header{}
	header.Set("Retry-After", time.Now().Add(10*time.Second).UTC().Format(http.TimeFormat))

	_, err := classify(429, header, nil)

	var rle *RateLimitError
	if !errors.As(err, &rle) {
		t.Fatalf("error = %T, want *RateLimitError", err)
	}
	if rle.RetryAfter <= 0 || rle.RetryAfter > 10*time.Second {
		t.Errorf("RetryAfter = %v, want in (0s, 10s]", rle.RetryAfter)
	}
}

func TestClassify_AuthFailures(t *testing.T) {
	for _, status := range []int{401, 403} {
		_, err := classify(status, http.Header{}, []byte(`{"message":"nope"}`))

		var authErr *AuthError
		if !errors.As(err, &authErr) {
			t.Fatalf("classify(%d) error = %T, want *AuthError", status, err)
		}
		if authErr.StatusCode != status {
			t.Errorf("StatusCode = %d, want %d", authErr.StatusCode, status)
		}
		if !errors.Is(err, ErrUnauthorized) {
			t.Errorf("classify(%d): errors.Is(err, ErrUnauthorized) = false", status)
		}
	}
}

func TestClassify_ServerError(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"message field", `{"message":"db down"}`, "db down"},
		{"error field", `{"error":"overloaded"}`, "overloaded"},
		{"plain text body", `Internal Server Error`, "server error"},
		{"empty body", "", "server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := classify(503, http.Header{}, []byte(tt.body))

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %T, want *APIError", err)
			}
			if apiErr.StatusCode != 503 {
				t.Errorf("StatusCode = %d, want 503", apiErr.StatusCode)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestClassify_ClientError(t *testing.T) {
	_, err := classify(404, http.Header{}, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *APIError", err)
	}
	if apiErr.Message != "request failed: Not Found" {
		t.Errorf("Message = %q, want generic message derived from status", apiErr.Message)
	}
}

func TestClassify_UnexpectedStatus(t *testing.T) {
	_, err := classify(302, http.Header{}, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *APIError", err)
	}
	if apiErr.StatusCode != 302 {
		t.Errorf("StatusCode = %d, want 302", apiErr.StatusCode)
	}
	if apiErr.Message != "unexpected status 302" {
		t.Errorf("Message = %q, want raw status in message", apiErr.Message)
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		value  string
		want   time.Duration
		wantOK bool
	}{
		{"", 0, false},
		{"0", 0, true},
		{"5", 5 * time.Second, true},
		{"2.5", 2500 * time.Millisecond, true},
		{"-1", 0, false},
		{"later", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseRetryAfter(tt.value)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parseRetryAfter(%q) = (%v, %v), want (%v, %v)",
				tt.value, got, ok, tt.want, tt.wantOK)
		}
	}
}
