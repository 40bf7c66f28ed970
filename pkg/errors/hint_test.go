package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"unauthorized", New(ErrCodeUnauthorized, "status 401"), "API key was rejected"},
		{"misconfigured", New(ErrCodeMisconfigured, "no key"), "No analyzer credential"},
		{"rate limited with delay", fmt.Errorf("x: %w", &RateLimitedError{RetryAfter: 12}), "Wait 12 seconds"},
		{"rate limited", &RateLimitedError{}, "Wait a moment"},
		{"malformed", New(ErrCodeMalformedResponse, "bad json"), "could not be read"},
		{"plain", errors.New("disk full"), "disk full"},
		{"other code", New(ErrCodeInvalidLayout, "unknown layout: zig"), "unknown layout: zig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hint(tt.err)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Hint() = %q, want substring %q", got, tt.want)
			}
		})
	}
}

func TestHTTPStatusRoundTrip(t *testing.T) {
	for _, status := range []int{
		http.StatusUnauthorized,
		http.StatusTooManyRequests,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
	} {
		code := CodeForStatus(status)
		if got := HTTPStatus(code); got != status {
			t.Errorf("HTTPStatus(CodeForStatus(%d)) = %d", status, got)
		}
	}
}

func TestCodeForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   Code
	}{
		{401, ErrCodeUnauthorized},
		{403, ErrCodeUnauthorized},
		{429, ErrCodeRateLimited},
		{400, ErrCodeInvalidInput},
		{500, ErrCodeNetwork},
		{529, ErrCodeNetwork},
		{503, ErrCodeMisconfigured},
		{418, ErrCodeInternal},
	}
	for _, tt := range tests {
		if got := CodeForStatus(tt.status); got != tt.want {
			t.Errorf("CodeForStatus(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
