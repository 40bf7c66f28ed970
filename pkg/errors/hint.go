package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Hint returns a short, user-actionable sentence for err.
// Coded analyzer failures get specific advice (set a key, wait, check the
// server); everything else falls back to [UserMessage].
func Hint(err error) string {
	if err == nil {
		return ""
	}
	switch GetCode(err) {
	case ErrCodeUnauthorized:
		return "The API key was rejected. Check the key and try again."
	case ErrCodeRateLimited:
		var rl *RateLimitedError
		if errors.As(err, &rl) && rl.RetryAfter > 0 {
			return fmt.Sprintf("Rate limited by the analyzer. Wait %d seconds and try again.", rl.RetryAfter)
		}
		return "Rate limited by the analyzer. Wait a moment and try again."
	case ErrCodeMisconfigured:
		return "No analyzer credential is configured. Set an API key in the config file or environment."
	case ErrCodeMalformedResponse:
		return "The analyzer returned a response that could not be read. Try again."
	case ErrCodeTimeout:
		return "The analyzer did not answer in time. Try again or raise the timeout."
	case ErrCodeNetwork:
		return "Could not reach the analyzer. Check the network and the base URL."
	}
	return UserMessage(err)
}

// HTTPStatus maps an error code to the HTTP status used by the API server.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidScheme,
		ErrCodeInvalidLayout, ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeMisconfigured:
		return http.StatusServiceUnavailable
	case ErrCodeMalformedResponse, ErrCodeNetwork:
		return http.StatusBadGateway
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

// CodeForStatus classifies an upstream HTTP status into an error code.
// It is the inverse of [HTTPStatus] for the statuses an analyzer returns.
func CodeForStatus(status int) Code {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrCodeUnauthorized
	case status == http.StatusTooManyRequests:
		return ErrCodeRateLimited
	case status == http.StatusBadRequest:
		return ErrCodeInvalidInput
	case status == http.StatusNotFound:
		return ErrCodeNotFound
	case status == http.StatusServiceUnavailable:
		return ErrCodeMisconfigured
	case status == http.StatusGatewayTimeout:
		return ErrCodeTimeout
	case status >= 500:
		return ErrCodeNetwork
	}
	return ErrCodeInternal
}
