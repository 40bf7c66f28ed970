// Package errors defines the coded errors shared by the renderer, the
// analyzer clients, the CLI and the HTTP API.
//
// Every failure a user can act on carries a [Code]. The CLI prints the
// message and a [Hint]; the server turns the code into a status with
// [HTTPStatus] and echoes it in the JSON error body, which is how the
// proxy analyzer recovers the code on the other side.
//
// Codes fall into four groups:
//   - INVALID_*: a config, script or flag was rejected
//   - NETWORK_ERROR, TIMEOUT, RATE_LIMITED: the analyzer could not be reached in time
//   - UNAUTHORIZED, MISCONFIGURED: the analyzer credential is wrong or missing
//   - MALFORMED_RESPONSE, INTERNAL_ERROR, UNSUPPORTED, NOT_FOUND: everything else
//
// Typical use:
//
//	if _, err := thumbnail.ParseLayout(tag); err != nil {
//	    return errors.Wrap(errors.ErrCodeInvalidConfig, err, "layout flag")
//	}
//	if errors.Is(err, errors.ErrCodeMisconfigured) {
//	    // fall back to rendering without analysis
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error class. It appears verbatim in API
// responses.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidScheme Code = "INVALID_SCHEME"
	ErrCodeInvalidLayout Code = "INVALID_LAYOUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	ErrCodeNotFound Code = "NOT_FOUND"

	// Analyzer transport
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	// Analyzer credentials
	ErrCodeUnauthorized  Code = "UNAUTHORIZED"
	ErrCodeMisconfigured Code = "MISCONFIGURED"

	ErrCodeMalformedResponse Code = "MALFORMED_RESPONSE"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is [New] with a cause. The outer code wins over any code in cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost coded error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode returns the code of the outermost coded error in err's chain,
// or "" when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var rl *RateLimitedError
	if errors.As(err, &rl) {
		return rl.Code()
	}
	return ""
}

// UserMessage returns err's message without the code prefix.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// RateLimitedError is returned when an analyzer answers 429. RetryAfter is
// zero when the provider sent no usable Retry-After header.
type RateLimitedError struct {
	RetryAfter int    // seconds
	Message    string // provider's own explanation, if any
}

func (e *RateLimitedError) Error() string {
	msg := "rate limited"
	if e.RetryAfter > 0 {
		msg = fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
	}
	if e.Message != "" {
		msg += " (" + e.Message + ")"
	}
	return msg
}

// Code always returns ErrCodeRateLimited.
func (e *RateLimitedError) Code() Code {
	return ErrCodeRateLimited
}
