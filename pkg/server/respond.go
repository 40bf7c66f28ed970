package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/thumbforge/pkg/errors"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code"`
	Hint  string      `json:"hint,omitempty"`
}

// statusError pins a status that the code mapping would not produce.
type statusError struct {
	status int
	err    *errors.Error
}

func (e *statusError) Error() string { return e.err.Error() }
func (e *statusError) Unwrap() error { return e.err }

func notFound(r *http.Request) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path)
}

func methodNotAllowed(r *http.Request) error {
	return &statusError{
		status: http.StatusMethodNotAllowed,
		err:    errors.New(errors.ErrCodeInvalidInput, "method %s not allowed on %s", r.Method, r.URL.Path),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes err as an ErrorResponse. Uncoded errors are reported
// as INTERNAL_ERROR without leaking their text.
func writeError(w http.ResponseWriter, r *http.Request, logger *log.Logger, err error) {
	code := errors.GetCode(err)
	resp := ErrorResponse{Code: code, Error: errors.UserMessage(err), Hint: errors.Hint(err)}
	if code == "" {
		resp = ErrorResponse{Code: errors.ErrCodeInternal, Error: "internal server error"}
	}
	status := errors.HTTPStatus(resp.Code)
	var se *statusError
	if stderrors.As(err, &se) {
		status = se.status
	}
	if resp.Hint == resp.Error {
		resp.Hint = ""
	}

	var rl *errors.RateLimitedError
	if stderrors.As(err, &rl) && rl.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfter))
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "path", r.URL.Path, "status", status, "error", err,
			"request_id", RequestIDFromContext(r.Context()))
	} else {
		logger.Debug("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, resp)
}

// decodeJSON reads one JSON value from a size-limited body.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case stderrors.As(err, &tooLarge):
			return &statusError{
				status: http.StatusRequestEntityTooLarge,
				err:    errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit),
			}
		case stderrors.Is(err, io.EOF):
			return errors.New(errors.ErrCodeInvalidInput, "request body is empty")
		default:
			// Field values with their own decoders (colors, layouts) carry
			// a code of their own.
			if errors.GetCode(err) != "" {
				return err
			}
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON body")
		}
	}
	return nil
}
