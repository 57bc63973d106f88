package restful

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Static errors that can be wrapped with context.
var (
	ErrBaseURLRequired = errors.New("base URL is required")
	ErrNilFactory      = errors.New("resource factory is nil")
)

// Error represents a non-2xx response from the API. It carries the raw
// response so callers (and error handlers) can inspect the status and body.
type Error struct {
	StatusCode int
	Status     string
	Method     string
	URL        string
	Headers    http.Header
	Body       []byte
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Status)
}

// JSON unmarshals the error response body into v, for APIs that return a
// structured error payload.
func (e *Error) JSON(v any) error {
	err := json.Unmarshal(e.Body, v)
	if err != nil {
		return fmt.Errorf("decoding error response body: %w", err)
	}

	return nil
}

// ErrorHandler transforms a non-2xx response into the error returned to the
// caller. The handler is trusted to return a non-nil error; a handler that
// returns nil makes the failed call appear to succeed, and the raw response
// body is then handed to JSON decoding as if the request had worked. This
// mirrors the documented caller contract rather than enforcing rejection.
type ErrorHandler func(*Response) error

// IsNotFound reports whether err is a 404 response error.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports whether err is a 401 response error.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden reports whether err is a 403 response error.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsServerError reports whether err is a 5xx response error.
func IsServerError(err error) bool {
	respErr := &Error{}
	if errors.As(err, &respErr) {
		return respErr.StatusCode >= http.StatusInternalServerError
	}

	return false
}

func hasStatus(err error, status int) bool {
	respErr := &Error{}
	if errors.As(err, &respErr) {
		return respErr.StatusCode == status
	}

	return false
}
