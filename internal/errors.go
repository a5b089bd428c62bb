package internal

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the pipeline. Contract violations are programming
// errors: they are returned immediately and never retried.
var (
	// ErrNotResolvable is matched by every *NotResolvableError.
	ErrNotResolvable = errors.New("callable is not resolvable")

	// ErrQueueFrozen is returned by Add once a dispatch has begun.
	ErrQueueFrozen = errors.New("middleware queue is running or finalized")

	// ErrAlreadySeeded is returned by a second call to Seed.
	ErrAlreadySeeded = errors.New("stack already seeded")

	// ErrBadReturn is returned when a middleware or handler yields neither a
	// response nor an error.
	ErrBadReturn = errors.New("middleware must return a response object")

	// ErrInvalidMiddleware is returned when a registered value is not
	// middleware-shaped.
	ErrInvalidMiddleware = errors.New("middleware must implement Process(*http.Request, Handler) (*Response, error)")

	// ErrEmptyQueue is returned by a Runner dispatched with no middleware.
	ErrEmptyQueue = errors.New("middleware queue should not be empty")

	// ErrQueueExhausted is returned when the innermost middleware of a Runner
	// delegates to a next link that does not exist.
	ErrQueueExhausted = errors.New("middleware queue exhausted without a response")

	// ErrNextCalledTwice is returned when a middleware calls its next handler
	// more than once in a single dispatch.
	ErrNextCalledTwice = errors.New("next handler called more than once")

	// ErrNotSeeded is returned by a dispatcher that was never given a
	// terminal handler.
	ErrNotSeeded = errors.New("dispatcher has no terminal handler")

	// ErrRouteNotFound is matched by every *RouteNotFoundError.
	ErrRouteNotFound = errors.New("route not found")

	// ErrMissingParameter is matched by every *MissingParameterError.
	ErrMissingParameter = errors.New("missing route parameter")

	// ErrNoRouter is returned when the kernel has no router to consult.
	ErrNoRouter = errors.New("no router configured")
)

// NotResolvableError reports a reference that could not become an invocable
// target.
type NotResolvableError struct {
	Err       error
	Reference string
	Reason    string
}

func (e *NotResolvableError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("%s is not resolvable", e.Reference)
}

func (e *NotResolvableError) Unwrap() error {
	return e.Err
}

// Is reports a match against ErrNotResolvable.
func (e *NotResolvableError) Is(target error) bool {
	return target == ErrNotResolvable
}

func notResolvable(ref, format string, args ...any) *NotResolvableError {
	return &NotResolvableError{Reference: ref, Reason: fmt.Sprintf(format, args...)}
}

// RouteNotFoundError is returned by PathFor for an unknown route name.
type RouteNotFoundError struct {
	Name string
}

func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("named route does not exist for name: %s", e.Name)
}

// Is reports a match against ErrRouteNotFound.
func (e *RouteNotFoundError) Is(target error) bool {
	return target == ErrRouteNotFound
}

// MissingParameterError is returned by PathFor when a required path segment
// has no value.
type MissingParameterError struct {
	Route     string
	Parameter string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing data for URL segment: %s (route %s)", e.Parameter, e.Route)
}

// Is reports a match against ErrMissingParameter.
func (e *MissingParameterError) Is(target error) bool {
	return target == ErrMissingParameter
}

// HTTPError represents an HTTP error with all data needed for rendering.
// Error-handling middleware translates it into a response; the pipeline
// itself never produces one.
type HTTPError struct {
	// Err is the underlying error (for logging, not exposed to users).
	Err error

	// Message is the user-facing error message.
	Message string

	// Code is the HTTP status code (e.g., 404, 500).
	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// WrapHTTPError creates an HTTPError carrying err as its cause.
func WrapHTTPError(code int, message string, err error) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// AsHTTPError extracts the HTTPError from an error chain if present.
// Returns nil if the chain holds no HTTPError.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}
