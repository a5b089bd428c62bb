package middlewares

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"time"
)

// Sentinels matched by errors.Is against the typed pipeline errors below.
var (
	ErrPanic   = errors.New("middlewares: handler panicked")
	ErrTimeout = errors.New("middlewares: request timed out")
)

// PanicError is a panic recovered from the inner chain, including panics
// raised on goroutines started by Timeout.
type PanicError struct {
	Value any    // The panic value
	Stack []byte // Stack trace (nil if disabled)
}

// newPanicError captures up to stackSize bytes of the current goroutine's
// stack. A non-positive size skips the capture.
func newPanicError(v any, stackSize int) *PanicError {
	pe := &PanicError{Value: v}
	if stackSize > 0 {
		stack := make([]byte, stackSize)
		pe.Stack = stack[:runtime.Stack(stack, false)]
	}
	return pe
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Is matches ErrPanic.
func (e *PanicError) Is(target error) bool {
	return target == ErrPanic
}

// Unwrap exposes the panic value when it is itself an error, so
// errors.Is(err, http.ErrAbortHandler) holds for an aborted handler.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// TimeoutError is returned when the inner chain misses its deadline.
type TimeoutError struct {
	Duration time.Duration // The timeout that was exceeded
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timeout after %s", e.Duration)
}

// Is matches ErrTimeout and context.DeadlineExceeded.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout || target == context.DeadlineExceeded
}

// StatusCode is the status an ErrorResponder answers with.
func (e *TimeoutError) StatusCode() int {
	return http.StatusGatewayTimeout
}

// IsPanicError reports whether err carries a recovered panic.
func IsPanicError(err error) bool {
	return errors.Is(err, ErrPanic)
}

// IsTimeoutError reports whether err carries a request timeout.
func IsTimeoutError(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// AsPanicError extracts the PanicError from an error if present.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	ok := errors.As(err, &pe)
	return pe, ok
}

// AsTimeoutError extracts the TimeoutError from an error if present.
func AsTimeoutError(err error) (*TimeoutError, bool) {
	var te *TimeoutError
	ok := errors.As(err, &te)
	return te, ok
}
