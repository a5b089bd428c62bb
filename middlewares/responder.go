package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/strata/internal"
	"github.com/dmitrymomot/strata/pkg/logger"
)

// ErrorRenderer builds the response for a failed request.
type ErrorRenderer func(r *http.Request, status int, message string) *internal.Response

// ErrorResponderConfig configures the error responder middleware.
type ErrorResponderConfig struct {
	Logger   *slog.Logger
	Renderer ErrorRenderer
	// ExposeErrors puts the raw error text into 5xx responses.
	ExposeErrors bool
}

// ErrorResponderOption configures ErrorResponderConfig.
type ErrorResponderOption func(*ErrorResponderConfig)

// WithErrorLogger sets the logger used for server errors.
func WithErrorLogger(l *slog.Logger) ErrorResponderOption {
	return func(cfg *ErrorResponderConfig) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// WithErrorRenderer sets a custom response renderer.
func WithErrorRenderer(fn ErrorRenderer) ErrorResponderOption {
	return func(cfg *ErrorResponderConfig) {
		if fn != nil {
			cfg.Renderer = fn
		}
	}
}

// WithExposeErrors includes internal error messages in 5xx responses.
// Use for development only.
func WithExposeErrors() ErrorResponderOption {
	return func(cfg *ErrorResponderConfig) {
		cfg.ExposeErrors = true
	}
}

// ErrorResponder returns middleware that turns errors from the inner chain
// into responses. *HTTPError keeps its code and message, *TimeoutError
// becomes 504 and anything else 500. Register it outermost so it sees
// errors from every other middleware.
func ErrorResponder(opts ...ErrorResponderOption) internal.Middleware {
	cfg := &ErrorResponderConfig{
		Logger:   logger.NewNope(),
		Renderer: DefaultErrorRenderer,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return internal.MiddlewareFunc(func(r *http.Request, next internal.Handler) (*internal.Response, error) {
		resp, err := next.Handle(r)
		if err == nil {
			return resp, nil
		}

		status, message := classify(err)
		if status >= http.StatusInternalServerError {
			cfg.Logger.ErrorContext(r.Context(), "request failed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Any("error", err),
			)
			if cfg.ExposeErrors {
				message = err.Error()
			}
		}

		return cfg.Renderer(r, status, message), nil
	})
}

// classify maps an error to a status code and a client-safe message.
func classify(err error) (int, string) {
	if he := internal.AsHTTPError(err); he != nil {
		msg := he.Message
		if msg == "" {
			msg = he.StatusText()
		}
		return he.StatusCode(), msg
	}
	if errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, http.StatusText(http.StatusGatewayTimeout)
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

// DefaultErrorRenderer renders JSON for clients that accept it and plain
// text otherwise.
func DefaultErrorRenderer(r *http.Request, status int, message string) *internal.Response {
	resp := internal.NewResponse(status)
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		body, _ := json.Marshal(map[string]any{"code": status, "message": message})
		resp.Header().Set("Content-Type", "application/json")
		return resp.SetBody(body)
	}
	resp.Header().Set("Content-Type", "text/plain; charset=utf-8")
	return resp.WriteString(message)
}
