package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/strata/internal"
	"github.com/dmitrymomot/strata/pkg/logger"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// TimeoutConfig configures the timeout middleware.
type TimeoutConfig struct {
	Logger  *slog.Logger
	Timeout time.Duration
}

// TimeoutOption configures TimeoutConfig.
type TimeoutOption func(*TimeoutConfig)

// WithTimeoutLogger sets the logger used to report timeouts.
func WithTimeoutLogger(l *slog.Logger) TimeoutOption {
	return func(cfg *TimeoutConfig) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// Timeout returns middleware that enforces a request timeout.
// The inner chain receives a request whose context carries the deadline.
// If it does not complete in time a *TimeoutError is returned. A panic in
// the inner chain is returned as a *PanicError.
//
// Note: the inner chain keeps running after the timeout. Watch
// r.Context().Done() in long-running operations to stop early.
func Timeout(timeout time.Duration, opts ...TimeoutOption) internal.Middleware {
	cfg := &TimeoutConfig{
		Logger:  logger.NewNope(),
		Timeout: timeout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	type result struct {
		resp *internal.Response
		err  error
	}

	return internal.MiddlewareFunc(func(r *http.Request, next internal.Handler) (*internal.Response, error) {
		ctx, cancel := context.WithTimeout(r.Context(), cfg.Timeout)
		defer cancel()

		done := make(chan result, 1)
		go func() {
			defer func() {
				if v := recover(); v != nil {
					done <- result{err: newPanicError(v, DefaultStackSize)}
				}
			}()
			resp, err := next.Handle(r.WithContext(ctx))
			done <- result{resp, err}
		}()

		select {
		case res := <-done:
			return res.resp, res.err
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				cfg.Logger.WarnContext(r.Context(), "request timeout",
					slog.String("timeout", cfg.Timeout.String()),
					slog.String("path", r.URL.Path),
				)
				return nil, &TimeoutError{Duration: cfg.Timeout}
			}
			return nil, ctx.Err()
		}
	})
}
