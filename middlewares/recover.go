package middlewares

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/strata/internal"
	"github.com/dmitrymomot/strata/pkg/logger"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	Logger            *slog.Logger
	StackSize         int  // Max stack trace size (default: 4096)
	DisablePrintStack bool // Disable stack trace in logs
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize sets the maximum stack trace size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.StackSize = size
	}
}

// WithRecoverDisablePrintStack disables capturing the stack trace.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// WithRecoverLogger sets the logger panics are reported to.
func WithRecoverLogger(l *slog.Logger) RecoverOption {
	return func(cfg *RecoverConfig) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// Recover returns middleware that recovers from panics in everything it
// wraps. The panic is logged and returned as a *PanicError for an outer
// ErrorResponder or the kernel's error handler. A *PanicError already
// returned by the chain, such as one from a Timeout goroutine, is logged
// and passed through.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &RecoverConfig{
		Logger:    logger.NewNope(),
		StackSize: DefaultStackSize,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	stackSize := cfg.StackSize
	if cfg.DisablePrintStack {
		stackSize = 0
	}

	report := func(r *http.Request, pe *PanicError) {
		attrs := []any{slog.Any("panic", pe.Value), slog.String("path", r.URL.Path)}
		if pe.Stack != nil {
			attrs = append(attrs, slog.String("stack", string(pe.Stack)))
		}
		cfg.Logger.ErrorContext(r.Context(), "panic recovered", attrs...)
	}

	return internal.MiddlewareFunc(func(r *http.Request, next internal.Handler) (resp *internal.Response, err error) {
		defer func() {
			if v := recover(); v != nil {
				pe := newPanicError(v, stackSize)
				report(r, pe)
				resp, err = nil, pe
			}
		}()

		resp, err = next.Handle(r)
		// Panics on goroutines the chain started arrive as errors.
		if pe, ok := AsPanicError(err); ok {
			report(r, pe)
		}
		return resp, err
	})
}
