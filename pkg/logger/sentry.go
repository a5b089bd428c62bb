package logger

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
	// MinLevel selects which levels are stored as Sentry logs: warn and
	// error by default, error only when set to slog.LevelError.
	MinLevel slog.Level `yaml:"min_level"`
}

// NewWithSentry creates a logger that writes locally and to Sentry. Error
// records become Sentry issues. With an empty DSN, or when the SDK fails to
// start, only local output is used. Context extractors apply to both.
func NewWithSentry(cfg SentryConfig, opts ...Option) *slog.Logger {
	local := &config{output: os.Stdout, level: slog.LevelInfo}
	for _, opt := range opts {
		opt(local)
	}
	out := newHandler(local)

	if cfg.DSN == "" {
		return slog.New(NewContextHandler(out, local.extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cmp.Or(cfg.Environment, "production"),
		EnableLogs:  true,
	}); err != nil {
		slog.New(out).Error("sentry init failed, logging locally", slog.String("error", err.Error()))
		return slog.New(NewContextHandler(out, local.extractors...))
	}

	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel == slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}
	remote := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	return slog.New(NewContextHandler(fanout{out, remote}, local.extractors...))
}

// FlushSentry waits up to timeout for buffered Sentry events to be sent.
// It reports false when the timeout is reached first.
func FlushSentry(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

// fanout sends each record to every handler that accepts its level. A
// failing destination does not stop the others.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, rec slog.Record) error {
	var errs []error
	for _, h := range f {
		if !h.Enabled(ctx, rec.Level) {
			continue
		}
		if err := h.Handle(ctx, rec.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
