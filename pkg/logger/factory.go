package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// config holds logger construction options.
type config struct {
	output     io.Writer
	extractors []ContextExtractor
	level      slog.Level
	text       bool
}

// Option configures a logger created by New.
type Option func(*config)

// WithLevel sets the minimum level by name: "debug", "info", "warn" or
// "error". Unknown names keep the default info level.
func WithLevel(level string) Option {
	return func(c *config) {
		c.level = ParseLevel(level)
	}
}

// WithFormat selects "json" (default) or "text" output.
func WithFormat(format string) Option {
	return func(c *config) {
		c.text = strings.EqualFold(strings.TrimSpace(format), "text")
	}
}

// WithOutput sets the destination. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithExtractors adds context extractors applied on every log call.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		c.extractors = append(c.extractors, extractors...)
	}
}

// New creates a structured logger. JSON to stdout at info level unless
// configured otherwise.
func New(opts ...Option) *slog.Logger {
	cfg := &config{output: os.Stdout, level: slog.LevelInfo}
	for _, opt := range opts {
		opt(cfg)
	}
	return slog.New(NewContextHandler(newHandler(cfg), cfg.extractors...))
}

// NewNope returns a logger that drops every record. Middleware and the
// kernel use it when no logger is configured.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newHandler(cfg *config) slog.Handler {
	hopts := &slog.HandlerOptions{Level: cfg.level}
	if cfg.text {
		return slog.NewTextHandler(cfg.output, hopts)
	}
	return slog.NewJSONHandler(cfg.output, hopts)
}

// ParseLevel maps a level name to a slog level. Unknown names map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
