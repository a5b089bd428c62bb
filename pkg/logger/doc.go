// Package logger builds the slog loggers used by the kernel and middleware.
//
// New returns a JSON (or text) logger whose handler is wrapped in a
// ContextHandler, so attributes carried by the request context are added to
// every record logged with a *Context method:
//
//	log := logger.New(
//		logger.WithLevel("debug"),
//		logger.WithExtractors(middlewares.RequestIDExtractor()),
//	)
//	log.InfoContext(r.Context(), "user loaded", slog.String("id", id))
//	// {"level":"INFO","msg":"user loaded","id":"7","request_id":"..."}
//
// A ContextExtractor returns false to add nothing for a given record.
// Extractors run on every call, so values attached by inner middleware are
// visible to records logged further down the pipeline.
//
// NewWithSentry also forwards records to Sentry: errors become issues and
// warnings are stored as logs. With an empty DSN it behaves like New, so
// the same code path runs in development. FlushSentry drains queued events
// during shutdown.
//
// NewNope drops everything and is the default for middleware that was not
// given a logger.
package logger
