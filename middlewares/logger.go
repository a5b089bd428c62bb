package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/strata/internal"
)

// Logger returns middleware that logs one line per request with method,
// path, status and duration. The route name is added when the route is
// already known, which requires routing to run before this middleware.
// Failed requests are logged at error level.
func Logger(l *slog.Logger) internal.Middleware {
	return internal.MiddlewareFunc(func(r *http.Request, next internal.Handler) (*internal.Response, error) {
		start := time.Now()
		resp, err := next.Handle(r)

		attrs := []slog.Attr{
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration", time.Since(start)),
		}
		if rt := internal.RouteFrom(r); rt != nil && rt.Name() != "" {
			attrs = append(attrs, slog.String("route", rt.Name()))
		}

		if err != nil {
			attrs = append(attrs, slog.Any("error", err))
			l.LogAttrs(r.Context(), slog.LevelError, "request failed", attrs...)
			return resp, err
		}

		if resp != nil {
			attrs = append(attrs,
				slog.Int("status", resp.Status()),
				slog.Int("bytes", resp.Len()),
			)
		}
		l.LogAttrs(r.Context(), slog.LevelInfo, "request", attrs...)
		return resp, nil
	})
}
