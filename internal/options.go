package internal

import (
	"log/slog"

	"github.com/dmitrymomot/strata/pkg/logger"
)

// Option configures the application.
type Option func(*App)

// WithMiddleware adds global middleware to the application. References may
// be inline middleware, "id" or "id:method" strings, or References.
func WithMiddleware(mw ...any) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithContainer sets the service container consulted for named references.
//
// Example:
//
//	services := container.New()
//	_ = services.Set("auth", middlewares.BasicAuth(users))
//	strata.New(
//	    strata.WithContainer(services),
//	    strata.WithMiddleware("auth"),
//	)
func WithContainer(c Container) Option {
	return func(a *App) {
		a.container = c
	}
}

// WithType registers a type name that string references may instantiate
// when the container has no entry under that name.
func WithType(name string, factory TypeFactory) Option {
	return func(a *App) {
		if name != "" && factory != nil {
			a.types[name] = factory
		}
	}
}

// WithResponseFactory sets the factory used to create seed responses for
// legacy middleware.
func WithResponseFactory(f ResponseFactory) Option {
	return func(a *App) {
		if f != nil {
			a.responseFactory = f
		}
	}
}

// WithMiddlewareOrder sets the traversal discipline of the global stack.
// Defaults to LIFO.
func WithMiddlewareOrder(o Order) Option {
	return func(a *App) {
		a.settings.MiddlewareOrder = o
	}
}

// WithRouteMiddlewareOrder sets the traversal discipline of route stacks.
// Defaults to LIFO.
func WithRouteMiddlewareOrder(o Order) Option {
	return func(a *App) {
		a.settings.RouteMiddlewareOrder = o
	}
}

// WithBasePath serves the application under a path prefix.
func WithBasePath(p string) Option {
	return func(a *App) {
		a.settings.BasePath = p
	}
}

// WithRouter replaces the routing boundary used for matching. Routes
// registered on the app still go to its own collector.
func WithRouter(r Router) Option {
	return func(a *App) {
		a.router = r
	}
}

// WithRoutingBeforeMiddleware matches routes before any global middleware
// runs, so global middleware can see the matched route.
func WithRoutingBeforeMiddleware() Option {
	return func(a *App) {
		a.settings.RouteBeforeMiddleware = true
	}
}

// WithContentLength toggles the computed Content-Length header.
// Enabled by default.
func WithContentLength(enabled bool) Option {
	return func(a *App) {
		a.settings.AddContentLength = enabled
	}
}

// WithErrorHandler sets a custom handler for errors that escape every
// middleware.
//
// Example:
//
//	strata.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
//	    http.Error(w, err.Error(), http.StatusInternalServerError)
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler sets the handler producing 404 responses.
func WithNotFoundHandler(h Handler) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithMethodNotAllowedHandler sets the handler producing 405 responses.
// The Allow header is added when the handler does not set one.
func WithMethodNotAllowedHandler(h Handler) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
}

// WithLogger creates a logger with a component name and optional extractors.
// The component name is added to every log entry for easy filtering.
//
// Example:
//
//	strata.New(
//	    strata.WithLogger("api", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(logger.WithExtractors(extractors...)).With("component", component)
	}
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithSettings applies settings loaded from a YAML file. Options listed
// after it override individual fields.
func WithSettings(s Settings) Option {
	return func(a *App) {
		a.settings = s
		switch {
		case s.Sentry.DSN != "":
			a.logger = logger.NewWithSentry(s.Sentry,
				logger.WithLevel(s.LogLevel),
				logger.WithFormat(s.LogFormat),
			)
		case s.LogLevel != "" || s.LogFormat != "":
			a.logger = logger.New(
				logger.WithLevel(s.LogLevel),
				logger.WithFormat(s.LogFormat),
			)
		}
	}
}
