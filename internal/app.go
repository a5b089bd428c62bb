package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/strata/pkg/logger"
)

// App is the application kernel. It owns the global middleware dispatcher
// and the router, and dispatches every request through
// global middleware -> route resolution -> route middleware -> route action.
//
// Dispatch is re-entrant: a middleware may call Handle again with a new
// request and gets an independent, correctly nested response.
type App struct {
	dispatcher              *Dispatcher
	router                  Router
	routes                  *RouteCollector
	resolver                *CallableResolver
	container               Container
	responseFactory         ResponseFactory
	logger                  *slog.Logger
	errorHandler            ErrorHandler
	notFoundHandler         Handler
	methodNotAllowedHandler Handler
	healthConfig            *healthConfig
	types                   map[string]TypeFactory
	settings                Settings
	middlewares             []any
}

// New creates a new application with the given options.
// Invalid middleware passed through options panics, as it is a programming
// error discovered at startup.
//
// Example:
//
//	app := strata.New(
//	    strata.WithContainer(services),
//	    strata.WithMiddleware(middlewares.RequestID(), "auth"),
//	)
//	app.Get("/hello/{name}", hello).SetName("hello")
func New(opts ...Option) *App {
	a := &App{
		logger:          logger.NewNope(),
		responseFactory: DefaultResponseFactory,
		types:           make(map[string]TypeFactory),
		settings:        DefaultSettings(),
	}

	for _, opt := range opts {
		opt(a)
	}

	resolverOpts := []ResolverOption{
		WithResolverContainer(a.container),
		WithResolverResponseFactory(a.responseFactory),
	}
	for name, f := range a.types {
		resolverOpts = append(resolverOpts, WithResolverType(name, f))
	}
	a.resolver = NewCallableResolver(resolverOpts...)

	a.routes = NewRouteCollector(a.resolver,
		WithRouteOrder(a.settings.RouteMiddlewareOrder),
		WithCollectorBasePath(a.settings.BasePath),
	)
	if a.router == nil {
		a.router = a.routes
	}

	if a.notFoundHandler == nil {
		a.notFoundHandler = HandlerFunc(defaultNotFound)
	}
	if a.methodNotAllowedHandler == nil {
		a.methodNotAllowedHandler = HandlerFunc(defaultMethodNotAllowed)
	}

	a.dispatcher = NewDispatcher(
		WithOrder(a.settings.MiddlewareOrder),
		WithDispatcherResolver(a.resolver),
	)
	if err := a.dispatcher.Seed(HandlerFunc(a.routeRequest)); err != nil {
		panic(fmt.Sprintf("strata: %v", err))
	}

	for _, mw := range a.middlewares {
		if err := a.dispatcher.Add(mw); err != nil {
			panic(fmt.Sprintf("strata: %v", err))
		}
	}
	if a.settings.RouteBeforeMiddleware {
		if err := a.AddRoutingMiddleware(); err != nil {
			panic(fmt.Sprintf("strata: %v", err))
		}
	}

	a.setupHealthRoutes()
	return a
}

// Add queues global middleware. It fails with ErrQueueFrozen once the app
// has served its first request.
func (a *App) Add(ref any) error {
	return a.dispatcher.Add(ref)
}

// AddRoutingMiddleware queues RoutingMiddleware at the current position.
// Under LIFO order, add it last to let every other global middleware see
// the matched route.
func (a *App) AddRoutingMiddleware() error {
	return a.dispatcher.Add(RoutingMiddleware(a.router))
}

// Map registers a route and its middleware. It panics on an invalid pattern,
// action or middleware, like any route registration error.
func (a *App) Map(methods []string, pattern string, action any, mw ...any) *Route {
	rt, err := a.routes.Map(methods, pattern, action)
	if err != nil {
		panic(fmt.Sprintf("strata: %v", err))
	}
	for _, m := range mw {
		if err := rt.Add(m); err != nil {
			panic(fmt.Sprintf("strata: route %s: %v", pattern, err))
		}
	}
	return rt
}

// Get registers a GET route.
func (a *App) Get(pattern string, action any, mw ...any) *Route {
	return a.Map([]string{http.MethodGet}, pattern, action, mw...)
}

// Post registers a POST route.
func (a *App) Post(pattern string, action any, mw ...any) *Route {
	return a.Map([]string{http.MethodPost}, pattern, action, mw...)
}

// Put registers a PUT route.
func (a *App) Put(pattern string, action any, mw ...any) *Route {
	return a.Map([]string{http.MethodPut}, pattern, action, mw...)
}

// Patch registers a PATCH route.
func (a *App) Patch(pattern string, action any, mw ...any) *Route {
	return a.Map([]string{http.MethodPatch}, pattern, action, mw...)
}

// Delete registers a DELETE route.
func (a *App) Delete(pattern string, action any, mw ...any) *Route {
	return a.Map([]string{http.MethodDelete}, pattern, action, mw...)
}

// Options registers an OPTIONS route.
func (a *App) Options(pattern string, action any, mw ...any) *Route {
	return a.Map([]string{http.MethodOptions}, pattern, action, mw...)
}

// Any registers a route for every standard method.
func (a *App) Any(pattern string, action any, mw ...any) *Route {
	return a.Map(standardMethods, pattern, action, mw...)
}

// Group creates a route group with a pattern prefix.
func (a *App) Group(prefix string, fn func(*RouteGroup)) *RouteGroup {
	return a.routes.Group(prefix, fn)
}

// Router returns the routing boundary used for matching.
func (a *App) Router() Router {
	return a.router
}

// Routes returns the route collector used for registration.
func (a *App) Routes() *RouteCollector {
	return a.routes
}

// Resolver returns the callable resolver.
func (a *App) Resolver() *CallableResolver {
	return a.resolver
}

// Container returns the configured container, or nil.
func (a *App) Container() Container {
	return a.container
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Settings returns the effective settings.
func (a *App) Settings() Settings {
	return a.settings
}

// PathFor renders the path of a named route through the router.
func (a *App) PathFor(name string, params, query map[string]string) (string, error) {
	return a.router.PathFor(name, params, query)
}

// Handle dispatches r through the global middleware chain.
func (a *App) Handle(r *http.Request) (*Response, error) {
	return a.dispatcher.Handle(r)
}

// ServeHTTP implements http.Handler. It is the host boundary: the response
// is emitted here, the body is dropped for HEAD requests, and errors that
// escaped every middleware reach the error handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp, err := a.Handle(r)
	if err != nil {
		a.handleError(w, r, err)
		return
	}
	if err := resp.emit(w, r.Method == http.MethodHead, a.settings.AddContentLength); err != nil {
		a.logger.WarnContext(r.Context(), "response write failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}
}

// routeRequest is the terminal handler of the global chain.
func (a *App) routeRequest(r *http.Request) (*Response, error) {
	rr, ok := RoutingResultFrom(r)
	if !ok || !rr.matches(r.Method, r.URL.Path) {
		if a.router == nil {
			return nil, ErrNoRouter
		}
		rr = a.router.Match(r.Method, r.URL.Path)
		r = WithRoutingResult(r, rr)
	}

	switch rr.Status {
	case Found:
		if rr.Route == nil {
			return nil, errors.New("router reported a match without a route")
		}
		return rr.Route.Run(r)
	case MethodNotAllowed:
		resp, err := a.methodNotAllowedHandler.Handle(r)
		if err != nil || resp == nil {
			return resp, err
		}
		if resp.Header().Get("Allow") == "" {
			resp.Header().Set("Allow", strings.Join(rr.AllowedMethods, ", "))
		}
		return resp, nil
	default:
		return a.notFoundHandler.Handle(r)
	}
}

// handleError handles errors from the chain using the configured error
// handler.
func (a *App) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) {
		a.logger.DebugContext(r.Context(), "request canceled", slog.String("path", r.URL.Path))
	} else {
		a.logger.ErrorContext(r.Context(), "unhandled error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}

	if a.errorHandler != nil {
		a.errorHandler(w, r, err)
		return
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func defaultNotFound(*http.Request) (*Response, error) {
	return NewResponse(http.StatusNotFound).
		WithHeader("Content-Type", "text/plain; charset=utf-8").
		WriteString(http.StatusText(http.StatusNotFound)), nil
}

func defaultMethodNotAllowed(*http.Request) (*Response, error) {
	return NewResponse(http.StatusMethodNotAllowed).
		WithHeader("Content-Type", "text/plain; charset=utf-8").
		WriteString(http.StatusText(http.StatusMethodNotAllowed)), nil
}
