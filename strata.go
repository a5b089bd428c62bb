package strata

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/dmitrymomot/strata/internal"
	"github.com/dmitrymomot/strata/pkg/health"
	"github.com/dmitrymomot/strata/pkg/logger"
)

// Type aliases - public API
type (
	// App is the application kernel.
	// It owns the global middleware stack and the router.
	App = internal.App

	// Handler produces a response for a request.
	Handler = internal.Handler

	// HandlerFunc adapts a function to Handler.
	HandlerFunc = internal.HandlerFunc

	// Middleware processes a request and delegates to the next handler.
	Middleware = internal.Middleware

	// MiddlewareFunc adapts a function to Middleware.
	MiddlewareFunc = internal.MiddlewareFunc

	// Decorator wraps a handler. Accepted anywhere middleware is.
	Decorator = internal.Decorator

	// Callable is the resolved shape of a route action.
	Callable = internal.Callable

	// ContainerCallable is a route action that receives the container.
	ContainerCallable = internal.ContainerCallable

	// Invoker is an object with an invoke-shaped default method.
	Invoker = internal.Invoker

	// Args holds route arguments and path parameters.
	Args = internal.Args

	// Response is the pipeline's response value.
	Response = internal.Response

	// ResponseFactory creates seed responses for legacy middleware.
	ResponseFactory = internal.ResponseFactory

	// ResponseFactoryFunc adapts a function to ResponseFactory.
	ResponseFactoryFunc = internal.ResponseFactoryFunc

	// LegacyMiddlewareFunc is the (request, response, next) middleware shape.
	LegacyMiddlewareFunc = internal.LegacyMiddlewareFunc

	// LegacyNext continues a legacy middleware chain.
	LegacyNext = internal.LegacyNext

	// ErrorHandler handles errors that escape every middleware.
	ErrorHandler = internal.ErrorHandler

	// Reference names a callable inline or by container identifier.
	Reference = internal.Reference

	// Container is the service lookup consulted for named references.
	Container = internal.Container

	// TypeFactory instantiates a registered type name.
	TypeFactory = internal.TypeFactory

	// Resolver turns references into callables and middleware.
	Resolver = internal.Resolver

	// CallableResolver is the default Resolver.
	CallableResolver = internal.CallableResolver

	// ResolverOption configures a CallableResolver.
	ResolverOption = internal.ResolverOption

	// DeferredCallable resolves its reference on first invocation.
	DeferredCallable = internal.DeferredCallable

	// DeferredMiddleware resolves its reference on first use.
	DeferredMiddleware = internal.DeferredMiddleware

	// Dispatcher runs a middleware queue around a terminal handler.
	Dispatcher = internal.Dispatcher

	// DispatcherOption configures a Dispatcher.
	DispatcherOption = internal.DispatcherOption

	// Runner is a dispatcher without a terminal handler.
	Runner = internal.Runner

	// Order is the traversal discipline of a middleware queue.
	Order = internal.Order

	// State is the lifecycle state of a dispatcher.
	State = internal.State

	// Route is a registered route with its own middleware stack.
	Route = internal.Route

	// RouteGroup shares a prefix and middleware between routes.
	RouteGroup = internal.RouteGroup

	// Router is the routing boundary used by the kernel.
	Router = internal.Router

	// RouteCollector is the chi-backed Router.
	RouteCollector = internal.RouteCollector

	// CollectorOption configures a RouteCollector.
	CollectorOption = internal.CollectorOption

	// RoutingResult is the outcome of matching a request.
	RoutingResult = internal.RoutingResult

	// RoutingStatus is the kind of routing outcome.
	RoutingStatus = internal.RoutingStatus

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// Settings holds file based application configuration.
	Settings = internal.Settings

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor

	// HTTPError carries a status code for error-handling middleware.
	HTTPError = internal.HTTPError

	// NotResolvableError reports a reference that cannot be resolved.
	NotResolvableError = internal.NotResolvableError

	// RouteNotFoundError reports an unknown route name.
	RouteNotFoundError = internal.RouteNotFoundError

	// MissingParameterError reports a placeholder without a value.
	MissingParameterError = internal.MissingParameterError
)

// Middleware orders.
const (
	// LIFO runs the last added middleware first. This is the default.
	LIFO = internal.LIFO
	// FIFO runs the first added middleware first.
	FIFO = internal.FIFO
)

// Dispatcher states.
const (
	StateEmpty     = internal.StateEmpty
	StateSeeded    = internal.StateSeeded
	StateRunning   = internal.StateRunning
	StateFinalized = internal.StateFinalized
)

// Routing outcomes.
const (
	NotFound         = internal.NotFound
	Found            = internal.Found
	MethodNotAllowed = internal.MethodNotAllowed
)

// Sentinel errors.
var (
	ErrNotResolvable       = internal.ErrNotResolvable
	ErrQueueFrozen         = internal.ErrQueueFrozen
	ErrAlreadySeeded       = internal.ErrAlreadySeeded
	ErrBadReturn           = internal.ErrBadReturn
	ErrInvalidMiddleware   = internal.ErrInvalidMiddleware
	ErrEmptyQueue          = internal.ErrEmptyQueue
	ErrQueueExhausted      = internal.ErrQueueExhausted
	ErrNextCalledTwice     = internal.ErrNextCalledTwice
	ErrNotSeeded           = internal.ErrNotSeeded
	ErrRouteNotFound       = internal.ErrRouteNotFound
	ErrMissingParameter    = internal.ErrMissingParameter
	ErrNoRouter            = internal.ErrNoRouter
	DefaultResponseFactory = internal.DefaultResponseFactory
)

// Constructors

// New creates a new application with the given options.
//
// Example:
//
//	app := strata.New(
//	    strata.WithContainer(services),
//	    strata.WithMiddleware(middlewares.RequestID()),
//	)
//	app.Get("/hello/{name}", hello).SetName("hello")
//
//	err := app.Run(strata.Address(":8080"))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// Run starts a multi-domain HTTP server and blocks until shutdown.
//
// Example:
//
//	err := strata.Run(
//	    strata.Domain("api.acme.com", api),
//	    strata.Domain("*.acme.com", website),
//	    strata.Address(":8080"),
//	)
func Run(opts ...RunOption) error {
	return internal.Run(opts...)
}

// NewResponse creates an empty response. A zero status means 200.
func NewResponse(status int) *Response {
	return internal.NewResponse(status)
}

// NewDispatcher creates a standalone middleware dispatcher.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	return internal.NewDispatcher(opts...)
}

// NewRunner creates a dispatcher without a terminal handler. The queue must
// not be empty and the innermost middleware must not call next.
func NewRunner(opts ...DispatcherOption) *Runner {
	return internal.NewRunner(opts...)
}

// NewCallableResolver creates the default resolver.
func NewCallableResolver(opts ...ResolverOption) *CallableResolver {
	return internal.NewCallableResolver(opts...)
}

// NewRouteCollector creates a standalone chi-backed router.
func NewRouteCollector(resolver Resolver, opts ...CollectorOption) *RouteCollector {
	return internal.NewRouteCollector(resolver, opts...)
}

// NewDeferredCallable wraps a reference resolved on first invocation.
func NewDeferredCallable(ref any, resolver Resolver) *DeferredCallable {
	return internal.NewDeferredCallable(ref, resolver)
}

// NewDeferredMiddleware wraps a reference resolved on first use.
func NewDeferredMiddleware(ref any, resolver Resolver) *DeferredMiddleware {
	return internal.NewDeferredMiddleware(ref, resolver)
}

// NewHTTPError creates an error carrying a status code.
func NewHTTPError(code int, message string) *HTTPError {
	return internal.NewHTTPError(code, message)
}

// WrapHTTPError creates an error carrying a status code and a cause.
func WrapHTTPError(code int, message string, err error) *HTTPError {
	return internal.WrapHTTPError(code, message, err)
}

// AsHTTPError extracts an HTTPError from an error chain, or nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// References

// Inline wraps a value used as is.
func Inline(v any) Reference {
	return internal.Inline(v)
}

// Named refers to a container entry or registered type.
func Named(id string) Reference {
	return internal.Named(id)
}

// NamedMethod refers to a method of a container entry or registered type.
func NamedMethod(id, method string) Reference {
	return internal.NamedMethod(id, method)
}

// ParseReference parses "id" or "id:method".
func ParseReference(s string) Reference {
	return internal.ParseReference(s)
}

// ParseOrder parses "lifo" or "fifo".
func ParseOrder(s string) (Order, error) {
	return internal.ParseOrder(s)
}

// Adapters

// AdaptLegacy turns a (request, response, next) function into Middleware.
func AdaptLegacy(fn LegacyMiddlewareFunc, factory ResponseFactory) Middleware {
	return internal.AdaptLegacy(fn, factory)
}

// FromHTTPHandler runs a net/http handler as a pipeline Handler.
func FromHTTPHandler(h http.Handler) Handler {
	return internal.FromHTTPHandler(h)
}

// FromHTTPMiddleware runs a net/http middleware, such as the ones from
// chi/middleware, as pipeline Middleware.
func FromHTTPMiddleware(mw func(http.Handler) http.Handler) Middleware {
	return internal.FromHTTPMiddleware(mw)
}

// RoutingMiddleware matches routes early so outer middleware can see them.
func RoutingMiddleware(router Router) Middleware {
	return internal.RoutingMiddleware(router)
}

// Request helpers

// RoutingResultFrom returns the routing result attached to r.
func RoutingResultFrom(r *http.Request) (*RoutingResult, bool) {
	return internal.RoutingResultFrom(r)
}

// RouteFrom returns the matched route, or nil.
func RouteFrom(r *http.Request) *Route {
	return internal.RouteFrom(r)
}

// RouteArgs returns the merged route arguments of r.
func RouteArgs(r *http.Request) Args {
	return internal.RouteArgs(r)
}

// RouteArg returns one route argument of r.
func RouteArg(r *http.Request, name string) string {
	return internal.RouteArg(r, name)
}

// Settings

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return internal.DefaultSettings()
}

// LoadSettings reads YAML settings from path.
func LoadSettings(path string) (Settings, error) {
	return internal.LoadSettings(path)
}

// ParseSettings decodes YAML settings.
func ParseSettings(data []byte) (Settings, error) {
	return internal.ParseSettings(data)
}

// App options

// WithMiddleware adds global middleware references.
func WithMiddleware(mw ...any) Option {
	return internal.WithMiddleware(mw...)
}

// WithContainer sets the service container.
func WithContainer(c Container) Option {
	return internal.WithContainer(c)
}

// WithType registers a type name string references may instantiate.
func WithType(name string, factory TypeFactory) Option {
	return internal.WithType(name, factory)
}

// WithResponseFactory sets the factory for legacy middleware seeds.
func WithResponseFactory(f ResponseFactory) Option {
	return internal.WithResponseFactory(f)
}

// WithMiddlewareOrder sets the global stack order.
func WithMiddlewareOrder(o Order) Option {
	return internal.WithMiddlewareOrder(o)
}

// WithRouteMiddlewareOrder sets the route stack order.
func WithRouteMiddlewareOrder(o Order) Option {
	return internal.WithRouteMiddlewareOrder(o)
}

// WithBasePath serves the application under a path prefix.
func WithBasePath(p string) Option {
	return internal.WithBasePath(p)
}

// WithRouter replaces the routing boundary used for matching.
func WithRouter(r Router) Option {
	return internal.WithRouter(r)
}

// WithRoutingBeforeMiddleware matches routes before global middleware runs.
func WithRoutingBeforeMiddleware() Option {
	return internal.WithRoutingBeforeMiddleware()
}

// WithContentLength toggles the computed Content-Length header.
func WithContentLength(enabled bool) Option {
	return internal.WithContentLength(enabled)
}

// WithErrorHandler sets the handler for errors that escape every middleware.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h Handler) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h Handler) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks enables health check endpoints with optional configuration.
// Liveness (/health/live): Always returns OK if process is running.
// Readiness (/health/ready): Runs all configured checks.
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger creates a logger with a component name and optional extractors.
//
// Example:
//
//	strata.New(
//	    strata.WithLogger("api", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// WithSettings applies loaded settings.
func WithSettings(s Settings) Option {
	return internal.WithSettings(s)
}

// Dispatcher options

// WithOrder sets the traversal discipline of a dispatcher.
func WithOrder(o Order) DispatcherOption {
	return internal.WithOrder(o)
}

// WithDispatcherResolver sets the resolver for named middleware.
func WithDispatcherResolver(r Resolver) DispatcherOption {
	return internal.WithDispatcherResolver(r)
}

// WithFallback sets the handler used when no terminal handler is seeded.
func WithFallback(h Handler) DispatcherOption {
	return internal.WithFallback(h)
}

// Resolver options

// WithResolverContainer sets the container of a resolver.
func WithResolverContainer(c Container) ResolverOption {
	return internal.WithResolverContainer(c)
}

// WithResolverType registers a type name on a resolver.
func WithResolverType(name string, factory TypeFactory) ResolverOption {
	return internal.WithResolverType(name, factory)
}

// WithResolverResponseFactory enables legacy middleware resolution.
func WithResolverResponseFactory(f ResponseFactory) ResolverOption {
	return internal.WithResolverResponseFactory(f)
}

// Router options

// WithRouteOrder sets the order of route middleware stacks.
func WithRouteOrder(o Order) CollectorOption {
	return internal.WithRouteOrder(o)
}

// WithCollectorBasePath sets the base path of a standalone collector.
func WithCollectorBasePath(p string) CollectorOption {
	return internal.WithCollectorBasePath(p)
}

// Health options

// WithLivenessPath sets the liveness probe path.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets the readiness probe path.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// WithHealthTimeout sets the timeout shared by readiness checks.
func WithHealthTimeout(d time.Duration) HealthOption {
	return internal.WithHealthTimeout(d)
}

// Run options

// Address sets the HTTP server address.
func Address(addr string) RunOption {
	return internal.Address(addr)
}

// Logger sets the server logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function to run before serving.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function to run during shutdown.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// Domain maps a host pattern to an App.
func Domain(pattern string, app *App) RunOption {
	return internal.Domain(pattern, app)
}

// Fallback sets the App for requests that match no domain.
func Fallback(app *App) RunOption {
	return internal.Fallback(app)
}

// WithContext sets a custom base context for signal handling.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// WithListener serves on an existing listener.
func WithListener(ln net.Listener) RunOption {
	return internal.WithListener(ln)
}

// Typed helpers

// Param returns a route argument converted to T.
// Missing or unparsable values yield the zero value.
func Param[T internal.Scalar](r *http.Request, name string) T {
	return internal.Param[T](r, name)
}

// Query returns a query parameter converted to T.
func Query[T internal.Scalar](r *http.Request, name string) T {
	return internal.Query[T](r, name)
}

// QueryDefault returns a query parameter converted to T, or defaultValue.
func QueryDefault[T internal.Scalar](r *http.Request, name string, defaultValue T) T {
	return internal.QueryDefault(r, name, defaultValue)
}
