package internal

import (
	"fmt"
	"net/http"
	"reflect"
	"sync"
)

// Resolver turns loosely typed references into invocable targets.
type Resolver interface {
	// Resolve returns a plain callable: functions of an accepted shape and
	// Invoker objects.
	Resolve(ref any) (Callable, error)

	// ResolveRoute is Resolve plus Handler objects, used for route actions.
	ResolveRoute(ref any) (Callable, error)

	// ResolveMiddleware returns middleware for any accepted middleware shape.
	// Handler objects are wrapped so that they ignore next.
	ResolveMiddleware(ref any) (Middleware, error)
}

// CallableResolver is the default Resolver. Named references are looked up
// in the container first, then in the type registry.
type CallableResolver struct {
	container Container
	factory   ResponseFactory
	types     map[string]TypeFactory
	mu        sync.RWMutex
}

// ResolverOption configures a CallableResolver.
type ResolverOption func(*CallableResolver)

// WithResolverContainer sets the container consulted for named references.
func WithResolverContainer(c Container) ResolverOption {
	return func(cr *CallableResolver) {
		cr.container = c
	}
}

// WithResolverType registers a name that resolves to a fresh instance built
// by factory when the container has no entry under that name.
func WithResolverType(name string, factory TypeFactory) ResolverOption {
	return func(cr *CallableResolver) {
		if name != "" && factory != nil {
			cr.types[name] = factory
		}
	}
}

// WithResolverResponseFactory sets the factory used by legacy middleware
// adapters.
func WithResolverResponseFactory(f ResponseFactory) ResolverOption {
	return func(cr *CallableResolver) {
		if f != nil {
			cr.factory = f
		}
	}
}

// NewCallableResolver creates a resolver with the given options.
func NewCallableResolver(opts ...ResolverOption) *CallableResolver {
	cr := &CallableResolver{
		types:   make(map[string]TypeFactory),
		factory: DefaultResponseFactory,
	}
	for _, opt := range opts {
		opt(cr)
	}
	return cr
}

// RegisterType adds a named type after construction.
func (cr *CallableResolver) RegisterType(name string, factory TypeFactory) {
	if name == "" || factory == nil {
		return
	}
	cr.mu.Lock()
	defer cr.mu.Unlock()
	cr.types[name] = factory
}

// Container returns the configured container, or nil.
func (cr *CallableResolver) Container() Container {
	return cr.container
}

// Resolve implements Resolver.
func (cr *CallableResolver) Resolve(ref any) (Callable, error) {
	r := ToReference(ref)
	v, err := cr.lookup(r)
	if err != nil {
		return nil, err
	}
	c, ok := cr.toCallable(v, false)
	if !ok {
		return nil, cr.rejected(r, v)
	}
	return c, nil
}

// ResolveRoute implements Resolver.
func (cr *CallableResolver) ResolveRoute(ref any) (Callable, error) {
	r := ToReference(ref)
	v, err := cr.lookup(r)
	if err != nil {
		return nil, err
	}
	c, ok := cr.toCallable(v, true)
	if !ok {
		return nil, cr.rejected(r, v)
	}
	return c, nil
}

// ResolveMiddleware implements Resolver.
func (cr *CallableResolver) ResolveMiddleware(ref any) (Middleware, error) {
	r := ToReference(ref)
	v, err := cr.lookup(r)
	if err != nil {
		return nil, err
	}
	mw, ok := cr.toMiddleware(v)
	if !ok {
		return nil, cr.rejected(r, v)
	}
	return mw, nil
}

// lookup fetches the raw target of a reference without checking its shape.
func (cr *CallableResolver) lookup(r Reference) (any, error) {
	if r.IsInline() {
		if r.Value() == nil {
			return nil, notResolvable("nil", "nil is not resolvable")
		}
		return r.Value(), nil
	}

	full := r.String()
	if cr.container != nil && cr.container.Has(full) {
		v, err := cr.container.Get(full)
		if err != nil {
			return nil, &NotResolvableError{Reference: full, Reason: fmt.Sprintf("%s is not resolvable: %v", full, err), Err: err}
		}
		return v, nil
	}

	instance, err := cr.instance(r.ID())
	if err != nil {
		return nil, err
	}

	if r.Method() == "" {
		return instance, nil
	}

	m := reflect.ValueOf(instance).MethodByName(r.Method())
	if !m.IsValid() {
		return nil, notResolvable(full, "%s is not resolvable", full)
	}
	return m.Interface(), nil
}

// instance returns the container entry for id, or a fresh instance of the
// type registered under id.
func (cr *CallableResolver) instance(id string) (any, error) {
	if cr.container != nil && cr.container.Has(id) {
		v, err := cr.container.Get(id)
		if err != nil {
			return nil, &NotResolvableError{Reference: id, Reason: fmt.Sprintf("Callable %s could not be built: %v", id, err), Err: err}
		}
		return v, nil
	}

	cr.mu.RLock()
	factory, ok := cr.types[id]
	cr.mu.RUnlock()
	if !ok {
		return nil, notResolvable(id, "Callable %s does not exist", id)
	}

	v := factory()
	if v == nil {
		return nil, notResolvable(id, "Callable %s does not exist", id)
	}
	return v, nil
}

func (cr *CallableResolver) rejected(r Reference, v any) error {
	if r.IsInline() {
		return notResolvable(r.String(), "%T is not resolvable", v)
	}
	return notResolvable(r.String(), "%s is not resolvable", r.String())
}

// toCallable converts v into a Callable. Handler objects are accepted only
// in route context.
func (cr *CallableResolver) toCallable(v any, route bool) (Callable, bool) {
	switch f := v.(type) {
	case Callable:
		return f, true
	case func(*http.Request, Args) (*Response, error):
		return f, true
	case func(*http.Request, map[string]string) (*Response, error):
		return func(r *http.Request, args Args) (*Response, error) {
			return f(r, args)
		}, true
	case ContainerCallable:
		return cr.bind(f), true
	case func(Container, *http.Request, Args) (*Response, error):
		return cr.bind(f), true
	case HandlerFunc:
		return ignoreArgs(f), true
	case func(*http.Request) (*Response, error):
		return ignoreArgs(HandlerFunc(f)), true
	}

	if route {
		if h, ok := v.(Handler); ok {
			return ignoreArgs(h), true
		}
	}
	if inv, ok := v.(Invoker); ok {
		return inv.Invoke, true
	}
	return nil, false
}

// bind injects the resolver's container into a container-aware action.
func (cr *CallableResolver) bind(f ContainerCallable) Callable {
	c := cr.container
	return func(r *http.Request, args Args) (*Response, error) {
		return f(c, r, args)
	}
}

// toMiddleware converts v into Middleware.
func (cr *CallableResolver) toMiddleware(v any) (Middleware, bool) {
	switch f := v.(type) {
	case Middleware:
		return f, true
	case func(*http.Request, Handler) (*Response, error):
		return MiddlewareFunc(f), true
	case Decorator:
		return decoratorMiddleware(f), true
	case func(Handler) Handler:
		return decoratorMiddleware(f), true
	case LegacyMiddlewareFunc:
		return AdaptLegacy(f, cr.factory), true
	case func(*http.Request, *Response, LegacyNext) (*Response, error):
		return AdaptLegacy(f, cr.factory), true
	case func(http.Handler) http.Handler:
		return FromHTTPMiddleware(f), true
	case func(*http.Request) (*Response, error):
		return terminalMiddleware(HandlerFunc(f)), true
	case Handler:
		return terminalMiddleware(f), true
	}
	return nil, false
}

func ignoreArgs(h Handler) Callable {
	return func(r *http.Request, _ Args) (*Response, error) {
		return h.Handle(r)
	}
}

// decoratorMiddleware runs a wrapping decorator against the next handler of
// the current dispatch.
func decoratorMiddleware(d Decorator) Middleware {
	return MiddlewareFunc(func(r *http.Request, next Handler) (*Response, error) {
		h := d(next)
		if h == nil {
			return nil, ErrBadReturn
		}
		return h.Handle(r)
	})
}

// terminalMiddleware wraps a request handler so it can sit in a middleware
// queue. It cannot delegate, so next is ignored.
func terminalMiddleware(h Handler) Middleware {
	return MiddlewareFunc(func(r *http.Request, _ Handler) (*Response, error) {
		return h.Handle(r)
	})
}
