package internal

import (
	"fmt"
	"maps"
	"net/http"
	"slices"
	"sync"
)

// Route couples a pattern and method set with its own middleware stack and
// an action resolved on first invocation.
type Route struct {
	resolver   Resolver
	dispatcher *Dispatcher
	action     *DeferredCallable
	handler    Handler
	err        error
	arguments  Args
	identifier string
	name       string
	pattern    string
	methods    []string
	groups     []*RouteGroup
	mu         sync.RWMutex
	once       sync.Once
	order      Order
	finalized  bool
}

func newRoute(identifier string, methods []string, pattern string, action any, resolver Resolver, order Order, groups []*RouteGroup) *Route {
	rt := &Route{
		resolver:   resolver,
		identifier: identifier,
		methods:    methods,
		pattern:    pattern,
		order:      order,
		groups:     groups,
		arguments:  make(Args),
		action:     NewDeferredCallable(action, resolver),
	}
	rt.dispatcher = NewDispatcher(
		WithOrder(order),
		WithDispatcherResolver(resolver),
	)
	return rt
}

// Identifier returns the collector-assigned identifier ("route0", ...).
func (rt *Route) Identifier() string {
	return rt.identifier
}

// Pattern returns the registered URL pattern.
func (rt *Route) Pattern() string {
	return rt.pattern
}

// Methods returns the HTTP methods the route answers to.
func (rt *Route) Methods() []string {
	return slices.Clone(rt.methods)
}

// Action returns the reference of the route's action.
func (rt *Route) Action() Reference {
	return rt.action.Reference()
}

// Name returns the route name, or "".
func (rt *Route) Name() string {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.name
}

// SetName names the route for reverse routing.
func (rt *Route) SetName(name string) *Route {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.name = name
	return rt
}

// SetArgument attaches a static argument. Path parameters with the same
// name take precedence at invocation time.
func (rt *Route) SetArgument(name, value string) *Route {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.arguments[name] = value
	return rt
}

// SetArguments replaces all static arguments.
func (rt *Route) SetArguments(args Args) *Route {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.arguments = maps.Clone(args)
	if rt.arguments == nil {
		rt.arguments = make(Args)
	}
	return rt
}

// Argument returns a static argument.
func (rt *Route) Argument(name string) (string, bool) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	v, ok := rt.arguments[name]
	return v, ok
}

// Arguments returns a copy of the static arguments.
func (rt *Route) Arguments() Args {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return maps.Clone(rt.arguments)
}

// Add queues route middleware. It fails with ErrQueueFrozen once the route
// has been finalized.
func (rt *Route) Add(ref any) error {
	rt.mu.RLock()
	finalized := rt.finalized
	rt.mu.RUnlock()
	if finalized {
		return fmt.Errorf("route %s: %w", rt.identifier, ErrQueueFrozen)
	}
	return rt.dispatcher.Add(ref)
}

// Finalize seeds the route stack with its action and wraps it in the
// middleware of enclosing groups, outermost group first. Calls after the
// first are no-ops that return the first outcome.
func (rt *Route) Finalize() error {
	rt.once.Do(func() {
		rt.mu.Lock()
		rt.finalized = true
		rt.mu.Unlock()

		if err := rt.dispatcher.Seed(HandlerFunc(rt.invokeAction)); err != nil {
			rt.err = err
			return
		}

		var h Handler = rt.dispatcher
		for _, g := range slices.Backward(rt.groups) {
			refs := g.freeze()
			if len(refs) == 0 {
				continue
			}
			gd := NewDispatcher(WithOrder(rt.order), WithDispatcherResolver(rt.resolver))
			for _, ref := range refs {
				if err := gd.Add(ref); err != nil {
					rt.err = err
					return
				}
			}
			if err := gd.Seed(h); err != nil {
				rt.err = err
				return
			}
			h = gd
		}
		rt.handler = h
	})
	return rt.err
}

// Finalized reports whether Finalize has run.
func (rt *Route) Finalized() bool {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.finalized
}

// Run finalizes the route if needed and dispatches r through its stack.
// A request without routing metadata is treated as a match with no path
// parameters, so the action receives the static arguments.
func (rt *Route) Run(r *http.Request) (*Response, error) {
	if err := rt.Finalize(); err != nil {
		return nil, err
	}
	if RouteFrom(r) != rt {
		r = WithRoutingResult(r, &RoutingResult{
			Status: Found,
			Route:  rt,
			Method: r.Method,
			Path:   r.URL.Path,
		})
	}
	return rt.handler.Handle(r)
}

// Handle implements Handler.
func (rt *Route) Handle(r *http.Request) (*Response, error) {
	return rt.Run(r)
}

// invokeAction calls the deferred action with the merged arguments.
func (rt *Route) invokeAction(r *http.Request) (*Response, error) {
	return rt.action.Invoke(r, RouteArgs(r))
}
