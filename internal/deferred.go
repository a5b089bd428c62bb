package internal

import (
	"net/http"
	"sync"
	"sync/atomic"
)

// lazy resolves a value once and memoizes the outcome, including a failure.
// A failed resolution is not retried.
type lazy[T any] struct {
	resolve  func() (T, error)
	value    T
	err      error
	once     sync.Once
	resolved atomic.Bool
}

func (l *lazy[T]) get() (T, error) {
	l.once.Do(func() {
		l.value, l.err = l.resolve()
		l.resolve = nil
		l.resolved.Store(true)
	})
	return l.value, l.err
}

// DeferredCallable is a route action resolved on first invocation.
// Registration does not construct anything, so actions may name container
// entries that are registered later.
type DeferredCallable struct {
	lazy lazy[Callable]
	ref  Reference
}

// NewDeferredCallable wraps ref for lazy resolution through resolver.
// Handler objects are accepted, as for any route action.
func NewDeferredCallable(ref any, resolver Resolver) *DeferredCallable {
	r := ToReference(ref)
	dc := &DeferredCallable{ref: r}
	dc.lazy.resolve = func() (Callable, error) {
		return resolver.ResolveRoute(r)
	}
	return dc
}

// Reference returns the wrapped reference.
func (dc *DeferredCallable) Reference() Reference {
	return dc.ref
}

// Resolve forces resolution. Calling it before concurrent dispatch begins is
// optional; resolution is guarded either way.
func (dc *DeferredCallable) Resolve() (Callable, error) {
	return dc.lazy.get()
}

// Resolved reports whether resolution has happened.
func (dc *DeferredCallable) Resolved() bool {
	return dc.lazy.resolved.Load()
}

// Invoke resolves the target if needed and calls it with args.
func (dc *DeferredCallable) Invoke(r *http.Request, args Args) (*Response, error) {
	c, err := dc.lazy.get()
	if err != nil {
		return nil, err
	}
	return c(r, args)
}

// Handle implements Handler using the route arguments attached to r.
func (dc *DeferredCallable) Handle(r *http.Request) (*Response, error) {
	return dc.Invoke(r, RouteArgs(r))
}

// DeferredMiddleware is middleware resolved on first use.
type DeferredMiddleware struct {
	lazy lazy[Middleware]
	ref  Reference
}

// NewDeferredMiddleware wraps ref for lazy resolution through resolver.
func NewDeferredMiddleware(ref any, resolver Resolver) *DeferredMiddleware {
	r := ToReference(ref)
	dm := &DeferredMiddleware{ref: r}
	dm.lazy.resolve = func() (Middleware, error) {
		return resolver.ResolveMiddleware(r)
	}
	return dm
}

// resolvedMiddleware wraps already concrete middleware.
func resolvedMiddleware(ref Reference, mw Middleware) *DeferredMiddleware {
	dm := &DeferredMiddleware{ref: ref}
	dm.lazy.resolve = func() (Middleware, error) {
		return mw, nil
	}
	_, _ = dm.lazy.get()
	return dm
}

// Reference returns the wrapped reference.
func (dm *DeferredMiddleware) Reference() Reference {
	return dm.ref
}

// Resolved reports whether resolution has happened.
func (dm *DeferredMiddleware) Resolved() bool {
	return dm.lazy.resolved.Load()
}

// Process resolves the middleware if needed and delegates to it.
func (dm *DeferredMiddleware) Process(r *http.Request, next Handler) (*Response, error) {
	mw, err := dm.lazy.get()
	if err != nil {
		return nil, err
	}
	return mw.Process(r, next)
}
