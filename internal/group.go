package internal

import (
	"fmt"
	"net/http"
	"slices"
	"sync"
)

// RouteGroup shares a pattern prefix and middleware among routes.
// Group middleware wraps outside the middleware of each member route.
type RouteGroup struct {
	collector  *RouteCollector
	parents    []*RouteGroup
	prefix     string
	middleware []any
	mu         sync.Mutex
	frozen     bool
}

// Prefix returns the full pattern prefix of the group.
func (g *RouteGroup) Prefix() string {
	return g.prefix
}

// Add queues group middleware. Inline values are checked immediately.
// It fails with ErrQueueFrozen once any member route has been finalized.
func (g *RouteGroup) Add(ref any) error {
	r := ToReference(ref)
	if r.IsInline() {
		if _, err := g.collector.resolver.ResolveMiddleware(r); err != nil {
			return fmt.Errorf("%w: got %T", ErrInvalidMiddleware, r.Value())
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.frozen {
		return fmt.Errorf("group %q: %w", g.prefix, ErrQueueFrozen)
	}
	g.middleware = append(g.middleware, ref)
	return nil
}

// Frozen reports whether a member route has been finalized.
func (g *RouteGroup) Frozen() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.frozen
}

// freeze closes the group queue and returns its middleware.
func (g *RouteGroup) freeze() []any {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.frozen = true
	return slices.Clone(g.middleware)
}

// chain returns the groups from outermost to this one.
func (g *RouteGroup) chain() []*RouteGroup {
	return append(slices.Clone(g.parents), g)
}

// Map registers a route under the group prefix.
func (g *RouteGroup) Map(methods []string, pattern string, action any) (*Route, error) {
	return g.collector.mapRoute(g.chain(), methods, g.prefix+pattern, action)
}

// Get registers a GET route under the group prefix.
func (g *RouteGroup) Get(pattern string, action any) (*Route, error) {
	return g.Map([]string{http.MethodGet}, pattern, action)
}

// Post registers a POST route under the group prefix.
func (g *RouteGroup) Post(pattern string, action any) (*Route, error) {
	return g.Map([]string{http.MethodPost}, pattern, action)
}

// Put registers a PUT route under the group prefix.
func (g *RouteGroup) Put(pattern string, action any) (*Route, error) {
	return g.Map([]string{http.MethodPut}, pattern, action)
}

// Patch registers a PATCH route under the group prefix.
func (g *RouteGroup) Patch(pattern string, action any) (*Route, error) {
	return g.Map([]string{http.MethodPatch}, pattern, action)
}

// Delete registers a DELETE route under the group prefix.
func (g *RouteGroup) Delete(pattern string, action any) (*Route, error) {
	return g.Map([]string{http.MethodDelete}, pattern, action)
}

// Options registers an OPTIONS route under the group prefix.
func (g *RouteGroup) Options(pattern string, action any) (*Route, error) {
	return g.Map([]string{http.MethodOptions}, pattern, action)
}

// Any registers a route for every standard method under the group prefix.
func (g *RouteGroup) Any(pattern string, action any) (*Route, error) {
	return g.Map(slices.Clone(standardMethods), pattern, action)
}

// Group creates a nested group. fn runs immediately.
func (g *RouteGroup) Group(prefix string, fn func(*RouteGroup)) *RouteGroup {
	child := &RouteGroup{
		collector: g.collector,
		parents:   g.chain(),
		prefix:    g.prefix + prefix,
	}
	if fn != nil {
		fn(child)
	}
	return child
}
