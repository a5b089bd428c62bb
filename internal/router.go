package internal

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Router is the routing boundary consumed by the kernel.
type Router interface {
	// Match resolves a method and path to a routing result.
	Match(method, path string) *RoutingResult

	// PathFor renders the path of a named route. It fails with
	// *RouteNotFoundError or *MissingParameterError.
	PathFor(name string, params, query map[string]string) (string, error)
}

var standardMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// routeMatcher is a placeholder endpoint: chi is used only to find patterns,
// never to serve.
var routeMatcher = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNotImplemented)
})

// RouteCollector registers routes and matches requests against them.
// Pattern matching is delegated to a chi tree; "{name}" and "{name:regex}"
// placeholders and trailing optional segments ("/users[/{id}]") are
// supported.
type RouteCollector struct {
	mux       *chi.Mux
	resolver  Resolver
	routes    []*Route
	byID      map[string]*Route
	endpoints map[string]*Route
	methods   map[string]struct{}
	basePath  string
	mu        sync.RWMutex
	order     Order
}

// CollectorOption configures a RouteCollector.
type CollectorOption func(*RouteCollector)

// WithRouteOrder sets the traversal discipline of route middleware stacks.
func WithRouteOrder(o Order) CollectorOption {
	return func(c *RouteCollector) {
		c.order = o
	}
}

// WithCollectorBasePath sets a path prefix that is stripped before matching and
// prepended by PathFor.
func WithCollectorBasePath(p string) CollectorOption {
	return func(c *RouteCollector) {
		c.basePath = strings.TrimSuffix(p, "/")
	}
}

// NewRouteCollector creates an empty collector. Route actions and middleware
// are resolved through resolver.
func NewRouteCollector(resolver Resolver, opts ...CollectorOption) *RouteCollector {
	if resolver == nil {
		resolver = NewCallableResolver()
	}
	c := &RouteCollector{
		mux:       chi.NewMux(),
		resolver:  resolver,
		byID:      make(map[string]*Route),
		endpoints: make(map[string]*Route),
		methods:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BasePath returns the configured base path.
func (c *RouteCollector) BasePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.basePath
}

// SetBasePath changes the base path.
func (c *RouteCollector) SetBasePath(p string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.basePath = strings.TrimSuffix(p, "/")
}

// Map registers a route for methods and pattern.
func (c *RouteCollector) Map(methods []string, pattern string, action any) (*Route, error) {
	return c.mapRoute(nil, methods, pattern, action)
}

// Get registers a GET route.
func (c *RouteCollector) Get(pattern string, action any) (*Route, error) {
	return c.Map([]string{http.MethodGet}, pattern, action)
}

// Post registers a POST route.
func (c *RouteCollector) Post(pattern string, action any) (*Route, error) {
	return c.Map([]string{http.MethodPost}, pattern, action)
}

// Put registers a PUT route.
func (c *RouteCollector) Put(pattern string, action any) (*Route, error) {
	return c.Map([]string{http.MethodPut}, pattern, action)
}

// Patch registers a PATCH route.
func (c *RouteCollector) Patch(pattern string, action any) (*Route, error) {
	return c.Map([]string{http.MethodPatch}, pattern, action)
}

// Delete registers a DELETE route.
func (c *RouteCollector) Delete(pattern string, action any) (*Route, error) {
	return c.Map([]string{http.MethodDelete}, pattern, action)
}

// Options registers an OPTIONS route.
func (c *RouteCollector) Options(pattern string, action any) (*Route, error) {
	return c.Map([]string{http.MethodOptions}, pattern, action)
}

// Any registers a route for every standard method.
func (c *RouteCollector) Any(pattern string, action any) (*Route, error) {
	return c.Map(slices.Clone(standardMethods), pattern, action)
}

// Group creates a route group with a pattern prefix. fn runs immediately.
func (c *RouteCollector) Group(prefix string, fn func(*RouteGroup)) *RouteGroup {
	g := &RouteGroup{collector: c, prefix: prefix}
	if fn != nil {
		fn(g)
	}
	return g
}

func (c *RouteCollector) mapRoute(groups []*RouteGroup, methods []string, pattern string, action any) (rt *Route, err error) {
	if len(methods) == 0 {
		return nil, errors.New("route must have at least one method")
	}
	if !strings.HasPrefix(pattern, "/") {
		return nil, fmt.Errorf("route pattern %q must begin with '/'", pattern)
	}

	ref := ToReference(action)
	if ref.IsInline() {
		if _, err := c.resolver.ResolveRoute(ref); err != nil {
			return nil, fmt.Errorf("route %s: %w", pattern, err)
		}
	}

	expansions, err := expandPattern(pattern)
	if err != nil {
		return nil, fmt.Errorf("route %s: %w", pattern, err)
	}

	upper := make([]string, 0, len(methods))
	for _, m := range methods {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m != "" && !slices.Contains(upper, m) {
			upper = append(upper, m)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// chi panics on malformed patterns; report them as errors instead.
	defer func() {
		if p := recover(); p != nil {
			rt = nil
			err = fmt.Errorf("route %s: %v", pattern, p)
		}
	}()

	for _, m := range upper {
		for _, p := range expansions {
			if _, dup := c.endpoints[m+" "+p]; dup {
				return nil, fmt.Errorf("cannot register two routes matching %q for method %q", p, m)
			}
		}
	}

	id := "route" + strconv.Itoa(len(c.routes))
	rt = newRoute(id, upper, pattern, ref, c.resolver, c.order, groups)

	for _, m := range upper {
		if !slices.Contains(standardMethods, m) {
			chi.RegisterMethod(m)
		}
		for _, p := range expansions {
			c.mux.Method(m, p, routeMatcher)
			c.endpoints[m+" "+p] = rt
		}
		c.methods[m] = struct{}{}
	}

	c.routes = append(c.routes, rt)
	c.byID[id] = rt
	return rt, nil
}

// Match implements Router. A HEAD request falls back to the GET route of the
// same path.
func (c *RouteCollector) Match(method, path string) *RoutingResult {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res := &RoutingResult{Method: method, Path: path, Status: NotFound}

	p, ok := c.stripBase(path)
	if !ok {
		return res
	}

	if rt, params := c.find(method, p); rt != nil {
		res.Status, res.Route, res.Params = Found, rt, params
		return res
	}
	if method == http.MethodHead {
		if rt, params := c.find(http.MethodGet, p); rt != nil {
			res.Status, res.Route, res.Params = Found, rt, params
			return res
		}
	}

	for m := range c.methods {
		if rt, _ := c.find(m, p); rt != nil {
			res.AllowedMethods = append(res.AllowedMethods, m)
		}
	}
	if len(res.AllowedMethods) > 0 {
		// GET routes also answer HEAD.
		if slices.Contains(res.AllowedMethods, http.MethodGet) && !slices.Contains(res.AllowedMethods, http.MethodHead) {
			res.AllowedMethods = append(res.AllowedMethods, http.MethodHead)
		}
		slices.Sort(res.AllowedMethods)
		res.Status = MethodNotAllowed
	}
	return res
}

func (c *RouteCollector) stripBase(path string) (string, bool) {
	if path == "" {
		path = "/"
	}
	if c.basePath == "" {
		return path, true
	}
	if path == c.basePath {
		return "/", true
	}
	rest, ok := strings.CutPrefix(path, c.basePath+"/")
	if !ok {
		return "", false
	}
	return "/" + rest, true
}

// find looks up the route registered for method at path.
func (c *RouteCollector) find(method, path string) (*Route, Args) {
	rctx := chi.NewRouteContext()
	pattern := c.mux.Find(rctx, method, path)
	if pattern == "" {
		return nil, nil
	}
	rt, ok := c.endpoints[method+" "+pattern]
	if !ok {
		return nil, nil
	}

	params := make(Args, len(rctx.URLParams.Keys))
	for i, k := range rctx.URLParams.Keys {
		if k == "" || i >= len(rctx.URLParams.Values) {
			continue
		}
		v := rctx.URLParams.Values[i]
		if unescaped, err := url.PathUnescape(v); err == nil {
			v = unescaped
		}
		params[k] = v
	}
	return rt, params
}

// Routes returns all routes in registration order.
func (c *RouteCollector) Routes() []*Route {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.routes)
}

// Lookup returns a route by identifier.
func (c *RouteCollector) Lookup(identifier string) (*Route, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rt, ok := c.byID[identifier]
	if !ok {
		return nil, fmt.Errorf("route %s: %w", identifier, ErrRouteNotFound)
	}
	return rt, nil
}

// NamedRoute returns the most recently registered route with name.
func (c *RouteCollector) NamedRoute(name string) (*Route, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, rt := range slices.Backward(c.routes) {
		if rt.Name() == name {
			return rt, nil
		}
	}
	return nil, &RouteNotFoundError{Name: name}
}

// RelativePathFor renders the path of a named route without the base path.
func (c *RouteCollector) RelativePathFor(name string, params, query map[string]string) (string, error) {
	rt, err := c.NamedRoute(name)
	if err != nil {
		return "", err
	}

	path, missing, err := reversePattern(rt.Pattern(), params)
	if err != nil {
		return "", fmt.Errorf("route %s: %w", name, err)
	}
	if missing != "" {
		return "", &MissingParameterError{Route: name, Parameter: missing}
	}

	if q := encodeQuery(query); q != "" {
		path += "?" + q
	}
	return path, nil
}

// PathFor implements Router.
func (c *RouteCollector) PathFor(name string, params, query map[string]string) (string, error) {
	path, err := c.RelativePathFor(name, params, query)
	if err != nil {
		return "", err
	}
	return c.BasePath() + path, nil
}

// FullURLFor renders an absolute URL for a named route using the scheme and
// host of base.
func (c *RouteCollector) FullURLFor(base *url.URL, name string, params, query map[string]string) (string, error) {
	path, err := c.PathFor(name, params, query)
	if err != nil {
		return "", err
	}
	if base == nil || base.Host == "" {
		return path, nil
	}
	scheme := base.Scheme
	if scheme == "" {
		scheme = "http"
	}
	return scheme + "://" + base.Host + path, nil
}
