package internal

import (
	"context"
	"maps"
	"net/http"
)

// RoutingStatus is the outcome class of a routing attempt.
type RoutingStatus uint8

const (
	// NotFound means no route pattern matched the path.
	NotFound RoutingStatus = iota
	// Found means a route matched both path and method.
	Found
	// MethodNotAllowed means the path matched but not for this method.
	MethodNotAllowed
)

func (s RoutingStatus) String() string {
	switch s {
	case Found:
		return "found"
	case MethodNotAllowed:
		return "method not allowed"
	default:
		return "not found"
	}
}

// RoutingResult is the outcome of consulting a Router. Misses are ordinary
// values, not errors.
type RoutingResult struct {
	Route          *Route
	Params         Args
	Method         string
	Path           string
	AllowedMethods []string
	Status         RoutingStatus
}

// Args returns the route's static arguments overridden by path parameters.
func (rr *RoutingResult) Args() Args {
	if rr == nil {
		return Args{}
	}
	var args Args
	if rr.Route != nil {
		args = rr.Route.Arguments()
	} else {
		args = make(Args, len(rr.Params))
	}
	maps.Copy(args, rr.Params)
	return args
}

// matches reports whether the result was computed for this method and path.
func (rr *RoutingResult) matches(method, path string) bool {
	return rr != nil && rr.Method == method && rr.Path == path
}

type routingResultKey struct{}

// WithRoutingResult returns a shallow copy of r carrying rr.
func WithRoutingResult(r *http.Request, rr *RoutingResult) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), routingResultKey{}, rr))
}

// RoutingResultFrom returns the routing result attached to r, if any.
func RoutingResultFrom(r *http.Request) (*RoutingResult, bool) {
	rr, ok := r.Context().Value(routingResultKey{}).(*RoutingResult)
	return rr, ok && rr != nil
}

// RouteFrom returns the matched route attached to r, or nil.
func RouteFrom(r *http.Request) *Route {
	if rr, ok := RoutingResultFrom(r); ok {
		return rr.Route
	}
	return nil
}

// RouteArgs returns the merged route arguments for r. It is empty when no
// route has been matched.
func RouteArgs(r *http.Request) Args {
	rr, _ := RoutingResultFrom(r)
	return rr.Args()
}

// RouteArg returns a single route argument, or "" when absent.
func RouteArg(r *http.Request, name string) string {
	return RouteArgs(r)[name]
}
