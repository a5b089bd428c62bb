package internal

import "net/http"

// RoutingMiddleware matches the request before the rest of the chain runs
// and attaches the RoutingResult, so middleware registered outside of it can
// inspect the matched route. The kernel reuses the attached result instead
// of matching again.
func RoutingMiddleware(router Router) Middleware {
	return MiddlewareFunc(func(r *http.Request, next Handler) (*Response, error) {
		if router == nil {
			return nil, ErrNoRouter
		}
		rr := router.Match(r.Method, r.URL.Path)
		return next.Handle(WithRoutingResult(r, rr))
	})
}
