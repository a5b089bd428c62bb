package middlewares

import (
	"net/http"

	"github.com/dmitrymomot/strata/internal"
	"github.com/dmitrymomot/strata/pkg/hostrouter"
)

// Host returns middleware that hands requests for known hosts to their own
// handler and passes everything else down the chain. Patterns are exact
// ("api.example.com") or single-label wildcards ("*.example.com").
//
// Example:
//
//	adminApp := strata.New()
//	app.Add(middlewares.Host(map[string]strata.Handler{
//	    "admin.example.com": adminApp,
//	}))
func Host(routes map[string]internal.Handler) internal.Middleware {
	table := hostrouter.NewTable(hostrouter.Routes[internal.Handler](routes))

	return internal.MiddlewareFunc(func(r *http.Request, next internal.Handler) (*internal.Response, error) {
		if h, ok := table.Lookup(r.Host); ok && h != nil {
			return h.Handle(r)
		}
		return next.Handle(r)
	})
}
