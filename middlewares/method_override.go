package middlewares

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/strata/internal"
)

// DefaultMethodOverrideHeader carries the overriding method.
const DefaultMethodOverrideHeader = "X-HTTP-Method-Override"

// DefaultMethodOverrideField is the form field carrying the overriding method.
const DefaultMethodOverrideField = "_METHOD"

// MethodOverride returns middleware that lets POST requests tunnel another
// method through the X-HTTP-Method-Override header or the _METHOD form
// field. The header wins. Place it outside RoutingMiddleware so matching
// sees the overridden method.
func MethodOverride() internal.Middleware {
	return internal.MiddlewareFunc(func(r *http.Request, next internal.Handler) (*internal.Response, error) {
		if r.Method != http.MethodPost {
			return next.Handle(r)
		}

		method := r.Header.Get(DefaultMethodOverrideHeader)
		if method == "" && isForm(r) {
			method = r.PostFormValue(DefaultMethodOverrideField)
		}

		method = strings.ToUpper(strings.TrimSpace(method))
		if method == "" || method == r.Method {
			return next.Handle(r)
		}

		r2 := r.Clone(r.Context())
		r2.Method = method
		return next.Handle(r2)
	})
}

func isForm(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(ct, "multipart/form-data")
}
