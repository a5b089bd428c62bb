package middlewares

import (
	"net/http"
	"strconv"

	"github.com/dmitrymomot/strata/internal"
)

// ContentLength returns middleware that sets Content-Length on responses
// that may carry a body and do not declare one already.
func ContentLength() internal.Middleware {
	return internal.MiddlewareFunc(func(r *http.Request, next internal.Handler) (*internal.Response, error) {
		resp, err := next.Handle(r)
		if err != nil || resp == nil {
			return resp, err
		}

		status := resp.Status()
		if status < http.StatusOK || status == http.StatusNoContent || status == http.StatusNotModified {
			return resp, nil
		}
		if resp.Header().Get("Content-Length") == "" {
			resp.Header().Set("Content-Length", strconv.Itoa(resp.Len()))
		}
		return resp, nil
	})
}
