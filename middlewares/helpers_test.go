package middlewares_test

import (
	"net/http"

	"github.com/dmitrymomot/strata/internal"
)

// reply returns a terminal handler answering with status and body.
func reply(status int, body string) internal.Handler {
	return internal.HandlerFunc(func(*http.Request) (*internal.Response, error) {
		return internal.NewResponse(status).WriteString(body), nil
	})
}

// fail returns a terminal handler failing with err.
func fail(err error) internal.Handler {
	return internal.HandlerFunc(func(*http.Request) (*internal.Response, error) {
		return nil, err
	})
}

// capture records the request seen by the terminal handler.
func capture(seen **http.Request) internal.Handler {
	return internal.HandlerFunc(func(r *http.Request) (*internal.Response, error) {
		*seen = r
		return internal.NewResponse(http.StatusOK), nil
	})
}
