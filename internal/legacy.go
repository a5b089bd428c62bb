package internal

import "net/http"

// LegacyNext is the next-callable handed to legacy middleware.
type LegacyNext func(r *http.Request, resp *Response) (*Response, error)

// LegacyMiddlewareFunc is the double-pass middleware shape: it receives a
// response to work on together with the request and the next callable.
type LegacyMiddlewareFunc func(r *http.Request, resp *Response, next LegacyNext) (*Response, error)

// AdaptLegacy turns double-pass middleware into Middleware. The factory
// creates the seed response the legacy shape expects as input.
//
// Headers and body bytes written into the seed before calling next are
// carried onto the response returned by the inner chain: headers the inner
// chain did not set are copied and the seed body is prepended.
func AdaptLegacy(fn LegacyMiddlewareFunc, factory ResponseFactory) Middleware {
	if factory == nil {
		factory = DefaultResponseFactory
	}
	return MiddlewareFunc(func(r *http.Request, next Handler) (*Response, error) {
		seed := factory.CreateResponse(http.StatusOK)
		return fn(r, seed, func(req *http.Request, passed *Response) (*Response, error) {
			inner, err := next.Handle(req)
			if err != nil {
				return nil, err
			}
			if inner == nil {
				return nil, ErrBadReturn
			}
			if passed != nil && passed != inner {
				carrySeed(passed, inner)
			}
			return inner, nil
		})
	})
}

func carrySeed(seed, inner *Response) {
	for k, v := range seed.header {
		if _, ok := inner.header[k]; !ok {
			inner.header[k] = append([]string(nil), v...)
		}
	}
	if seed.Len() == 0 {
		return
	}
	body := make([]byte, 0, seed.Len()+inner.Len())
	body = append(body, seed.Bytes()...)
	body = append(body, inner.Bytes()...)
	inner.SetBody(body)
}
