package internal

import (
	"net/http"
	"sync"
)

// FromHTTPHandler adapts a net/http handler into a Handler by recording what
// it writes.
func FromHTTPHandler(h http.Handler) Handler {
	return HandlerFunc(func(r *http.Request) (*Response, error) {
		rec := newResponseRecorder()
		h.ServeHTTP(rec, r)
		return rec.result(), nil
	})
}

// FromHTTPMiddleware adapts net/http middleware (the chi/std shape) into
// Middleware. The rest of the pipeline runs as the wrapped http.Handler; its
// response is written through whatever writer the middleware supplies, so
// header and status decoration by the middleware is preserved.
//
// Example:
//
//	app.Add(strata.FromHTTPMiddleware(middleware.RealIP))
func FromHTTPMiddleware(mw func(http.Handler) http.Handler) Middleware {
	return MiddlewareFunc(func(r *http.Request, next Handler) (*Response, error) {
		var failure errSlot
		inner := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			resp, err := next.Handle(req)
			if err != nil {
				failure.set(err)
				return
			}
			if resp == nil {
				failure.set(ErrBadReturn)
				return
			}
			writeInto(w, resp)
		})

		rec := newResponseRecorder()
		mw(inner).ServeHTTP(rec, r)
		if err := failure.get(); err != nil {
			return nil, err
		}
		return rec.result(), nil
	})
}

// errSlot carries the pipeline error out of the wrapped handler, which some
// middleware (http.TimeoutHandler) runs on its own goroutine.
type errSlot struct {
	mu  sync.Mutex
	err error
}

func (s *errSlot) set(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *errSlot) get() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
