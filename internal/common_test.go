package internal_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/strata/internal"
)

// trace collects the order in which middleware and handlers ran.
type trace struct {
	mu    sync.Mutex
	steps []string
}

func (t *trace) add(step string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.steps = append(t.steps, step)
}

func (t *trace) all() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.steps...)
}

// traced records name before and name+"'" after delegating, and appends
// name to the response body on the way out.
func traced(t *trace, name string) internal.MiddlewareFunc {
	return func(r *http.Request, next internal.Handler) (*internal.Response, error) {
		t.add(name)
		resp, err := next.Handle(r)
		if err != nil {
			return nil, err
		}
		t.add(name + "'")
		return resp.WriteString(name), nil
	}
}

// wrapping surrounds the inner body with s on both sides.
func wrapping(s string) internal.MiddlewareFunc {
	return func(r *http.Request, next internal.Handler) (*internal.Response, error) {
		resp, err := next.Handle(r)
		if err != nil {
			return nil, err
		}
		return resp.SetBody([]byte(s + resp.String() + s)), nil
	}
}

func text(s string) internal.HandlerFunc {
	return func(*http.Request) (*internal.Response, error) {
		return internal.NewResponse(http.StatusOK).WriteString(s), nil
	}
}

func tracedHandler(t *trace, s string) internal.HandlerFunc {
	return func(*http.Request) (*internal.Response, error) {
		t.add(s)
		return internal.NewResponse(http.StatusOK).WriteString(s), nil
	}
}

func get(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}

// countingContainer serves a fixed set of entries and counts lookups.
type countingContainer struct {
	entries map[string]any
	errs    map[string]error
	gets    atomic.Int32
}

func (c *countingContainer) Has(id string) bool {
	if _, ok := c.entries[id]; ok {
		return true
	}
	_, ok := c.errs[id]
	return ok
}

func (c *countingContainer) Get(id string) (any, error) {
	c.gets.Add(1)
	if err, ok := c.errs[id]; ok {
		return nil, err
	}
	return c.entries[id], nil
}
