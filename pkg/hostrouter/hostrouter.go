package hostrouter

import (
	"net/http"
	"strings"
)

// Routes maps host patterns to values.
// Exact: "api.example.com"
// Wildcard: "*.example.com"
type Routes[T any] map[string]T

// Table resolves hosts to values. It supports exact matches and wildcard
// patterns; exact matches win.
type Table[T any] struct {
	exact    map[string]T
	wildcard map[string]T
}

// NewTable builds a lookup table from routes. Empty patterns are ignored.
func NewTable[T any](routes Routes[T]) *Table[T] {
	t := &Table[T]{
		exact:    make(map[string]T),
		wildcard: make(map[string]T),
	}

	for pattern, v := range routes {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(pattern, "*."); ok {
			t.wildcard[rest] = v
		} else {
			t.exact[pattern] = v
		}
	}

	return t
}

// Lookup returns the value registered for host. The port is ignored and
// matching is case-insensitive. "*.example.com" matches a single label
// in front of example.com.
func (t *Table[T]) Lookup(host string) (T, bool) {
	host = normalizeHost(host)

	if v, ok := t.exact[host]; ok {
		return v, true
	}
	if _, domain, ok := strings.Cut(host, "."); ok {
		if v, ok := t.wildcard[domain]; ok {
			return v, true
		}
	}

	var zero T
	return zero, false
}

// Len returns the number of registered patterns.
func (t *Table[T]) Len() int {
	return len(t.exact) + len(t.wildcard)
}

// Router routes HTTP requests based on the Host header.
type Router struct {
	table    *Table[http.Handler]
	fallback http.Handler
}

// NewHTTP creates a host router from the given routes.
// The fallback handler is used for requests that don't match any host pattern.
func NewHTTP(routes Routes[http.Handler], fallback http.Handler) *Router {
	if fallback == nil {
		fallback = http.NotFoundHandler()
	}
	return &Router{table: NewTable(routes), fallback: fallback}
}

// ServeHTTP routes requests based on the Host header.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if h, ok := r.table.Lookup(req.Host); ok {
		h.ServeHTTP(w, req)
		return
	}
	r.fallback.ServeHTTP(w, req)
}

// normalizeHost strips the port and converts to lowercase.
func normalizeHost(host string) string {
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		// IPv6 literals keep their brackets
		if !strings.Contains(host[idx:], "]") {
			host = host[:idx]
		}
	}
	return strings.ToLower(host)
}
