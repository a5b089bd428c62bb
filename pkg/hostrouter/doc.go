// Package hostrouter resolves request hosts to handlers.
//
// [Table] is a generic exact/wildcard lookup used by the host middleware to
// pick a per-host pipeline handler. [Router] is its net/http flavor, used to
// serve several applications from one listener.
//
// # Host Patterns
//
//   - Exact: "api.example.com" matches only that host
//   - Wildcard: "*.example.com" matches any single subdomain (foo.example.com)
//
// Exact matches take priority over wildcard matches. Host matching is
// case-insensitive, and ports are stripped before matching. IPv6 literals
// such as "[::1]:8080" keep their brackets.
//
// # Usage
//
//	router := hostrouter.NewHTTP(hostrouter.Routes[http.Handler]{
//	    "api.example.com": apiApp,
//	    "*.example.com":   tenantApp,
//	}, landingApp)
//	http.ListenAndServe(":8080", router)
package hostrouter
