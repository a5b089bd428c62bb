// Package internal holds the implementation behind package strata.
//
// Import "github.com/dmitrymomot/strata" instead; it re-exports the public
// API through type aliases.
//
// # Layout
//
//   - handler.go, response.go: the Handler and Middleware capabilities and the
//     buffered Response value
//   - reference.go, resolver.go, deferred.go: references, resolution and
//     lazily resolved wrappers
//   - dispatcher.go: the middleware queue state machine and Runner
//   - legacy.go, bridge.go, response_writer.go: adapters for the legacy
//     middleware shape and for net/http handlers
//   - route.go, group.go, router.go, pattern.go, routing.go: routes, groups,
//     the chi-backed collector and reverse routing
//   - app.go, options.go, config.go, health.go, run.go, runtime.go: the kernel
//     and its server runtime
package internal
