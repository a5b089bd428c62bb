// Package middlewares provides first-party middleware for strata applications.
//
// Every constructor returns a strata.Middleware in the process shape: it
// receives the request and the next handler, may short-circuit, and may
// post-process the inner response.
//
// # Request ID
//
// RequestID assigns an ID to each request, reusing X-Request-ID or
// X-Correlation-ID when present and generating a UUID otherwise. Pair it
// with RequestIDExtractor to add request_id to every log entry:
//
//	app := strata.New(
//	    strata.WithLogger("api", middlewares.RequestIDExtractor()),
//	    strata.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover and Timeout
//
// Recover converts panics into *PanicError and Timeout enforces a deadline,
// returning *TimeoutError. Both report failures as errors so an outer
// ErrorResponder decides what the client sees.
//
// # ErrorResponder
//
// ErrorResponder turns errors into responses: *strata.HTTPError keeps its
// code, timeouts become 504 and the rest 500.
//
// # Recommended Order
//
// With the default LIFO order the last added middleware runs first, so add
// the outermost one last:
//
//	app.Add(middlewares.Timeout(5 * time.Second))
//	app.Add(middlewares.Recover())
//	app.Add(middlewares.RequestID())
//	app.Add(middlewares.ErrorResponder())
//	app.Add(middlewares.CORS())
//
// Requests then flow CORS -> ErrorResponder -> RequestID -> Recover ->
// Timeout -> route.
package middlewares
