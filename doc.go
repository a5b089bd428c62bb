// Package strata provides a layered request pipeline for HTTP applications.
//
// A request flows through global middleware, route resolution, route
// middleware and finally the route action. Every layer has the same shape:
// a [Middleware] receives the request and the next [Handler] and returns a
// [Response] or an error. Responses are plain values; nothing is written
// to the client until the kernel emits the final response.
//
// # Quick Start
//
//	app := strata.New(
//	    strata.WithLogger("api", middlewares.RequestIDExtractor()),
//	)
//
//	app.Add(middlewares.Recover())
//	app.Add(middlewares.RequestID())
//
//	app.Get("/hello/{name}", func(r *http.Request, args strata.Args) (*strata.Response, error) {
//	    return strata.NewResponse(http.StatusOK).WriteString("Hello, " + args["name"]), nil
//	}).SetName("hello")
//
//	if err := app.Run(strata.Address(":8080")); err != nil {
//	    log.Fatal(err)
//	}
//
// # Middleware Order
//
// Stacks are LIFO by default: the last added middleware is outermost and
// sees the request first. [WithMiddlewareOrder] and [WithRouteMiddlewareOrder]
// switch to FIFO, where the first added middleware is outermost. Queues
// freeze once the first request is dispatched; adding to a running stack
// fails with [ErrQueueFrozen].
//
// # References
//
// Middleware and route actions may be given inline or by reference. The
// string "auth" names a container entry or registered type, and
// "users:Show" names a method on one. References are resolved on first use
// and the result, error included, is cached.
//
//	services := container.New()
//	_ = services.Set("auth", authMiddleware)
//
//	app := strata.New(strata.WithContainer(services))
//	app.Get("/admin", adminPage, "auth")
//
// # Accepted Shapes
//
// Middleware may be a [Middleware], a func(*http.Request, Handler), a
// [Decorator], a [LegacyMiddlewareFunc] or a net/http
// func(http.Handler) http.Handler such as those from chi/middleware. Route
// actions may be a [Callable], a [ContainerCallable], a [HandlerFunc], a
// [Handler] or an [Invoker].
//
// # Routing
//
// Routes are matched by a chi tree. Placeholders are "{name}" or
// "{name:regex}" and a trailing optional segment is written "[/{id}]".
// HEAD requests fall back to GET routes, and a path that exists under other
// methods yields 405 with an Allow header. Named routes render back into
// paths with [App.PathFor].
//
// # Errors
//
// The pipeline reports failures as errors and never turns them into
// responses itself. Add middlewares.ErrorResponder to render them; errors
// that escape every middleware reach the [ErrorHandler], which defaults to
// logging and a plain 500.
package strata
