package internal

import "net/http"

// Handler processes a request and produces a response.
// It terminates a middleware chain.
//
// Example:
//
//	type PingHandler struct{}
//
//	func (PingHandler) Handle(r *http.Request) (*strata.Response, error) {
//	    return strata.NewResponse(http.StatusOK).WriteString("pong"), nil
//	}
type Handler interface {
	Handle(r *http.Request) (*Response, error)
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(r *http.Request) (*Response, error)

// Handle calls f(r).
func (f HandlerFunc) Handle(r *http.Request) (*Response, error) {
	return f(r)
}

// Middleware wraps the next Handler in the chain.
// It may inspect or replace the request before delegating, short-circuit by
// returning its own response, or decorate the response on the way out.
// A middleware calls next at most once per dispatch.
//
// Example:
//
//	func Auth(r *http.Request, next strata.Handler) (*strata.Response, error) {
//	    if r.Header.Get("Authorization") == "" {
//	        return strata.NewResponse(http.StatusUnauthorized), nil
//	    }
//	    return next.Handle(r)
//	}
type Middleware interface {
	Process(r *http.Request, next Handler) (*Response, error)
}

// MiddlewareFunc adapts an ordinary function to the Middleware interface.
type MiddlewareFunc func(r *http.Request, next Handler) (*Response, error)

// Process calls f(r, next).
func (f MiddlewareFunc) Process(r *http.Request, next Handler) (*Response, error) {
	return f(r, next)
}

// Decorator is the wrapping form of middleware: it receives the next handler
// and returns the handler that replaces it.
type Decorator func(next Handler) Handler

// Args holds route arguments passed to a route action.
// Path parameters override statically attached arguments on key collision.
type Args map[string]string

// Callable is the resolved form of a route action.
type Callable func(r *http.Request, args Args) (*Response, error)

// ContainerCallable is a route action that receives the application container
// explicitly. The resolver binds it to its container on first invocation.
type ContainerCallable func(c Container, r *http.Request, args Args) (*Response, error)

// Invoker is implemented by objects whose default entry point handles a
// routed request.
type Invoker interface {
	Invoke(r *http.Request, args Args) (*Response, error)
}

// ErrorHandler handles errors that escape the middleware chain at the host
// boundary. It writes the final response itself.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)
