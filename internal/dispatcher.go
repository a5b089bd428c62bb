package internal

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
)

// Order is the traversal discipline of a middleware queue.
type Order uint8

const (
	// LIFO makes the most recently added middleware the outermost link, so
	// it runs first.
	LIFO Order = iota
	// FIFO makes the first added middleware the outermost link, so
	// middleware runs in registration order.
	FIFO
)

func (o Order) String() string {
	if o == FIFO {
		return "fifo"
	}
	return "lifo"
}

// ParseOrder parses "lifo" or "fifo" (case-insensitive). An empty string
// yields LIFO.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lifo":
		return LIFO, nil
	case "fifo":
		return FIFO, nil
	}
	return LIFO, fmt.Errorf("unknown middleware order %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler for settings files.
func (o *Order) UnmarshalText(text []byte) error {
	v, err := ParseOrder(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// State is the lifecycle state of a dispatcher.
type State uint8

const (
	StateEmpty State = iota
	StateSeeded
	StateRunning
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateSeeded:
		return "seeded"
	case StateRunning:
		return "running"
	case StateFinalized:
		return "finalized"
	default:
		return "empty"
	}
}

// Dispatcher holds an ordered middleware queue in front of a terminal
// handler. The queue is mutable until the first dispatch; after that the
// built chain is shared read-only by every dispatch, including concurrent
// and re-entrant ones.
type Dispatcher struct {
	resolver Resolver
	terminal Handler
	fallback Handler
	tip      Handler
	queue    []*DeferredMiddleware
	active   atomic.Int32
	mu       sync.Mutex
	order    Order
	strict   bool
	frozen   bool
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithOrder sets the traversal discipline. Defaults to LIFO.
func WithOrder(o Order) DispatcherOption {
	return func(d *Dispatcher) {
		d.order = o
	}
}

// WithDispatcherResolver sets the resolver used for queued references.
func WithDispatcherResolver(r Resolver) DispatcherOption {
	return func(d *Dispatcher) {
		if r != nil {
			d.resolver = r
		}
	}
}

// WithFallback sets the terminal handler used when the dispatcher is
// dispatched without having been seeded.
func WithFallback(h Handler) DispatcherOption {
	return func(d *Dispatcher) {
		if h != nil {
			d.fallback = h
		}
	}
}

// NewDispatcher creates a dispatcher. With zero middleware, dispatching
// falls straight through to the terminal handler.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		fallback: HandlerFunc(func(*http.Request) (*Response, error) {
			return nil, ErrNotSeeded
		}),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.resolver == nil {
		d.resolver = NewCallableResolver()
	}
	return d
}

// Add queues a middleware reference. Inline values are checked against the
// middleware contract immediately; named references are resolved on first
// use. Add fails with ErrQueueFrozen once a dispatch has begun.
func (d *Dispatcher) Add(ref any) error {
	r := ToReference(ref)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.frozen {
		return fmt.Errorf("add %s: %w", r, ErrQueueFrozen)
	}

	var entry *DeferredMiddleware
	if r.IsInline() {
		mw, err := d.resolver.ResolveMiddleware(r)
		if err != nil {
			return fmt.Errorf("%w: got %T", ErrInvalidMiddleware, r.Value())
		}
		entry = resolvedMiddleware(r, mw)
	} else {
		entry = NewDeferredMiddleware(r, d.resolver)
	}

	d.queue = append(d.queue, entry)
	return nil
}

// Seed installs h as the innermost link. It may be called once.
func (d *Dispatcher) Seed(h Handler) error {
	if h == nil {
		return errors.New("seed: nil handler")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.terminal != nil {
		return ErrAlreadySeeded
	}
	if d.frozen {
		return ErrQueueFrozen
	}
	d.terminal = h
	return nil
}

// Handle dispatches r through the chain. The first call freezes the queue
// and builds the chain.
func (d *Dispatcher) Handle(r *http.Request) (*Response, error) {
	tip, err := d.prepare()
	if err != nil {
		return nil, err
	}

	d.active.Add(1)
	defer d.active.Add(-1)

	resp, err := tip.Handle(r)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, ErrBadReturn
	}
	return resp, nil
}

// prepare freezes the queue and returns the outermost link.
func (d *Dispatcher) prepare() (Handler, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.frozen {
		return d.tip, nil
	}
	if d.strict && len(d.queue) == 0 {
		return nil, ErrEmptyQueue
	}

	if d.terminal == nil {
		d.terminal = d.fallback
	}
	d.frozen = true
	d.tip = d.chain()
	return d.tip, nil
}

// chain nests the queue around the terminal handler according to the order.
func (d *Dispatcher) chain() Handler {
	h := d.terminal
	n := len(d.queue)
	for i := range n {
		idx := i
		if d.order == FIFO {
			idx = n - 1 - i
		}
		h = &link{mw: d.queue[idx], next: h}
	}
	return h
}

// ResolveAll resolves every queued reference now instead of on first use.
func (d *Dispatcher) ResolveAll() error {
	d.mu.Lock()
	queue := append([]*DeferredMiddleware(nil), d.queue...)
	d.mu.Unlock()

	var errs []error
	for _, entry := range queue {
		if _, err := entry.lazy.get(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// State reports the lifecycle state.
func (d *Dispatcher) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case d.active.Load() > 0:
		return StateRunning
	case d.frozen:
		return StateFinalized
	case d.terminal != nil:
		return StateSeeded
	default:
		return StateEmpty
	}
}

// Len returns the number of queued middleware.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// Order returns the traversal discipline.
func (d *Dispatcher) Order() Order {
	return d.order
}

// Middleware returns the queued entries in registration order.
func (d *Dispatcher) Middleware() []*DeferredMiddleware {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*DeferredMiddleware(nil), d.queue...)
}

// link is one layer of the built chain.
type link struct {
	mw   *DeferredMiddleware
	next Handler
}

// Handle runs the middleware with a next handler private to this dispatch.
func (l *link) Handle(r *http.Request) (*Response, error) {
	resp, err := l.mw.Process(r, &onceHandler{next: l.next})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("%w (%s)", ErrBadReturn, l.mw.Reference())
	}
	return resp, nil
}

// onceHandler refuses a second delegation within one dispatch.
type onceHandler struct {
	next   Handler
	called atomic.Bool
}

func (h *onceHandler) Handle(r *http.Request) (*Response, error) {
	if h.called.Swap(true) {
		return nil, ErrNextCalledTwice
	}
	return h.next.Handle(r)
}

// Runner is the strict dispatcher flavor: it refuses to run an empty queue
// and has no terminal handler of its own, so the innermost middleware must
// produce the response.
type Runner struct {
	d *Dispatcher
}

// NewRunner creates a runner. WithFallback is ignored.
func NewRunner(opts ...DispatcherOption) *Runner {
	d := NewDispatcher(opts...)
	d.strict = true
	d.fallback = HandlerFunc(func(*http.Request) (*Response, error) {
		return nil, ErrQueueExhausted
	})
	return &Runner{d: d}
}

// Add queues a middleware reference.
func (r *Runner) Add(ref any) error {
	return r.d.Add(ref)
}

// Handle dispatches req through the queue.
func (r *Runner) Handle(req *http.Request) (*Response, error) {
	return r.d.Handle(req)
}

// State reports the lifecycle state.
func (r *Runner) State() State {
	return r.d.State()
}

// Len returns the number of queued middleware.
func (r *Runner) Len() int {
	return r.d.Len()
}
