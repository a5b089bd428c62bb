package internal_test

import (
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/strata/internal"
)

func TestDispatcherOrder(t *testing.T) {
	t.Parallel()

	t.Run("lifo runs the last added middleware first", func(t *testing.T) {
		t.Parallel()

		tr := &trace{}
		d := internal.NewDispatcher()
		require.NoError(t, d.Seed(tracedHandler(tr, "T")))
		require.NoError(t, d.Add(traced(tr, "A")))
		require.NoError(t, d.Add(traced(tr, "B")))
		require.NoError(t, d.Add(traced(tr, "C")))

		resp, err := d.Handle(get("/"))
		require.NoError(t, err)
		require.Equal(t, []string{"C", "B", "A", "T", "A'", "B'", "C'"}, tr.all())
		require.Equal(t, "TABC", resp.String())
	})

	t.Run("fifo runs middleware in registration order", func(t *testing.T) {
		t.Parallel()

		tr := &trace{}
		d := internal.NewDispatcher(internal.WithOrder(internal.FIFO))
		require.NoError(t, d.Seed(tracedHandler(tr, "T")))
		require.NoError(t, d.Add(traced(tr, "A")))
		require.NoError(t, d.Add(traced(tr, "B")))

		resp, err := d.Handle(get("/"))
		require.NoError(t, err)
		require.Equal(t, []string{"A", "B", "T", "B'", "A'"}, tr.all())
		require.Equal(t, "TBA", resp.String())
	})

	t.Run("fifo mirrors lifo for the same add order", func(t *testing.T) {
		t.Parallel()

		run := func(o internal.Order) []string {
			tr := &trace{}
			d := internal.NewDispatcher(internal.WithOrder(o))
			require.NoError(t, d.Seed(tracedHandler(tr, "T")))
			for _, name := range []string{"A", "B", "C"} {
				require.NoError(t, d.Add(traced(tr, name)))
			}
			_, err := d.Handle(get("/"))
			require.NoError(t, err)
			return tr.all()
		}

		lifo, fifo := run(internal.LIFO), run(internal.FIFO)
		require.Equal(t, []string{"C", "B", "A", "T", "A'", "B'", "C'"}, lifo)
		require.Equal(t, []string{"A", "B", "C", "T", "C'", "B'", "A'"}, fifo)
	})
}

func TestDispatcherEmptyQueue(t *testing.T) {
	t.Parallel()

	d := internal.NewDispatcher()
	require.NoError(t, d.Seed(text("terminal")))

	resp, err := d.Handle(get("/"))
	require.NoError(t, err)
	require.Equal(t, "terminal", resp.String())
	require.Equal(t, http.StatusOK, resp.Status())
}

func TestDispatcherSeed(t *testing.T) {
	t.Parallel()

	t.Run("second seed fails", func(t *testing.T) {
		t.Parallel()

		d := internal.NewDispatcher()
		require.Equal(t, internal.StateEmpty, d.State())
		require.NoError(t, d.Seed(text("a")))
		require.Equal(t, internal.StateSeeded, d.State())
		require.ErrorIs(t, d.Seed(text("b")), internal.ErrAlreadySeeded)
	})

	t.Run("unseeded dispatch fails", func(t *testing.T) {
		t.Parallel()

		d := internal.NewDispatcher()
		_, err := d.Handle(get("/"))
		require.ErrorIs(t, err, internal.ErrNotSeeded)
	})

	t.Run("fallback serves an unseeded dispatcher", func(t *testing.T) {
		t.Parallel()

		d := internal.NewDispatcher(internal.WithFallback(text("fallback")))
		resp, err := d.Handle(get("/"))
		require.NoError(t, err)
		require.Equal(t, "fallback", resp.String())
	})
}

func TestDispatcherFrozenQueue(t *testing.T) {
	t.Parallel()

	t.Run("add after first dispatch", func(t *testing.T) {
		t.Parallel()

		d := internal.NewDispatcher()
		require.NoError(t, d.Seed(text("ok")))
		_, err := d.Handle(get("/"))
		require.NoError(t, err)

		require.Equal(t, internal.StateFinalized, d.State())
		require.ErrorIs(t, d.Add(wrapping("x")), internal.ErrQueueFrozen)
		require.ErrorIs(t, d.Seed(text("again")), internal.ErrAlreadySeeded)
	})

	t.Run("add while running", func(t *testing.T) {
		t.Parallel()

		d := internal.NewDispatcher()
		var (
			addErr error
			state  internal.State
		)
		require.NoError(t, d.Seed(text("ok")))
		require.NoError(t, d.Add(internal.MiddlewareFunc(func(r *http.Request, next internal.Handler) (*internal.Response, error) {
			state = d.State()
			addErr = d.Add(wrapping("late"))
			return next.Handle(r)
		})))

		resp, err := d.Handle(get("/"))
		require.NoError(t, err)
		require.Equal(t, "ok", resp.String())
		require.Equal(t, internal.StateRunning, state)
		require.ErrorIs(t, addErr, internal.ErrQueueFrozen)
		require.Equal(t, 1, d.Len())
	})

	t.Run("runner rejects add while running", func(t *testing.T) {
		t.Parallel()

		rn := internal.NewRunner()
		var addErr error
		require.NoError(t, rn.Add(internal.MiddlewareFunc(func(*http.Request, internal.Handler) (*internal.Response, error) {
			addErr = rn.Add(wrapping("late"))
			return internal.NewResponse(http.StatusOK), nil
		})))

		_, err := rn.Handle(get("/"))
		require.NoError(t, err)
		require.ErrorIs(t, addErr, internal.ErrQueueFrozen)
	})
}

func TestDispatcherContractViolations(t *testing.T) {
	t.Parallel()

	t.Run("non middleware value", func(t *testing.T) {
		t.Parallel()

		d := internal.NewDispatcher()
		err := d.Add(42)
		require.ErrorIs(t, err, internal.ErrInvalidMiddleware)
		require.Contains(t, err.Error(), "int")
		require.Equal(t, 0, d.Len())
	})

	t.Run("nil response stops the chain", func(t *testing.T) {
		t.Parallel()

		tr := &trace{}
		d := internal.NewDispatcher(internal.WithOrder(internal.FIFO))
		require.NoError(t, d.Seed(tracedHandler(tr, "T")))
		require.NoError(t, d.Add(internal.MiddlewareFunc(func(*http.Request, internal.Handler) (*internal.Response, error) {
			tr.add("bad")
			return nil, nil
		})))
		require.NoError(t, d.Add(traced(tr, "never")))

		_, err := d.Handle(get("/"))
		require.ErrorIs(t, err, internal.ErrBadReturn)
		require.Equal(t, []string{"bad"}, tr.all())
	})

	t.Run("next called twice", func(t *testing.T) {
		t.Parallel()

		d := internal.NewDispatcher()
		require.NoError(t, d.Seed(text("ok")))
		require.NoError(t, d.Add(internal.MiddlewareFunc(func(r *http.Request, next internal.Handler) (*internal.Response, error) {
			if _, err := next.Handle(r); err != nil {
				return nil, err
			}
			return next.Handle(r)
		})))

		_, err := d.Handle(get("/"))
		require.ErrorIs(t, err, internal.ErrNextCalledTwice)
	})

	t.Run("errors propagate unchanged", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		d := internal.NewDispatcher()
		require.NoError(t, d.Seed(internal.HandlerFunc(func(*http.Request) (*internal.Response, error) {
			return nil, boom
		})))
		require.NoError(t, d.Add(wrapping("x")))

		_, err := d.Handle(get("/"))
		require.ErrorIs(t, err, boom)
	})
}

func TestDispatcherSingleResolution(t *testing.T) {
	t.Parallel()

	c := &countingContainer{entries: map[string]any{"wrap": wrapping("|")}}
	resolver := internal.NewCallableResolver(internal.WithResolverContainer(c))
	d := internal.NewDispatcher(internal.WithDispatcherResolver(resolver))
	require.NoError(t, d.Seed(text("x")))
	require.NoError(t, d.Add("wrap"))
	require.Zero(t, c.gets.Load(), "named middleware must not resolve at registration")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := d.Handle(get("/"))
			if err != nil {
				t.Errorf("dispatch: %v", err)
				return
			}
			if resp.String() != "|x|" {
				t.Errorf("unexpected body %q", resp.String())
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, c.gets.Load())
}

func TestDispatcherFailedResolutionIsCached(t *testing.T) {
	t.Parallel()

	c := &countingContainer{errs: map[string]error{"broken": errors.New("no database")}}
	resolver := internal.NewCallableResolver(internal.WithResolverContainer(c))
	d := internal.NewDispatcher(internal.WithDispatcherResolver(resolver))
	require.NoError(t, d.Seed(text("x")))
	require.NoError(t, d.Add("broken"))

	for range 3 {
		_, err := d.Handle(get("/"))
		require.ErrorIs(t, err, internal.ErrNotResolvable)
	}
	require.EqualValues(t, 1, c.gets.Load())
}

func TestDispatcherResolveAll(t *testing.T) {
	t.Parallel()

	d := internal.NewDispatcher()
	require.NoError(t, d.Add("missing"))
	require.NoError(t, d.Add(wrapping("ok")))

	err := d.ResolveAll()
	require.ErrorIs(t, err, internal.ErrNotResolvable)
	require.Contains(t, err.Error(), "missing")

	entries := d.Middleware()
	require.Len(t, entries, 2)
	require.True(t, entries[0].Resolved())
	require.Equal(t, "missing", entries[0].Reference().String())
}

func TestDispatcherReentrant(t *testing.T) {
	t.Parallel()

	d := internal.NewDispatcher()
	require.NoError(t, d.Seed(internal.HandlerFunc(func(r *http.Request) (*internal.Response, error) {
		return internal.NewResponse(http.StatusOK).WriteString(r.URL.Path), nil
	})))
	require.NoError(t, d.Add(internal.MiddlewareFunc(func(r *http.Request, next internal.Handler) (*internal.Response, error) {
		resp, err := next.Handle(r)
		if err != nil || r.URL.Path != "/outer" {
			return resp, err
		}
		inner, err := d.Handle(get("/inner"))
		if err != nil {
			return nil, err
		}
		return resp.WriteString("+" + inner.String()), nil
	})))

	resp, err := d.Handle(get("/outer"))
	require.NoError(t, err)
	require.Equal(t, "/outer+/inner", resp.String())
}

func TestRunner(t *testing.T) {
	t.Parallel()

	t.Run("empty queue", func(t *testing.T) {
		t.Parallel()

		_, err := internal.NewRunner().Handle(get("/"))
		require.ErrorIs(t, err, internal.ErrEmptyQueue)
		require.Contains(t, err.Error(), "queue should not be empty")
	})

	t.Run("innermost middleware produces the response", func(t *testing.T) {
		t.Parallel()

		rn := internal.NewRunner(internal.WithOrder(internal.FIFO))
		require.NoError(t, rn.Add(wrapping("*")))
		require.NoError(t, rn.Add(text("core")))
		require.Equal(t, 2, rn.Len())

		resp, err := rn.Handle(get("/"))
		require.NoError(t, err)
		require.Equal(t, "*core*", resp.String())
		require.Equal(t, internal.StateFinalized, rn.State())
	})

	t.Run("delegating past the end", func(t *testing.T) {
		t.Parallel()

		rn := internal.NewRunner()
		require.NoError(t, rn.Add(wrapping("*")))

		_, err := rn.Handle(get("/"))
		require.ErrorIs(t, err, internal.ErrQueueExhausted)
	})
}

func TestParseOrder(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]internal.Order{"": internal.LIFO, "LIFO": internal.LIFO, " fifo ": internal.FIFO} {
		got, err := internal.ParseOrder(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := internal.ParseOrder("random")
	require.Error(t, err)
	require.Equal(t, "fifo", internal.FIFO.String())
}
