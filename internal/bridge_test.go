package internal_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/strata/internal"
)

func TestFromHTTPHandler(t *testing.T) {
	t.Parallel()

	h := internal.FromHTTPHandler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))

	resp, err := h.Handle(get("/"))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.Status())
	require.Equal(t, "application/json", resp.Header().Get("Content-Type"))
	require.JSONEq(t, `{"ok":true}`, resp.String())
}

func TestFromHTTPMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("chi middleware decorates the pipeline response", func(t *testing.T) {
		t.Parallel()

		mw := internal.FromHTTPMiddleware(middleware.SetHeader("X-Bridge", "chi"))
		resp, err := mw.Process(get("/"), internal.HandlerFunc(func(*http.Request) (*internal.Response, error) {
			return internal.NewResponse(http.StatusAccepted).WriteString("inner"), nil
		}))
		require.NoError(t, err)
		require.Equal(t, http.StatusAccepted, resp.Status())
		require.Equal(t, "chi", resp.Header().Get("X-Bridge"))
		require.Equal(t, "inner", resp.String())
	})

	t.Run("request changes reach the inner handler", func(t *testing.T) {
		t.Parallel()

		mw := internal.FromHTTPMiddleware(middleware.RealIP)
		req := get("/")
		req.Header.Set("X-Real-IP", "203.0.113.7")

		resp, err := mw.Process(req, internal.HandlerFunc(func(r *http.Request) (*internal.Response, error) {
			return internal.NewResponse(http.StatusOK).WriteString(r.RemoteAddr), nil
		}))
		require.NoError(t, err)
		require.Equal(t, "203.0.113.7", resp.String())
	})

	t.Run("short circuit", func(t *testing.T) {
		t.Parallel()

		deny := func(http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "nope", http.StatusUnauthorized)
			})
		}
		resp, err := internal.FromHTTPMiddleware(deny).Process(get("/"), text("never"))
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, resp.Status())
		require.Contains(t, resp.String(), "nope")
	})

	t.Run("inner errors are returned", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		_, err := internal.FromHTTPMiddleware(middleware.NoCache).Process(get("/"), internal.HandlerFunc(func(*http.Request) (*internal.Response, error) {
			return nil, boom
		}))
		require.ErrorIs(t, err, boom)
	})

	t.Run("accepted by the dispatcher as a raw function", func(t *testing.T) {
		t.Parallel()

		d := internal.NewDispatcher()
		require.NoError(t, d.Seed(text("ok")))
		require.NoError(t, d.Add(middleware.SetHeader("X-Raw", "yes")))

		resp, err := d.Handle(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		require.Equal(t, "yes", resp.Header().Get("X-Raw"))
	})
}

func TestFromHTTPMiddlewareAsyncNext(t *testing.T) {
	t.Parallel()

	// http.TimeoutHandler calls the wrapped handler on its own goroutine.
	async := internal.FromHTTPMiddleware(func(h http.Handler) http.Handler {
		return http.TimeoutHandler(h, time.Second, "slow")
	})

	boom := errors.New("boom")
	_, err := async.Process(get("/"), internal.HandlerFunc(func(*http.Request) (*internal.Response, error) {
		return nil, boom
	}))
	require.ErrorIs(t, err, boom)

	resp, err := async.Process(get("/"), text("fast"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status())
	require.Equal(t, "fast", resp.String())
}
