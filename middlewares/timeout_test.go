package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/strata/internal"
	"github.com/dmitrymomot/strata/middlewares"
)

func TestTimeout(t *testing.T) {
	t.Parallel()

	t.Run("completes within timeout", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		resp, err := middlewares.Timeout(time.Second).Process(req, reply(http.StatusOK, "done"))
		require.NoError(t, err)
		require.Equal(t, "done", resp.String())
	})

	t.Run("returns TimeoutError when exceeded", func(t *testing.T) {
		t.Parallel()

		slow := internal.HandlerFunc(func(r *http.Request) (*internal.Response, error) {
			<-r.Context().Done()
			return nil, r.Context().Err()
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		resp, err := middlewares.Timeout(20*time.Millisecond).Process(req, slow)
		require.Nil(t, resp)

		te, ok := middlewares.AsTimeoutError(err)
		require.True(t, ok)
		require.Equal(t, 20*time.Millisecond, te.Duration)
	})

	t.Run("inner request carries deadline", func(t *testing.T) {
		t.Parallel()

		var seen *http.Request
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := middlewares.Timeout(time.Minute).Process(req, capture(&seen))
		require.NoError(t, err)

		_, ok := seen.Context().Deadline()
		require.True(t, ok)
	})

	t.Run("parent cancellation is not a timeout", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		block := internal.HandlerFunc(func(r *http.Request) (*internal.Response, error) {
			time.Sleep(50 * time.Millisecond)
			return internal.NewResponse(http.StatusOK), nil
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
		_, err := middlewares.Timeout(time.Second).Process(req, block)
		require.ErrorIs(t, err, context.Canceled)
		require.False(t, middlewares.IsTimeoutError(err))
	})

	t.Run("non-positive duration uses default", func(t *testing.T) {
		t.Parallel()

		var seen *http.Request
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := middlewares.Timeout(0).Process(req, capture(&seen))
		require.NoError(t, err)

		deadline, ok := seen.Context().Deadline()
		require.True(t, ok)
		require.WithinDuration(t, time.Now().Add(middlewares.DefaultTimeout), deadline, time.Second)
	})

	t.Run("panic is returned as PanicError", func(t *testing.T) {
		t.Parallel()

		boom := internal.HandlerFunc(func(*http.Request) (*internal.Response, error) {
			panic("boom")
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		resp, err := middlewares.Timeout(time.Second).Process(req, boom)
		require.Nil(t, resp)
		require.ErrorIs(t, err, middlewares.ErrPanic)

		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.Equal(t, "boom", pe.Value)
		require.NotEmpty(t, pe.Stack)
	})
}
