package middlewares_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/strata/middlewares"
)

func TestPanicError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value any
		want  string
	}{
		{"something went wrong", "panic: something went wrong"},
		{42, "panic: 42"},
		{nil, "panic: <nil>"},
	}
	for _, tt := range tests {
		err := &middlewares.PanicError{Value: tt.value}
		require.Equal(t, tt.want, err.Error())
	}

	wrapped := fmt.Errorf("handler: %w", &middlewares.PanicError{Value: "boom"})
	require.True(t, middlewares.IsPanicError(wrapped))
	pe, ok := middlewares.AsPanicError(wrapped)
	require.True(t, ok)
	require.Equal(t, "boom", pe.Value)

	require.False(t, middlewares.IsPanicError(errors.New("plain")))
	_, ok = middlewares.AsPanicError(nil)
	require.False(t, ok)
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()

	err := &middlewares.TimeoutError{Duration: 5 * time.Second}
	require.Equal(t, "request timeout after 5s", err.Error())

	wrapped := fmt.Errorf("handler: %w", err)
	require.True(t, middlewares.IsTimeoutError(wrapped))
	te, ok := middlewares.AsTimeoutError(wrapped)
	require.True(t, ok)
	require.Equal(t, 5*time.Second, te.Duration)

	require.False(t, middlewares.IsTimeoutError(errors.New("plain")))
}

func TestPipelineSentinels(t *testing.T) {
	t.Parallel()

	timeout := fmt.Errorf("route: %w", &middlewares.TimeoutError{Duration: time.Second})
	require.ErrorIs(t, timeout, middlewares.ErrTimeout)
	require.ErrorIs(t, timeout, context.DeadlineExceeded)
	require.NotErrorIs(t, timeout, middlewares.ErrPanic)
	te, _ := middlewares.AsTimeoutError(timeout)
	require.Equal(t, http.StatusGatewayTimeout, te.StatusCode())

	aborted := &middlewares.PanicError{Value: http.ErrAbortHandler}
	require.ErrorIs(t, aborted, middlewares.ErrPanic)
	require.ErrorIs(t, aborted, http.ErrAbortHandler)
	require.NotErrorIs(t, aborted, middlewares.ErrTimeout)

	require.NoError(t, (&middlewares.PanicError{Value: "text"}).Unwrap())
}
