package middlewares_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/strata/middlewares"
	"github.com/dmitrymomot/strata/pkg/logger"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates uuid when header is missing", func(t *testing.T) {
		t.Parallel()

		var seen *http.Request
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		resp, err := middlewares.RequestID().Process(req, capture(&seen))
		require.NoError(t, err)

		id := resp.Header().Get("X-Request-ID")
		_, perr := uuid.Parse(id)
		require.NoError(t, perr)
		require.Equal(t, id, middlewares.GetRequestID(seen.Context()))
	})

	t.Run("reuses incoming header in priority order", func(t *testing.T) {
		t.Parallel()

		var seen *http.Request
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "corr")
		req.Header.Set("X-Request-ID", "upstream")

		resp, err := middlewares.RequestID().Process(req, capture(&seen))
		require.NoError(t, err)
		require.Equal(t, "upstream", resp.Header().Get("X-Request-ID"))
		require.Equal(t, "upstream", middlewares.GetRequestID(seen.Context()))
	})

	t.Run("custom generator and response header", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.RequestID(
			middlewares.WithRequestIDGenerator(func() string { return "fixed" }),
			middlewares.WithRequestIDResponseHeader("X-Trace"),
			middlewares.WithRequestIDHeaders("X-Trace"),
		)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		resp, err := mw.Process(req, reply(http.StatusOK, ""))
		require.NoError(t, err)
		require.Equal(t, "fixed", resp.Header().Get("X-Trace"))
		require.Empty(t, resp.Header().Get("X-Request-ID"))
	})

	t.Run("missing id reads as empty", func(t *testing.T) {
		t.Parallel()
		require.Empty(t, middlewares.GetRequestID(context.Background()))
	})
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithExtractors(middlewares.RequestIDExtractor()),
	)

	log.InfoContext(middlewares.WithRequestID(context.Background(), "req-1"), "hello")
	require.Contains(t, buf.String(), `"request_id":"req-1"`)

	buf.Reset()
	log.InfoContext(context.Background(), "hello")
	require.NotContains(t, buf.String(), "request_id")

}
