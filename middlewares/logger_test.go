package middlewares_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/strata/middlewares"
)

func TestLogger(t *testing.T) {
	t.Parallel()

	t.Run("logs status and size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		mw := middlewares.Logger(slog.New(slog.NewJSONHandler(&buf, nil)))

		req := httptest.NewRequest(http.MethodGet, "/hello", nil)
		_, err := mw.Process(req, reply(http.StatusOK, "hello"))
		require.NoError(t, err)

		out := buf.String()
		require.Contains(t, out, `"msg":"request"`)
		require.Contains(t, out, `"path":"/hello"`)
		require.Contains(t, out, `"status":200`)
		require.Contains(t, out, `"bytes":5`)
	})

	t.Run("logs failures at error level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		mw := middlewares.Logger(slog.New(slog.NewJSONHandler(&buf, nil)))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := mw.Process(req, fail(errors.New("boom")))
		require.EqualError(t, err, "boom")
		require.Contains(t, buf.String(), `"level":"ERROR"`)
	})
}
