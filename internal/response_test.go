package internal_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/strata/internal"
)

func TestResponse(t *testing.T) {
	t.Parallel()

	resp := internal.NewResponse(0)
	require.Equal(t, http.StatusOK, resp.Status())

	resp.WithStatus(http.StatusCreated).WithHeader("X-A", "1").WriteString("hello")
	_, err := resp.Write([]byte(" world"))
	require.NoError(t, err)
	require.Equal(t, "hello world", resp.String())
	require.Equal(t, 11, resp.Len())

	clone := resp.Clone()
	clone.Header().Set("X-A", "2")
	clone.SetBody([]byte("other"))
	require.Equal(t, "1", resp.Header().Get("X-A"))
	require.Equal(t, "hello world", resp.String())
	require.Equal(t, "other", string(clone.Bytes()))
	require.Equal(t, http.StatusCreated, clone.Status())
}

func TestNoContentHasNoLength(t *testing.T) {
	t.Parallel()

	app := internal.New()
	app.Delete("/item", func(*http.Request) (*internal.Response, error) {
		return internal.NewResponse(http.StatusNoContent), nil
	})

	w := serve(app, http.MethodDelete, "/item")
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Empty(t, w.Header().Get("Content-Length"))
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	cause := http.ErrAbortHandler
	err := internal.WrapHTTPError(http.StatusBadGateway, "upstream failed", cause)
	require.Equal(t, "upstream failed", err.Error())
	require.Equal(t, http.StatusBadGateway, err.StatusCode())
	require.Equal(t, "Bad Gateway", err.StatusText())
	require.ErrorIs(t, err, cause)

	require.Same(t, err, internal.AsHTTPError(err))
	require.Nil(t, internal.AsHTTPError(cause))
	require.Equal(t, 404, internal.NewHTTPError(404, "gone").Code)
}
