package internal_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/strata/internal"
)

func TestParam(t *testing.T) {
	t.Parallel()

	r := internal.WithRoutingResult(get("/"), &internal.RoutingResult{
		Status: internal.Found,
		Params: internal.Args{"id": "42", "price": "9.5", "on": "true", "name": "josh"},
	})

	require.Equal(t, 42, internal.Param[int](r, "id"))
	require.Equal(t, int64(42), internal.Param[int64](r, "id"))
	require.InDelta(t, 9.5, internal.Param[float64](r, "price"), 0.0001)
	require.True(t, internal.Param[bool](r, "on"))
	require.Equal(t, "josh", internal.Param[string](r, "name"))
	require.Zero(t, internal.Param[int](r, "name"))
	require.Zero(t, internal.Param[int](r, "missing"))
}

func TestQuery(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/?page=3&q=go&bad=x", nil)

	require.Equal(t, 3, internal.Query[int](r, "page"))
	require.Equal(t, "go", internal.Query[string](r, "q"))
	require.Zero(t, internal.Query[int](r, "bad"))

	require.Equal(t, 3, internal.QueryDefault(r, "page", 1))
	require.Equal(t, 1, internal.QueryDefault(r, "bad", 1))
	require.Equal(t, 20, internal.QueryDefault(r, "limit", 20))
	require.Equal(t, "all", internal.QueryDefault(r, "filter", "all"))
}
