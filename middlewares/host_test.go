package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/strata/internal"
	"github.com/dmitrymomot/strata/middlewares"
)

func TestHost(t *testing.T) {
	t.Parallel()

	mw := middlewares.Host(map[string]internal.Handler{
		"api.example.com": reply(http.StatusOK, "api"),
		"*.example.com":   reply(http.StatusOK, "tenant"),
	})

	tests := []struct {
		host string
		want string
	}{
		{"api.example.com", "api"},
		{"acme.example.com:8080", "tenant"},
		{"example.com", "main"},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Host = tt.host

			resp, err := mw.Process(req, reply(http.StatusOK, "main"))
			require.NoError(t, err)
			require.Equal(t, tt.want, resp.String())
		})
	}
}
