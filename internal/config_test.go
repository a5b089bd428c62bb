package internal_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/strata/internal"
)

func TestDefaultSettings(t *testing.T) {
	t.Parallel()

	s := internal.DefaultSettings()
	require.Equal(t, ":8080", s.Address)
	require.Equal(t, internal.LIFO, s.MiddlewareOrder)
	require.Equal(t, internal.LIFO, s.RouteMiddlewareOrder)
	require.True(t, s.AddContentLength)
	require.Equal(t, 30*time.Second, s.ShutdownTimeout)
}

func TestParseSettings(t *testing.T) {
	t.Parallel()

	t.Run("full file", func(t *testing.T) {
		t.Parallel()

		s, err := internal.ParseSettings([]byte(`
address: ":9000"
base_path: /api
middleware_order: FIFO
route_middleware_order: lifo
route_before_middleware: true
add_content_length: false
shutdown_timeout: 10s
log_level: debug
log_format: text
sentry:
  dsn: https://key@example.com/1
  environment: staging
`))
		require.NoError(t, err)
		require.Equal(t, ":9000", s.Address)
		require.Equal(t, "/api", s.BasePath)
		require.Equal(t, internal.FIFO, s.MiddlewareOrder)
		require.Equal(t, internal.LIFO, s.RouteMiddlewareOrder)
		require.True(t, s.RouteBeforeMiddleware)
		require.False(t, s.AddContentLength)
		require.Equal(t, 10*time.Second, s.ShutdownTimeout)
		require.Equal(t, "debug", s.LogLevel)
		require.Equal(t, "staging", s.Sentry.Environment)
	})

	t.Run("empty input keeps defaults", func(t *testing.T) {
		t.Parallel()

		s, err := internal.ParseSettings(nil)
		require.NoError(t, err)
		require.Equal(t, internal.DefaultSettings(), s)
	})

	t.Run("partial input keeps other defaults", func(t *testing.T) {
		t.Parallel()

		s, err := internal.ParseSettings([]byte("address: \":7000\"\n"))
		require.NoError(t, err)
		require.Equal(t, ":7000", s.Address)
		require.True(t, s.AddContentLength)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		_, err := internal.ParseSettings([]byte("adress: :9000\n"))
		require.Error(t, err)
	})

	t.Run("bad order", func(t *testing.T) {
		t.Parallel()

		_, err := internal.ParseSettings([]byte("middleware_order: random\n"))
		require.ErrorContains(t, err, "random")
	})
}

func TestLoadSettings(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "strata.yaml")
	require.NoError(t, os.WriteFile(path, []byte("middleware_order: fifo\n"), 0o600))

	s, err := internal.LoadSettings(path)
	require.NoError(t, err)
	require.Equal(t, internal.FIFO, s.MiddlewareOrder)

	_, err = internal.LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestOrderYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	out, err := yaml.Marshal(internal.Settings{MiddlewareOrder: internal.FIFO})
	require.NoError(t, err)
	require.Contains(t, string(out), "middleware_order: fifo")
}
