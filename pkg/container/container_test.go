package container_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xraph/vessel"

	"github.com/dmitrymomot/strata/pkg/container"
)

type repo struct{ name string }

func TestContainer_SetGet(t *testing.T) {
	t.Parallel()

	c := container.New()
	require.NoError(t, c.Set("greeting", "hello"))

	require.True(t, c.Has("greeting"))
	require.False(t, c.Has("missing"))

	v, err := c.Get("greeting")
	require.NoError(t, err)
	require.Equal(t, "hello", v)

	_, err = c.Get("missing")
	require.ErrorIs(t, err, container.ErrNotFound)

	require.Contains(t, c.IDs(), "greeting")
}

func TestContainer_FactoryIsSingleton(t *testing.T) {
	t.Parallel()

	calls := 0
	c := container.New()
	require.NoError(t, c.Factory("svc", func(*container.Container) (any, error) {
		calls++
		return &repo{name: "svc"}, nil
	}))
	require.Zero(t, calls)

	first, err := c.Get("svc")
	require.NoError(t, err)
	second, err := c.Get("svc")
	require.NoError(t, err)

	require.Equal(t, 1, calls)
	require.Same(t, first, second)
}

func TestContainer_FactoryError(t *testing.T) {
	t.Parallel()

	c := container.New()
	require.NoError(t, c.Factory("svc", func(*container.Container) (any, error) {
		return nil, errors.New("boom")
	}))
	require.ErrorIs(t, c.Factory("nil", nil), container.ErrNilFactory)
	require.False(t, c.Has("nil"))

	_, err := c.Get("svc")
	require.ErrorContains(t, err, "boom")
}

func TestContainer_Dependencies(t *testing.T) {
	t.Parallel()

	c := container.New()
	require.NoError(t, c.Set("name", "db"))
	require.NoError(t, c.Factory("label", func(c *container.Container) (any, error) {
		return "repo(" + c.MustGet("name").(string) + ")", nil
	}))

	v, err := container.Get[string](c, "label")
	require.NoError(t, err)
	require.Equal(t, "repo(db)", v)

	_, err = container.Get[int](c, "label")
	require.ErrorIs(t, err, container.ErrWrongType)
}

func TestContainer_TypedProvide(t *testing.T) {
	t.Parallel()

	c := container.New()
	require.NoError(t, container.Provide(c, "users", func(*container.Container) (*repo, error) {
		return &repo{name: "users"}, nil
	}))

	r, err := container.Get[*repo](c, "users")
	require.NoError(t, err)
	require.Equal(t, "users", r.name)

	again, err := container.Get[*repo](c, "users")
	require.NoError(t, err)
	require.Same(t, r, again)
}

func TestContainer_Wrap(t *testing.T) {
	t.Parallel()

	v := vessel.New()
	require.NoError(t, v.Register("clock", func(vessel.Vessel) (any, error) { return "tick", nil }))

	c := container.Wrap(v)
	require.NotNil(t, c.Vessel())
	require.True(t, c.Has("clock"))

	got, err := container.Get[string](c, "clock")
	require.NoError(t, err)
	require.Equal(t, "tick", got)
}
