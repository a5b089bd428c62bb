package container

import (
	"fmt"
	"sort"

	"github.com/xraph/vessel"
)

// Factory builds a service on first use.
type Factory func(c *Container) (any, error)

// Container adapts a vessel registry to the kernel's container boundary
// (Has and Get). Services are singletons keyed by id.
type Container struct {
	v vessel.Vessel
}

// New creates an empty container.
func New() *Container {
	return &Container{v: vessel.New()}
}

// Wrap adapts an existing vessel registry, so services provided to it
// elsewhere resolve by name from routes and middleware.
func Wrap(v vessel.Vessel) *Container {
	return &Container{v: v}
}

// Vessel returns the underlying registry.
func (c *Container) Vessel() vessel.Vessel {
	return c.v
}

// Set registers a ready value under id.
func (c *Container) Set(id string, value any) error {
	return c.register(id, func(vessel.Vessel) (any, error) { return value, nil })
}

// Factory registers a lazily built singleton under id.
func (c *Container) Factory(id string, f Factory) error {
	if f == nil {
		return fmt.Errorf("%w: %s", ErrNilFactory, id)
	}
	return c.register(id, func(vessel.Vessel) (any, error) { return f(c) })
}

func (c *Container) register(id string, f vessel.Factory) error {
	if err := c.v.Register(id, f); err != nil {
		return fmt.Errorf("register %s: %w", id, err)
	}
	return nil
}

// Provide registers a typed lazily built singleton under id.
func Provide[T any](c *Container, id string, f func(c *Container) (T, error)) error {
	if f == nil {
		return fmt.Errorf("%w: %s", ErrNilFactory, id)
	}
	err := vessel.ProvideNamed(c.v, id, func() (T, error) { return f(c) }, vessel.AsSingleton())
	if err != nil {
		return fmt.Errorf("register %s: %w", id, err)
	}
	return nil
}

// Has reports whether id is registered.
func (c *Container) Has(id string) bool {
	return c.v.Has(id)
}

// Get returns the service registered under id, building it on first use.
func (c *Container) Get(id string) (any, error) {
	if !c.v.Has(id) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	v, err := c.v.Resolve(id)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", id, err)
	}
	return v, nil
}

// IDs returns the registered identifiers in sorted order.
func (c *Container) IDs() []string {
	ids := c.v.Services()
	sort.Strings(ids)
	return ids
}

// MustGet is like Get but panics on error. Use it inside factories whose
// dependencies are known to be registered.
func (c *Container) MustGet(id string) any {
	v, err := c.Get(id)
	if err != nil {
		panic(err)
	}
	return v
}

// Get returns the service under id as T.
func Get[T any](c *Container, id string) (T, error) {
	var zero T
	v, err := c.Get(id)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is %T, not %T", ErrWrongType, id, v, zero)
	}
	return t, nil
}
