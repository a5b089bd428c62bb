package internal

// Container is the optional service container consulted by the resolver.
// No other component reads from it.
type Container interface {
	Has(id string) bool
	Get(id string) (any, error)
}

// TypeFactory constructs a fresh instance of a registered type.
type TypeFactory func() any
