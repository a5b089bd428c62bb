package container

import "errors"

// Sentinel errors for the container package.
var (
	ErrNotFound   = errors.New("container: service not found")
	ErrNilFactory = errors.New("container: nil factory")
	ErrWrongType  = errors.New("container: unexpected service type")
)
