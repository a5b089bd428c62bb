package health

import "errors"

// Sentinel errors for the health package.
var (
	// ErrCheckFailed is reported for a check that cannot run.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout is reported when a health check exceeds its timeout.
	ErrCheckTimeout = errors.New("health: check timeout")
)
