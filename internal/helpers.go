package internal

import (
	"net/http"
	"strconv"
)

// Scalar lists the types route arguments and query values convert to.
type Scalar interface {
	string | int | int64 | float64 | bool
}

// Param returns the route argument name of r converted to T.
// Missing or unparsable values yield the zero value.
//
// Example:
//
//	id := strata.Param[int64](r, "id")
func Param[T Scalar](r *http.Request, name string) T {
	v, _ := convertParam[T](RouteArg(r, name))
	return v
}

// Query returns the query parameter name of r converted to T.
func Query[T Scalar](r *http.Request, name string) T {
	v, _ := convertParam[T](r.URL.Query().Get(name))
	return v
}

// QueryDefault retrieves a typed query parameter with a default value.
// Returns defaultValue if the parameter is empty or cannot be parsed.
func QueryDefault[T Scalar](r *http.Request, name string, defaultValue T) T {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue
	}
	v, ok := convertParam[T](raw)
	if !ok {
		return defaultValue
	}
	return v
}

// convertParam converts a raw string to T.
func convertParam[T Scalar](raw string) (T, bool) {
	var zero T
	var (
		v   any
		err error
	)
	switch any(zero).(type) {
	case string:
		v = raw
	case int:
		v, err = strconv.Atoi(raw)
	case int64:
		v, err = strconv.ParseInt(raw, 10, 64)
	case float64:
		v, err = strconv.ParseFloat(raw, 64)
	case bool:
		v, err = strconv.ParseBool(raw)
	}
	if err != nil {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}
