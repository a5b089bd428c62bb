// Package health runs liveness and readiness probes.
//
// [Run] executes a set of named [Checks] in parallel under one timeout and
// returns a [Report]. The application kernel exposes reports on its health
// routes; [Report.Render] produces the JSON or plain text body and
// [Report.StatusCode] the probe status.
//
// # Quick Start
//
//	report := health.Run(ctx, health.Checks{
//	    "postgres": func(ctx context.Context) error { return pool.Ping(ctx) },
//	}, health.WithTimeout(3*time.Second))
//
//	body, contentType := report.Render(health.WantsJSON(r))
//
// # Response Formats
//
// Plain text is the default for compatibility with probes:
//   - 200 OK: "OK"
//   - 503 Service Unavailable: "Service Unavailable"
//
// JSON is returned for Accept: application/json or ?format=json:
//
//	{
//	  "status": "unhealthy",
//	  "checks": {
//	    "postgres": {"status": "healthy"},
//	    "redis": {"status": "unhealthy", "error": "connection refused"}
//	  }
//	}
//
// # Error Handling
//
//   - [ErrCheckFailed] - a nil check was registered
//   - [ErrCheckTimeout] - a check exceeded the timeout
package health
