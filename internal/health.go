package internal

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/strata/pkg/health"
)

const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// healthConfig holds the health route configuration.
type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
	timeout       time.Duration
}

// HealthOption configures the health routes.
type HealthOption func(*healthConfig)

// WithLivenessPath sets the liveness probe path. Defaults to "/health/live".
func WithLivenessPath(p string) HealthOption {
	return func(c *healthConfig) {
		if p != "" {
			c.livenessPath = p
		}
	}
}

// WithReadinessPath sets the readiness probe path. Defaults to "/health/ready".
func WithReadinessPath(p string) HealthOption {
	return func(c *healthConfig) {
		if p != "" {
			c.readinessPath = p
		}
	}
}

// WithHealthTimeout sets the timeout shared by all readiness checks.
func WithHealthTimeout(d time.Duration) HealthOption {
	return func(c *healthConfig) {
		c.timeout = d
	}
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if name != "" && fn != nil {
			c.checks[name] = fn
		}
	}
}

// WithHealthChecks registers liveness and readiness routes. They are
// ordinary routes and pass through global middleware.
//
// Example:
//
//	strata.New(
//	    strata.WithHealthChecks(
//	        strata.WithReadinessCheck("db", pool.Ping),
//	    ),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			checks:        make(health.Checks),
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// setupHealthRoutes registers the probe routes when health checks are enabled.
func (a *App) setupHealthRoutes() {
	cfg := a.healthConfig
	if cfg == nil {
		return
	}

	a.Get(cfg.livenessPath, func(r *http.Request) (*Response, error) {
		return healthResponse(r, health.Live()), nil
	}).SetName("health.live")

	checkOpts := []health.Option{
		health.WithLogger(a.logger),
		health.WithTimeout(cfg.timeout),
	}
	a.Get(cfg.readinessPath, func(r *http.Request) (*Response, error) {
		return healthResponse(r, health.Run(r.Context(), cfg.checks, checkOpts...)), nil
	}).SetName("health.ready")
}

func healthResponse(r *http.Request, report *health.Report) *Response {
	body, contentType := report.Render(health.WantsJSON(r))
	resp := NewResponse(report.StatusCode()).WithHeader("Content-Type", contentType)
	_, _ = resp.Write(body)
	return resp
}
