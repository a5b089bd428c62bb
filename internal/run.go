package internal

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/strata/pkg/hostrouter"
	"github.com/dmitrymomot/strata/pkg/logger"
)

// sentryFlushTimeout bounds how long shutdown waits for queued Sentry events.
const sentryFlushTimeout = 2 * time.Second

// Run starts the application's HTTP server and blocks until the process
// receives SIGINT or SIGTERM, then shuts down gracefully.
//
// Example:
//
//	app := strata.New(strata.WithSettings(settings))
//	app.Get("/", home)
//	if err := app.Run(strata.ShutdownHook(closeDB)); err != nil {
//	    log.Fatal(err)
//	}
func (a *App) Run(opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if cfg.address == "" {
		cfg.address = a.settings.Address
	}
	if cfg.shutdownTimeout == 0 {
		cfg.shutdownTimeout = a.settings.ShutdownTimeout
	}
	if cfg.logger == nil {
		cfg.logger = a.logger
	}
	if a.settings.Sentry.DSN != "" {
		cfg.shutdownHooks = append(cfg.shutdownHooks, func(context.Context) error {
			logger.FlushSentry(sentryFlushTimeout)
			return nil
		})
	}

	return runServer(runtimeConfig{
		handler:         a,
		address:         cfg.address,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
		listener:        cfg.listener,
	})
}

// Run starts a multi-domain HTTP server and blocks until shutdown.
// Use this for composing multiple Apps under different domain patterns.
//
// Example:
//
//	err := strata.Run(
//	    strata.Domain("api.acme.com", api),
//	    strata.Domain("*.acme.com", website),
//	    strata.Address(":8080"),
//	)
func Run(opts ...RunOption) error {
	cfg := buildRunConfig(opts...)

	var handler http.Handler

	switch {
	case len(cfg.domains) > 0:
		routes := make(hostrouter.Routes[http.Handler], len(cfg.domains))
		for pattern, app := range cfg.domains {
			routes[pattern] = app
		}

		var fallback http.Handler = http.NotFoundHandler()
		if cfg.fallback != nil {
			fallback = cfg.fallback
		}
		handler = hostrouter.NewHTTP(routes, fallback)
	case cfg.fallback != nil:
		handler = cfg.fallback
	default:
		return errors.New("strata.Run: no domains or fallback configured")
	}

	return runServer(runtimeConfig{
		handler:         handler,
		address:         cfg.address,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
		listener:        cfg.listener,
	})
}
