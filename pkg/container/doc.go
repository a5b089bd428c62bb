// Package container provides a named service registry backed by vessel.
//
// Values are registered eagerly with Set or lazily with Factory and Provide;
// a factory runs on first Get and its result is shared. The container
// satisfies the kernel's container boundary, so string references such as
// "auth" or "users:show" resolve against it:
//
//	services := container.New()
//	_ = services.Set("auth", middlewares.RequestID())
//	_ = services.Factory("users", func(c *container.Container) (any, error) {
//	    return NewUserController(c.MustGet("db").(*sql.DB)), nil
//	})
//
//	app := strata.New(strata.WithContainer(services))
//	app.Get("/users/{id}", "users:Show", "auth")
//
// Wrap adapts a vessel registry that is already populated elsewhere.
package container
