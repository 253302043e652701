package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-tracker/internal/api/http/handlers"
	"github.com/spec-kit/job-tracker/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Metrics        *handlers.MetricsHandler
	Auth           *handlers.AuthHandler
	Applications   *handlers.ApplicationsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics.Snapshot)
	}

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	apps := api.Group("/applications", cfg.AuthMiddleware.Handle)
	apps.Get("/", cfg.Applications.List)
	apps.Post("/", cfg.Applications.Create)
	// Registered before /:id so "analytics" is not taken as an id.
	apps.Get("/analytics", cfg.Applications.Analytics)
	apps.Get("/:id", cfg.Applications.Get)
	apps.Put("/:id", cfg.Applications.Update)
	apps.Delete("/:id", cfg.Applications.Delete)
}
