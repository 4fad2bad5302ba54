package api

import (
	"github.com/ahrdadan/formcheck/internal/fixture"
	"github.com/gofiber/fiber/v2"
)

// RouteConfig holds configuration for routes
type RouteConfig struct {
	WithFixture bool // Also serve the local form page
}

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, handler *Handler, config RouteConfig) {
	// Health check (simple path)
	app.Get("/health", handler.HealthCheck)

	formcheck := app.Group("/formcheck")
	formcheck.Get("/browsers", handler.Browsers)
	formcheck.Post("/runs", handler.CreateRun)

	if config.WithFixture {
		fixture.Register(app.Group("/fixture"))
	}
}
