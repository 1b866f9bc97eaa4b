package routes

import (
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

func Setup(
	app *fiber.App,
	authRequired fiber.Handler,
	m *metrics.Metrics,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	addressHandler *handlers.AddressHandler,
	productHandler *handlers.ProductHandler,
	healthHandler *handlers.HealthHandler,
) {
	if m != nil {
		app.Get("/metrics", m.Handler())
	}

	api := app.Group("/api")

	api.Get("/health", healthHandler.Check)

	// Auth (public)
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/token/refresh", authHandler.Refresh)

	// Catalog (public)
	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.Get)

	// Protected routes; the middleware is attached per group so public routes
	// never see it
	users := api.Group("/users", authRequired)
	users.Get("/profile", profileHandler.Get)
	users.Patch("/profile", profileHandler.Update)
	users.Put("/profile", profileHandler.Replace)

	addresses := api.Group("/addresses", authRequired)
	addresses.Get("/", addressHandler.List)
	addresses.Post("/", addressHandler.Create)
	addresses.Get("/:id", addressHandler.Get)
	addresses.Put("/:id", addressHandler.Replace)
	addresses.Patch("/:id", addressHandler.Update)
	addresses.Delete("/:id", addressHandler.Delete)
}
