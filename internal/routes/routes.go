// Package routes wires handlers and middleware onto the fiber app.
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"petquote/internal/content"
	"petquote/internal/handlers"
	"petquote/internal/metrics"
	"petquote/internal/middleware"
	"petquote/internal/models"
	"petquote/internal/repositories"
	"petquote/internal/services/auth"
	"petquote/internal/services/rates"
	"petquote/internal/utils/response"
)

const Version = "1.0.0"

// Dependencies holds everything the routes need. Auth may be nil, in which
// case the admin routes are not mounted.
type Dependencies struct {
	Provider  rates.Provider
	Tracker   *rates.Tracker
	Cache     handlers.CacheInvalidator
	Snapshots repositories.RateSnapshotRepository
	Auth      auth.Service
	Content   content.Content
	Metrics   *metrics.Collector
	Health    map[string]handlers.Pinger
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler(Version, deps.Health)
	rateHandler := handlers.NewRateHandler(deps.Provider, deps.Tracker)

	var recorder handlers.QuoteRecorder
	if deps.Metrics != nil {
		recorder = deps.Metrics
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}
	quoteHandler := handlers.NewQuoteHandler(deps.Tracker, deps.Content, recorder)

	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to the petquote API",
			"version": Version,
			"docs":    "/api",
		})
	})

	api := app.Group("/api")
	api.Get("/exchange-rate", rateHandler.GetExchangeRate)
	api.Get("/rate", rateHandler.GetRate)
	api.Post("/rate/refresh", rateHandler.RefreshRate)
	api.Get("/calculator", quoteHandler.Calculator)
	api.Post("/quote", quoteHandler.Quote)
	api.Get("/content", quoteHandler.Content)

	if deps.Auth != nil {
		setupAdminRoutes(api, deps)
	}
}

func setupAdminRoutes(api fiber.Router, deps Dependencies) {
	adminHandler := handlers.NewAdminHandler(deps.Auth, deps.Snapshots, deps.Cache)
	authMiddleware := middleware.NewAuthMiddleware(deps.Auth)

	api.Post("/admin/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: response.TooManyRequests,
	}), adminHandler.Login)

	admin := api.Group("/admin", authMiddleware.Handler)
	admin.Get("/rates", middleware.HasPermission(models.PermissionRatesRead), adminHandler.ListRates)
	admin.Post("/rates/cache/flush", middleware.HasPermission(models.PermissionRatesWrite), adminHandler.FlushRateCache)
}
