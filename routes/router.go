package routes

import (
	"faithhub.app/pkg/apiresponse"
	"faithhub.app/pkg/imagestore"
	"faithhub.app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
)

// INotifier aliases the notification service for the wiring surface.
type INotifier = services.INotificationService

// Dependencies carries the shared backends into route registration, so main
// decides which notification transport and image store to wire.
type Dependencies struct {
	Notifier INotifier
	Store    imagestore.Store
}

// SetupRoutes installs the global middlewares and the versioned API groups.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	app.Use(recoverMiddleware.New())
	app.Use(logger.New())

	api := app.Group("/api/v1")
	registerCalendarRoutes(api, deps)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return apiresponse.Success(c, fiber.Map{"status": "ok"})
	})

	app.Use(func(c *fiber.Ctx) error {
		return apiresponse.Error(c, fiber.StatusNotFound, "resource not found")
	})
}
