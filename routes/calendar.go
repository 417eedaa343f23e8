package routes

import (
	calendar_handlers "faithhub.app/handlers/calendar"
	"faithhub.app/middlewares"
	"faithhub.app/services"

	"github.com/gofiber/fiber/v2"
)

// registerCalendarRoutes defines the event, subscription and statistics
// routes. Static segments (/events/upcoming) are registered before the
// parameterized ones so they are not captured as IDs.
func registerCalendarRoutes(api fiber.Router, deps Dependencies) {
	eventHandler := calendar_handlers.NewEventHandler(services.NewCalendarEventService(deps.Notifier, deps.Store))
	subHandler := calendar_handlers.NewSubscriptionHandler(services.NewSubscriptionService(deps.Notifier))
	statsHandler := calendar_handlers.NewStatsHandler(services.NewStatsService())

	group := api.Group("/calendar")
	group.Use(middlewares.AuthMiddleware)

	// Events
	group.Post("/events", eventHandler.CreateEvent)
	group.Get("/events", eventHandler.ListEvents)
	group.Get("/events/upcoming", eventHandler.ListUpcoming)
	group.Get("/events/:id", eventHandler.GetEvent)
	group.Put("/events/:id", eventHandler.UpdateEvent)
	group.Delete("/events/:id", eventHandler.DeleteEvent)
	group.Get("/events/:id/ical", eventHandler.ExportICal)

	// Event images
	group.Post("/events/:id/images", eventHandler.UploadImage)
	group.Get("/events/:id/images", eventHandler.ListImages)
	group.Put("/events/:id/images/:imageID/primary", eventHandler.SetPrimaryImage)
	group.Delete("/events/:id/images/:imageID", eventHandler.DeleteImage)

	// Event subscriptions
	group.Get("/events/:id/subscriptions", subHandler.ListForEvent)
	group.Get("/events/:id/subscriptions/check", subHandler.Check)
	group.Post("/events/:id/subscriptions/invite", subHandler.Invite)
	group.Post("/events/:id/subscriptions/accept", subHandler.Accept)
	group.Post("/events/:id/subscriptions/decline", subHandler.Decline)
	group.Post("/events/:id/subscriptions/bulk-status", subHandler.BulkStatus)
	group.Post("/events/:id/subscriptions/bulk-remove", subHandler.BulkRemove)
	group.Delete("/events/:id/subscriptions", subHandler.Unsubscribe)
	group.Delete("/events/:id/subscriptions/:userID", subHandler.RemoveUser)
	group.Put("/events/:id/subscriptions/:userID/permission", subHandler.UpdatePermission)

	// The caller's own subscriptions
	group.Get("/subscriptions", subHandler.ListMine)
	group.Get("/subscriptions/pending", subHandler.ListPending)
	group.Get("/subscriptions/pending/count", subHandler.CountPending)

	// Statistics
	stats := group.Group("/stats")
	stats.Get("/overview", statsHandler.Overview)
	stats.Get("/upcoming", statsHandler.Upcoming)
	stats.Get("/busy-days", statsHandler.BusyDays)
	stats.Get("/types", statsHandler.Types)
	stats.Get("/platforms", statsHandler.Platforms)
	stats.Get("/durations", statsHandler.Durations)
	stats.Get("/time-patterns", statsHandler.TimePatterns)
	stats.Get("/productivity", statsHandler.Productivity)
	stats.Get("/comparison", statsHandler.Comparison)
	stats.Get("/collaborators", statsHandler.Collaborators)
	stats.Get("/locations", statsHandler.Locations)
	stats.Get("/recurring", statsHandler.Recurring)
	stats.Get("/media", statsHandler.Media)
	stats.Get("/status", statsHandler.Status)
	stats.Get("/attendance", statsHandler.Attendance)
	stats.Post("/custom", statsHandler.Custom)
	stats.Get("/export", statsHandler.Export)

	// Admin
	admin := api.Group("/admin", middlewares.AuthMiddleware, middlewares.RequireAdmin())
	admin.Get("/stats", statsHandler.Admin)
}
