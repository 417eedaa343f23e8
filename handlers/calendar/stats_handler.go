package calendar_handlers

import (
	"faithhub.app/middlewares"
	"faithhub.app/pkg/apiresponse"
	"faithhub.app/services"

	"github.com/gofiber/fiber/v2"
)

// StatsHandler exposes the statistics endpoints. Every query accepts
// period/start_date/end_date; explicit dates win over the named period.
type StatsHandler struct {
	service services.IStatsService
}

func NewStatsHandler(service services.IStatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

func statsQuery(c *fiber.Ctx) services.StatsQuery {
	return services.StatsQuery{
		Period:    c.Query("period"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
}

func (h *StatsHandler) respond(c *fiber.Ctx, data any, err error) error {
	if err != nil {
		return respondError(c, err)
	}
	return apiresponse.Success(c, data)
}

func (h *StatsHandler) Overview(c *fiber.Ctx) error {
	data, err := h.service.Overview(c.UserContext(), middlewares.CurrentUserID(c), statsQuery(c))
	return h.respond(c, data, err)
}

func (h *StatsHandler) BusyDays(c *fiber.Ctx) error {
	data, err := h.service.BusyDays(c.UserContext(), middlewares.CurrentUserID(c), statsQuery(c))
	return h.respond(c, data, err)
}

func (h *StatsHandler) Types(c *fiber.Ctx) error {
	data, err := h.service.TypeDistribution(c.UserContext(), middlewares.CurrentUserID(c), statsQuery(c))
	return h.respond(c, data, err)
}

func (h *StatsHandler) Platforms(c *fiber.Ctx) error {
	data, err := h.service.Platforms(c.UserContext(), middlewares.CurrentUserID(c), statsQuery(c))
	return h.respond(c, data, err)
}

func (h *StatsHandler) Durations(c *fiber.Ctx) error {
	data, err := h.service.Durations(c.UserContext(), middlewares.CurrentUserID(c), statsQuery(c))
	return h.respond(c, data, err)
}

func (h *StatsHandler) TimePatterns(c *fiber.Ctx) error {
	data, err := h.service.TimePatterns(c.UserContext(), middlewares.CurrentUserID(c), statsQuery(c))
	return h.respond(c, data, err)
}

func (h *StatsHandler) Productivity(c *fiber.Ctx) error {
	data, err := h.service.Productivity(c.UserContext(), middlewares.CurrentUserID(c), statsQuery(c))
	return h.respond(c, data, err)
}

func (h *StatsHandler) Comparison(c *fiber.Ctx) error {
	data, err := h.service.Comparison(c.UserContext(), middlewares.CurrentUserID(c), c.Query("period"))
	return h.respond(c, data, err)
}

func (h *StatsHandler) Collaborators(c *fiber.Ctx) error {
	data, err := h.service.TopCollaborators(c.UserContext(), middlewares.CurrentUserID(c), statsQuery(c))
	return h.respond(c, data, err)
}

func (h *StatsHandler) Locations(c *fiber.Ctx) error {
	data, err := h.service.Locations(c.UserContext(), middlewares.CurrentUserID(c), statsQuery(c))
	return h.respond(c, data, err)
}

func (h *StatsHandler) Recurring(c *fiber.Ctx) error {
	data, err := h.service.Recurring(c.UserContext(), middlewares.CurrentUserID(c), statsQuery(c))
	return h.respond(c, data, err)
}

func (h *StatsHandler) Media(c *fiber.Ctx) error {
	data, err := h.service.Media(c.UserContext(), middlewares.CurrentUserID(c), statsQuery(c))
	return h.respond(c, data, err)
}

func (h *StatsHandler) Status(c *fiber.Ctx) error {
	data, err := h.service.Status(c.UserContext(), middlewares.CurrentUserID(c), statsQuery(c))
	return h.respond(c, data, err)
}

func (h *StatsHandler) Attendance(c *fiber.Ctx) error {
	data, err := h.service.Attendance(c.UserContext(), middlewares.CurrentUserID(c), statsQuery(c))
	return h.respond(c, data, err)
}

func (h *StatsHandler) Upcoming(c *fiber.Ctx) error {
	data, err := h.service.Upcoming(c.UserContext(), middlewares.CurrentUserID(c), c.QueryInt("limit", 10))
	return h.respond(c, data, err)
}

// Admin handles GET /admin/stats. The admin middleware gates it.
func (h *StatsHandler) Admin(c *fiber.Ctx) error {
	data, err := h.service.Admin(c.UserContext(), statsQuery(c))
	return h.respond(c, data, err)
}

// Custom handles POST /stats/custom. Unknown metrics or groupings are
// rejected with 422.
func (h *StatsHandler) Custom(c *fiber.Ctx) error {
	var req services.CustomStatsRequest
	if err := c.BodyParser(&req); err != nil {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "malformed request body")
	}
	data, err := h.service.Custom(c.UserContext(), middlewares.CurrentUserID(c), req)
	return h.respond(c, data, err)
}

// Export handles GET /stats/export?format=json|csv.
func (h *StatsHandler) Export(c *fiber.Ctx) error {
	body, contentType, err := h.service.Export(c.UserContext(), middlewares.CurrentUserID(c), statsQuery(c), c.Query("format"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, contentType)
	if contentType == "text/csv" {
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="calendar-stats.csv"`)
	}
	return c.Send(body)
}
