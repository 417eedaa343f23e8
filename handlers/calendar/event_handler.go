package calendar_handlers

import (
	"io"
	"time"

	"faithhub.app/middlewares"
	"faithhub.app/models"
	"faithhub.app/pkg/apiresponse"
	"faithhub.app/pkg/queryparams"
	"faithhub.app/pkg/timeperiod"
	"faithhub.app/services"

	"github.com/gofiber/fiber/v2"
)

// EventHandler exposes the calendar event operations.
type EventHandler struct {
	service services.ICalendarEventService
}

func NewEventHandler(service services.ICalendarEventService) *EventHandler {
	return &EventHandler{service: service}
}

// CreateEvent handles POST /events.
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var input services.EventInput
	if err := c.BodyParser(&input); err != nil {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "malformed request body")
	}
	event, err := h.service.CreateEvent(c.UserContext(), middlewares.CurrentUserID(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return apiresponse.Created(c, "event created", event)
}

// ListEvents handles GET /events. With expand=true the recurring rows are
// expanded into concrete occurrences.
func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	start, end, err := timeperiod.Resolve(c.Query("period"), c.Query("start"), c.Query("end"), time.Now().UTC())
	if err != nil {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "malformed query parameters")
	}
	params.Validate()
	userID := middlewares.CurrentUserID(c)

	if c.QueryBool("expand") {
		occurrences, err := h.service.ListOccurrences(c.UserContext(), userID, start, end, params)
		if err != nil {
			return respondError(c, err)
		}
		return apiresponse.SuccessWithMeta(c, occurrences, fiber.Map{
			"window_start": start, "window_end": end, "count": len(occurrences),
		})
	}

	events, err := h.service.ListEvents(c.UserContext(), userID, start, end, params)
	if err != nil {
		return respondError(c, err)
	}
	return apiresponse.SuccessWithMeta(c, events, fiber.Map{
		"window_start": start, "window_end": end, "count": len(events),
	})
}

// ListUpcoming handles GET /events/upcoming.
func (h *EventHandler) ListUpcoming(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	events, err := h.service.ListUpcoming(c.UserContext(), middlewares.CurrentUserID(c), limit)
	if err != nil {
		return respondError(c, err)
	}
	return apiresponse.Success(c, events)
}

// GetEvent handles GET /events/:id.
func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "invalid event id")
	}
	event, err := h.service.GetEvent(c.UserContext(), id, middlewares.CurrentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return apiresponse.Success(c, event)
}

// UpdateEvent handles PUT /events/:id. The scope query parameter widens the
// change across a recurrence chain.
func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "invalid event id")
	}
	var input services.EventInput
	if err := c.BodyParser(&input); err != nil {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "malformed request body")
	}
	scope := models.MutationScope(c.Query("scope", string(models.ScopeThis)))
	event, err := h.service.UpdateEvent(c.UserContext(), id, middlewares.CurrentUserID(c), input, scope)
	if err != nil {
		return respondError(c, err)
	}
	return apiresponse.Message(c, "event updated", event)
}

// DeleteEvent handles DELETE /events/:id.
func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "invalid event id")
	}
	scope := models.MutationScope(c.Query("scope", string(models.ScopeThis)))
	if err := h.service.DeleteEvent(c.UserContext(), id, middlewares.CurrentUserID(c), scope); err != nil {
		return respondError(c, err)
	}
	return apiresponse.Message(c, "event deleted", nil)
}

// ExportICal handles GET /events/:id/ical.
func (h *EventHandler) ExportICal(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "invalid event id")
	}
	body, err := h.service.ExportICal(c.UserContext(), id, middlewares.CurrentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="event.ics"`)
	return c.Send(body)
}

// UploadImage handles POST /events/:id/images (multipart form, field "image").
func (h *EventHandler) UploadImage(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "invalid event id")
	}
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "image file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "image file could not be read")
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "image file could not be read")
	}

	image, err := h.service.UploadImage(
		c.UserContext(), id, middlewares.CurrentUserID(c),
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data,
		c.FormValue("is_primary") == "true",
	)
	if err != nil {
		return respondError(c, err)
	}
	return apiresponse.Created(c, "image uploaded", image)
}

// ListImages handles GET /events/:id/images.
func (h *EventHandler) ListImages(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "invalid event id")
	}
	images, err := h.service.ListImages(c.UserContext(), id, middlewares.CurrentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return apiresponse.Success(c, images)
}

// SetPrimaryImage handles PUT /events/:id/images/:imageID/primary.
func (h *EventHandler) SetPrimaryImage(c *fiber.Ctx) error {
	id, imageID := paramID(c, "id"), paramID(c, "imageID")
	if id == 0 || imageID == 0 {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "invalid event or image id")
	}
	if err := h.service.SetPrimaryImage(c.UserContext(), id, imageID, middlewares.CurrentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return apiresponse.Message(c, "primary image updated", nil)
}

// DeleteImage handles DELETE /events/:id/images/:imageID.
func (h *EventHandler) DeleteImage(c *fiber.Ctx) error {
	id, imageID := paramID(c, "id"), paramID(c, "imageID")
	if id == 0 || imageID == 0 {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "invalid event or image id")
	}
	if err := h.service.DeleteImage(c.UserContext(), id, imageID, middlewares.CurrentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return apiresponse.Message(c, "image deleted", nil)
}
