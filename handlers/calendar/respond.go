package calendar_handlers

import (
	"errors"

	"faithhub.app/pkg/apiresponse"
	"faithhub.app/services"

	"github.com/gofiber/fiber/v2"
)

// respondError translates the typed service errors into HTTP statuses. The
// mapping is the single place where the error vocabulary meets the wire.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrSubscriptionNotFound),
		errors.Is(err, services.ErrImageNotFound):
		return apiresponse.Error(c, fiber.StatusNotFound, err.Error())

	case errors.Is(err, services.ErrEventForbidden),
		errors.Is(err, services.ErrSubscriptionForbidden),
		errors.Is(err, services.ErrStatsForbidden):
		return apiresponse.Error(c, fiber.StatusForbidden, err.Error())

	case errors.Is(err, services.ErrSubscriptionExists),
		errors.Is(err, services.ErrSubscriptionOwner),
		errors.Is(err, services.ErrInvitationNotPending):
		return apiresponse.Error(c, fiber.StatusConflict, err.Error())

	case errors.Is(err, services.ErrEventInvalidInput),
		errors.Is(err, services.ErrSubscriptionInvalidInput),
		errors.Is(err, services.ErrStatsInvalidInput),
		errors.Is(err, services.ErrImageInvalid),
		errors.Is(err, services.ErrImageLimitReached):
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	return apiresponse.Error(c, fiber.StatusInternalServerError, "internal server error")
}

// paramID parses a numeric path parameter; zero means invalid.
func paramID(c *fiber.Ctx, name string) uint {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0
	}
	return uint(id)
}
