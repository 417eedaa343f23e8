package middlewares

import (
	"strconv"

	"faithhub.app/pkg/apiresponse"
	"faithhub.app/repositories"

	"github.com/gofiber/fiber/v2"
)

// Identity is terminated by the upstream gateway, which forwards the
// authenticated account in the X-User-ID header. This middleware resolves the
// header to a local user row and exposes it through locals.
func AuthMiddleware(c *fiber.Ctx) error {
	raw := c.Get("X-User-ID")
	if raw == "" {
		return apiresponse.Error(c, fiber.StatusUnauthorized, "authentication required")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return apiresponse.Error(c, fiber.StatusUnauthorized, "invalid user identity")
	}

	user, err := repositories.NewUserRepository().FindByID(c.UserContext(), uint(id))
	if err != nil {
		return apiresponse.Error(c, fiber.StatusUnauthorized, "unknown user")
	}

	c.Locals("userID", user.ID)
	c.Locals("isAdmin", user.IsAdmin)
	return c.Next()
}

// RequireAdmin gates admin-only routes. It must run after AuthMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isAdmin, _ := c.Locals("isAdmin").(bool)
		if !isAdmin {
			return apiresponse.Error(c, fiber.StatusForbidden, "administrator access required")
		}
		return c.Next()
	}
}

// CurrentUserID reads the authenticated user's id from locals.
func CurrentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}
