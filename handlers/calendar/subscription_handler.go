package calendar_handlers

import (
	"faithhub.app/middlewares"
	"faithhub.app/models"
	"faithhub.app/pkg/apiresponse"
	"faithhub.app/pkg/queryparams"
	"faithhub.app/services"

	"github.com/gofiber/fiber/v2"
)

// SubscriptionHandler exposes the invitation and membership operations.
type SubscriptionHandler struct {
	service services.ISubscriptionService
}

func NewSubscriptionHandler(service services.ISubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

type inviteRequest struct {
	Email      string                        `json:"email"`
	Emails     []string                      `json:"emails"`
	Permission models.SubscriptionPermission `json:"permission"`
}

// Invite handles POST /events/:id/subscriptions/invite. A single email and a
// list are both accepted; the list form reports per-address outcomes.
func (h *SubscriptionHandler) Invite(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "invalid event id")
	}
	var req inviteRequest
	if err := c.BodyParser(&req); err != nil {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "malformed request body")
	}
	userID := middlewares.CurrentUserID(c)

	if len(req.Emails) > 0 {
		result, err := h.service.InviteMultipleUsers(c.UserContext(), id, userID, req.Emails, req.Permission)
		if err != nil {
			return respondError(c, err)
		}
		return apiresponse.Success(c, result)
	}
	if req.Email == "" {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "email is required")
	}
	sub, err := h.service.InviteUser(c.UserContext(), id, userID, req.Email, req.Permission)
	if err != nil {
		return respondError(c, err)
	}
	return apiresponse.Created(c, "invitation sent", sub)
}

// Accept handles POST /events/:id/subscriptions/accept.
func (h *SubscriptionHandler) Accept(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "invalid event id")
	}
	sub, err := h.service.AcceptInvitation(c.UserContext(), id, middlewares.CurrentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return apiresponse.Message(c, "invitation accepted", sub)
}

// Decline handles POST /events/:id/subscriptions/decline.
func (h *SubscriptionHandler) Decline(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "invalid event id")
	}
	sub, err := h.service.DeclineInvitation(c.UserContext(), id, middlewares.CurrentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return apiresponse.Message(c, "invitation declined", sub)
}

// Unsubscribe handles DELETE /events/:id/subscriptions.
func (h *SubscriptionHandler) Unsubscribe(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "invalid event id")
	}
	if err := h.service.Unsubscribe(c.UserContext(), id, middlewares.CurrentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return apiresponse.Message(c, "unsubscribed", nil)
}

// RemoveUser handles DELETE /events/:id/subscriptions/:userID.
func (h *SubscriptionHandler) RemoveUser(c *fiber.Ctx) error {
	id, targetID := paramID(c, "id"), paramID(c, "userID")
	if id == 0 || targetID == 0 {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "invalid event or user id")
	}
	if err := h.service.RemoveUser(c.UserContext(), id, middlewares.CurrentUserID(c), targetID); err != nil {
		return respondError(c, err)
	}
	return apiresponse.Message(c, "user removed from event", nil)
}

type permissionRequest struct {
	Permission models.SubscriptionPermission `json:"permission"`
}

// UpdatePermission handles PUT /events/:id/subscriptions/:userID/permission.
func (h *SubscriptionHandler) UpdatePermission(c *fiber.Ctx) error {
	id, targetID := paramID(c, "id"), paramID(c, "userID")
	if id == 0 || targetID == 0 {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "invalid event or user id")
	}
	var req permissionRequest
	if err := c.BodyParser(&req); err != nil {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "malformed request body")
	}
	sub, err := h.service.UpdatePermission(c.UserContext(), id, middlewares.CurrentUserID(c), targetID, req.Permission)
	if err != nil {
		return respondError(c, err)
	}
	return apiresponse.Message(c, "permission updated", sub)
}

type bulkStatusRequest struct {
	UserIDs []uint                    `json:"user_ids"`
	Status  models.SubscriptionStatus `json:"status"`
}

// BulkStatus handles POST /events/:id/subscriptions/bulk-status.
func (h *SubscriptionHandler) BulkStatus(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "invalid event id")
	}
	var req bulkStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "malformed request body")
	}
	affected, err := h.service.UpdateStatusBulk(c.UserContext(), id, middlewares.CurrentUserID(c), req.UserIDs, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return apiresponse.Success(c, fiber.Map{"updated": affected})
}

type bulkRemoveRequest struct {
	UserIDs []uint `json:"user_ids"`
}

// BulkRemove handles POST /events/:id/subscriptions/bulk-remove.
func (h *SubscriptionHandler) BulkRemove(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "invalid event id")
	}
	var req bulkRemoveRequest
	if err := c.BodyParser(&req); err != nil {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "malformed request body")
	}
	affected, err := h.service.RemoveBulk(c.UserContext(), id, middlewares.CurrentUserID(c), req.UserIDs)
	if err != nil {
		return respondError(c, err)
	}
	return apiresponse.Success(c, fiber.Map{"removed": affected})
}

// ListForEvent handles GET /events/:id/subscriptions.
func (h *SubscriptionHandler) ListForEvent(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "invalid event id")
	}
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "malformed query parameters")
	}
	result, err := h.service.ListEventSubscriptions(c.UserContext(), id, middlewares.CurrentUserID(c), params)
	if err != nil {
		return respondError(c, err)
	}
	return apiresponse.SuccessWithMeta(c, result.Data, fiber.Map{"pagination": result.Meta})
}

// Check handles GET /events/:id/subscriptions/check.
func (h *SubscriptionHandler) Check(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "invalid event id")
	}
	sub, err := h.service.CheckSubscription(c.UserContext(), id, middlewares.CurrentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return apiresponse.Success(c, sub)
}

// ListMine handles GET /subscriptions.
func (h *SubscriptionHandler) ListMine(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "malformed query parameters")
	}
	result, err := h.service.ListUserSubscriptions(c.UserContext(), middlewares.CurrentUserID(c), params)
	if err != nil {
		return respondError(c, err)
	}
	return apiresponse.SuccessWithMeta(c, result.Data, fiber.Map{"pagination": result.Meta})
}

// ListPending handles GET /subscriptions/pending.
func (h *SubscriptionHandler) ListPending(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		return apiresponse.Error(c, fiber.StatusUnprocessableEntity, "malformed query parameters")
	}
	result, err := h.service.ListPendingInvitations(c.UserContext(), middlewares.CurrentUserID(c), params)
	if err != nil {
		return respondError(c, err)
	}
	return apiresponse.SuccessWithMeta(c, result.Data, fiber.Map{"pagination": result.Meta})
}

// CountPending handles GET /subscriptions/pending/count.
func (h *SubscriptionHandler) CountPending(c *fiber.Ctx) error {
	count, err := h.service.CountPendingInvitations(c.UserContext(), middlewares.CurrentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return apiresponse.Success(c, fiber.Map{"pending": count})
}
