package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hafiz27/billflow/internal/service"
)

type SubscriptionHandler struct {
	s service.SubscriptionService
}

func NewSubscriptionHandler(service service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{s: service}
}

// GetMySubscription provisions a 7-day trial on first access, then
// reports the dashboard summary.
func (h *SubscriptionHandler) GetMySubscription(c *fiber.Ctx) error {
	userID := GetUserID(c)

	info, err := h.s.Status(c.Context(), userID)
	if err != nil {
		return HandleServiceError(c, err)
	}

	return c.JSON(info)
}

func (h *SubscriptionHandler) CancelSubscription(c *fiber.Ctx) error {
	userID := GetUserID(c)

	if err := h.s.Cancel(c.Context(), userID); err != nil {
		return HandleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Subscription will not renew at period end",
	})
}
