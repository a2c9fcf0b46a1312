package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/hafiz27/billflow/internal/service"
	"github.com/hafiz27/billflow/internal/transfer"
)

type WebhookHandler struct {
	s service.PaymentService
}

func NewWebhookHandler(service service.PaymentService) *WebhookHandler {
	return &WebhookHandler{s: service}
}

// BillplzCallback receives the gateway's server-to-server notification.
// This is the authoritative pending-to-paid transition; the browser
// redirect only ever sees its result.
func (h *WebhookHandler) BillplzCallback(c *fiber.Ctx) error {
	var data transfer.BillplzCallback

	if err := c.BodyParser(&data); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid callback payload",
		})
	}

	if err := h.s.ProcessCallback(c.Context(), &data); err != nil {
		return HandleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}
