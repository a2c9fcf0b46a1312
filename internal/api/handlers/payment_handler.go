package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hafiz27/billflow/internal/queue"
	"github.com/hafiz27/billflow/internal/service"
	"github.com/hafiz27/billflow/internal/transfer"
	"github.com/hibiken/asynq"
)

// Pending bills that the gateway never settles are failed after this
// window, matching the bill's own due period.
const paymentExpiryDelay = 24 * time.Hour

type PaymentHandler struct {
	s      service.PaymentService
	client *asynq.Client
}

func NewPaymentHandler(service service.PaymentService, client *asynq.Client) *PaymentHandler {
	return &PaymentHandler{s: service, client: client}
}

func (h *PaymentHandler) CreateCheckout(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.PlanID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "plan_id is required",
		})
	}

	response, err := h.s.CreateCheckout(c.Context(), userID, req.PlanID, req.IdempotencyKey)
	if err != nil {
		return HandleServiceError(c, err)
	}

	if h.client != nil {
		payload := queue.PaymentExpirePayload{BillID: response.PaymentID}
		if err := queue.EnqueuePaymentExpiry(h.client, payload, paymentExpiryDelay); err != nil {
			slog.Info(err.Error())
		}
	}

	return c.JSON(response)
}

func (h *PaymentHandler) GetPaymentHistory(c *fiber.Ctx) error {
	userID := GetUserID(c)

	payments, err := h.s.History(c.Context(), userID)
	if err != nil {
		return HandleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"payments": payments,
		"total":    len(payments),
	})
}

// VerifyPayment serves the browser return trip from Billplz. The bill id
// and paid flag arrive under a few different query keys depending on the
// gateway's redirect mode.
func (h *PaymentHandler) VerifyPayment(c *fiber.Ctx) error {
	billID := c.Query("billplz[id]")
	if billID == "" {
		billID = c.Query("billplz_id")
	}
	if billID == "" {
		billID = c.Query("bill_id")
	}

	paid := c.Query("billplz[paid]")
	if paid == "" {
		paid = c.Query("paid")
	}
	paidHint := paid == "true" || paid == "1"

	verification, err := h.s.CheckPayment(c.Context(), billID, paidHint)
	if err != nil {
		return HandleServiceError(c, err)
	}

	return c.JSON(verification)
}
