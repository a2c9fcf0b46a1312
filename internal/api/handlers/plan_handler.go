package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/hafiz27/billflow/internal/service"
)

type PlanHandler struct {
	s service.PlanService
}

func NewPlanHandler(service service.PlanService) *PlanHandler {
	return &PlanHandler{s: service}
}

func (h *PlanHandler) ListPlans(c *fiber.Ctx) error {
	plans, err := h.s.ListActive(c.Context())
	if err != nil {
		return HandleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"plans": plans,
		"total": len(plans),
	})
}

func (h *PlanHandler) GetPlan(c *fiber.Ctx) error {
	planID, err := strconv.ParseInt(c.Params("planId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid plan id",
		})
	}

	plan, err := h.s.Get(c.Context(), planID)
	if err != nil {
		return HandleServiceError(c, err)
	}

	return c.JSON(plan)
}
