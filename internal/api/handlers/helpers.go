package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/hafiz27/billflow/pkg/apperrors"
)

func GetUserID(c *fiber.Ctx) int64 {
	userID, _ := strconv.Atoi(c.Locals("user_id").(string))
	return int64(userID)
}

// HandleServiceError maps typed service errors onto HTTP statuses so the
// caller sees a cause-specific message instead of a generic failure.
func HandleServiceError(c *fiber.Ctx, err error) error {
	if appErr, ok := apperrors.As(err); ok {
		return c.Status(appErr.Status).JSON(fiber.Map{
			"error": appErr.Message,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
