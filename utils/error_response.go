package utils

import (
	"errors"

	"github.com/edumatch/tutor_marketplace/errdefs"
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse translates the typed error taxonomy into HTTP status codes,
// 1:1 for mutation endpoints.
func ErrorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, errdefs.ErrUnauthorized):
		status = fiber.StatusForbidden
	case errors.Is(err, errdefs.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, errdefs.ErrValidation):
		status = fiber.StatusBadRequest
	case errors.Is(err, errdefs.ErrInvalidState):
		status = fiber.StatusBadRequest
	case errors.Is(err, errdefs.ErrConflict):
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// FetchErrorResponse is the generic failure shape listing endpoints return.
func FetchErrorResponse(c *fiber.Ctx, resource string, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "Failed to fetch " + resource,
		"details": err.Error(),
	})
}
