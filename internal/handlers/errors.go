package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/respirex/respirex-backend/internal/dto"
	"github.com/respirex/respirex-backend/internal/report"
	"github.com/respirex/respirex-backend/internal/services"
)

// respondError maps the service error taxonomy to HTTP statuses.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrProfileNotFound), errors.Is(err, services.ErrRecordNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrPermissionDenied):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrUpstream):
		status = fiber.StatusBadGateway
	case errors.Is(err, report.ErrGeneration):
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
}
