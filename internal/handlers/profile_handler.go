package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/respirex/respirex-backend/internal/dto"
	"github.com/respirex/respirex-backend/internal/middleware"
	"github.com/respirex/respirex-backend/internal/services"
)

type ProfileHandler struct {
	profiles *services.ProfileService
}

func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	account := middleware.Account(c)

	profile, err := h.profiles.GetByAccount(account.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProfileResponse(profile))
}

func (h *ProfileHandler) Upsert(c *fiber.Ctx) error {
	account := middleware.Account(c)

	var req dto.UpsertProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	profile, err := h.profiles.Upsert(account, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProfileResponse(profile))
}
