package handlers

import (
	"errors"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/respirex/respirex-backend/internal/dto"
	"github.com/respirex/respirex-backend/internal/middleware"
	"github.com/respirex/respirex-backend/internal/models"
	"github.com/respirex/respirex-backend/internal/services"
)

type ScreeningHandler struct {
	profiles   *services.ProfileService
	screenings *services.ScreeningService
}

func NewScreeningHandler(profiles *services.ProfileService, screenings *services.ScreeningService) *ScreeningHandler {
	return &ScreeningHandler{profiles: profiles, screenings: screenings}
}

// Predict handles the multipart upload: image file + symptoms JSON.
func (h *ScreeningHandler) Predict(c *fiber.Ctx) error {
	account := middleware.Account(c)

	profile, err := h.profiles.GetByAccount(account.ID)
	if errors.Is(err, services.ErrProfileNotFound) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Complete profile first",
		})
	}
	if err != nil {
		return respondError(c, err)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "No image provided",
		})
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Uploaded file must be an image",
		})
	}

	f, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to read image",
		})
	}
	defer f.Close()

	imageBytes, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to read image data",
		})
	}

	symptoms := c.FormValue("symptoms", "{}")

	record, err := h.screenings.Predict(c.UserContext(), profile, imageBytes, contentType, symptoms)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewScreeningRecordResponse(record))
}

func (h *ScreeningHandler) History(c *fiber.Ctx) error {
	account := middleware.Account(c)

	profile, err := h.profiles.GetByAccount(account.ID)
	if errors.Is(err, services.ErrProfileNotFound) {
		return c.JSON([]dto.ScreeningRecordResponse{})
	}
	if err != nil {
		return respondError(c, err)
	}

	records, err := h.screenings.History(profile.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewScreeningRecordResponses(records))
}

func (h *ScreeningHandler) Dashboard(c *fiber.Ctx) error {
	account := middleware.Account(c)

	profile, err := h.profiles.GetByAccount(account.ID)
	if err != nil || profile.Role != models.RoleDoctor {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	resp, err := h.screenings.Dashboard(c.Query("state", "all"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// PublicStats serves aggregate counters without authentication.
func (h *ScreeningHandler) PublicStats(c *fiber.Ctx) error {
	stats, err := h.screenings.PublicStats()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
