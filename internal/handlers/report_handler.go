package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/respirex/respirex-backend/internal/middleware"
	"github.com/respirex/respirex-backend/internal/models"
	"github.com/respirex/respirex-backend/internal/services"
)

type ReportHandler struct {
	profiles   *services.ProfileService
	screenings *services.ScreeningService
}

func NewReportHandler(profiles *services.ProfileService, screenings *services.ScreeningService) *ReportHandler {
	return &ReportHandler{profiles: profiles, screenings: screenings}
}

// Download serves the rendered PDF. Patients can only fetch their own
// records; doctors can fetch any.
func (h *ReportHandler) Download(c *fiber.Ctx) error {
	record, err := h.loadRecord(c)
	if err != nil {
		return respondError(c, err)
	}

	pdfBytes, err := h.screenings.RenderReport(record)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="RespireX_Report_%s.pdf"`, record.ID))
	return c.Send(pdfBytes)
}

// Email renders the report and mails it to the caller. Unlike the
// notification side effects elsewhere, failure here is the failure of the
// request and is surfaced.
func (h *ReportHandler) Email(c *fiber.Ctx) error {
	account := middleware.Account(c)

	record, err := h.loadRecord(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.screenings.EmailReport(c.UserContext(), record, account.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"sent": true, "to": account.Email})
}

func (h *ReportHandler) loadRecord(c *fiber.Ctx) (*models.ScreeningRecord, error) {
	account := middleware.Account(c)

	profile, err := h.profiles.GetByAccount(account.ID)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid record id", services.ErrValidation)
	}

	return h.screenings.GetRecord(id, profile)
}
