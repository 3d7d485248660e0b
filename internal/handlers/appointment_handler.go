package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/respirex/respirex-backend/internal/dto"
	"github.com/respirex/respirex-backend/internal/middleware"
	"github.com/respirex/respirex-backend/internal/models"
	"github.com/respirex/respirex-backend/internal/services"
)

type AppointmentHandler struct {
	profiles     *services.ProfileService
	appointments *services.AppointmentService
}

func NewAppointmentHandler(profiles *services.ProfileService, appointments *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{profiles: profiles, appointments: appointments}
}

func (h *AppointmentHandler) DoctorsList(c *fiber.Ctx) error {
	doctors, err := h.profiles.Doctors()
	if err != nil {
		return respondError(c, err)
	}

	out := make([]dto.DoctorResponse, 0, len(doctors))
	for i := range doctors {
		out = append(out, dto.NewDoctorResponse(&doctors[i]))
	}
	return c.JSON(out)
}

func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	profile, err := h.callerProfile(c)
	if err != nil {
		return respondError(c, err)
	}

	appointments, err := h.appointments.List(profile)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewAppointmentResponses(appointments))
}

func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	profile, err := h.callerProfile(c)
	if err != nil {
		return respondError(c, err)
	}

	var req dto.CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	appointment, err := h.appointments.Create(profile, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewAppointmentResponse(appointment))
}

func (h *AppointmentHandler) UpdateStatus(c *fiber.Ctx) error {
	profile, err := h.callerProfile(c)
	if err != nil {
		return respondError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fmt.Errorf("%w: invalid appointment id", services.ErrValidation))
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	appointment, err := h.appointments.UpdateStatus(c.UserContext(), profile, id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewAppointmentResponse(appointment))
}

func (h *AppointmentHandler) callerProfile(c *fiber.Ctx) (*models.Profile, error) {
	account := middleware.Account(c)
	profile, err := h.profiles.GetByAccount(account.ID)
	if errors.Is(err, services.ErrProfileNotFound) {
		return nil, fmt.Errorf("%w: complete profile first", services.ErrProfileNotFound)
	}
	return profile, err
}
