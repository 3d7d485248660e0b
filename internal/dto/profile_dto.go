package dto

import (
	"github.com/google/uuid"

	"github.com/respirex/respirex-backend/internal/models"
)

type UpsertProfileRequest struct {
	Role          string  `json:"role"`
	FullName      string  `json:"full_name"`
	Phone         string  `json:"phone"`
	Address       string  `json:"address"`
	State         string  `json:"state"`
	City          string  `json:"city"`
	Age           *int    `json:"age"`
	Gender        string  `json:"gender"`
	LicenseNumber *string `json:"license_number"`

	// AccessCode is required when requesting the doctor role.
	AccessCode string `json:"access_code"`
}

type ProfileResponse struct {
	ID            uuid.UUID   `json:"id"`
	Email         string      `json:"email"`
	Role          models.Role `json:"role"`
	FullName      string      `json:"full_name"`
	Phone         string      `json:"phone"`
	Address       string      `json:"address"`
	State         string      `json:"state"`
	City          string      `json:"city"`
	Age           *int        `json:"age"`
	Gender        string      `json:"gender"`
	LicenseNumber *string     `json:"license_number"`
}

func NewProfileResponse(p *models.Profile) ProfileResponse {
	return ProfileResponse{
		ID:            p.ID,
		Email:         p.Account.Email,
		Role:          p.Role,
		FullName:      p.FullName,
		Phone:         p.Phone,
		Address:       p.Address,
		State:         p.State,
		City:          p.City,
		Age:           p.Age,
		Gender:        p.Gender,
		LicenseNumber: p.LicenseNumber,
	}
}
