package services

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/respirex/respirex-backend/internal/dto"
	"github.com/respirex/respirex-backend/internal/models"
)

type ProfileService struct {
	db               *gorm.DB
	doctorAccessCode string
}

func NewProfileService(db *gorm.DB, doctorAccessCode string) *ProfileService {
	return &ProfileService{db: db, doctorAccessCode: doctorAccessCode}
}

// GetByAccount loads the caller's profile with its account.
func (s *ProfileService) GetByAccount(accountID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.Preload("Account").Where("account_id = ?", accountID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert creates the profile on first write and updates it afterwards.
//
// Role handling: once a profile is a doctor it stays a doctor regardless of
// what later updates request. Becoming a doctor requires the configured
// access code; a mismatch rejects the whole update and leaves the stored
// role untouched.
func (s *ProfileService) Upsert(account *models.Account, req dto.UpsertProfileRequest) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.Where("account_id = ?", account.ID).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	created := errors.Is(err, gorm.ErrRecordNotFound)
	if created {
		profile = models.Profile{AccountID: account.ID, Role: models.RolePatient}
	}

	role, err := s.resolveRole(profile.Role, req.Role, req.AccessCode)
	if err != nil {
		return nil, err
	}
	profile.Role = role

	profile.FullName = req.FullName
	profile.Phone = req.Phone
	profile.Address = req.Address
	profile.State = req.State
	profile.City = req.City
	profile.Age = req.Age
	profile.Gender = req.Gender
	profile.LicenseNumber = req.LicenseNumber

	if err := s.db.Save(&profile).Error; err != nil {
		return nil, err
	}

	profile.Account = *account
	return &profile, nil
}

// Doctors lists every doctor profile for the booking directory.
func (s *ProfileService) Doctors() ([]models.Profile, error) {
	var doctors []models.Profile
	err := s.db.Preload("Account").
		Where("role = ?", models.RoleDoctor).
		Order("full_name ASC").
		Find(&doctors).Error
	return doctors, err
}

// resolveRole decides the role to store given the current one and the
// requested update. The doctor role is sticky: a doctor stays a doctor no
// matter what the update requests. Becoming a doctor requires the access
// code; a mismatch rejects the update without touching the stored role.
func (s *ProfileService) resolveRole(current models.Role, requested, accessCode string) (models.Role, error) {
	role := models.RolePatient
	if requested != "" {
		parsed, ok := models.ParseRole(requested)
		if !ok {
			return "", fmt.Errorf("%w: unknown role %q", ErrValidation, requested)
		}
		role = parsed
	}

	if current == models.RoleDoctor {
		return models.RoleDoctor, nil
	}
	if role == models.RoleDoctor {
		if !s.accessCodeValid(accessCode) {
			return "", fmt.Errorf("%w: invalid doctor access code", ErrPermissionDenied)
		}
		return models.RoleDoctor, nil
	}
	return models.RolePatient, nil
}

func (s *ProfileService) accessCodeValid(code string) bool {
	if s.doctorAccessCode == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(code), []byte(s.doctorAccessCode)) == 1
}
