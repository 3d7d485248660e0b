package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the clinical-facing identity of a caller. Exactly one per
// account. The doctor role is sticky: once set it is never downgraded by a
// later update.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"-"`
	Account   Account   `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Role Role `gorm:"size:10;not null;default:'patient'" json:"role"`

	FullName string `gorm:"size:200" json:"full_name"`
	Phone    string `gorm:"size:20" json:"phone"`
	Address  string `gorm:"type:text" json:"address"`
	State    string `gorm:"size:100" json:"state"`
	City     string `gorm:"size:100" json:"city"`

	// Patient fields.
	Age    *int   `json:"age"`
	Gender string `gorm:"size:20" json:"gender"`

	// Doctor fields.
	LicenseNumber *string `gorm:"size:50" json:"license_number"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName is the full name when present, the account email otherwise.
func (p *Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.Account.Email
}
