package models

import (
	"time"

	"github.com/google/uuid"
)

// Account maps an external identity-provider subject to a local row.
// Created on first sight of a verified token; the profile itself is created
// lazily on the first profile write.
type Account struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ExternalID string    `gorm:"size:255;not null;uniqueIndex" json:"-"`
	Email      string    `gorm:"size:255;not null" json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
