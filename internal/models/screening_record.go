package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ScreeningRecord is the persisted outcome of one prediction request.
// Immutable after creation; removed only by cascading profile deletion.
//
// RiskLevel is written with the canonical derivation rule at predict time but
// must be treated as a cache on every read path: serializers and the report
// renderer recompute the tier from (Result, ConfidenceScore).
type ScreeningRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	Patient   Profile   `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	XrayImageURL    string      `gorm:"size:2048" json:"xray_image_url"`
	Result          ResultLabel `gorm:"size:20;not null" json:"result"`
	ConfidenceScore float64     `gorm:"not null" json:"confidence_score"`
	RiskLevel       RiskTier    `gorm:"size:20;not null" json:"-"`

	Symptoms datatypes.JSONMap `gorm:"type:jsonb;default:'{}'" json:"symptoms_data"`

	CreatedAt time.Time `gorm:"index" json:"date_tested"`
}
