package models

import (
	"time"

	"github.com/google/uuid"
)

// Appointment links a patient and a doctor. Either participant may move the
// status; concurrent writers are last-write-wins (no optimistic locking).
type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	Patient   Profile   `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Doctor    Profile   `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"-"`

	DateTime   time.Time         `gorm:"not null" json:"date_time"`
	Reason     string            `gorm:"type:text" json:"reason"`
	Status     AppointmentStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	DoctorNote *string           `gorm:"type:text" json:"doctor_note"`

	CreatedAt time.Time `json:"created_at"`
}
