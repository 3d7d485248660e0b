package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/respirex/respirex-backend/internal/models"
)

type CreateAppointmentRequest struct {
	DoctorID uuid.UUID `json:"doctor_id"`
	DateTime time.Time `json:"date_time"`
	Reason   string    `json:"reason"`
}

type UpdateAppointmentStatusRequest struct {
	Status     string `json:"status"`
	DoctorNote string `json:"doctor_note"`
}

type AppointmentResponse struct {
	ID          uuid.UUID                `json:"id"`
	PatientID   uuid.UUID                `json:"patient_id"`
	PatientName string                   `json:"patient_name"`
	DoctorID    uuid.UUID                `json:"doctor_id"`
	DoctorName  string                   `json:"doctor_name"`
	DateTime    time.Time                `json:"date_time"`
	Reason      string                   `json:"reason"`
	Status      models.AppointmentStatus `json:"status"`
	DoctorNote  *string                  `json:"doctor_note"`
	CreatedAt   time.Time                `json:"created_at"`
}

func NewAppointmentResponse(a *models.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:          a.ID,
		PatientID:   a.PatientID,
		PatientName: a.Patient.DisplayName(),
		DoctorID:    a.DoctorID,
		DoctorName:  a.Doctor.DisplayName(),
		DateTime:    a.DateTime,
		Reason:      a.Reason,
		Status:      a.Status,
		DoctorNote:  a.DoctorNote,
		CreatedAt:   a.CreatedAt,
	}
}

func NewAppointmentResponses(appointments []models.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		out = append(out, NewAppointmentResponse(&appointments[i]))
	}
	return out
}

type DoctorResponse struct {
	ID            uuid.UUID `json:"id"`
	FullName      string    `json:"full_name"`
	State         string    `json:"state"`
	City          string    `json:"city"`
	LicenseNumber *string   `json:"license_number"`
}

func NewDoctorResponse(p *models.Profile) DoctorResponse {
	return DoctorResponse{
		ID:            p.ID,
		FullName:      p.DisplayName(),
		State:         p.State,
		City:          p.City,
		LicenseNumber: p.LicenseNumber,
	}
}
