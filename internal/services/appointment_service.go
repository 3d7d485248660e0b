package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/respirex/respirex-backend/internal/dto"
	"github.com/respirex/respirex-backend/internal/mail"
	"github.com/respirex/respirex-backend/internal/models"
)

type AppointmentService struct {
	db     *gorm.DB
	mailer mail.Sender
}

func NewAppointmentService(db *gorm.DB, mailer mail.Sender) *AppointmentService {
	return &AppointmentService{db: db, mailer: mailer}
}

// Create books an appointment for the calling patient with a doctor.
func (s *AppointmentService) Create(patient *models.Profile, req dto.CreateAppointmentRequest) (*models.Appointment, error) {
	if req.DoctorID == uuid.Nil {
		return nil, fmt.Errorf("%w: doctor_id is required", ErrValidation)
	}
	if req.DateTime.IsZero() {
		return nil, fmt.Errorf("%w: date_time is required", ErrValidation)
	}

	var doctor models.Profile
	err := s.db.Preload("Account").First(&doctor, "id = ?", req.DoctorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: doctor", ErrProfileNotFound)
	}
	if err != nil {
		return nil, err
	}
	if doctor.Role != models.RoleDoctor {
		return nil, fmt.Errorf("%w: selected profile is not a doctor", ErrValidation)
	}

	appointment := &models.Appointment{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		DateTime:  req.DateTime,
		Reason:    req.Reason,
		Status:    models.AppointmentPending,
	}
	if err := s.db.Create(appointment).Error; err != nil {
		return nil, err
	}
	appointment.Patient = *patient
	appointment.Doctor = doctor
	return appointment, nil
}

// List returns the caller's appointments: own bookings for patients, assigned
// ones for doctors.
func (s *AppointmentService) List(caller *models.Profile) ([]models.Appointment, error) {
	q := s.db.Preload("Patient.Account").Preload("Doctor.Account").Order("date_time DESC")
	if caller.Role == models.RoleDoctor {
		q = q.Where("doctor_id = ?", caller.ID)
	} else {
		q = q.Where("patient_id = ?", caller.ID)
	}

	var appointments []models.Appointment
	err := q.Find(&appointments).Error
	return appointments, err
}

// UpdateStatus transitions an appointment. Only the two participants may do
// it; writes are last-write-wins. Confirmed and cancelled transitions trigger
// a best-effort patient notification.
func (s *AppointmentService) UpdateStatus(ctx context.Context, caller *models.Profile, id uuid.UUID, req dto.UpdateAppointmentStatusRequest) (*models.Appointment, error) {
	status, ok := models.ParseAppointmentStatus(req.Status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
	}

	var appointment models.Appointment
	err := s.db.Preload("Patient.Account").Preload("Doctor.Account").First(&appointment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	if caller.ID != appointment.PatientID && caller.ID != appointment.DoctorID {
		return nil, ErrPermissionDenied
	}

	appointment.Status = status
	if caller.ID == appointment.DoctorID && req.DoctorNote != "" {
		note := req.DoctorNote
		appointment.DoctorNote = &note
	}

	if err := s.db.Save(&appointment).Error; err != nil {
		return nil, err
	}

	if statusTriggersNotification(status) {
		s.notifyStatus(ctx, &appointment)
	}
	return &appointment, nil
}

// statusTriggersNotification reports whether a transition emails the patient.
// Only confirmed and cancelled do; pending and completed are silent.
func statusTriggersNotification(status models.AppointmentStatus) bool {
	return status == models.AppointmentConfirmed || status == models.AppointmentCancelled
}

// notifyStatus emails the patient about the new status. Best-effort: failures
// are logged and swallowed so they never abort the transition.
func (s *AppointmentService) notifyStatus(ctx context.Context, appointment *models.Appointment) {
	email := appointment.Patient.Account.Email
	if email == "" {
		return
	}

	note := ""
	if appointment.DoctorNote != nil {
		note = *appointment.DoctorNote
	}
	doctorName := appointment.Doctor.DisplayName()
	msg := mail.Message{
		Subject: mail.AppointmentStatusSubject(doctorName),
		To:      []string{email},
		HTML: mail.AppointmentStatusHTML(
			appointment.Patient.DisplayName(),
			doctorName,
			appointment.DateTime.Format("January 2, 2006 at 15:04"),
			appointment.Status,
			note,
		),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		slog.Error("appointment notification failed",
			"error", err, "appointment_id", appointment.ID, "action", "notify_appointment")
	}
}
