package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/respirex/respirex-backend/internal/mail"
	"github.com/respirex/respirex-backend/internal/models"
)

type recordingSender struct {
	sent []mail.Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg mail.Message) error {
	r.sent = append(r.sent, msg)
	return r.err
}

func sampleAppointment(patientEmail string, status models.AppointmentStatus) *models.Appointment {
	return &models.Appointment{
		ID:        uuid.New(),
		PatientID: uuid.New(),
		Patient: models.Profile{
			FullName: "Jane Tester",
			Account:  models.Account{Email: patientEmail},
		},
		DoctorID: uuid.New(),
		Doctor: models.Profile{
			FullName: "Okafor",
			Role:     models.RoleDoctor,
		},
		DateTime: time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC),
		Reason:   "Follow-up",
		Status:   status,
	}
}

func TestStatusTriggersNotification(t *testing.T) {
	tests := []struct {
		status models.AppointmentStatus
		want   bool
	}{
		{models.AppointmentConfirmed, true},
		{models.AppointmentCancelled, true},
		{models.AppointmentPending, false},
		{models.AppointmentCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, statusTriggersNotification(tt.status))
		})
	}
}

func TestNotifyStatusEmailsPatient(t *testing.T) {
	sender := &recordingSender{}
	s := NewAppointmentService(nil, sender)

	appointment := sampleAppointment("jane@example.com", models.AppointmentConfirmed)
	s.notifyStatus(context.Background(), appointment)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, []string{"jane@example.com"}, msg.To)
	assert.Equal(t, "Appointment Update - Dr. Okafor", msg.Subject)
	assert.Contains(t, msg.HTML, "CONFIRMED")
	assert.Empty(t, msg.Attachment)
}

func TestNotifyStatusIncludesDoctorNote(t *testing.T) {
	sender := &recordingSender{}
	s := NewAppointmentService(nil, sender)

	note := "Please book a morning slot"
	appointment := sampleAppointment("jane@example.com", models.AppointmentCancelled)
	appointment.DoctorNote = &note
	s.notifyStatus(context.Background(), appointment)

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].HTML, "NEEDS RESCHEDULING")
	assert.Contains(t, sender.sent[0].HTML, note)
}

func TestNotifyStatusSkipsWithoutEmail(t *testing.T) {
	sender := &recordingSender{}
	s := NewAppointmentService(nil, sender)

	s.notifyStatus(context.Background(), sampleAppointment("", models.AppointmentConfirmed))

	assert.Empty(t, sender.sent)
}

func TestNotifyStatusSwallowsSendFailure(t *testing.T) {
	sender := &recordingSender{err: errors.New("provider down")}
	s := NewAppointmentService(nil, sender)

	// The helper must not panic or propagate; the transition is already
	// persisted by the time it runs.
	s.notifyStatus(context.Background(), sampleAppointment("jane@example.com", models.AppointmentCancelled))

	assert.Len(t, sender.sent, 1)
}
