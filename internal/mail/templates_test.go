package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/respirex/respirex-backend/internal/models"
)

func TestScreeningResultHTMLRiskVariants(t *testing.T) {
	tests := []struct {
		name      string
		risk      models.RiskTier
		wantColor string
	}{
		{"high risk gets warning treatment", models.RiskHigh, "#e11d48"},
		{"medium risk gets warning treatment", models.RiskMedium, "#e11d48"},
		{"low risk gets all-clear treatment", models.RiskLow, "#059669"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := ScreeningResultHTML("Jane", "March 14, 2025", tt.risk, 91.2, "https://app.example.com")
			assert.Contains(t, body, tt.wantColor)
			assert.Contains(t, body, string(tt.risk)+" Risk")
			assert.Contains(t, body, "91.2%")
			assert.Contains(t, body, "https://app.example.com")
		})
	}
}

func TestScreeningResultHTMLEscapesUserValues(t *testing.T) {
	body := ScreeningResultHTML("<script>x</script>", "today", models.RiskLow, 50, "https://app.example.com")
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestAppointmentStatusSubject(t *testing.T) {
	assert.Equal(t, "Appointment Update - Dr. Okafor", AppointmentStatusSubject("Okafor"))
}

func TestAppointmentStatusHTMLConfirmed(t *testing.T) {
	body := AppointmentStatusHTML("Jane", "Okafor", "April 2, 2025 10:00", models.AppointmentConfirmed, "")
	assert.Contains(t, body, "CONFIRMED")
	assert.Contains(t, body, "#059669")
	assert.Contains(t, body, "April 2, 2025 10:00")
	assert.NotContains(t, body, "NEEDS RESCHEDULING")
}

func TestAppointmentStatusHTMLCancelled(t *testing.T) {
	body := AppointmentStatusHTML("Jane", "Okafor", "April 2, 2025 10:00", models.AppointmentCancelled, "")
	assert.Contains(t, body, "NEEDS RESCHEDULING")
	assert.Contains(t, body, "#e11d48")
	assert.Contains(t, body, "Dr. Okafor")
	assert.NotContains(t, body, "Doctor's Note")
}

func TestAppointmentStatusHTMLDoctorNote(t *testing.T) {
	body := AppointmentStatusHTML("Jane", "Okafor", "tomorrow", models.AppointmentCancelled, "Please book a morning slot & fast beforehand")
	assert.Contains(t, body, "Doctor's Note:")
	assert.Contains(t, body, "Please book a morning slot &amp; fast beforehand")
}
