package mail

import (
	"fmt"
	"html"

	"github.com/respirex/respirex-backend/internal/models"
)

// ScreeningResultSubject is the subject line for result notifications.
const ScreeningResultSubject = "Your RespireX Screening Report"

// ScreeningResultHTML builds the result-notification body. High and Medium
// tiers get the warning treatment, Low the all-clear one.
func ScreeningResultHTML(patientName, testDate string, risk models.RiskTier, confidence float64, dashboardURL string) string {
	color, icon := "#059669", "&#9989;"
	if risk == models.RiskHigh || risk == models.RiskMedium {
		color, icon = "#e11d48", "&#9888;"
	}

	return fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; border: 1px solid #eee; border-radius: 8px;">
		<div style="background-color: #0f172a; color: white; padding: 20px; text-align: center;">
			<h2 style="margin:0;">RespireX Report</h2>
		</div>
		<div style="padding: 30px;">
			<h3>Hello %s,</h3>
			<p>Your analysis from %s is complete.</p>
			<div style="background: #f8fafc; padding: 15px; border-radius: 6px; margin: 20px 0;">
				<p><strong>Result:</strong> <span style="color: %s; font-weight: bold;">%s %s Risk</span></p>
				<p><strong>AI Confidence:</strong> %.1f%%</p>
			</div>
			<p>Please find the detailed PDF report attached.</p>
			<div style="text-align: center; margin-top: 30px;">
				<a href="%s" style="background-color: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; font-weight: bold;">Login to Dashboard</a>
			</div>
		</div>
	</div>`,
		html.EscapeString(patientName), html.EscapeString(testDate), color, icon, risk, confidence, dashboardURL)
}

// AppointmentStatusSubject builds the subject for appointment updates.
func AppointmentStatusSubject(doctorName string) string {
	return fmt.Sprintf("Appointment Update - Dr. %s", doctorName)
}

// AppointmentStatusHTML builds the appointment-update body. Confirmed is the
// green variant; anything else is treated as needs-rescheduling, with the
// doctor note appended when present.
func AppointmentStatusHTML(patientName, doctorName, when string, status models.AppointmentStatus, doctorNote string) string {
	var color, statusText, body string
	if status == models.AppointmentConfirmed {
		color = "#059669"
		statusText = "CONFIRMED"
		body = fmt.Sprintf("Your appointment has been <strong>confirmed</strong> for %s.", html.EscapeString(when))
	} else {
		color = "#e11d48"
		statusText = "NEEDS RESCHEDULING"
		body = fmt.Sprintf("Dr. %s has sent a message regarding your appointment request for %s.",
			html.EscapeString(doctorName), html.EscapeString(when))
		if doctorNote != "" {
			body += fmt.Sprintf("<br><br><strong>Doctor's Note:</strong> <em style='background:#fff1f2; padding:5px;'>%s</em>",
				html.EscapeString(doctorNote))
		}
	}

	return fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; border: 1px solid #eee; border-radius: 8px;">
		<div style="background-color: #0f172a; color: white; padding: 20px; text-align: center;">
			<h2 style="margin:0;">Appointment Update</h2>
		</div>
		<div style="padding: 30px;">
			<h3>Hello %s,</h3>
			<div style="background: #f8fafc; padding: 15px; border-radius: 6px; margin: 20px 0; border-left: 4px solid %s;">
				<p style="margin:0 0 10px 0; color: %s; font-weight: bold; font-size: 1.1em;">STATUS: %s</p>
				<p style="margin:0; line-height: 1.5;">%s</p>
			</div>
			<p style="color: #64748b; font-size: 0.9em;">Please log in to your dashboard to view more details or book a new slot.</p>
		</div>
	</div>`,
		html.EscapeString(patientName), color, color, statusText, body)
}
