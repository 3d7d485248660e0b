package models

// Role is the closed set of profile roles. Behavior that branches on a role
// must switch over these constants, never raw strings.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RolePatient, RoleDoctor:
		return Role(s), true
	}
	return "", false
}

// ResultLabel is the binary classification outcome of a screening.
type ResultLabel string

const (
	ResultPositive ResultLabel = "Positive"
	ResultNegative ResultLabel = "Negative"
)

// RiskTier is the categorical severity derived from (result, confidence).
// Stored values are a cache; scoring.DeriveRisk is the source of truth.
type RiskTier string

const (
	RiskHigh   RiskTier = "High"
	RiskMedium RiskTier = "Medium"
	RiskLow    RiskTier = "Low"
)

// AppointmentStatus is the appointment lifecycle state.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(s) {
	case AppointmentPending, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled:
		return AppointmentStatus(s), true
	}
	return "", false
}
