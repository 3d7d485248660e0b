package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/respirex/respirex-backend/internal/models"
	"github.com/respirex/respirex-backend/internal/scoring"
)

// ScreeningRecordResponse flattens a record with its patient context.
// RiskLevel is always recomputed from (result, confidence); the stored value
// is never served.
type ScreeningRecordResponse struct {
	ID              uuid.UUID          `json:"id"`
	PatientID       uuid.UUID          `json:"patient_id"`
	PatientName     string             `json:"patient_name"`
	Email           string             `json:"email"`
	State           string             `json:"state"`
	City            string             `json:"city"`
	Age             *int               `json:"age"`
	Gender          string             `json:"gender"`
	Phone           string             `json:"phone"`
	XrayImageURL    string             `json:"xray_image_url"`
	Result          models.ResultLabel `json:"result"`
	ConfidenceScore float64            `json:"confidence_score"`
	RiskLevel       models.RiskTier    `json:"risk_level"`
	Symptoms        datatypes.JSONMap  `json:"symptoms_data"`
	DateTested      time.Time          `json:"date_tested"`
}

func NewScreeningRecordResponse(rec *models.ScreeningRecord) ScreeningRecordResponse {
	return ScreeningRecordResponse{
		ID:              rec.ID,
		PatientID:       rec.PatientID,
		PatientName:     rec.Patient.DisplayName(),
		Email:           rec.Patient.Account.Email,
		State:           rec.Patient.State,
		City:            rec.Patient.City,
		Age:             rec.Patient.Age,
		Gender:          rec.Patient.Gender,
		Phone:           rec.Patient.Phone,
		XrayImageURL:    rec.XrayImageURL,
		Result:          rec.Result,
		ConfidenceScore: rec.ConfidenceScore,
		RiskLevel:       scoring.DeriveRisk(rec.Result, rec.ConfidenceScore),
		Symptoms:        rec.Symptoms,
		DateTested:      rec.CreatedAt,
	}
}

func NewScreeningRecordResponses(records []models.ScreeningRecord) []ScreeningRecordResponse {
	out := make([]ScreeningRecordResponse, 0, len(records))
	for i := range records {
		out = append(out, NewScreeningRecordResponse(&records[i]))
	}
	return out
}

type DashboardStats struct {
	Total    int `json:"total"`
	Positive int `json:"positive"`
	Negative int `json:"negative"`
}

type DashboardResponse struct {
	Stats   DashboardStats            `json:"stats"`
	Records []ScreeningRecordResponse `json:"records"`
}

type PublicStatsResponse struct {
	TotalScreenings int64 `json:"total_screenings"`
	Positive        int64 `json:"positive"`
	Negative        int64 `json:"negative"`
}
