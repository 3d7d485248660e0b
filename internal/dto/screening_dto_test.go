package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"github.com/respirex/respirex-backend/internal/models"
)

func TestScreeningRecordResponseRecomputesRisk(t *testing.T) {
	age := 55
	rec := &models.ScreeningRecord{
		ID:        uuid.New(),
		PatientID: uuid.New(),
		Patient: models.Profile{
			FullName: "Jane Tester",
			Account:  models.Account{Email: "jane@example.com"},
			State:    "Lagos",
			City:     "Ikeja",
			Age:      &age,
			Gender:   "Female",
			Phone:    "+2348000000000",
		},
		XrayImageURL:    "https://cdn.example.com/xrays/a.png",
		Result:          models.ResultPositive,
		ConfidenceScore: 65,
		// Stale cached tier: 65% positive is Medium, not Low.
		RiskLevel: models.RiskLow,
		Symptoms:  datatypes.JSONMap{"q1": "yes"},
		CreatedAt: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
	}

	resp := NewScreeningRecordResponse(rec)
	assert.Equal(t, models.RiskMedium, resp.RiskLevel)
	assert.Equal(t, "Jane Tester", resp.PatientName)
	assert.Equal(t, "jane@example.com", resp.Email)
	assert.Equal(t, rec.CreatedAt, resp.DateTested)
}

func TestScreeningRecordResponseFallsBackToEmail(t *testing.T) {
	rec := &models.ScreeningRecord{
		Patient: models.Profile{
			Account: models.Account{Email: "anon@example.com"},
		},
		Result:          models.ResultNegative,
		ConfidenceScore: 85.5,
	}

	resp := NewScreeningRecordResponse(rec)
	assert.Equal(t, "anon@example.com", resp.PatientName)
	assert.Equal(t, models.RiskLow, resp.RiskLevel)
}

func TestNewScreeningRecordResponses(t *testing.T) {
	records := []models.ScreeningRecord{
		{Result: models.ResultPositive, ConfidenceScore: 95},
		{Result: models.ResultNegative, ConfidenceScore: 95},
	}

	out := NewScreeningRecordResponses(records)
	assert.Len(t, out, 2)
	assert.Equal(t, models.RiskHigh, out[0].RiskLevel)
	assert.Equal(t, models.RiskLow, out[1].RiskLevel)

	assert.NotNil(t, NewScreeningRecordResponses(nil))
	assert.Empty(t, NewScreeningRecordResponses(nil))
}
