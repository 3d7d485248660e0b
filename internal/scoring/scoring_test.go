package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/respirex/respirex-backend/internal/models"
)

func TestDeriveRisk(t *testing.T) {
	tests := []struct {
		name       string
		result     models.ResultLabel
		confidence float64
		want       models.RiskTier
	}{
		{"negative high confidence", models.ResultNegative, 99.9, models.RiskLow},
		{"negative low confidence", models.ResultNegative, 10, models.RiskLow},
		{"positive above high threshold", models.ResultPositive, 80.01, models.RiskHigh},
		{"positive exactly 80 is medium", models.ResultPositive, 80, models.RiskMedium},
		{"positive exactly 50 is medium", models.ResultPositive, 50, models.RiskMedium},
		{"positive mid band", models.ResultPositive, 65, models.RiskMedium},
		{"positive just below 50", models.ResultPositive, 49.99, models.RiskLow},
		{"positive zero", models.ResultPositive, 0, models.RiskLow},
		{"positive full confidence", models.ResultPositive, 100, models.RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveRisk(tt.result, tt.confidence))
		})
	}
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  Answer
	}{
		{"lowercase yes", "yes", AnswerYes},
		{"uppercase yes", "YES", AnswerYes},
		{"mixed case with spaces", "  Yes ", AnswerYes},
		{"lowercase no", "no", AnswerNo},
		{"uppercase no", "NO", AnswerNo},
		{"empty string", "", AnswerUnknown},
		{"unrelated string", "maybe", AnswerUnknown},
		{"boolean true is not yes", true, AnswerUnknown},
		{"number", 1, AnswerUnknown},
		{"nil", nil, AnswerUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAnswer(tt.value))
		})
	}
}

func TestSymptomScore(t *testing.T) {
	tests := []struct {
		name     string
		symptoms map[string]interface{}
		want     float64
	}{
		{"nil map", nil, 0},
		{"empty map", map[string]interface{}{}, 0},
		{
			"all yes",
			map[string]interface{}{
				"q1": "yes", "q2": "yes", "q3": "yes", "q4": "yes",
				"q5": "yes", "q6": "yes", "q7": "yes", "q8": "yes",
			},
			100,
		},
		{
			"two yes out of eight",
			map[string]interface{}{"q1": "yes", "q2": "no", "q3": "yes"},
			25,
		},
		{
			"divisor stays fixed for partial submissions",
			map[string]interface{}{"q1": "yes"},
			12.5,
		},
		{
			"keys outside the question set are ignored",
			map[string]interface{}{"q1": "yes", "q99": "yes", "cough": "yes"},
			12.5,
		},
		{
			"non-string values do not count",
			map[string]interface{}{"q1": true, "q2": 1, "q3": "yes"},
			12.5,
		},
		{
			"all no",
			map[string]interface{}{
				"q1": "no", "q2": "no", "q3": "no", "q4": "no",
				"q5": "no", "q6": "no", "q7": "no", "q8": "no",
			},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SymptomScore(tt.symptoms), 1e-9)
		})
	}
}

func TestCompositeScore(t *testing.T) {
	assert.InDelta(t, 88.75, CompositeScore(90, 87.5), 1e-9)
	assert.InDelta(t, 0, CompositeScore(0, 0), 1e-9)
	assert.InDelta(t, 50, CompositeScore(100, 0), 1e-9)
}

func TestSymptomAndCompositeTogether(t *testing.T) {
	// Seven yes answers with 90% model confidence.
	symptoms := map[string]interface{}{
		"q1": "yes", "q2": "yes", "q3": "yes", "q4": "yes",
		"q5": "yes", "q6": "yes", "q7": "yes", "q8": "no",
	}
	score := SymptomScore(symptoms)
	assert.InDelta(t, 87.5, score, 1e-9)
	assert.InDelta(t, 88.75, CompositeScore(90, score), 1e-9)
}
