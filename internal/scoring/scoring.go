// Package scoring derives the clinical-facing numbers shown to users: the
// canonical risk tier and the symptom/composite scores used in reports.
//
// DeriveRisk is the single source of truth for the risk tier. It is applied
// at record write time, in API serialization, and in report rendering; the
// tier stored on a ScreeningRecord is only a cache and may be stale.
package scoring

import (
	"strings"

	"github.com/respirex/respirex-backend/internal/models"
)

// QuestionnaireLength is the fixed expected number of yes/no questions. The
// symptom score always divides by this constant, even when the submitted
// mapping has a different size.
const QuestionnaireLength = 8

// QuestionKeys is the fixed symptom-question key set. Keys outside this set
// are ignored; missing keys count as not-yes.
var QuestionKeys = []string{"q1", "q2", "q3", "q4", "q5", "q6", "q7", "q8"}

// Answer is the tri-state reading of a questionnaire entry.
type Answer int

const (
	AnswerUnknown Answer = iota
	AnswerNo
	AnswerYes
)

// ParseAnswer interprets a raw symptom value. Only string values are
// considered; anything that is not a case-insensitive yes/no is unknown.
func ParseAnswer(v interface{}) Answer {
	s, ok := v.(string)
	if !ok {
		return AnswerUnknown
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes":
		return AnswerYes
	case "no":
		return AnswerNo
	}
	return AnswerUnknown
}

// DeriveRisk maps (result, confidence) to a risk tier.
// Negative results are always Low. For positives: High above 80, Medium for
// 50 through 80 inclusive, Low below 50.
func DeriveRisk(result models.ResultLabel, confidence float64) models.RiskTier {
	if result != models.ResultPositive {
		return models.RiskLow
	}
	switch {
	case confidence > 80:
		return models.RiskHigh
	case confidence >= 50:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// SymptomScore converts a questionnaire mapping to a 0-100 severity index:
// yes-count over the fixed questionnaire length.
func SymptomScore(symptoms map[string]interface{}) float64 {
	if len(symptoms) == 0 {
		return 0
	}
	yes := 0
	for _, key := range QuestionKeys {
		if ParseAnswer(symptoms[key]) == AnswerYes {
			yes++
		}
	}
	return float64(yes) / QuestionnaireLength * 100
}

// CompositeScore averages model confidence with the symptom severity index.
func CompositeScore(confidence, symptomScore float64) float64 {
	return (confidence + symptomScore) / 2
}
