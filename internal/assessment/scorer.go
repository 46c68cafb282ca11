// Package assessment reduces questionnaire answers to a total score and a
// risk tier, and holds the static catalogue and guidance that go with them.
//
// Everything here is pure: the only outside input is the submission time,
// which callers pass in explicitly.
package assessment

import (
	"time"

	"github.com/tbourn/go-wellbeing-backend/internal/domain"
)

// Tier thresholds, evaluated in order.
const (
	lowFloor   = 5
	lowCeil    = 10
	mediumCeil = 18
)

// Total sums the five ratings. Values are not validated.
func Total(r domain.SurveyResponses) int {
	sum := 0
	for _, v := range r.Values() {
		sum += v
	}
	return sum
}

// Classify maps a total to its risk tier.
//
// A total below 5 cannot come from five answered questions; it fails the Low
// floor and lands in Medium, which is kept as-is for unanswered submissions.
func Classify(total int) domain.RiskLevel {
	switch {
	case total >= lowFloor && total <= lowCeil:
		return domain.RiskLow
	case total <= mediumCeil:
		return domain.RiskMedium
	default:
		return domain.RiskHigh
	}
}

// Score produces the result of one submission taken at now.
func Score(r domain.SurveyResponses, now time.Time) domain.SurveyResult {
	total := Total(r)
	return domain.SurveyResult{
		TotalScore: total,
		RiskLevel:  Classify(total),
		Timestamp:  now.UTC(),
	}
}
