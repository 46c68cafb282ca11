// Package domain defines the value types shared by the scoring, conversation,
// and session layers, together with the persistence models mapped with GORM
// for the local ledger.
package domain

import "time"

// RiskLevel is the tier derived from a survey total.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Valid reports whether r is one of the three known tiers.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// Rating bounds for a single survey answer.
const (
	MinRating = 1
	MaxRating = 5
)

// QuestionIDs lists the survey fields in display order.
var QuestionIDs = [...]string{"q1", "q2", "q3", "q4", "q5"}

// SurveyResponses holds the five 1–5 ratings of one questionnaire. A zero
// value means the question has not been answered yet.
type SurveyResponses struct {
	Q1 int `json:"q1"`
	Q2 int `json:"q2"`
	Q3 int `json:"q3"`
	Q4 int `json:"q4"`
	Q5 int `json:"q5"`
}

// Values returns the ratings in question order.
func (r SurveyResponses) Values() [5]int {
	return [5]int{r.Q1, r.Q2, r.Q3, r.Q4, r.Q5}
}

// Get returns the rating stored for question id.
func (r SurveyResponses) Get(id string) (int, bool) {
	switch id {
	case "q1":
		return r.Q1, true
	case "q2":
		return r.Q2, true
	case "q3":
		return r.Q3, true
	case "q4":
		return r.Q4, true
	case "q5":
		return r.Q5, true
	}
	return 0, false
}

// With returns a copy of r with question id set to v. ok is false for an
// unknown question id, in which case r is returned unchanged.
func (r SurveyResponses) With(id string, v int) (out SurveyResponses, ok bool) {
	out = r
	switch id {
	case "q1":
		out.Q1 = v
	case "q2":
		out.Q2 = v
	case "q3":
		out.Q3 = v
	case "q4":
		out.Q4 = v
	case "q5":
		out.Q5 = v
	default:
		return r, false
	}
	return out, true
}

// Complete reports whether every rating lies in [MinRating, MaxRating].
func (r SurveyResponses) Complete() bool {
	for _, v := range r.Values() {
		if v < MinRating || v > MaxRating {
			return false
		}
	}
	return true
}

// SurveyResult is the immutable outcome of one submission.
type SurveyResult struct {
	TotalScore int       `json:"total_score" example:"18"`
	RiskLevel  RiskLevel `json:"risk_level"  example:"Medium"`
	Timestamp  time.Time `json:"timestamp"`
}

// Guidance is the static advice shown for a risk tier.
type Guidance struct {
	Title   string `json:"title"`
	Advice  string `json:"advice"`
	Hotline string `json:"hotline,omitempty"`
}

// Question is one entry of the questionnaire catalogue.
type Question struct {
	ID    string `json:"id"    example:"q1"`
	Order int    `json:"order" example:"1"`
	Text  string `json:"text"`
}
