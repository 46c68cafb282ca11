// Package ledger talks to the spreadsheet-backed logging endpoint that
// records registrations and survey submissions.
//
// Two implementations share the Ledger contract: Remote posts JSON to an
// external endpoint (a Google Apps Script web app in production), and Local
// keeps the same records in the service's own database. Both are best-effort
// from the caller's point of view: errors become status strings, never faults.
package ledger

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/tbourn/go-wellbeing-backend/internal/domain"
)

// Action discriminates payloads sent to the endpoint.
type Action string

const (
	ActionCheckOrRegister Action = "CHECK_USER_OR_REGISTER"
	ActionSubmitSurvey    Action = "SUBMIT_SURVEY"
)

// Registration status discriminators returned by the endpoint.
const (
	StatusFound = "found"
	StatusNew   = "new"
)

// TimestampLayout is the ISO-8601 form used on the wire (millisecond
// precision, UTC "Z").
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Errors.
var (
	ErrUnknownAction = errors.New("unknown ledger action")
	ErrBadPayload    = errors.New("malformed ledger payload")
	ErrEmptyName     = errors.New("name is empty")
)

// RegistrationRequest looks up a display name and registers it when absent.
type RegistrationRequest struct {
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	Timestamp string `json:"timestamp"`
	Action    Action `json:"action"`
}

// RegistrationResponse is the endpoint's reply to a registration request.
// LastSeen is set only when Status is "found".
type RegistrationResponse struct {
	Status   string `json:"status"`
	Name     string `json:"name,omitempty"`
	LastSeen string `json:"lastSeen,omitempty"`
}

// SurveySubmission records one scored questionnaire.
type SurveySubmission struct {
	UserID     string                 `json:"userId"`
	Timestamp  string                 `json:"timestamp"`
	AppID      string                 `json:"appId"`
	Survey     domain.SurveyResponses `json:"survey"`
	TotalScore int                    `json:"totalScore"`
	RiskLevel  domain.RiskLevel       `json:"riskLevel"`
	UserName   string                 `json:"userName"`
	Action     Action                 `json:"action"`
}

// Ledger is the registration/logging collaborator.
type Ledger interface {
	// Name labels the backend in user-facing save messages.
	Name() string
	CheckOrRegister(ctx context.Context, req RegistrationRequest) (RegistrationResponse, error)
	SubmitSurvey(ctx context.Context, sub SurveySubmission) error
}

// NewRegistration builds a registration payload stamped at now.
func NewRegistration(userID, name string, now time.Time) RegistrationRequest {
	return RegistrationRequest{
		UserID:    userID,
		Name:      NormalizeName(name),
		Timestamp: FormatTimestamp(now),
		Action:    ActionCheckOrRegister,
	}
}

// NewSubmission builds a survey payload from a scored result.
func NewSubmission(userID, userName, appID string, responses domain.SurveyResponses, res domain.SurveyResult) SurveySubmission {
	return SurveySubmission{
		UserID:     userID,
		Timestamp:  FormatTimestamp(res.Timestamp),
		AppID:      appID,
		Survey:     responses,
		TotalScore: res.TotalScore,
		RiskLevel:  res.RiskLevel,
		UserName:   userName,
		Action:     ActionSubmitSurvey,
	}
}

// FormatTimestamp renders t in TimestampLayout (UTC).
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp accepts TimestampLayout and plain RFC 3339.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(TimestampLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

var spaceRE = regexp.MustCompile(`\s+`)

// NormalizeName trims, collapses internal whitespace, and applies Unicode NFC
// so that visually identical Thai names compare equal.
func NormalizeName(s string) string {
	s = spaceRE.ReplaceAllString(strings.TrimSpace(s), " ")
	return norm.NFC.String(s)
}
