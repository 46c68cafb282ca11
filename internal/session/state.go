// Package session holds the per-visitor application state and the pure
// transitions that change it.
//
// State is a value. Reduce applies one Action to a State and returns the next
// State; it never mutates its input and performs no I/O. Store keeps the
// current State of every live session and applies actions atomically, which
// is where the single-reply-in-flight rule is enforced.
package session

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tbourn/go-wellbeing-backend/internal/domain"
)

// Page is the screen a session is on.
type Page string

const (
	PageHome      Page = "home"
	PageSurvey    Page = "survey"
	PageSurveyNew Page = "survey_new"
	PageResult    Page = "result"
)

// Valid reports whether p is a known page.
func (p Page) Valid() bool {
	switch p {
	case PageHome, PageSurvey, PageSurveyNew, PageResult:
		return true
	}
	return false
}

// UserIDPrefix marks client-style user tokens.
const UserIDPrefix = "gas-user-"

// State is the full application state of one session.
type State struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	UserName string    `json:"user_name,omitempty"`
	LastSeen time.Time `json:"last_seen"`

	Page     Page `json:"page"`
	ChatOpen bool `json:"chat_open"`
	// Generating is true while a completion reply is pending.
	Generating bool `json:"generating"`

	Responses domain.SurveyResponses `json:"responses"`
	Latest    *domain.SurveyResult   `json:"latest_result,omitempty"`

	LoginStatus string `json:"login_status,omitempty"`
	SaveStatus  string `json:"save_status,omitempty"`

	Transcript []domain.ChatMessage `json:"transcript"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New returns the initial state for a visitor created at now.
func New(now time.Time) State {
	now = now.UTC()
	return State{
		ID:         uuid.NewString(),
		UserID:     NewUserID(),
		Page:       PageHome,
		Transcript: []domain.ChatMessage{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// NewUserID returns a random "gas-user-" token with seven lowercase
// alphanumeric characters.
func NewUserID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return UserIDPrefix + raw[:7]
}

// HasTakenSurvey reports whether a result exists.
func (s State) HasTakenSurvey() bool { return s.Latest != nil }

// ShowsPreviousResult reports whether the survey page should offer the
// latest result instead of an empty form.
func (s State) ShowsPreviousResult() bool {
	return s.Page == PageSurvey && s.HasTakenSurvey()
}

// Clone returns a deep copy safe to hand to another goroutine.
func (s State) Clone() State {
	s.Transcript = slices.Clone(s.Transcript)
	if s.Transcript == nil {
		s.Transcript = []domain.ChatMessage{}
	}
	if s.Latest != nil {
		r := *s.Latest
		s.Latest = &r
	}
	return s
}
