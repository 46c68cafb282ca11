package session

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/tbourn/go-wellbeing-backend/internal/conversation"
	"github.com/tbourn/go-wellbeing-backend/internal/domain"
)

var (
	ErrReplyPending    = errors.New("a reply is already being generated")
	ErrEmptyPrompt     = errors.New("message is empty")
	ErrInvalidPage     = errors.New("invalid page")
	ErrInvalidQuestion = errors.New("invalid question")
	ErrInvalidAnswer   = errors.New("answer out of range")
	ErrNoPendingReply  = errors.New("no reply is pending")
)

// Action is a state transition request.
type Action interface {
	apply(s State) (State, error)
}

// Registering marks a registration call in flight.
type Registering struct {
	Name   string
	Status string
}

func (a Registering) apply(s State) (State, error) {
	s.UserName = strings.TrimSpace(a.Name)
	s.LoginStatus = a.Status
	return s, nil
}

// Registered records a completed registration and opens the survey.
type Registered struct {
	Name     string
	Status   string
	LastSeen time.Time
}

func (a Registered) apply(s State) (State, error) {
	s.UserName = a.Name
	s.LoginStatus = a.Status
	s.LastSeen = a.LastSeen.UTC()
	s.Page = PageSurvey
	return s, nil
}

// RegistrationFailed records a failed registration. The page is unchanged.
type RegistrationFailed struct{ Status string }

func (a RegistrationFailed) apply(s State) (State, error) {
	s.LoginStatus = a.Status
	return s, nil
}

// Answer sets one rating.
type Answer struct {
	Question string
	Value    int
}

func (a Answer) apply(s State) (State, error) {
	if a.Value < domain.MinRating || a.Value > domain.MaxRating {
		return s, ErrInvalidAnswer
	}
	next, ok := s.Responses.With(a.Question, a.Value)
	if !ok {
		return s, ErrInvalidQuestion
	}
	s.Responses = next
	return s, nil
}

// Submitted replaces the latest result and moves to the result page.
type Submitted struct {
	Responses domain.SurveyResponses
	Result    domain.SurveyResult
}

func (a Submitted) apply(s State) (State, error) {
	r := a.Result
	s.Responses = a.Responses
	s.Latest = &r
	s.Page = PageResult
	return s, nil
}

// SaveReported records the outcome of saving the latest result.
type SaveReported struct{ Status string }

func (a SaveReported) apply(s State) (State, error) {
	s.SaveStatus = a.Status
	return s, nil
}

// Navigate switches page.
type Navigate struct{ Page Page }

func (a Navigate) apply(s State) (State, error) {
	if !a.Page.Valid() {
		return s, ErrInvalidPage
	}
	s.Page = a.Page
	return s, nil
}

// SetChatOpen opens or closes the chat panel. Closing clears the transcript.
type SetChatOpen struct{ Open bool }

func (a SetChatOpen) apply(s State) (State, error) {
	s.ChatOpen = a.Open
	if !a.Open {
		s.Transcript = []domain.ChatMessage{}
	}
	return s, nil
}

// ChatRequested appends the user's turn and marks a reply pending. It is
// rejected, leaving the transcript untouched, while another reply is pending.
type ChatRequested struct{ Text string }

func (a ChatRequested) apply(s State) (State, error) {
	if s.Generating {
		return s, ErrReplyPending
	}
	text := strings.TrimSpace(a.Text)
	if text == "" {
		return s, ErrEmptyPrompt
	}
	s.Transcript = append(slices.Clip(s.Transcript), domain.ChatMessage{Role: domain.RoleUser, Text: text})
	s.Generating = true
	return s, nil
}

// ChatReplied folds a completion outcome into the transcript and clears the
// pending flag.
type ChatReplied struct{ Reply conversation.Reply }

func (a ChatReplied) apply(s State) (State, error) {
	if !s.Generating {
		return s, ErrNoPendingReply
	}
	s.Transcript = conversation.IngestReply(s.Transcript, a.Reply)
	s.Generating = false
	return s, nil
}

// Reduce applies a to s at now. On error the returned State equals s.
func Reduce(s State, a Action, now time.Time) (State, error) {
	next, err := a.apply(s)
	if err != nil {
		return s, err
	}
	next.UpdatedAt = now.UTC()
	return next, nil
}
