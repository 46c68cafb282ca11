// Package services defines the business logic for wellbeing sessions: the
// questionnaire flow, the supportive chat, and the local ledger.
// This file centralizes service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import (
	"errors"

	"github.com/tbourn/go-wellbeing-backend/internal/session"
)

var (
	// ErrSessionNotFound indicates that the session id is unknown or expired.
	ErrSessionNotFound = errors.New("session not found")

	// ErrEmptyPrompt is returned for a chat message that is blank after trimming.
	ErrEmptyPrompt = session.ErrEmptyPrompt

	// ErrTooLong is returned when a chat message exceeds the configured limit.
	ErrTooLong = errors.New("message too long")

	// ErrReplyPending rejects a chat message while a reply is being generated.
	ErrReplyPending = session.ErrReplyPending

	// ErrEmptyName is returned by Register for a blank display name.
	ErrEmptyName = errors.New("name is empty")

	ErrInvalidQuestion = session.ErrInvalidQuestion
	ErrInvalidAnswer   = session.ErrInvalidAnswer

	// ErrIncompleteSurvey is returned when a submission lacks an answer in [1,5]
	// for any question.
	ErrIncompleteSurvey = errors.New("survey is incomplete")

	// ErrNoResult is returned when a session has not submitted a survey yet.
	ErrNoResult = errors.New("no survey result yet")

	ErrInvalidPage = session.ErrInvalidPage

	// ErrHistoryUnavailable is returned when no local ledger database is wired.
	ErrHistoryUnavailable = errors.New("survey history unavailable")
)

func sessionErr(err error) error {
	if errors.Is(err, session.ErrNotFound) {
		return ErrSessionNotFound
	}
	return err
}
