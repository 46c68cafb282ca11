// Package services – ConversationService
//
// This file implements ConversationService, which runs one supportive chat
// turn for a session: it appends the user's message and marks a reply
// pending, forwards system instruction + transcript + new turn to the
// completion API, and folds whatever comes back into the transcript.
//
// Only one reply may be pending per session; a second message in the
// meantime is rejected with ErrReplyPending and leaves the transcript as it
// was. Completion failures are not errors: they become an assistant turn
// carrying a localized notice.
package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-wellbeing-backend/internal/conversation"
	"github.com/tbourn/go-wellbeing-backend/internal/domain"
	"github.com/tbourn/go-wellbeing-backend/internal/session"
)

// Completer performs a single non-streaming completion call.
type Completer interface {
	Complete(ctx context.Context, turns []conversation.Turn) (string, error)
}

// ConversationService coordinates chat turns of a session.
type ConversationService struct {
	Sessions  *session.Store
	Completer Completer

	// MaxPromptRunes caps a user message; <= 0 disables the check.
	MaxPromptRunes int
}

func (s *ConversationService) tracer() trace.Tracer {
	return otel.Tracer("services/ConversationService")
}

// Send runs one chat turn and returns the session after the reply has been
// folded in.
func (s *ConversationService) Send(ctx context.Context, id, text string) (session.State, error) {
	ctx, span := s.tracer().Start(ctx, "Send", trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	text = strings.TrimSpace(text)
	if text == "" {
		return session.State{}, ErrEmptyPrompt
	}
	if s.MaxPromptRunes > 0 && utf8.RuneCountInString(text) > s.MaxPromptRunes {
		return session.State{}, ErrTooLong
	}

	st, err := s.Sessions.Dispatch(id, session.ChatRequested{Text: text})
	if err != nil {
		return st, sessionErr(err)
	}

	// The transcript now ends with the user's turn; the request is built from
	// everything before it.
	prior := st.Transcript[:len(st.Transcript)-1]
	turns := conversation.BuildRequest(prior, text)
	span.SetAttributes(attribute.Int("turns", len(turns)))

	reply := s.complete(ctx, id, turns)
	if reply.Err != nil {
		span.RecordError(reply.Err)
		span.SetStatus(codes.Error, "completion failed")
	}

	st, err = s.Sessions.Dispatch(id, session.ChatReplied{Reply: reply})
	return st, sessionErr(err)
}

// Transcript returns the session's chat transcript.
func (s *ConversationService) Transcript(ctx context.Context, id string) ([]domain.ChatMessage, error) {
	_, span := s.tracer().Start(ctx, "Transcript", trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	st, err := s.Sessions.Get(id)
	if err != nil {
		return nil, sessionErr(err)
	}
	return st.Transcript, nil
}

// SetOpen opens or closes the chat panel; closing clears the transcript.
func (s *ConversationService) SetOpen(ctx context.Context, id string, open bool) (session.State, error) {
	_, span := s.tracer().Start(ctx, "SetOpen",
		trace.WithAttributes(
			attribute.String("session.id", id),
			attribute.Bool("open", open),
		),
	)
	defer span.End()

	st, err := s.Sessions.Dispatch(id, session.SetChatOpen{Open: open})
	return st, sessionErr(err)
}

func (s *ConversationService) complete(ctx context.Context, id string, turns []conversation.Turn) conversation.Reply {
	text, err := s.Completer.Complete(ctx, turns)
	switch {
	case err != nil:
		completionsTotal.WithLabelValues(outcomeError).Inc()
		log.Warn().Err(err).Str("session_id", id).Msg("completion failed")
	case strings.TrimSpace(text) == "":
		completionsTotal.WithLabelValues(outcomeEmpty).Inc()
	default:
		completionsTotal.WithLabelValues(outcomeOK).Inc()
	}
	return conversation.Reply{Text: text, Err: err}
}
