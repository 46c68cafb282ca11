// Package services – AssessmentService
//
// This file implements AssessmentService, which drives a session through the
// questionnaire: registration against the ledger, answering, scoring, saving
// the result, and navigation. Scoring itself is delegated to the pure
// assessment package and state changes go through session.Store.
//
// Ledger failures never surface as errors. They are logged and turned into
// the session's login/save status strings.
//
// Observability: all public methods are OpenTelemetry-instrumented.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-wellbeing-backend/internal/assessment"
	"github.com/tbourn/go-wellbeing-backend/internal/domain"
	"github.com/tbourn/go-wellbeing-backend/internal/ledger"
	"github.com/tbourn/go-wellbeing-backend/internal/repo"
	"github.com/tbourn/go-wellbeing-backend/internal/session"
)

// anonymousUser is sent when a session somehow lacks a user token.
const anonymousUser = "anonymous-gas"

// AssessmentService coordinates the questionnaire flow of a session.
type AssessmentService struct {
	Sessions *session.Store
	Ledger   ledger.Ledger
	Gate     ledger.SaveGate
	AppID    string

	// DB stores idempotency records for survey submission. Optional.
	DB      *gorm.DB
	IdemTTL time.Duration

	Now func() time.Time
}

// SubmitResult is the outcome of one survey submission.
type SubmitResult struct {
	Responses  domain.SurveyResponses `json:"responses"`
	Result     domain.SurveyResult    `json:"result"`
	Guidance   domain.Guidance        `json:"guidance"`
	SaveStatus string                 `json:"save_status"`

	// Replayed is set when the result was served from an idempotency record.
	Replayed bool `json:"-"`
}

func (s *AssessmentService) tracer() trace.Tracer {
	return otel.Tracer("services/AssessmentService")
}

func (s *AssessmentService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Create starts a new session.
func (s *AssessmentService) Create(ctx context.Context) session.State {
	_, span := s.tracer().Start(ctx, "Create")
	defer span.End()

	st := s.Sessions.Create()
	span.SetAttributes(attribute.String("session.id", st.ID))
	return st
}

// Get returns a snapshot of session id.
func (s *AssessmentService) Get(ctx context.Context, id string) (session.State, error) {
	_, span := s.tracer().Start(ctx, "Get", trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	st, err := s.Sessions.Get(id)
	return st, sessionErr(err)
}

// Register looks up or registers name with the ledger and moves the session
// to the survey page. A ledger failure leaves the page unchanged and is
// reported only through LoginStatus.
func (s *AssessmentService) Register(ctx context.Context, id, name string) (session.State, error) {
	ctx, span := s.tracer().Start(ctx, "Register", trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	name = ledger.NormalizeName(name)
	if name == "" {
		st, err := s.Sessions.Dispatch(id, session.RegistrationFailed{Status: ledger.MsgEmptyName})
		if err != nil {
			return st, sessionErr(err)
		}
		return st, ErrEmptyName
	}

	st, err := s.Sessions.Dispatch(id, session.Registering{Name: name, Status: ledger.MsgRegistering})
	if err != nil {
		return st, sessionErr(err)
	}

	now := s.now()
	resp, err := s.Ledger.CheckOrRegister(ctx, ledger.NewRegistration(st.UserID, name, now))
	if err != nil {
		ledgerCalls.WithLabelValues(string(ledger.ActionCheckOrRegister), outcomeError).Inc()
		log.Warn().Err(err).Str("session_id", id).Str("ledger", s.Ledger.Name()).Msg("registration failed")
		st, err = s.Sessions.Dispatch(id, session.RegistrationFailed{Status: ledger.MsgRegisterFailed})
		return st, sessionErr(err)
	}
	ledgerCalls.WithLabelValues(string(ledger.ActionCheckOrRegister), outcomeOK).Inc()

	out := ledger.InterpretRegistration(resp, name, st.UserID, now)
	span.SetAttributes(attribute.Bool("user.returning", out.Returning))
	st, err = s.Sessions.Dispatch(id, session.Registered{Name: name, Status: out.Message, LastSeen: out.LastSeen})
	return st, sessionErr(err)
}

// Answer sets one rating of the session's questionnaire.
func (s *AssessmentService) Answer(ctx context.Context, id, question string, value int) (session.State, error) {
	_, span := s.tracer().Start(ctx, "Answer",
		trace.WithAttributes(
			attribute.String("session.id", id),
			attribute.String("question", question),
		),
	)
	defer span.End()

	st, err := s.Sessions.Dispatch(id, session.Answer{Question: strings.ToLower(strings.TrimSpace(question)), Value: value})
	return st, sessionErr(err)
}

// Navigate switches the session's page.
func (s *AssessmentService) Navigate(ctx context.Context, id string, page session.Page) (session.State, error) {
	_, span := s.tracer().Start(ctx, "Navigate",
		trace.WithAttributes(
			attribute.String("session.id", id),
			attribute.String("page", string(page)),
		),
	)
	defer span.End()

	st, err := s.Sessions.Dispatch(id, session.Navigate{Page: page})
	return st, sessionErr(err)
}

// Assess scores a full response set without touching any session.
func (s *AssessmentService) Assess(ctx context.Context, r domain.SurveyResponses) (domain.SurveyResult, domain.Guidance, error) {
	_, span := s.tracer().Start(ctx, "Assess")
	defer span.End()

	if !r.Complete() {
		return domain.SurveyResult{}, domain.Guidance{}, ErrIncompleteSurvey
	}
	res := assessment.Score(r, s.now())
	span.SetAttributes(attribute.String("risk_level", string(res.RiskLevel)))
	return res, assessment.GuidanceFor(res.RiskLevel), nil
}

// Submit scores the session's responses (or override, when non-nil), stores
// the result as the session's latest, moves to the result page, and saves
// the submission to the ledger when the save gate allows it.
//
// With a non-empty idemKey and a configured DB, a repeated key within
// IdemTTL returns the stored outcome instead of scoring again.
func (s *AssessmentService) Submit(ctx context.Context, id, idemKey string, override *domain.SurveyResponses) (SubmitResult, error) {
	ctx, span := s.tracer().Start(ctx, "Submit", trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	st, err := s.Sessions.Get(id)
	if err != nil {
		return SubmitResult{}, sessionErr(err)
	}

	if prev, ok := s.replay(ctx, st, idemKey); ok {
		span.SetAttributes(attribute.Bool("idempotency.replay", true))
		return prev, nil
	}

	responses := st.Responses
	if override != nil {
		responses = *override
	}
	if !responses.Complete() {
		return SubmitResult{}, ErrIncompleteSurvey
	}

	res := assessment.Score(responses, s.now())
	if _, err := s.Sessions.Dispatch(id, session.Submitted{Responses: responses, Result: res}); err != nil {
		return SubmitResult{}, sessionErr(err)
	}
	surveysTotal.WithLabelValues(string(res.RiskLevel)).Inc()
	span.SetAttributes(
		attribute.Int("total_score", res.TotalScore),
		attribute.String("risk_level", string(res.RiskLevel)),
	)

	status := s.save(ctx, st, responses, res)
	if _, err := s.Sessions.Dispatch(id, session.SaveReported{Status: status}); err != nil {
		return SubmitResult{}, sessionErr(err)
	}

	out := SubmitResult{
		Responses:  responses,
		Result:     res,
		Guidance:   assessment.GuidanceFor(res.RiskLevel),
		SaveStatus: status,
	}
	s.remember(ctx, st, idemKey, out)
	return out, nil
}

// Result returns the session's latest result and its guidance.
func (s *AssessmentService) Result(ctx context.Context, id string) (domain.SurveyResult, domain.Guidance, error) {
	_, span := s.tracer().Start(ctx, "Result", trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	st, err := s.Sessions.Get(id)
	if err != nil {
		return domain.SurveyResult{}, domain.Guidance{}, sessionErr(err)
	}
	if st.Latest == nil {
		return domain.SurveyResult{}, domain.Guidance{}, ErrNoResult
	}
	return *st.Latest, assessment.GuidanceFor(st.Latest.RiskLevel), nil
}

// HasSubmission reports whether idemKey already produced a stored outcome
// for session id.
func (s *AssessmentService) HasSubmission(ctx context.Context, id, idemKey string, now time.Time) (bool, error) {
	if s.DB == nil || idemKey == "" {
		return false, nil
	}
	st, err := s.Sessions.Get(id)
	if err != nil {
		return false, nil
	}
	_, err = repo.FindSubmissionKey(ctx, s.DB, submissionKey(st, idemKey), now)
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *AssessmentService) save(ctx context.Context, st session.State, r domain.SurveyResponses, res domain.SurveyResult) string {
	action := string(ledger.ActionSubmitSurvey)
	if !s.Gate.Allows() {
		ledgerCalls.WithLabelValues(action, outcomeDisabled).Inc()
		return ledger.MsgSaveNotAllowed
	}

	userID := st.UserID
	if userID == "" {
		userID = anonymousUser
	}
	sub := ledger.NewSubmission(userID, st.UserName, s.AppID, r, res)
	if err := s.Ledger.SubmitSurvey(ctx, sub); err != nil {
		ledgerCalls.WithLabelValues(action, outcomeError).Inc()
		log.Warn().Err(err).Str("session_id", st.ID).Str("ledger", s.Ledger.Name()).Msg("survey save failed")
		return ledger.MsgSaveFailed
	}
	ledgerCalls.WithLabelValues(action, outcomeOK).Inc()
	return ledger.SaveOK(s.Ledger.Name())
}

func (s *AssessmentService) replay(ctx context.Context, st session.State, key string) (SubmitResult, bool) {
	if s.DB == nil || key == "" {
		return SubmitResult{}, false
	}
	rec, err := repo.FindSubmissionKey(ctx, s.DB, submissionKey(st, key), s.now())
	if err != nil {
		return SubmitResult{}, false
	}
	var out SubmitResult
	if err := json.Unmarshal([]byte(rec.Response), &out); err != nil {
		log.Warn().Err(err).Str("session_id", st.ID).Msg("unreadable idempotency record")
		return SubmitResult{}, false
	}
	out.Replayed = true
	return out, true
}

// remember stores out under key. Best effort.
func (s *AssessmentService) remember(ctx context.Context, st session.State, key string, out SubmitResult) {
	if s.DB == nil || key == "" {
		return
	}
	ttl := s.IdemTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	buf, err := json.Marshal(out)
	if err != nil {
		return
	}
	_, err = repo.SaveSubmissionKey(ctx, s.DB, submissionKey(st, key), string(buf), http.StatusCreated, s.now(), ttl)
	if err != nil && !errors.Is(err, repo.ErrDuplicate) {
		log.Warn().Err(err).Str("session_id", st.ID).Msg("store idempotency record")
	}
}

func submissionKey(st session.State, key string) domain.IdempotencyKey {
	return domain.IdempotencyKey{UserID: st.UserID, Scope: st.ID, Key: key}
}
