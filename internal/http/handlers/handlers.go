// Package handlers implements the REST endpoints of the wellbeing API.
// Handlers validate input, call a service, and translate service errors
// into the ErrorResponse envelope. They never touch storage directly.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tbourn/go-wellbeing-backend/internal/domain"
	"github.com/tbourn/go-wellbeing-backend/internal/ledger"
	"github.com/tbourn/go-wellbeing-backend/internal/services"
	"github.com/tbourn/go-wellbeing-backend/internal/session"
	"github.com/tbourn/go-wellbeing-backend/internal/utils"
)

// AssessmentService drives the questionnaire flow of a session.
type AssessmentService interface {
	Create(ctx context.Context) session.State
	Get(ctx context.Context, id string) (session.State, error)
	Register(ctx context.Context, id, name string) (session.State, error)
	Answer(ctx context.Context, id, question string, value int) (session.State, error)
	Navigate(ctx context.Context, id string, page session.Page) (session.State, error)
	Submit(ctx context.Context, id, idemKey string, override *domain.SurveyResponses) (services.SubmitResult, error)
	Result(ctx context.Context, id string) (domain.SurveyResult, domain.Guidance, error)
	Assess(ctx context.Context, r domain.SurveyResponses) (domain.SurveyResult, domain.Guidance, error)
}

// ConversationService runs chat turns of a session.
type ConversationService interface {
	Send(ctx context.Context, id, text string) (session.State, error)
	Transcript(ctx context.Context, id string) ([]domain.ChatMessage, error)
	SetOpen(ctx context.Context, id string, open bool) (session.State, error)
}

// LedgerService serves the local spreadsheet-compatible endpoint.
type LedgerService interface {
	Handle(ctx context.Context, body []byte) (any, error)
	History(ctx context.Context, userID string, page, pageSize int) ([]domain.SurveyRecord, int64, error)
	Stats(ctx context.Context, userID string) (int64, *time.Time, error)
}

// Handlers groups the HTTP endpoints.
type Handlers struct {
	assessSvc AssessmentService
	convSvc   ConversationService
	ledgerSvc LedgerService
}

// New binds handlers to their services.
func New(assessSvc AssessmentService, convSvc ConversationService, ledgerSvc LedgerService) *Handlers {
	return &Handlers{assessSvc: assessSvc, convSvc: convSvc, ledgerSvc: ledgerSvc}
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int   `json:"page"        example:"1"`
	PageSize   int   `json:"page_size"   example:"20"`
	Total      int64 `json:"total"       example:"42"`
	TotalPages int   `json:"total_pages" example:"3"`
	HasNext    bool  `json:"has_next"    example:"true"`
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func pageFromQuery(c *gin.Context) (page, pageSize int) {
	return utils.PageParams(c.Query("page"), c.Query("page_size"), defaultPageSize, maxPageSize)
}

func newPagination(page, pageSize int, total int64) Pagination {
	tp := utils.TotalPages(total, pageSize)
	return Pagination{Page: page, PageSize: pageSize, Total: total, TotalPages: tp, HasNext: page < tp}
}

// sessionParam returns the :id parameter, failing the request with 400 when
// it is not a UUID.
func sessionParam(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "session id must be a UUID")
		return "", false
	}
	return id, true
}

// serviceError maps a service error onto the response envelope.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		fail(c, http.StatusNotFound, ErrCodeSessionNotFound, "session not found")
	case errors.Is(err, services.ErrEmptyName):
		fail(c, http.StatusBadRequest, ErrCodeEmptyName, ledger.MsgEmptyName)
	case errors.Is(err, services.ErrEmptyPrompt):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "text required")
	case errors.Is(err, services.ErrTooLong):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "text too long")
	case errors.Is(err, services.ErrInvalidQuestion):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "unknown question")
	case errors.Is(err, services.ErrInvalidAnswer):
		fail(c, http.StatusBadRequest, ErrCodeInvalidAnswer,
			fmt.Sprintf("value must be between %d and %d", domain.MinRating, domain.MaxRating))
	case errors.Is(err, services.ErrIncompleteSurvey):
		fail(c, http.StatusUnprocessableEntity, ErrCodeIncompleteSurvey, "all questions must be answered")
	case errors.Is(err, services.ErrNoResult):
		fail(c, http.StatusNotFound, ErrCodeNoResult, "no survey result yet")
	case errors.Is(err, services.ErrInvalidPage):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unknown page")
	case errors.Is(err, services.ErrReplyPending):
		fail(c, http.StatusConflict, ErrCodeReplyPending, "a reply is still being generated")
	case errors.Is(err, services.ErrHistoryUnavailable):
		fail(c, http.StatusServiceUnavailable, ErrCodeUnavailable, "local ledger is not enabled")
	case errors.Is(err, ledger.ErrBadPayload), errors.Is(err, ledger.ErrUnknownAction), errors.Is(err, ledger.ErrEmptyName):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
