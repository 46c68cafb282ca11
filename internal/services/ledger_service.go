// Package services – LedgerService
//
// This file implements LedgerService, which lets the backend act as its own
// spreadsheet-compatible logging endpoint on top of ledger.Local, and serves
// a participant's survey history from the same tables.
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-wellbeing-backend/internal/domain"
	"github.com/tbourn/go-wellbeing-backend/internal/ledger"
	"github.com/tbourn/go-wellbeing-backend/internal/repo"
)

// LedgerService serves the local ledger.
type LedgerService struct {
	DB    *gorm.DB
	Local *ledger.Local
}

func (s *LedgerService) tracer() trace.Tracer {
	return otel.Tracer("services/LedgerService")
}

// Handle routes a raw endpoint body by its action and returns the reply.
func (s *LedgerService) Handle(ctx context.Context, body []byte) (any, error) {
	ctx, span := s.tracer().Start(ctx, "Handle")
	defer span.End()

	if s.Local == nil {
		return nil, ErrHistoryUnavailable
	}
	return ledger.Dispatch(ctx, s.Local, body)
}

// History returns a page of userID's survey records, newest first.
func (s *LedgerService) History(ctx context.Context, userID string, page, pageSize int) ([]domain.SurveyRecord, int64, error) {
	ctx, span := s.tracer().Start(ctx, "History",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if s.DB == nil {
		return nil, 0, ErrHistoryUnavailable
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountSurveyRecords(ctx, s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.SurveyRecord{}, 0, nil
	}
	items, err := repo.ListSurveyRecordsPage(ctx, s.DB, userID, offset, pageSize)
	return items, total, err
}

// Stats returns the record count and latest submission time for userID, for
// ETag generation.
func (s *LedgerService) Stats(ctx context.Context, userID string) (int64, *time.Time, error) {
	if s.DB == nil {
		return 0, nil, ErrHistoryUnavailable
	}
	return repo.SurveysStats(ctx, s.DB, userID)
}
