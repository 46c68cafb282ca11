// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for survey records
// of the local ledger.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-wellbeing-backend/internal/domain"
)

// CreateSurveyRecord inserts rec, assigning an ID and SubmittedAt when unset.
func CreateSurveyRecord(ctx context.Context, db *gorm.DB, rec *domain.SurveyRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.SubmittedAt.IsZero() {
		rec.SubmittedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(rec).Error
}

// CountSurveyRecords returns the number of records stored for userID.
func CountSurveyRecords(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.SurveyRecord{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}

// ListSurveyRecordsPage returns a page of userID's records, newest first.
func ListSurveyRecordsPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.SurveyRecord, error) {
	var out []domain.SurveyRecord
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submitted_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
