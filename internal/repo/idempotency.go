package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-wellbeing-backend/internal/domain"
)

// ErrDuplicate is returned when a submission key is already stored.
var ErrDuplicate = errors.New("duplicate")

// FindSubmissionKey returns the live record stored under k, or ErrNotFound.
func FindSubmissionKey(ctx context.Context, db *gorm.DB, k domain.IdempotencyKey, now time.Time) (*domain.Idempotency, error) {
	if !k.Complete() {
		return nil, ErrNotFound
	}
	var rec domain.Idempotency
	err := db.WithContext(ctx).
		Where("user_id = ? AND scope = ? AND key = ? AND expires_at > ?", k.UserID, k.Scope, k.Key, now).
		First(&rec).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, err
	}
	return &rec, nil
}

// SaveSubmissionKey stores response under k until now+ttl. A key that is
// already stored yields ErrDuplicate and leaves the first outcome in place.
func SaveSubmissionKey(ctx context.Context, db *gorm.DB, k domain.IdempotencyKey, response string, status int, now time.Time, ttl time.Duration) (*domain.Idempotency, error) {
	if !k.Complete() {
		return nil, errors.New("incomplete submission key")
	}
	now = now.UTC()
	rec := &domain.Idempotency{
		ID:        uuid.NewString(),
		UserID:    k.UserID,
		Scope:     k.Scope,
		Key:       k.Key,
		Response:  response,
		Status:    status,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return rec, nil
}

// PurgeSubmissionKeys deletes records that expired at or before now.
func PurgeSubmissionKeys(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&domain.Idempotency{})
	return res.RowsAffected, res.Error
}

// glebarez/sqlite reports UNIQUE failures as plain text.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") || strings.Contains(low, "constraint failed: unique")
}
