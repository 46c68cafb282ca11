// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for participants
// of the local ledger.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-wellbeing-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// GetParticipantByName fetches a participant by exact (normalized) name, or
// ErrNotFound.
func GetParticipantByName(ctx context.Context, db *gorm.DB, name string) (*domain.Participant, error) {
	var p domain.Participant
	err := db.WithContext(ctx).
		Where("name = ?", name).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateParticipant inserts a participant first seen at seen.
func CreateParticipant(ctx context.Context, db *gorm.DB, name, userID string, seen time.Time) (*domain.Participant, error) {
	p := &domain.Participant{
		ID:       uuid.NewString(),
		Name:     name,
		UserID:   userID,
		LastSeen: seen.UTC(),
	}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// TouchParticipant records a new visit: last_seen and the latest user token.
// Returns ErrNotFound when no row matches id.
func TouchParticipant(ctx context.Context, db *gorm.DB, id, userID string, seen time.Time) error {
	res := db.WithContext(ctx).
		Model(&domain.Participant{}).
		Where("id = ?", id).
		Updates(map[string]any{"last_seen": seen.UTC(), "user_id": userID})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
