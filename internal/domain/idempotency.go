package domain

import (
	"strings"
	"time"
)

// IdempotencyKey addresses a stored submission outcome. Scope is the session
// id the key was sent under, so the same key may be reused across sessions.
type IdempotencyKey struct {
	UserID string
	Scope  string
	Key    string
}

// Complete reports whether scope and key are both set.
func (k IdempotencyKey) Complete() bool {
	return strings.TrimSpace(k.Scope) != "" && strings.TrimSpace(k.Key) != ""
}

// Idempotency is the stored outcome of a survey submission. A retry carrying
// the same Idempotency-Key replays Response instead of scoring again.
type Idempotency struct {
	ID        string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	UserID    string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_submission_key,priority:1"`
	Scope     string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_submission_key,priority:2"`
	Key       string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_submission_key,priority:3"`
	Response  string    `gorm:"type:TEXT NOT NULL"`
	Status    int       `gorm:"type:INTEGER NOT NULL"`
	CreatedAt time.Time `gorm:"type:DATETIME NOT NULL;autoCreateTime"`
	ExpiresAt time.Time `gorm:"type:DATETIME NOT NULL;index"`
}

func (Idempotency) TableName() string { return "submission_keys" }

// Live reports whether the record still replays at now.
func (i Idempotency) Live(now time.Time) bool { return now.Before(i.ExpiresAt) }
