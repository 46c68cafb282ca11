package domain

import (
	"time"

	"gorm.io/gorm"
)

// Participant is a registered display name in the local ledger. Lookups are
// keyed by Name; UserID records the client token that last used it.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - Name: NFC-normalized display name, unique.
//   - UserID: client-generated token of the latest registration.
//   - LastSeen: time of the latest CHECK_USER_OR_REGISTER call.
type Participant struct {
	ID        string         `json:"id"         gorm:"type:char(36);primaryKey"`
	Name      string         `json:"name"       gorm:"type:varchar(255);not null;uniqueIndex:ux_participant_name"`
	UserID    string         `json:"user_id"    gorm:"type:varchar(64);not null;index"`
	LastSeen  time.Time      `json:"last_seen"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"          gorm:"index"`
}

// TableName returns the database table name for Participant.
func (Participant) TableName() string { return "participants" }

// SurveyRecord is one SUBMIT_SURVEY row of the local ledger.
type SurveyRecord struct {
	ID          string    `json:"id"           gorm:"type:char(36);primaryKey"`
	UserID      string    `json:"user_id"      gorm:"type:varchar(64);not null;index:idx_user_surveys,priority:1"`
	UserName    string    `json:"user_name"    gorm:"type:varchar(255)"`
	AppID       string    `json:"app_id"       gorm:"type:varchar(128)"`
	Q1          int       `json:"q1"`
	Q2          int       `json:"q2"`
	Q3          int       `json:"q3"`
	Q4          int       `json:"q4"`
	Q5          int       `json:"q5"`
	TotalScore  int       `json:"total_score"`
	RiskLevel   RiskLevel `json:"risk_level"   gorm:"type:varchar(16);not null"`
	SubmittedAt time.Time `json:"submitted_at" gorm:"index:idx_user_surveys,priority:2"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the database table name for SurveyRecord.
func (SurveyRecord) TableName() string { return "survey_records" }

// Responses returns the stored ratings.
func (r SurveyRecord) Responses() SurveyResponses {
	return SurveyResponses{Q1: r.Q1, Q2: r.Q2, Q3: r.Q3, Q4: r.Q4, Q5: r.Q5}
}
