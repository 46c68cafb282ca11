package ledger

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-wellbeing-backend/internal/domain"
	"github.com/tbourn/go-wellbeing-backend/internal/repo"
)

// Local implements Ledger on the service database.
type Local struct {
	DB  *gorm.DB
	Now func() time.Time
}

// NewLocal returns a Local ledger using db.
func NewLocal(db *gorm.DB) *Local {
	return &Local{DB: db, Now: time.Now}
}

// Name implements Ledger.
func (l *Local) Name() string { return "Local" }

// CheckOrRegister implements Ledger. A known name reports "found" with the
// previous last-seen time and is touched; an unknown name is registered and
// reports "new".
func (l *Local) CheckOrRegister(ctx context.Context, req RegistrationRequest) (RegistrationResponse, error) {
	name := NormalizeName(req.Name)
	if name == "" {
		return RegistrationResponse{}, ErrEmptyName
	}
	now := l.now()

	var out RegistrationResponse
	err := l.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := repo.GetParticipantByName(ctx, tx, name)
		switch {
		case errors.Is(err, repo.ErrNotFound):
			if _, err := repo.CreateParticipant(ctx, tx, name, req.UserID, now); err != nil {
				return err
			}
			out = RegistrationResponse{Status: StatusNew, Name: name}
			return nil
		case err != nil:
			return err
		}
		out = RegistrationResponse{
			Status:   StatusFound,
			Name:     p.Name,
			LastSeen: FormatTimestamp(p.LastSeen),
		}
		return repo.TouchParticipant(ctx, tx, p.ID, req.UserID, now)
	})
	if err != nil {
		return RegistrationResponse{}, err
	}
	return out, nil
}

// SubmitSurvey implements Ledger.
func (l *Local) SubmitSurvey(ctx context.Context, sub SurveySubmission) error {
	at, err := ParseTimestamp(sub.Timestamp)
	if err != nil {
		at = l.now()
	}
	rec := &domain.SurveyRecord{
		UserID:      sub.UserID,
		UserName:    sub.UserName,
		AppID:       sub.AppID,
		Q1:          sub.Survey.Q1,
		Q2:          sub.Survey.Q2,
		Q3:          sub.Survey.Q3,
		Q4:          sub.Survey.Q4,
		Q5:          sub.Survey.Q5,
		TotalScore:  sub.TotalScore,
		RiskLevel:   sub.RiskLevel,
		SubmittedAt: at.UTC(),
	}
	return repo.CreateSurveyRecord(ctx, l.DB, rec)
}

func (l *Local) now() time.Time {
	if l.Now != nil {
		return l.Now().UTC()
	}
	return time.Now().UTC()
}
