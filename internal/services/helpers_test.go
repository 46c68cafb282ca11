package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-wellbeing-backend/internal/conversation"
	"github.com/tbourn/go-wellbeing-backend/internal/ledger"
	"github.com/tbourn/go-wellbeing-backend/internal/repo"
)

// ---------- test helpers ----------

func newSvcDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

var errBoom = errors.New("boom")

type fakeLedger struct {
	mu      sync.Mutex
	resp    ledger.RegistrationResponse
	regErr  error
	subErr  error
	regs    []ledger.RegistrationRequest
	submits []ledger.SurveySubmission
}

func (f *fakeLedger) Name() string { return "Fake" }

func (f *fakeLedger) CheckOrRegister(_ context.Context, req ledger.RegistrationRequest) (ledger.RegistrationResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regs = append(f.regs, req)
	return f.resp, f.regErr
}

func (f *fakeLedger) SubmitSurvey(_ context.Context, sub ledger.SurveySubmission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submits = append(f.submits, sub)
	return f.subErr
}

// fakeCompleter returns text/err and records the forwarded turns. When gate
// is non-nil it blocks until gate is closed.
type fakeCompleter struct {
	text    string
	err     error
	gate    chan struct{}
	started chan struct{}
	got     [][]conversation.Turn
	mu      sync.Mutex
}

func (f *fakeCompleter) Complete(_ context.Context, turns []conversation.Turn) (string, error) {
	f.mu.Lock()
	f.got = append(f.got, turns)
	f.mu.Unlock()
	if f.started != nil {
		close(f.started)
	}
	if f.gate != nil {
		<-f.gate
	}
	return f.text, f.err
}

var fixedNow = time.Date(2025, 3, 2, 2, 5, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }
