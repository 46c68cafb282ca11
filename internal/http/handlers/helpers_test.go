package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-wellbeing-backend/internal/conversation"
	"github.com/tbourn/go-wellbeing-backend/internal/http/middleware"
	"github.com/tbourn/go-wellbeing-backend/internal/ledger"
	"github.com/tbourn/go-wellbeing-backend/internal/repo"
	"github.com/tbourn/go-wellbeing-backend/internal/services"
	"github.com/tbourn/go-wellbeing-backend/internal/session"
)

var testNow = time.Date(2025, 3, 2, 2, 5, 0, 0, time.UTC)

func clock() time.Time { return testNow }

type stubCompleter struct {
	text  string
	err   error
	calls int
}

func (s *stubCompleter) Complete(context.Context, []conversation.Turn) (string, error) {
	s.calls++
	return s.text, s.err
}

type testEnv struct {
	db        *gorm.DB
	store     *session.Store
	completer *stubCompleter
	router    *gin.Engine
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newTestEnv wires real services over an in-memory database and the local
// ledger, mirroring the production router layout under /api/v1.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	store := session.NewStore(clock)
	local := &ledger.Local{DB: db, Now: clock}
	comp := &stubCompleter{text: "ลองพักผ่อนให้เพียงพอนะคะ"}

	assess := &services.AssessmentService{
		Sessions: store,
		Ledger:   local,
		Gate:     ledger.SaveGate{Enabled: true},
		AppID:    "test-app",
		DB:       db,
		IdemTTL:  time.Hour,
		Now:      clock,
	}
	conv := &services.ConversationService{Sessions: store, Completer: comp, MaxPromptRunes: 50}
	led := &services.LedgerService{DB: db, Local: local}

	h := New(assess, conv, led)
	r := gin.New()
	r.Use(middleware.RequestID())
	g := r.Group("/api/v1")
	g.POST("/sessions", h.CreateSession)
	s := g.Group("/sessions/:id")
	s.GET("", h.GetSession)
	s.POST("/register", h.Register)
	s.PUT("/answers/:question", h.Answer)
	s.PUT("/page", h.Navigate)
	s.POST("/surveys", middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, nil), h.SubmitSurvey)
	s.GET("/result", h.GetResult)
	s.PUT("/chat/open", h.SetChatOpen)
	s.GET("/chat/messages", h.ListChatMessages)
	s.POST("/chat/messages", h.SendChatMessage)
	g.POST("/assess", h.Assess)
	g.GET("/questions", h.ListQuestions)
	g.GET("/guidance/:level", h.GetGuidance)
	g.POST("/ledger", h.LedgerEndpoint)
	g.GET("/participants/:id/surveys", h.ListParticipantSurveys)

	return &testEnv{db: db, store: store, completer: comp, router: r}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	if buf.Len() > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) newSession(t *testing.T) SessionView {
	t.Helper()
	w := e.do(t, http.MethodPost, "/sessions", nil, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create session: %d %s", w.Code, w.Body.String())
	}
	var v SessionView
	decode(t, w, &v)
	return v
}

func (e *testEnv) answerAll(t *testing.T, id string, values [5]int) {
	t.Helper()
	for i, v := range values {
		w := e.do(t, http.MethodPut, fmt.Sprintf("/sessions/%s/answers/q%d", id, i+1), map[string]int{"value": v}, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("answer q%d: %d %s", i+1, w.Code, w.Body.String())
		}
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func wantError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status=%d want %d body=%s", w.Code, status, w.Body.String())
	}
	var er ErrorResponse
	decode(t, w, &er)
	if er.Code != code {
		t.Fatalf("code=%q want %q", er.Code, code)
	}
	if er.RequestID == "" {
		t.Fatalf("request id missing from error envelope")
	}
}
