package session

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbourn/go-wellbeing-backend/internal/conversation"
	"github.com/tbourn/go-wellbeing-backend/internal/domain"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestNew_Defaults(t *testing.T) {
	s := New(t0)
	assert.NotEmpty(t, s.ID)
	assert.True(t, strings.HasPrefix(s.UserID, UserIDPrefix))
	assert.Len(t, s.UserID, len(UserIDPrefix)+7)
	assert.Equal(t, PageHome, s.Page)
	assert.NotNil(t, s.Transcript)
	assert.False(t, s.HasTakenSurvey())
}

func TestReduce_RegistrationFlow(t *testing.T) {
	s := New(t0)

	s, err := Reduce(s, Registering{Name: "  Mali ", Status: "checking"}, t0)
	require.NoError(t, err)
	assert.Equal(t, "Mali", s.UserName)
	assert.Equal(t, PageHome, s.Page)

	seen := t0.Add(-time.Hour)
	s, err = Reduce(s, Registered{Name: "Mali", Status: "welcome", LastSeen: seen}, t0)
	require.NoError(t, err)
	assert.Equal(t, PageSurvey, s.Page)
	assert.Equal(t, "welcome", s.LoginStatus)
	assert.True(t, s.LastSeen.Equal(seen))

	s2, err := Reduce(New(t0), RegistrationFailed{Status: "failed"}, t0)
	require.NoError(t, err)
	assert.Equal(t, PageHome, s2.Page)
	assert.Equal(t, "failed", s2.LoginStatus)
}

func TestReduce_Answer(t *testing.T) {
	s := New(t0)

	s, err := Reduce(s, Answer{Question: "q3", Value: 4}, t0)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Responses.Q3)

	_, err = Reduce(s, Answer{Question: "q9", Value: 4}, t0)
	assert.ErrorIs(t, err, ErrInvalidQuestion)

	got, err := Reduce(s, Answer{Question: "q1", Value: 6}, t0)
	assert.ErrorIs(t, err, ErrInvalidAnswer)
	assert.Equal(t, s, got)
}

func TestReduce_SubmittedSupersedes(t *testing.T) {
	s := New(t0)
	first := domain.SurveyResult{TotalScore: 5, RiskLevel: domain.RiskLow, Timestamp: t0}
	second := domain.SurveyResult{TotalScore: 25, RiskLevel: domain.RiskHigh, Timestamp: t0.Add(time.Minute)}

	s, _ = Reduce(s, Submitted{Result: first}, t0)
	assert.Equal(t, PageResult, s.Page)
	s, _ = Reduce(s, Navigate{Page: PageSurvey}, t0)
	assert.True(t, s.ShowsPreviousResult())
	s, _ = Reduce(s, Navigate{Page: PageSurveyNew}, t0)
	assert.False(t, s.ShowsPreviousResult())

	s, _ = Reduce(s, Submitted{Result: second}, t0)
	require.NotNil(t, s.Latest)
	assert.Equal(t, second, *s.Latest)
}

func TestReduce_NavigateInvalid(t *testing.T) {
	_, err := Reduce(New(t0), Navigate{Page: "settings"}, t0)
	assert.ErrorIs(t, err, ErrInvalidPage)
}

func TestReduce_ChatExclusivity(t *testing.T) {
	s := New(t0)

	s, err := Reduce(s, ChatRequested{Text: "  สวัสดี  "}, t0)
	require.NoError(t, err)
	assert.True(t, s.Generating)
	require.Len(t, s.Transcript, 1)
	assert.Equal(t, domain.ChatMessage{Role: domain.RoleUser, Text: "สวัสดี"}, s.Transcript[0])

	got, err := Reduce(s, ChatRequested{Text: "again"}, t0)
	assert.ErrorIs(t, err, ErrReplyPending)
	assert.Len(t, got.Transcript, 1)

	s, err = Reduce(s, ChatReplied{Reply: conversation.Reply{Text: "สวัสดีค่ะ"}}, t0)
	require.NoError(t, err)
	assert.False(t, s.Generating)
	require.Len(t, s.Transcript, 2)
	assert.Equal(t, domain.RoleAssistant, s.Transcript[1].Role)

	_, err = Reduce(s, ChatReplied{Reply: conversation.Reply{Err: errors.New("x")}}, t0)
	assert.ErrorIs(t, err, ErrNoPendingReply)
}

func TestReduce_EmptyPrompt(t *testing.T) {
	_, err := Reduce(New(t0), ChatRequested{Text: " \n\t"}, t0)
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestReduce_CloseChatResetsTranscript(t *testing.T) {
	s := New(t0)
	s, _ = Reduce(s, SetChatOpen{Open: true}, t0)
	s, _ = Reduce(s, ChatRequested{Text: "hi"}, t0)
	s, _ = Reduce(s, ChatReplied{Reply: conversation.Reply{Text: "hello"}}, t0)
	require.Len(t, s.Transcript, 2)

	s, _ = Reduce(s, SetChatOpen{Open: false}, t0)
	assert.False(t, s.ChatOpen)
	assert.Empty(t, s.Transcript)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := New(t0)
	s, _ = Reduce(s, ChatRequested{Text: "hi"}, t0)
	before := s.Clone()

	_, _ = Reduce(s, ChatReplied{Reply: conversation.Reply{Text: "hello"}}, t0.Add(time.Second))
	assert.Equal(t, before, s)
}
