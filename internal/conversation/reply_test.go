package conversation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbourn/go-wellbeing-backend/internal/domain"
)

func TestIngestReply_Outcomes(t *testing.T) {
	base := []domain.ChatMessage{{Role: domain.RoleUser, Text: "hi"}}

	cases := []struct {
		name  string
		reply Reply
		check func(t *testing.T, text string)
	}{
		{"completion", Reply{Text: "สวัสดีค่ะ"}, func(t *testing.T, text string) {
			assert.Equal(t, "สวัสดีค่ะ", text)
		}},
		{"empty completion", Reply{Text: "  "}, func(t *testing.T, text string) {
			assert.Equal(t, FallbackNotice, text)
		}},
		{"transport error", Reply{Err: errors.New("status 502")}, func(t *testing.T, text string) {
			assert.True(t, strings.HasPrefix(text, errorNoticePrefix))
			assert.Contains(t, text, "status 502")
		}},
		{"error wins over text", Reply{Text: "partial", Err: errors.New("boom")}, func(t *testing.T, text string) {
			assert.Contains(t, text, "boom")
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := IngestReply(base, tc.reply)
			require.Len(t, got, len(base)+1)
			assert.Equal(t, base[0], got[0])
			last := got[len(got)-1]
			assert.Equal(t, domain.RoleAssistant, last.Role)
			tc.check(t, last.Text)
		})
	}
}

func TestIngestReply_DoesNotAliasInput(t *testing.T) {
	backing := make([]domain.ChatMessage, 1, 8)
	backing[0] = domain.ChatMessage{Role: domain.RoleUser, Text: "q"}

	a := IngestReply(backing, Reply{Text: "a"})
	b := IngestReply(backing, Reply{Text: "b"})

	assert.Equal(t, "a", a[1].Text)
	assert.Equal(t, "b", b[1].Text)
	assert.Len(t, backing, 1)
}

func TestIngestReply_MonotonicLength(t *testing.T) {
	var tr []domain.ChatMessage
	for i := 0; i < 5; i++ {
		prev := len(tr)
		tr = IngestReply(tr, Reply{Err: errors.New("x")})
		assert.Equal(t, prev+1, len(tr))
	}
}

func TestErrorNotice_NilError(t *testing.T) {
	assert.Equal(t, errorNoticePrefix, ErrorNotice(nil))
}
