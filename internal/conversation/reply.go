package conversation

import (
	"slices"
	"strings"

	"github.com/tbourn/go-wellbeing-backend/internal/domain"
)

// Localized notices appended in place of a model reply.
const (
	// FallbackNotice replaces an empty or missing completion.
	FallbackNotice = "ขออภัยค่ะ มีข้อผิดพลาดในการตอบกลับจาก AI"
	// errorNoticePrefix precedes the transport error detail.
	errorNoticePrefix = "เกิดข้อผิดพลาดในการเชื่อมต่อ"
)

// Reply is the outcome of one completion call: either the completion text
// (possibly empty) or the error that stopped it.
type Reply struct {
	Text string
	Err  error
}

// ErrorNotice formats the transcript entry for a failed call.
func ErrorNotice(err error) string {
	if err == nil {
		return errorNoticePrefix
	}
	return errorNoticePrefix + " (" + err.Error() + ")"
}

// ReplyText resolves what the assistant turn should say for r.
func ReplyText(r Reply) string {
	switch {
	case r.Err != nil:
		return ErrorNotice(r.Err)
	case strings.TrimSpace(r.Text) == "":
		return FallbackNotice
	default:
		return r.Text
	}
}

// IngestReply appends exactly one assistant message for r and returns the new
// transcript. The input slice is never written to.
func IngestReply(transcript []domain.ChatMessage, r Reply) []domain.ChatMessage {
	return append(slices.Clip(transcript), domain.ChatMessage{
		Role: domain.RoleAssistant,
		Text: ReplyText(r),
	})
}
