// Package conversation assembles the message sequence sent to the completion
// API and folds replies back into the session transcript.
//
// The forwarded sequence is always the system instruction, then the prior
// transcript with roles narrowed to user/assistant, then the new user turn.
// Nothing is reordered, deduplicated, or dropped.
package conversation

import (
	"github.com/tbourn/go-wellbeing-backend/internal/domain"
)

// Wire roles forwarded to the completion API.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// SystemInstruction sets persona and limits for the assistant: brief,
// empathetic, Thai only, no diagnosis, no financial advice, and escalation to
// professional hotlines for urgent cases.
const SystemInstruction = "คุณคือ AI Chatbot ผู้ให้การสนับสนุนด้านสุขภาพจิตที่เป็นมิตร มีความเห็นอกเห็นใจ และไม่ตัดสิน " +
	"บทบาทของคุณคือการให้ข้อมูล การให้กำลังใจ และเสนอเทคนิคการจัดการความเครียด/อารมณ์ในเบื้องต้นเท่านั้น " +
	"**คำตอบของคุณต้องสั้น กระชับ และตรงประเด็น ไม่เกิน 3-4 ประโยคหลัก** " +
	"ห้ามวินิจฉัยโรค ห้ามให้คำแนะนำทางการแพทย์ที่เฉพาะเจาะจง " +
	"**และห้ามตอบคำถามเกี่ยวกับความเสี่ยงด้านธุรกิจ การเงิน หรือการลงทุนใดๆ เด็ดขาด** " +
	"หากผู้ใช้ต้องการความช่วยเหลือเร่งด่วน ให้แนะนำพวกเขาให้ติดต่อผู้เชี่ยวชาญหรือสายด่วนสุขภาพจิตทันที. " +
	"ตอบเป็นภาษาไทยเท่านั้น"

// Turn is one entry of the forwarded sequence.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BuildRequest returns [system] + transcript + [user newUserText].
//
// newUserText must be non-empty after trimming; callers guard this before
// calling. The transcript is not modified.
func BuildRequest(transcript []domain.ChatMessage, newUserText string) []Turn {
	out := make([]Turn, 0, len(transcript)+2)
	out = append(out, Turn{Role: RoleSystem, Content: SystemInstruction})
	for _, m := range transcript {
		out = append(out, Turn{Role: wireRole(m.Role), Content: m.Text})
	}
	out = append(out, Turn{Role: RoleUser, Content: newUserText})
	return out
}

// wireRole narrows a transcript role to the two forwarded roles. Anything
// that is not assistant, including system, is sent as user.
func wireRole(r domain.Role) string {
	if r == domain.RoleAssistant {
		return RoleAssistant
	}
	return RoleUser
}
