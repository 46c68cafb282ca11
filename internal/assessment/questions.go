package assessment

import "github.com/tbourn/go-wellbeing-backend/internal/domain"

// Scale labels for the two ends of every rating.
const (
	ScaleMinLabel = "ไม่เคยเลย (1)"
	ScaleMaxLabel = "เป็นประจำ (5)"
)

var questions = []domain.Question{
	{ID: "q1", Order: 1, Text: "ในช่วง 2 สัปดาห์ที่ผ่านมา คุณรู้สึกเศร้าหรือหมดหวังบ่อยแค่ไหน"},
	{ID: "q2", Order: 2, Text: "ในช่วง 2 สัปดาห์ที่ผ่านมา คุณมีความสนใจหรือความสุขในการทำสิ่งต่างๆ น้อยลงหรือไม่"},
	{ID: "q3", Order: 3, Text: "ในช่วง 2 สัปดาห์ที่ผ่านมา คุณรู้สึกเหนื่อยล้าหรือไม่มีเรี่ยวแรงหรือไม่"},
	{ID: "q4", Order: 4, Text: "ในช่วง 2 สัปดาห์ที่ผ่านมา คุณมีความกังวลหรือรู้สึกกระวนกระวายใจบ่อยแค่ไหน"},
	{ID: "q5", Order: 5, Text: "ในช่วง 2 สัปดาห์ที่ผ่านมา คุณนอนหลับยากหรือนอนมากเกินไปหรือไม่"},
}

// Questions returns a copy of the questionnaire in display order.
func Questions() []domain.Question {
	out := make([]domain.Question, len(questions))
	copy(out, questions)
	return out
}

// IsQuestion reports whether id names a catalogue entry.
func IsQuestion(id string) bool {
	for _, q := range questions {
		if q.ID == id {
			return true
		}
	}
	return false
}
