package domain

// Role identifies the author of a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ChatMessage is a single transcript turn.
type ChatMessage struct {
	Role Role   `json:"role" example:"user"`
	Text string `json:"text" example:"ช่วงนี้นอนไม่ค่อยหลับ"`
}
