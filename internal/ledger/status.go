package ledger

import (
	"fmt"
	"strings"
	"time"
)

// User-facing status strings.
const (
	MsgEmptyName       = "กรุณาใส่ชื่อของคุณเพื่อลงทะเบียน"
	MsgRegistering     = "กำลังตรวจสอบและลงทะเบียน..."
	MsgRegisterFailed  = "การลงทะเบียน/ตรวจสอบล้มเหลว: การเชื่อมต่อมีปัญหา"
	MsgSaveFailed      = "บันทึกข้อมูลล้มเหลว (การเชื่อมต่อล้มเหลว)"
	MsgSaveNotAllowed  = "บันทึกข้อมูลล้มเหลว: ปลายทางบันทึกข้อมูลไม่ถูกต้องหรือปิดการบันทึก"
	msgSaveOKFormat    = "บันทึกผลสำรวจสำเร็จ (%s)"
	msgWelcomeBack     = "ยินดีต้อนรับกลับ คุณ %s (ID: %s)! เข้าสู่ระบบล่าสุดเมื่อ %s"
	msgRegistered      = "ลงทะเบียนสำเร็จ: %s (ID: %s)"
	msgGenericSignedIn = "ลงทะเบียน/เข้าสู่ระบบสำเร็จ: %s"
)

// Outcome is the interpreted result of a registration call.
type Outcome struct {
	Message   string
	Returning bool
	// LastSeen is the last registration time to display: the stored value for
	// a returning user, otherwise the time of this call.
	LastSeen time.Time
}

// InterpretRegistration turns an endpoint reply into the status shown to the
// user. "found" counts only when the echoed name matches; any other
// discriminator, including none, is a generic success.
func InterpretRegistration(resp RegistrationResponse, name, userID string, now time.Time) Outcome {
	name = NormalizeName(name)
	switch {
	case resp.Status == StatusFound && NormalizeName(resp.Name) == name:
		seen, err := ParseTimestamp(resp.LastSeen)
		shown := strings.TrimSpace(resp.LastSeen)
		if err == nil {
			shown = FormatThaiDateTime(seen)
		} else {
			seen = now
		}
		return Outcome{
			Message:   fmt.Sprintf(msgWelcomeBack, name, userID, shown),
			LastSeen:  seen,
			Returning: true,
		}
	case resp.Status == StatusNew:
		return Outcome{Message: fmt.Sprintf(msgRegistered, name, userID), LastSeen: now}
	default:
		return Outcome{Message: fmt.Sprintf(msgGenericSignedIn, name), LastSeen: now}
	}
}

// SaveOK formats the success message for backend name.
func SaveOK(backend string) string { return fmt.Sprintf(msgSaveOKFormat, backend) }

// SaveGate decides whether survey submissions are sent at all.
type SaveGate struct {
	Enabled bool
	// URL is the configured endpoint; AllowedPrefix, when set, must prefix it.
	URL           string
	AllowedPrefix string
}

// Allows reports whether a submission may be sent.
func (g SaveGate) Allows() bool {
	if !g.Enabled {
		return false
	}
	p := strings.TrimSpace(g.AllowedPrefix)
	return p == "" || strings.HasPrefix(strings.TrimSpace(g.URL), p)
}

var thaiMonths = [...]string{
	"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
	"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

// bangkok is UTC+7 without DST; a fixed zone avoids depending on tzdata.
var bangkok = time.FixedZone("ICT", 7*60*60)

// FormatThaiDateTime renders t as "2 มีนาคม 2568 09:05" (Buddhist era,
// Bangkok time).
func FormatThaiDateTime(t time.Time) string {
	t = t.In(bangkok)
	return fmt.Sprintf("%d %s %d %02d:%02d",
		t.Day(), thaiMonths[t.Month()-1], t.Year()+543, t.Hour(), t.Minute())
}
