package assessment

import (
	"golang.org/x/text/language"

	"github.com/tbourn/go-wellbeing-backend/internal/domain"
)

// Locale is the language every user-facing string in this package is written in.
var Locale = language.Thai

// CrisisHotline is the national mental-health hotline shown with High results.
const CrisisHotline = "1323"

const crisisNotice = "หากมีอาการวิกฤต โปรดติดต่อสายด่วนสุขภาพจิต " + CrisisHotline + " ทันที"

var guidance = map[domain.RiskLevel]domain.Guidance{
	domain.RiskLow: {
		Title:  "ยอดเยี่ยม! สุขภาพจิตดีเยี่ยม",
		Advice: "คุณมีการจัดการอารมณ์ที่ดีและมีเครือข่ายสนับสนุนที่แข็งแกร่ง รักษาความสมดุลนี้ไว้ด้วยการออกกำลังกายสม่ำเสมอ การฝึกสติ (Mindfulness) และการพักผ่อนที่เพียงพอ",
	},
	domain.RiskMedium: {
		Title:  "ต้องใส่ใจเป็นพิเศษ",
		Advice: "คุณอาจกำลังเผชิญกับความเครียดบ้าง ลองจัดเวลาพักผ่อนให้มากขึ้น ฝึกเทคนิคการหายใจ การเขียนบันทึกความรู้สึก (Journaling) และอย่าลังเลที่จะพูดคุยกับเพื่อนหรือผู้เชี่ยวชาญหากรู้สึกแย่ลง",
	},
	domain.RiskHigh: {
		Title:   "ควรปรึกษาผู้เชี่ยวชาญ",
		Advice:  "คะแนนของคุณบ่งชี้ว่าคุณอาจต้องการความช่วยเหลือจากผู้เชี่ยวชาญด้านสุขภาพจิตอย่างเร่งด่วน กรุณาติดต่อสายด่วนสุขภาพจิตหรือผู้ให้บริการด้านสุขภาพเพื่อรับการประเมินและการสนับสนุนที่เหมาะสม",
		Hotline: crisisNotice,
	},
}

// GuidanceFor returns the advice for a tier. Unknown tiers get a neutral
// heading with no advice.
func GuidanceFor(level domain.RiskLevel) domain.Guidance {
	if g, ok := guidance[level]; ok {
		return g
	}
	return domain.Guidance{Title: "ผลการประเมิน"}
}
