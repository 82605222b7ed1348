package dialog

import (
	"regexp"
	"strings"

	"mamafit-chatbot/internal/session"
)

// phonePatterns is an ordered list of label and digit-group formats;
// the first pattern to match wins. A capture group, when present, holds
// the number without its label.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)tel[.:]?\s*([0-9][0-9\- ]{8,})`),
	regexp.MustCompile(`โทร[.:]?\s*([0-9][0-9\- ]{8,})`),
	regexp.MustCompile(`\(0\d{1,2}\)\s*\d{3}[- ]?\d{3,4}`),
	regexp.MustCompile(`0\d{1,2}[- ]\d{3}[- ]\d{3,4}`),
	regexp.MustCompile(`0\d{8,9}`),
	regexp.MustCompile(`\d{10,11}`),
}

// addressKeywords is the extended Thai address vocabulary: administrative
// units, their abbreviations, building words, and explicit labels.
var addressKeywords = []string{
	"บ้านเลขที่", "หมู่บ้าน", "บ้าน", "ถนน", "ถ.", "ซอย", "ซ.",
	"ตำบล", "ต.", "แขวง", "อำเภอ", "อ.", "เขต", "จังหวัด", "จ.",
	"หมู่", "ม.", "คอนโด", "อพาร์ทเมนท์", "อาคาร", "ตึก", "ชั้น", "ห้อง",
	"รหัสไปรษณีย์", "ที่อยู่", "add:", "address",
}

// honorifics mark the start of a customer name.
var honorifics = []string{"นางสาว", "น.ส.", "นาง", "นาย", "คุณ", "ด.ญ.", "ด.ช."}

// labelWords are stripped from the extracted address text.
var labelWords = []string{"ที่อยู่", "Tel:", "Tel.", "tel:", "โทร:", "โทร.", "โทร", "Add:", "Address:", "Address"}

var (
	anyDigit     = regexp.MustCompile(`\d`)
	longDigitRun = regexp.MustCompile(`\d{3,}`)
	phoneShaped  = regexp.MustCompile(`^0[\d\- ]{8,}$`)
	nonDigit     = regexp.MustCompile(`\D`)
)

// ExtractAddress analyzes a message for the three shipping fields:
// phone, address and name. A complete result has all three present.
func ExtractAddress(message string) session.AddressInfo {
	var info session.AddressInfo

	var phoneSpan string
	for _, p := range phonePatterns {
		m := p.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		phoneSpan = m[0]
		raw := m[0]
		if len(m) > 1 && m[1] != "" {
			raw = m[1]
		}
		info.HasPhone = true
		info.Phone = nonDigit.ReplaceAllString(raw, "")
		break
	}

	lower := strings.ToLower(message)
	hasKeyword := false
	for _, kw := range addressKeywords {
		if strings.Contains(lower, kw) {
			hasKeyword = true
			break
		}
	}
	if hasKeyword && anyDigit.MatchString(message) {
		info.HasAddress = true
		addr := message
		if phoneSpan != "" {
			addr = strings.Replace(addr, phoneSpan, "", 1)
		}
		for _, label := range labelWords {
			addr = strings.ReplaceAll(addr, label, "")
		}
		info.Address = strings.TrimSpace(addr)
	}

	if name := extractName(message, phoneSpan); name != "" {
		info.HasName = true
		info.Name = name
	}
	return info
}

// extractName prefers an honorific plus the following token; without an
// honorific it takes up to two plausible name tokens from the first
// four words of the message.
func extractName(message, phoneSpan string) string {
	cleaned := message
	if phoneSpan != "" {
		cleaned = strings.Replace(cleaned, phoneSpan, "", 1)
	}
	fields := strings.Fields(cleaned)

	for i, tok := range fields {
		for _, h := range honorifics {
			if !strings.HasPrefix(tok, h) {
				continue
			}
			name := tok
			if i+1 < len(fields) {
				next := fields[i+1]
				if !isAddressToken(next) && !longDigitRun.MatchString(next) {
					name += " " + next
				}
			}
			return name
		}
	}

	limit := 4
	if len(fields) < limit {
		limit = len(fields)
	}
	var parts []string
	for _, tok := range fields[:limit] {
		if isAddressToken(tok) || longDigitRun.MatchString(tok) || phoneShaped.MatchString(tok) {
			continue
		}
		parts = append(parts, tok)
		if len(parts) == 2 {
			break
		}
	}
	return strings.Join(parts, " ")
}

func isAddressToken(tok string) bool {
	lower := strings.ToLower(tok)
	for _, kw := range addressKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
