package dialog

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"mamafit-chatbot/internal/session"
)

// colorTokens is the fixed product color vocabulary, longest form first
// so โกโก้ is matched before its โกโก prefix.
var colorTokens = []string{"โกโก้", "โกโก", "ดำ", "ขาว", "ครีม", "ชมพู", "ฟ้า", "เทา", "กรม"}

// sizeTokens is tested longest-first so XXL is never read as XL or L.
var sizeTokens = []string{"XXL", "XL", "M", "L"}

var (
	colorQtyPatterns = buildColorQtyPatterns()
	digitsPattern    = regexp.MustCompile(`\d+`)
	waistPattern     = regexp.MustCompile(`(?:รอบเอว|เอว)\s*(\d+)`)
)

func buildColorQtyPatterns() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(colorTokens))
	for _, c := range colorTokens {
		// Matches both spaced and concatenated forms: "ดำ 2" and "ดำ2".
		out[c] = regexp.MustCompile(regexp.QuoteMeta(c) + `\s*(\d+)`)
	}
	return out
}

// ColorInfo is the result of color+quantity extraction.
type ColorInfo struct {
	Colors        []session.ColorQuantity
	TotalQuantity int
}

// ExtractColorQuantity pulls (color, quantity) pairs out of a message.
// Quantity-bearing matches win; with digits but no color token the first
// number becomes a bare total; with colors but no digits each distinct
// color counts as one, consuming matched spans so a long color form is
// not re-counted through its shorter prefix.
func ExtractColorQuantity(message string) ColorInfo {
	var info ColorInfo
	for _, color := range colorTokens {
		for _, m := range colorQtyPatterns[color].FindAllStringSubmatch(message, -1) {
			qty, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			info.Colors = append(info.Colors, session.ColorQuantity{Color: color, Quantity: qty})
			info.TotalQuantity += qty
		}
	}
	if info.TotalQuantity > 0 {
		return info
	}

	if !hasColorToken(message) {
		if num := digitsPattern.FindString(message); num != "" {
			qty, err := strconv.Atoi(num)
			if err == nil {
				info.TotalQuantity = qty
			}
		}
		return info
	}

	remaining := message
	for _, color := range colorTokens {
		idx := wholeWordIndex(remaining, color)
		if idx < 0 {
			idx = strings.Index(remaining, color)
		}
		if idx < 0 {
			continue
		}
		info.Colors = append(info.Colors, session.ColorQuantity{Color: color, Quantity: 1})
		remaining = remaining[:idx] + remaining[idx+len(color):]
	}
	info.TotalQuantity = len(info.Colors)
	return info
}

func hasColorToken(message string) bool {
	for _, color := range colorTokens {
		if strings.Contains(message, color) {
			return true
		}
	}
	return false
}

// countColorTokens counts distinct color tokens, consuming each matched
// span once.
func countColorTokens(message string) int {
	n := 0
	remaining := message
	for _, color := range colorTokens {
		idx := strings.Index(remaining, color)
		if idx < 0 {
			continue
		}
		n++
		remaining = remaining[:idx] + remaining[idx+len(color):]
	}
	return n
}

// wholeWordIndex finds token bounded by whitespace or message edges.
func wholeWordIndex(s, token string) int {
	for from := 0; from <= len(s)-len(token); {
		i := strings.Index(s[from:], token)
		if i < 0 {
			return -1
		}
		i += from
		before := i == 0
		if !before {
			r, _ := utf8.DecodeLastRuneInString(s[:i])
			before = unicode.IsSpace(r)
		}
		after := i+len(token) == len(s)
		if !after {
			r, _ := utf8.DecodeRuneInString(s[i+len(token):])
			after = unicode.IsSpace(r)
		}
		if before && after {
			return i
		}
		from = i + len(token)
	}
	return -1
}

// ExtractSize returns the size token found in the message, or "".
func ExtractSize(message string) string {
	upper := strings.ToUpper(message)
	for _, size := range sizeTokens {
		if strings.Contains(upper, size) {
			return size
		}
	}
	return ""
}

// HasSizeToken reports whether the message mentions any size.
func HasSizeToken(message string) bool {
	return ExtractSize(message) != ""
}

// ExtractWaist parses an explicit waist measurement ("เอว 38").
func ExtractWaist(message string) (int, bool) {
	m := waistPattern.FindStringSubmatch(message)
	if m == nil {
		return 0, false
	}
	waist, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return waist, true
}
