package format

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var countPrinter = message.NewPrinter(language.English)

// GroupDigits inserts a comma between every group of three digits of a
// decimal string. A leading minus sign is preserved. Inputs of any length
// are accepted, which is why this works on the string form rather than on a
// machine integer.
func GroupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var sb strings.Builder
	sb.Grow(len(sign) + len(s) + len(s)/3)
	sb.WriteString(sign)
	head := len(s) % 3
	if head == 0 {
		head = 3
	}
	sb.WriteString(s[:head])
	for i := head; i < len(s); i += 3 {
		sb.WriteByte(',')
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}

// FormatCount renders a count with English thousands separators.
func FormatCount(n int) string {
	return countPrinter.Sprintf("%d", n)
}

// Truncate shortens a decimal string to at most maxDigits digits by keeping
// the leading and trailing halves around an ellipsis. The sign does not count
// toward the limit. maxDigits <= 0 disables truncation.
func Truncate(s string, maxDigits int) string {
	sign := ""
	digits := s
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if maxDigits <= 0 || len(digits) <= maxDigits {
		return s
	}
	head := (maxDigits + 1) / 2
	tail := maxDigits - head
	return sign + digits[:head] + "..." + digits[len(digits)-tail:]
}
