package validation

import (
	"strings"
)

// FormatCardNumber normalizes raw card input into space-separated groups of
// four digits, capped at 19 characters of formatted output.
func FormatCardNumber(value string) string {
	digits := keepDigits(value)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	formatted := b.String()
	if len(formatted) > 19 {
		formatted = formatted[:19]
	}
	return formatted
}

// FormatExpiry inserts the slash into MM/YY as the shopper types.
func FormatExpiry(value string) string {
	digits := keepDigits(value)
	if len(digits) >= 2 {
		tail := digits[2:]
		if len(tail) > 2 {
			tail = tail[:2]
		}
		return digits[:2] + "/" + tail
	}
	return digits
}

// FormatCVV keeps at most four digits.
func FormatCVV(value string) string {
	digits := keepDigits(value)
	if len(digits) > 4 {
		digits = digits[:4]
	}
	return digits
}

// FormatPhone normalizes a local number toward the international +92 form:
// a leading "92" gains the plus, a leading "03" is rewritten as "+923...".
func FormatPhone(value string) string {
	digits := keepDigits(value)
	switch {
	case strings.HasPrefix(digits, "92"):
		return "+" + digits
	case strings.HasPrefix(digits, "03"):
		return "+92" + digits[1:]
	}
	return digits
}

func keepDigits(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
