// Package validation holds the pure field-format predicates shared by the
// checkout and registration flows. Validators never error; the caller owns
// the human-readable message per field.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern  = regexp.MustCompile(`^\+92[0-9]{10}$`)
	digitsPattern = regexp.MustCompile(`^\d+$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)
	cvvPattern    = regexp.MustCompile(`^\d{3,4}$`)
)

// Email reports whether the value looks like an email address.
func Email(value string) bool {
	return emailPattern.MatchString(value)
}

// Phone reports whether the value is a +92 number with exactly ten digits
// after the country code. Spaces are stripped before matching.
func Phone(value string) bool {
	return phonePattern.MatchString(strings.ReplaceAll(value, " ", ""))
}

// CardNumber reports whether the value is 13-19 digits after stripping
// spaces. No checksum is applied; the gateway owns real card validation.
func CardNumber(value string) bool {
	cleaned := strings.ReplaceAll(value, " ", "")
	if len(cleaned) < 13 || len(cleaned) > 19 {
		return false
	}
	return digitsPattern.MatchString(cleaned)
}

// CVV reports whether the value is exactly 3 or 4 digits.
func CVV(value string) bool {
	return cvvPattern.MatchString(value)
}

// Expiry reports whether the value is MM/YY and not before the current
// month. The two-digit expiry year is compared against the current year mod
// 100, so a card "expiring" next century reads as valid; the ambiguity is
// known and deliberately kept.
func Expiry(value string, now time.Time) bool {
	match := expiryPattern.FindStringSubmatch(value)
	if match == nil {
		return false
	}

	expMonth, _ := strconv.Atoi(match[1])
	expYear, _ := strconv.Atoi(match[2])

	curYear := now.Year() % 100
	curMonth := int(now.Month())

	return expYear > curYear || (expYear == curYear && expMonth >= curMonth)
}
