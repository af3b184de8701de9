package utils

import (
	"strings"
	"unicode"
)

const (
	MinPhoneDigits = 10
	MaxPhoneDigits = 15
)

// PhoneNormalizer turns user-entered phone numbers into the international
// digit-only form the gateway expects.
type PhoneNormalizer struct {
	CountryCode string
	// MobilePrefixes are national mobile prefixes (without the trunk zero)
	// that are recognized once prefixed with CountryCode.
	MobilePrefixes []string
}

// DefaultPhoneNormalizer handles Malaysian numbers (60, mobile 10-19).
func DefaultPhoneNormalizer() PhoneNormalizer {
	return NewPhoneNormalizer("60")
}

func NewPhoneNormalizer(countryCode string) PhoneNormalizer {
	prefixes := make([]string, 0, 10)
	for d := '0'; d <= '9'; d++ {
		prefixes = append(prefixes, "1"+string(d))
	}
	return PhoneNormalizer{CountryCode: countryCode, MobilePrefixes: prefixes}
}

// Normalize returns the formatted number and whether its length is valid.
// Normalize is idempotent on its own output.
func (n PhoneNormalizer) Normalize(raw string) (string, bool) {
	digits := DigitsOnly(raw)

	switch {
	case strings.HasPrefix(digits, "0"):
		digits = n.CountryCode + digits[1:]
	case n.hasMobilePrefix(digits):
	case !strings.HasPrefix(digits, n.CountryCode) && len(digits) >= 9:
		digits = n.CountryCode + digits
	}

	return digits, ValidPhoneLength(digits)
}

// Suggestion explains why a normalized number was rejected.
func (n PhoneNormalizer) Suggestion(normalized string) string {
	switch {
	case len(normalized) < MinPhoneDigits:
		return "Phone number too short. Include the country code, e.g. " + n.CountryCode + "123456789"
	case len(normalized) > MaxPhoneDigits:
		return "Phone number too long. Check for extra digits"
	default:
		return ""
	}
}

func (n PhoneNormalizer) hasMobilePrefix(digits string) bool {
	for _, p := range n.MobilePrefixes {
		if strings.HasPrefix(digits, n.CountryCode+p) {
			return true
		}
	}
	return false
}

func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func ValidPhoneLength(digits string) bool {
	return len(digits) >= MinPhoneDigits && len(digits) <= MaxPhoneDigits
}
