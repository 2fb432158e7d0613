package utils

import (
	"errors"
	"os"
	"strings"
)

const defaultCountryPrefix = "+251"

var (
	ErrPhoneRequired  = errors.New("phone number is required")
	ErrPhoneMalformed = errors.New("phone number must contain digits only, at least 9, with an optional leading '+'")
)

// CountryPrefix returns the international prefix substituted for the
// leading 0 of local-format numbers.
func CountryPrefix() string {
	if prefix := os.Getenv("DEFAULT_COUNTRY_PREFIX"); prefix != "" {
		return prefix
	}
	return defaultCountryPrefix
}

// NormalizePhone validates a phone number and rewrites it to international
// form. After stripping one optional leading '+', the number must be
// all-digit and at least 9 digits long. Local numbers (leading 0 plus 9
// digits) have the 0 replaced by the country prefix; bare digit strings get
// the prefix prepended; numbers already starting with '+' are kept as-is.
func NormalizePhone(raw, countryPrefix string) (string, error) {
	phone := strings.TrimSpace(raw)
	if phone == "" {
		return "", ErrPhoneRequired
	}

	digits, hasPlus := strings.CutPrefix(phone, "+")
	if digits == "" || strings.ContainsFunc(digits, func(r rune) bool { return r < '0' || r > '9' }) {
		return "", ErrPhoneMalformed
	}
	if len(digits) < 9 {
		return "", ErrPhoneMalformed
	}

	switch {
	case hasPlus:
		return "+" + digits, nil
	case strings.HasPrefix(digits, "0") && len(digits) == 10:
		return countryPrefix + digits[1:], nil
	default:
		return countryPrefix + digits, nil
	}
}
