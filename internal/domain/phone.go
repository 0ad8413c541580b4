package domain

import "strings"

// NormalizePhone canonicalizes an inbound phone number: digits only,
// leading zeros stripped, country code prepended unless already present.
// Returns an empty string when no digits survive.
func NormalizePhone(raw, countryCode string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := strings.TrimLeft(b.String(), "0")
	if digits == "" {
		return ""
	}

	if countryCode != "" && !strings.HasPrefix(digits, countryCode) {
		digits = countryCode + digits
	}

	return digits
}
