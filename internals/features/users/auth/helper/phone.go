package helper

import (
	"regexp"
	"strings"
)

// Ivorian numbers: 10 digits, optionally prefixed with +225.
var phoneRe = regexp.MustCompile(`^(\+225)?[0-9]{10}$`)

// NormalizePhone strips spaces, dots and dashes, then validates the
// result against the +225 format. The returned value always carries
// the +225 prefix.
func NormalizePhone(raw string) (string, bool) {
	cleaned := strings.NewReplacer(" ", "", ".", "", "-", "").Replace(strings.TrimSpace(raw))
	if !phoneRe.MatchString(cleaned) {
		return "", false
	}
	if !strings.HasPrefix(cleaned, "+225") {
		cleaned = "+225" + cleaned
	}
	return cleaned, true
}

// PhoneToEmail derives the synthetic login email from a normalized
// phone number. Accounts are keyed by phone, the email only exists to
// satisfy the unique identity column.
func PhoneToEmail(normalized string) string {
	return strings.TrimPrefix(normalized, "+") + "@monrepetiteur.local"
}
