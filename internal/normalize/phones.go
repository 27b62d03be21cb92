package normalize

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var nonDigitRE = regexp.MustCompile(`\D`)

// Phone converts a raw phone cell to canonical "+digits" (E.164 style)
// form. The telephone-number grammar parser is tried first; when the input
// carries no usable country information the digit heuristic takes over:
// strip the international call prefix and plus sign, drop everything
// non-numeric, and accept 8–15 digits. Anything shorter or longer is
// absent.
func Phone(raw string) (string, bool) {
	return normalizePhone(raw, 8, 15)
}

// PhoneLegacy is the stricter acceptance window used by the one-off
// renormalization pass over already-persisted records, where anything but
// a full country-code number (11–12 digits) indicates a corrupt value.
func PhoneLegacy(raw string) (string, bool) {
	return normalizePhone(raw, 11, 12)
}

func normalizePhone(raw string, minDigits, maxDigits int) (string, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", false
	}

	if num, err := phonenumbers.Parse(text, ""); err == nil {
		if phonenumbers.IsPossibleNumber(num) {
			return phonenumbers.Format(num, phonenumbers.E164), true
		}
	}

	stripped := strings.TrimPrefix(text, "00")
	stripped = strings.TrimPrefix(stripped, "+")
	digits := nonDigitRE.ReplaceAllString(stripped, "")
	if len(digits) < minDigits || len(digits) > maxDigits {
		return "", false
	}
	return "+" + digits, true
}
