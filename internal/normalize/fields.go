package normalize

import (
	"strconv"
	"strings"

	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/domain"
)

// Gender maps free-form gender cells to the Gender enum. Besides explicit
// male/female tokens it accepts courtesy titles, which is how the gender
// column is often filled in on the cross-country roster.
func Gender(raw string) (domain.Gender, bool) {
	text := strings.TrimSuffix(strings.ToLower(CollapseSpace(raw)), ".")
	switch text {
	case "m", "male", "man", "mr":
		return domain.GenderMale, true
	case "f", "female", "woman", "ms", "mrs":
		return domain.GenderFemale, true
	}
	return "", false
}

// DocTypeStrict applies the binary document rule used by the importer:
// the exact string "Passport" is a passport; everything else, including
// blank, is an ID card. No variants, no fuzzy logic.
func DocTypeStrict(raw string) domain.DocType {
	if strings.TrimSpace(raw) == "Passport" {
		return domain.DocPassport
	}
	return domain.DocIDCard
}

// DocTypeLoose classifies document text with partial matching, recognizing
// diplomatic and service passports. Blank input reports absent.
func DocTypeLoose(raw string) (domain.DocType, bool) {
	text := strings.ToLower(CollapseSpace(raw))
	if text == "" {
		return "", false
	}
	switch {
	case strings.Contains(text, "diplomatic"):
		return domain.DocDiplomaticPassport, true
	case strings.Contains(text, "service"):
		return domain.DocServicePassport, true
	case strings.Contains(text, "passport") || text == "pp":
		return domain.DocPassport, true
	case strings.Contains(text, "id"):
		return domain.DocIDCard, true
	}
	return domain.DocOther, true
}

// Bool coerces yes/no and true/false tokens, case-insensitively.
// Anything else is absent.
func Bool(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes":
		return true, true
	case "false", "no":
		return false, true
	}
	return false, false
}

// Grade coerces a grade cell to the tri-state Grade. Only 0, 1, and 2 are
// meaningful; everything else, including blank and the word "normal",
// falls back to GradeNormal.
func Grade(raw string) domain.Grade {
	text := strings.TrimSpace(raw)
	if text == "" {
		return domain.GradeNormal
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		if g, ok := domain.ParseGrade(int(f)); ok {
			return g
		}
	}
	return domain.GradeNormal
}
