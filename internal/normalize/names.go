// Package normalize turns raw spreadsheet cell values into canonical
// representations: identity keys for person names, calendar dates (including
// spreadsheet serial numbers), E.164 phone numbers, and the small enums the
// workbooks carry as free text. Every function here is total: malformed
// input yields an absent value, never a panic or error.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// foldTransformer strips diacritics: canonical decomposition, drop the
// combining marks, recompose.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CollapseSpace trims the value and collapses internal whitespace runs
// (including non-breaking spaces and newlines) to single spaces.
func CollapseSpace(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return whitespaceRE.ReplaceAllString(strings.TrimSpace(s), " ")
}

// Fold returns a lowercase, diacritic-stripped version of s.
// "VUÇETAJ", "Vuçetaj", and "Vucetaj" all fold to "vucetaj".
func Fold(s string) string {
	if s == "" {
		return ""
	}
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// NameSplit is one candidate decomposition of a raw name.
type NameSplit struct {
	First  string
	Middle string
	Last   string
}

// Key builds the canonical lookup key "surname|given-names" for this split.
func (s NameSplit) Key() string {
	givens := s.First
	if s.Middle != "" {
		givens += " " + s.Middle
	}
	return NameKey(s.Last, givens)
}

// NameKey builds the canonical "last|first middle" identity key.
// Keys are matching artifacts only and are never persisted as identity.
func NameKey(last, firstMiddle string) string {
	return strings.TrimSpace(Fold(last) + "|" + Fold(firstMiddle))
}

// NameKeyFromRaw derives a single key from a display name in either
// "Last, First Middle" or "First Middle Last" form. Without a comma the
// final token is assumed to be the surname.
func NameKeyFromRaw(raw string) string {
	s := CollapseSpace(raw)
	if s == "" {
		return ""
	}
	var last, first string
	if before, after, found := strings.Cut(s, ","); found {
		last, first = strings.TrimSpace(before), strings.TrimSpace(after)
	} else {
		parts := strings.Fields(s)
		if len(parts) > 1 {
			last = parts[len(parts)-1]
			first = strings.Join(parts[:len(parts)-1], " ")
		} else {
			last = s
		}
	}
	return NameKey(last, first)
}

// SplitVariants yields the candidate (first, middle, last) decompositions
// of a raw name. A comma fixes the surname outright. Without one, surnames
// of 1, 2, and 3 trailing tokens are tried in that order so lookups against
// a table that assumed a different split length can still hit. A
// single-token name yields one trivial split with empty given names.
func SplitVariants(raw string) []NameSplit {
	s := CollapseSpace(raw)
	if s == "" {
		return nil
	}

	var tokens []string
	if before, after, found := strings.Cut(s, ","); found {
		tokens = append(strings.Fields(after), strings.Fields(before)...)
	} else {
		tokens = strings.Fields(s)
	}

	for i, tok := range tokens {
		tokens[i] = Fold(tok)
	}

	if len(tokens) == 1 {
		return []NameSplit{{First: tokens[0]}}
	}

	maxSurname := min(3, len(tokens)-1)
	variants := make([]NameSplit, 0, maxSurname)
	for n := 1; n <= maxSurname; n++ {
		givens := tokens[:len(tokens)-n]
		split := NameSplit{
			First: givens[0],
			Last:  strings.Join(tokens[len(tokens)-n:], " "),
		}
		if len(givens) > 1 {
			split.Middle = strings.Join(givens[1:], " ")
		}
		variants = append(variants, split)
	}
	return variants
}

// DisplayName reconstructs the "Given Middle SURNAME" display form used
// throughout the application. "Last, First" input is reordered first. A
// fully upper-case input is passed through unchanged since the surname can
// no longer be told apart from the given names.
func DisplayName(fullName string) string {
	name := CollapseSpace(fullName)
	if name == "" {
		return ""
	}

	if before, after, found := strings.Cut(name, ","); found {
		name = CollapseSpace(strings.TrimSpace(after) + " " + strings.TrimSpace(before))
	}

	if name == strings.ToUpper(name) {
		return name
	}

	parts := strings.Fields(name)
	if len(parts) <= 1 {
		return name
	}
	parts[len(parts)-1] = strings.ToUpper(parts[len(parts)-1])
	return strings.Join(parts, " ")
}
