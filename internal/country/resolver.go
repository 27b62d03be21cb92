package country

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/normalize"
)

// Method names the matching strategy that produced a resolution.
type Method string

const (
	MethodExact      Method = "exact"
	MethodAlias      Method = "alias"
	MethodISO        Method = "iso"
	MethodNormalized Method = "normalized"
	MethodPrefix     Method = "prefix"
)

// Match is the result of resolving a free-text country value.
type Match struct {
	Country string // canonical display name
	Region  string
	Method  Method
}

var (
	nonAlnumRE   = regexp.MustCompile(`[^a-z0-9\s]`)
	multiSplitRE = regexp.MustCompile(`[;,]`)
)

// Normalize reduces a raw country value to its matching key: lowercase,
// accent-free, punctuation replaced by spaces, stopwords removed.
func Normalize(raw string) string {
	value := normalize.Fold(strings.TrimSpace(raw))
	value = nonAlnumRE.ReplaceAllString(value, " ")
	value = normalize.CollapseSpace(value)

	tokens := strings.Fields(value)
	kept := tokens[:0]
	for _, tok := range tokens {
		if !stopwords[tok] {
			kept = append(kept, tok)
		}
	}
	return strings.Join(kept, " ")
}

// Names returns every canonical country name in the reference table,
// sorted. Used to seed a fresh reference store.
func Names() []string {
	names := make([]string, 0, len(countries))
	for name := range countries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// namesNormalized indexes the canonical names by their normalized keys.
var namesNormalized = func() map[string]string {
	idx := make(map[string]string, len(countries))
	for name := range countries {
		idx[Normalize(name)] = name
	}
	return idx
}()

// Resolve maps an arbitrary country string to a canonical entry, walking
// the strategy ladder: exact display name, alias table (also checked with
// whitespace removed so "B. I. H." resolves), ISO codes, normalized name, and
// finally prefix shortcuts for adjectival forms. Returns nil when nothing
// matches; an unknown country is not an error at this level.
func Resolve(raw string) *Match {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	if region, ok := countries[strings.TrimSpace(raw)]; ok {
		return &Match{Country: strings.TrimSpace(raw), Region: region, Method: MethodExact}
	}

	q := Normalize(raw)
	if q == "" {
		return nil
	}

	if name, ok := aliases[q]; ok {
		return &Match{Country: name, Region: countries[name], Method: MethodAlias}
	}
	if name, ok := aliases[strings.ReplaceAll(q, " ", "")]; ok {
		return &Match{Country: name, Region: countries[name], Method: MethodAlias}
	}

	if name, ok := isoCodes[strings.ReplaceAll(q, " ", "")]; ok {
		return &Match{Country: name, Region: countries[name], Method: MethodISO}
	}

	if name, ok := namesNormalized[q]; ok {
		return &Match{Country: name, Region: countries[name], Method: MethodNormalized}
	}

	tokens := strings.Fields(q)
	if len(tokens) > 0 && len(tokens[0]) >= 3 {
		if name, ok := prefixShortcuts[tokens[0][:3]]; ok {
			return &Match{Country: name, Region: countries[name], Method: MethodPrefix}
		}
	}

	return nil
}

// TableLabel returns the canonical "Country, Region, World" label for a
// per-country roster table identifier.
func TableLabel(tableName string) (string, bool) {
	label, ok := TableMap[tableName]
	return label, ok
}

// LabelName strips the region suffix from a canonical table label:
// "Albania, Europe & Eurasia" → "Albania".
func LabelName(label string) string {
	if before, _, found := strings.Cut(label, ","); found {
		return strings.TrimSpace(before)
	}
	return strings.TrimSpace(label)
}

// invalidCitizenshipTokens are junk values people type into the
// citizenship column instead of leaving it blank.
var invalidCitizenshipTokens = map[string]bool{
	"": true, "no": true, "none": true, "n/a": true, "na": true,
	"i dont have": true, "i don't have": true, "dont have": true,
	"none declared": true,
}

// SplitMulti splits a multi-valued country cell on semicolons and commas,
// trimming whitespace and dropping junk tokens.
func SplitMulti(values []string) []string {
	var tokens []string
	for _, value := range values {
		for _, part := range multiSplitRE.Split(value, -1) {
			token := normalize.CollapseSpace(part)
			if token == "" || invalidCitizenshipTokens[strings.ToLower(token)] {
				continue
			}
			if !strings.ContainsFunc(token, isLetter) {
				continue
			}
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r > 127
}
