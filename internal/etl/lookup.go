package etl

import (
	"context"
	"regexp"
	"time"

	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/country"
	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/domain"
	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/normalize"
	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/xlsx"
)

// ProfileEntry is one row of the detailed-profile table
// ("ParticipantsLista"), keyed by canonical name key.
type ProfileEntry struct {
	Position string
	Phone    string
	Email    string
}

// BuildProfileLookup indexes the profile table by name key. Header
// positions are found by partial match since this sheet drifts from the
// canonical header text more than the others.
func BuildProfileLookup(t *xlsx.Table) map[string]ProfileEntry {
	look := make(map[string]ProfileEntry)
	if t.Empty() {
		return look
	}

	nameCol := t.ColContains("name (")
	posCol := t.ColContains("position")
	phoneCol := t.ColContains("phone")
	emailCol := t.ColContains("email")
	if nameCol < 0 {
		return look
	}

	for i := range t.Rows {
		key := normalize.NameKeyFromRaw(t.Cell(i, nameCol))
		if key == "" || key == "|" {
			continue
		}
		phone, _ := normalize.Phone(t.Cell(i, phoneCol))
		look[key] = ProfileEntry{
			Position: t.Cell(i, posCol),
			Phone:    phone,
			Email:    t.Cell(i, emailCol),
		}
	}
	return look
}

// OnlineEntry is one row of the cross-country roster table
// ("ParticipantsList" on the MAIN ONLINE sheet), field-normalized at the
// ingestion boundary so only canonical values travel further.
type OnlineEntry struct {
	Name         string // display form
	Gender       domain.Gender
	DOB          *time.Time
	POB          string
	BirthCountry string // raw text, resolved by the merger
	Citizenships []string

	Email string
	Phone string

	TravelDocType     domain.DocType // empty when the cell was blank
	TravelDocNumber   string
	TravelDocIssue    *time.Time
	TravelDocExpiry   *time.Time
	TravelDocIssuedBy string

	Transportation string // declared raw value, canonicalized by the merger
	TransportOther string
	TravelingFrom  string
	ReturningTo    string

	DietRestrictions string
	Organization     string
	Unit             string
	Rank             string
	IntlAuthority    bool
	BioShort         string

	BankName string
	IBAN     string
	IbanType string
	SWIFT    string
}

var worldSuffixRE = regexp.MustCompile(`(?i),\s*world$`)

// BuildOnlineLookup indexes the cross-country roster by candidate name
// keys: "last|first middle" plus a "last|first" fallback when a middle
// name is present. The first row to claim a key wins. Free-text profile
// fields go through the best-effort translator.
func (p *Pipeline) BuildOnlineLookup(ctx context.Context, t *xlsx.Table) map[string]*OnlineEntry {
	look := make(map[string]*OnlineEntry)
	if t.Empty() {
		return look
	}

	col := func(header string) int { return t.Col(header) }

	for i := range t.Rows {
		first := t.Cell(i, col("Name"))
		middle := t.Cell(i, col("Middle name"))
		last := t.Cell(i, col("Last name"))
		if first == "" && last == "" {
			continue
		}

		firstMiddle := normalize.CollapseSpace(first + " " + middle)
		keys := []string{normalize.NameKey(last, firstMiddle)}
		if middle != "" && first != "" {
			keys = append(keys, normalize.NameKey(last, first))
		}

		entry := &OnlineEntry{
			Name:           normalize.DisplayName(normalize.CollapseSpace(first + " " + middle + " " + last)),
			POB:            t.Cell(i, col("Place Of Birth (POB)")),
			BirthCountry:   worldSuffixRE.ReplaceAllString(t.Cell(i, col("Country of Birth")), ""),
			Citizenships:   country.SplitMulti([]string{t.Cell(i, col("Citizenship(s)"))}),
			Email:          t.Cell(i, col("Email address")),
			Transportation: t.Cell(i, col("Transportation")),
			TransportOther: t.Cell(i, col("Transportation (Other)")),
			TravelingFrom:  t.Cell(i, col("Traveling from")),
			ReturningTo:    t.Cell(i, col("Returning to")),

			TravelDocNumber:   t.Cell(i, col("Traveling document number")),
			TravelDocIssuedBy: p.translate(ctx, t.Cell(i, col("Traveling document issued by"))),

			DietRestrictions: t.Cell(i, col("Diet restrictions")),
			Organization:     p.translate(ctx, t.Cell(i, col("Organization"))),
			Unit:             p.translate(ctx, t.Cell(i, col("Unit"))),
			Rank:             p.translate(ctx, t.Cell(i, col("Rank"))),
			BioShort:         p.translate(ctx, t.Cell(i, col("Short professional biography"))),

			BankName: t.Cell(i, col("Bank name")),
			IBAN:     t.Cell(i, col("IBAN")),
			IbanType: t.Cell(i, col("IBAN Type")),
			SWIFT:    t.Cell(i, col("SWIFT")),
		}
		if entry.Unit == "" {
			entry.Unit = p.translate(ctx, t.Cell(i, col("Unit Position")))
		}

		if g, ok := normalize.Gender(t.Cell(i, col("Gender"))); ok {
			entry.Gender = g
		}
		if dob, ok := normalize.Date(t.Cell(i, col("Date of Birth (DOB)"))); ok {
			entry.DOB = &dob
		}
		if phone, ok := normalize.Phone(t.Cell(i, col("Phone number"))); ok {
			entry.Phone = phone
		}
		if dt, ok := normalize.DocTypeLoose(t.Cell(i, col("Traveling document type"))); ok {
			entry.TravelDocType = dt
		}
		if issue, ok := normalize.Date(t.Cell(i, col("Traveling document issuance date"))); ok {
			entry.TravelDocIssue = &issue
		}
		if expiry, ok := normalize.Date(t.Cell(i, col("Traveling document expiration date"))); ok {
			entry.TravelDocExpiry = &expiry
		}
		if auth, ok := normalize.Bool(t.Cell(i, col("Authority"))); ok {
			entry.IntlAuthority = auth
		}

		for _, key := range keys {
			if key == "" || key == "|" {
				continue
			}
			if _, taken := look[key]; !taken {
				look[key] = entry
			}
		}
	}
	return look
}

// findByVariants walks a roster name's candidate surname splits, narrowest
// first, probing both the full "last|first middle" key and the "last|first"
// fallback against the index. Returns the zero value of V on a total miss.
func findByVariants[V any](index map[string]V, rawName string) (V, bool) {
	var zero V
	for _, split := range normalize.SplitVariants(rawName) {
		if entry, ok := index[split.Key()]; ok {
			return entry, true
		}
		if split.Middle != "" {
			if entry, ok := index[normalize.NameKey(split.Last, split.First)]; ok {
				return entry, true
			}
		}
	}
	return zero, false
}
