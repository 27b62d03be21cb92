package etl

import (
	"context"
	"time"

	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/domain"
	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/normalize"
)

// Attendee is the merged per-person view assembled from up to three
// sources: the authoritative per-country roster row, the detailed-profile
// table, and the cross-country roster. It is the unit of the preview
// payload and converts into a Participant plus an EventParticipant at
// commit time.
type Attendee struct {
	PID                 string // set when the identity matcher hit
	Name                string
	RepresentingCountry string // CID

	Transportation string
	TransportOther string
	TravelingFrom  string
	ReturningTo    string
	Grade          domain.Grade

	Position string
	Phone    string
	Email    string

	Gender       domain.Gender
	DOB          *time.Time
	POB          string
	BirthCountry string // CID
	Citizenships []string

	TravelDocType     domain.DocType
	TravelDocNumber   string
	TravelDocIssue    *time.Time
	TravelDocExpiry   *time.Time
	TravelDocIssuedBy string

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

// rosterRow is the per-country roster's contribution: the authoritative
// event-specific values for one person.
type rosterRow struct {
	RawName        string
	Transportation string
	TravelingFrom  string
	Grade          *domain.Grade
	// hasTravelColumn distinguishes "the roster left transportation blank"
	// from "this workbook's roster has no transportation column at all"; the
	// cross-country declared value is only trusted in the latter case.
	hasTravelColumn bool
}

func fillIfMissing(dst *string, src string) {
	if *dst == "" && src != "" {
		*dst = src
	}
}

// buildAttendee merges one roster row with its enrichment sources.
// Precedence: values present in the roster row win outright; absent fields
// fill from the profile table first, then the cross-country roster. Either
// or both enrichment sources may be nil, in which case a minimal record
// (name, country, roster fields) results.
func (p *Pipeline) buildAttendee(ctx context.Context, row rosterRow, countryCID string, profile *ProfileEntry, online *OnlineEntry) Attendee {
	ordered := row.RawName
	a := Attendee{
		Name:                normalize.DisplayName(ordered),
		RepresentingCountry: countryCID,
		Transportation:      row.Transportation,
		TravelingFrom:       row.TravelingFrom,
		Grade:               domain.GradeNormal,
	}
	if row.Grade != nil {
		a.Grade = *row.Grade
	}

	if profile != nil {
		a.Position = profile.Position
		a.Phone = profile.Phone
		a.Email = profile.Email
	}

	if online != nil {
		fillIfMissing(&a.Phone, online.Phone)
		fillIfMissing(&a.Email, online.Email)
		fillIfMissing(&a.TravelingFrom, online.TravelingFrom)
		if a.Transportation == "" && !row.hasTravelColumn {
			a.Transportation = online.Transportation
		}
		a.TransportOther = online.TransportOther
		a.ReturningTo = online.ReturningTo

		a.Gender = online.Gender
		a.DOB = online.DOB
		a.POB = online.POB
		a.Citizenships = p.resolveCitizenships(ctx, online.Citizenships)
		a.BirthCountry = p.resolveCID(ctx, online.BirthCountry)

		a.TravelDocType = online.TravelDocType
		a.TravelDocNumber = online.TravelDocNumber
		a.TravelDocIssue = online.TravelDocIssue
		a.TravelDocExpiry = online.TravelDocExpiry
		a.TravelDocIssuedBy = online.TravelDocIssuedBy

		a.DietRestrictions = online.DietRestrictions
		a.Organization = online.Organization
		a.Unit = online.Unit
		a.Rank = online.Rank
		a.IntlAuthority = online.IntlAuthority
		a.BioShort = online.BioShort

		a.BankName = online.BankName
		a.IBAN = online.IBAN
		a.IbanType = online.IbanType
		a.SWIFT = online.SWIFT
	}

	// A person whose birth country the roster never stated is assumed born
	// where they represent.
	if a.BirthCountry == "" {
		a.BirthCountry = countryCID
	}
	return a
}

// resolveCID maps free country text to a CID, or "" when unknown or blank.
func (p *Pipeline) resolveCID(ctx context.Context, raw string) string {
	if raw == "" {
		return ""
	}
	cid, err := p.Countries.CID(ctx, raw)
	if err != nil {
		p.Log.Warn("country resolution failed", "value", raw, "error", err)
		return ""
	}
	return cid
}

// resolveCitizenships converts citizenship tokens to de-duplicated CIDs,
// dropping tokens that resolve to nothing.
func (p *Pipeline) resolveCitizenships(ctx context.Context, tokens []string) []string {
	var out []string
	seen := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		cid := p.resolveCID(ctx, tok)
		if cid == "" || seen[cid] {
			continue
		}
		seen[cid] = true
		out = append(out, cid)
	}
	return out
}

// Participant converts the attendee into its identity record. The PID must
// already be assigned.
func (a *Attendee) Participant() *domain.Participant {
	p := &domain.Participant{
		PID:                 a.PID,
		Name:                a.Name,
		Gender:              a.Gender,
		Grade:               a.Grade,
		DOB:                 a.DOB,
		POB:                 a.POB,
		BirthCountry:        a.BirthCountry,
		RepresentingCountry: a.RepresentingCountry,
		Citizenships:        append([]string(nil), a.Citizenships...),
		DietRestrictions:    a.DietRestrictions,
		Organization:        a.Organization,
		Unit:                a.Unit,
		Position:            a.Position,
		Rank:                a.Rank,
		IntlAuthority:       a.IntlAuthority,
		BioShort:            a.BioShort,
	}
	if a.Email != "" {
		email := a.Email
		p.Email = &email
	}
	if a.Phone != "" {
		phone := a.Phone
		p.Phone = &phone
	}
	return p
}

// Snapshot converts the attendee's travel, document, and banking fields
// into the per-event record. Unclassifiable transportation text lands in
// the "Other" bucket with the raw value preserved as its detail.
func (a *Attendee) Snapshot(eventID string) *domain.EventParticipant {
	ep := &domain.EventParticipant{
		EventID:             eventID,
		ParticipantID:       a.PID,
		TransportOther:      a.TransportOther,
		TravelingFrom:       a.TravelingFrom,
		ReturningTo:         a.ReturningTo,
		TravelDocNumber:     a.TravelDocNumber,
		TravelDocIssueDate:  a.TravelDocIssue,
		TravelDocExpiryDate: a.TravelDocExpiry,
		TravelDocIssuedBy:   a.TravelDocIssuedBy,
		BankName:            a.BankName,
		IBAN:                a.IBAN,
		SWIFT:               a.SWIFT,
	}

	if t, ok := domain.ParseTransport(a.Transportation); ok {
		ep.Transportation = t
	} else {
		ep.Transportation = domain.TransportOther
		if ep.TransportOther == "" {
			if a.Transportation != "" {
				ep.TransportOther = a.Transportation
			} else {
				ep.TransportOther = "Unspecified"
			}
		}
	}

	if a.TravelDocType != "" {
		ep.TravelDocType = a.TravelDocType
	} else {
		ep.TravelDocType = normalize.DocTypeStrict("")
	}
	if ep.TravelDocType == domain.DocOther && ep.TravelDocTypeOther == "" {
		ep.TravelDocTypeOther = "Unspecified"
	}

	if it, ok := domain.ParseIbanType(a.IbanType); ok {
		ep.IbanType = &it
	}
	return ep
}
