package etl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/domain"
	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/normalize"
)

// builders.go coerces the flat field maps of the custom-XML fallback path
// into validated domain objects. Records that fail validation are dropped
// by the caller, not fatal.

func buildEventFromRecord(rec map[string]string) (*domain.Event, error) {
	e := &domain.Event{
		EID:   rec["eid"],
		Title: rec["title"],
		Place: rec["place"],
	}
	if start, ok := normalize.Date(rec["start_date"]); ok {
		e.StartDate = start
	}
	if end, ok := normalize.Date(rec["end_date"]); ok {
		e.EndDate = end
	}
	e.Country = rec["country"]

	typ, err := domain.ParseEventType(rec["type"])
	if err != nil {
		typ = domain.EventTraining
	}
	e.Type = typ

	if raw := strings.TrimSpace(rec["cost"]); raw != "" {
		if cost, err := strconv.ParseFloat(raw, 64); err == nil {
			e.Cost = &cost
		}
	}

	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("custom XML event: %w", err)
	}
	return e, nil
}

func splitCodes(raw string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == ';' || r == ',' }) {
		if code := strings.TrimSpace(part); code != "" {
			out = append(out, code)
		}
	}
	return out
}

func buildParticipantFromRecord(rec map[string]string) (*domain.Participant, error) {
	p := &domain.Participant{
		PID:                 rec["pid"],
		Name:                rec["name"],
		Grade:               normalize.Grade(rec["grade"]),
		POB:                 rec["pob"],
		BirthCountry:        rec["birth_country"],
		RepresentingCountry: rec["representing_country"],
		Citizenships:        splitCodes(rec["citizenships"]),
		DietRestrictions:    rec["diet_restrictions"],
		Organization:        rec["organization"],
		Unit:                rec["unit"],
		Position:            rec["position"],
		Rank:                rec["rank"],
		BioShort:            rec["bio_short"],
	}

	if g, ok := normalize.Gender(rec["gender"]); ok {
		p.Gender = g
	}
	if dob, ok := normalize.Date(rec["dob"]); ok {
		p.DOB = &dob
	}
	if auth, ok := normalize.Bool(rec["intl_authority"]); ok {
		p.IntlAuthority = auth
	}
	if email := strings.TrimSpace(rec["email"]); email != "" {
		p.Email = &email
	}
	if phone, ok := normalize.Phone(rec["phone"]); ok {
		p.Phone = &phone
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("custom XML participant: %w", err)
	}
	return p, nil
}

func buildSnapshotFromRecord(rec map[string]string) (*domain.EventParticipant, error) {
	ep := &domain.EventParticipant{
		EventID:            rec["event_id"],
		ParticipantID:      rec["participant_id"],
		TransportOther:     rec["transport_other"],
		TravelingFrom:      rec["travelling_from"],
		ReturningTo:        rec["returning_to"],
		TravelDocTypeOther: rec["travel_doc_type_other"],
		TravelDocNumber:    rec["travel_doc_number"],
		TravelDocIssuedBy:  rec["travel_doc_issued_by"],
		BankName:           rec["bank_name"],
		IBAN:               rec["iban"],
		SWIFT:              rec["swift"],
	}

	if t, ok := domain.ParseTransport(rec["transportation"]); ok {
		ep.Transportation = t
	}
	if dt, ok := domain.ParseDocType(rec["travel_doc_type"]); ok {
		ep.TravelDocType = dt
	} else if dt, ok := normalize.DocTypeLoose(rec["travel_doc_type"]); ok {
		ep.TravelDocType = dt
	}
	if issue, ok := normalize.Date(rec["travel_doc_issue_date"]); ok {
		ep.TravelDocIssueDate = &issue
	}
	if expiry, ok := normalize.Date(rec["travel_doc_expiry_date"]); ok {
		ep.TravelDocExpiryDate = &expiry
	}
	if it, ok := domain.ParseIbanType(rec["iban_type"]); ok {
		ep.IbanType = &it
	}

	if err := ep.Validate(); err != nil {
		return nil, fmt.Errorf("custom XML snapshot: %w", err)
	}
	return ep, nil
}
