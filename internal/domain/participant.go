package domain

import (
	"fmt"
	"time"
)

// Participant is the persistent identity record for a person. The PID is
// allocated on first sighting and reused across events; per-event travel
// and banking details live in EventParticipant, not here.
//
// Display names are stored in "Given Middle SURNAME" form; country fields
// hold CID reference codes.
type Participant struct {
	PID                 string     `json:"pid" validate:"required,min=3"`
	Name                string     `json:"name" validate:"required"`
	Gender              Gender     `json:"gender" validate:"required"`
	Grade               Grade      `json:"grade"`
	DOB                 *time.Time `json:"dob,omitempty"`
	POB                 string     `json:"pob"`
	BirthCountry        string     `json:"birth_country"`
	RepresentingCountry string     `json:"representing_country" validate:"required,min=2,max=10"`
	Citizenships        []string   `json:"citizenships"`

	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone *string `json:"phone,omitempty"`

	DietRestrictions string     `json:"diet_restrictions"`
	Organization     string     `json:"organization"`
	Unit             string     `json:"unit"`
	Position         string     `json:"position"`
	Rank             string     `json:"rank"`
	IntlAuthority    bool       `json:"intl_authority"`
	BioShort         string     `json:"bio_short"`
	Changes          AuditTrail `json:"changes,omitempty"`
}

// Validate enforces participant invariants beyond tag rules: a known grade
// value and no duplicate citizenship codes.
func (p *Participant) Validate() error {
	record := fmt.Sprintf("participant %q", p.PID)
	if err := structErr(record, p); err != nil {
		return err
	}
	if _, ok := ParseGrade(int(p.Grade)); !ok {
		return &ValidationError{Record: record, Err: fmt.Errorf("grade %d out of range", p.Grade)}
	}
	seen := make(map[string]bool, len(p.Citizenships))
	for _, cid := range p.Citizenships {
		if cid == "" {
			return &ValidationError{Record: record, Err: fmt.Errorf("citizenship list contains an empty code")}
		}
		if seen[cid] {
			return &ValidationError{Record: record, Err: fmt.Errorf("duplicate citizenship %q", cid)}
		}
		seen[cid] = true
	}
	return nil
}

// ApplyUpdate copies the incoming record's fields onto the existing
// participant, recording every change. PID is identity and never moves.
// Empty incoming values do not clobber known data: a later workbook that
// omits a birth date must not erase one learned earlier.
func (p *Participant) ApplyUpdate(src *Participant, at time.Time) {
	setStr := func(field string, dst *string, val string) {
		if val == "" {
			return
		}
		p.Changes = p.Changes.Record(field, *dst, val, at)
		*dst = val
	}

	setStr("name", &p.Name, src.Name)
	setStr("pob", &p.POB, src.POB)
	setStr("birth_country", &p.BirthCountry, src.BirthCountry)
	setStr("representing_country", &p.RepresentingCountry, src.RepresentingCountry)
	setStr("diet_restrictions", &p.DietRestrictions, src.DietRestrictions)
	setStr("organization", &p.Organization, src.Organization)
	setStr("unit", &p.Unit, src.Unit)
	setStr("position", &p.Position, src.Position)
	setStr("rank", &p.Rank, src.Rank)
	setStr("bio_short", &p.BioShort, src.BioShort)

	if src.Gender != "" {
		p.Changes = p.Changes.Record("gender", p.Gender, src.Gender, at)
		p.Gender = src.Gender
	}
	p.Changes = p.Changes.Record("grade", p.Grade.String(), src.Grade.String(), at)
	p.Grade = src.Grade
	if src.DOB != nil {
		p.Changes = p.Changes.Record("dob", p.DOB, src.DOB, at)
		p.DOB = src.DOB
	}
	if len(src.Citizenships) > 0 {
		p.Citizenships = append([]string(nil), src.Citizenships...)
	}
	if src.Email != nil {
		p.Changes = p.Changes.Record("email", strOrEmpty(p.Email), *src.Email, at)
		p.Email = src.Email
	}
	if src.Phone != nil {
		p.Changes = p.Changes.Record("phone", strOrEmpty(p.Phone), *src.Phone, at)
		p.Phone = src.Phone
	}
	p.IntlAuthority = src.IntlAuthority
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ToDoc serializes the participant, excluding absent optional fields.
func (p *Participant) ToDoc() Doc {
	doc := Doc{
		"pid":                  p.PID,
		"name":                 p.Name,
		"gender":               p.Gender.String(),
		"grade":                int(p.Grade),
		"pob":                  p.POB,
		"birth_country":        p.BirthCountry,
		"representing_country": p.RepresentingCountry,
		"citizenships":         append([]string(nil), p.Citizenships...),
		"diet_restrictions":    p.DietRestrictions,
		"organization":         p.Organization,
		"unit":                 p.Unit,
		"position":             p.Position,
		"rank":                 p.Rank,
		"intl_authority":       p.IntlAuthority,
		"bio_short":            p.BioShort,
	}
	if p.DOB != nil {
		doc["dob"] = *p.DOB
	}
	if p.Email != nil {
		doc["email"] = *p.Email
	}
	if p.Phone != nil {
		doc["phone"] = *p.Phone
	}
	return doc
}

// ParticipantFromDoc hydrates a Participant from its stored document.
func ParticipantFromDoc(doc Doc) (*Participant, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil participant document")
	}

	gender, _ := ParseGender(docString(doc, "gender"))
	grade, _ := ParseGrade(docInt(doc, "grade", int(GradeNormal)))

	p := &Participant{
		PID:                 docString(doc, "pid"),
		Name:                docString(doc, "name"),
		Gender:              gender,
		Grade:               grade,
		POB:                 docString(doc, "pob"),
		BirthCountry:        docString(doc, "birth_country"),
		RepresentingCountry: docString(doc, "representing_country"),
		Citizenships:        docStrings(doc, "citizenships"),
		Email:               docStringPtr(doc, "email"),
		Phone:               docStringPtr(doc, "phone"),
		DietRestrictions:    docString(doc, "diet_restrictions"),
		Organization:        docString(doc, "organization"),
		Unit:                docString(doc, "unit"),
		Position:            docString(doc, "position"),
		Rank:                docString(doc, "rank"),
		IntlAuthority:       docBool(doc, "intl_authority"),
		BioShort:            docString(doc, "bio_short"),
	}
	if dob, ok := docTime(doc, "dob"); ok {
		p.DOB = &dob
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
