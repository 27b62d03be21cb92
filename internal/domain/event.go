package domain

import (
	"fmt"
	"time"
)

// Event is a single training event imported from one workbook.
// EID is the business identifier (e.g. "PFE25M2"); the participant list
// holds PIDs in roster order.
type Event struct {
	EID          string     `json:"eid" validate:"required,min=3"`
	Title        string     `json:"title"`
	StartDate    time.Time  `json:"start_date" validate:"required"`
	EndDate      time.Time  `json:"end_date" validate:"required"`
	Place        string     `json:"place"`
	Country      string     `json:"country"` // host country CID, may be empty when A2 has no country part
	Type         EventType  `json:"type" validate:"required"`
	Cost         *float64   `json:"cost,omitempty"`
	Participants []string   `json:"participants"`
	Changes      AuditTrail `json:"changes,omitempty"`
}

// Validate enforces the event invariants: tag rules, start ≤ end, and a
// participant list free of blank identifiers.
func (e *Event) Validate() error {
	if err := structErr(fmt.Sprintf("event %q", e.EID), e); err != nil {
		return err
	}
	if e.StartDate.After(e.EndDate) {
		return &ValidationError{
			Record: fmt.Sprintf("event %q", e.EID),
			Err:    fmt.Errorf("start date %s is after end date %s", e.StartDate.Format("2006-01-02"), e.EndDate.Format("2006-01-02")),
		}
	}
	for _, pid := range e.Participants {
		if pid == "" {
			return &ValidationError{
				Record: fmt.Sprintf("event %q", e.EID),
				Err:    fmt.Errorf("participant list contains an empty id"),
			}
		}
	}
	return nil
}

// ApplyUpdate overwrites mutable fields from src and records each change in
// the audit trail. Identity (EID) never changes.
func (e *Event) ApplyUpdate(src *Event, at time.Time) {
	e.Changes = e.Changes.Record("title", e.Title, src.Title, at)
	e.Changes = e.Changes.Record("start_date", e.StartDate, src.StartDate, at)
	e.Changes = e.Changes.Record("end_date", e.EndDate, src.EndDate, at)
	e.Changes = e.Changes.Record("place", e.Place, src.Place, at)
	e.Changes = e.Changes.Record("country", e.Country, src.Country, at)
	e.Changes = e.Changes.Record("type", e.Type, src.Type, at)

	e.Title = src.Title
	e.StartDate = src.StartDate
	e.EndDate = src.EndDate
	e.Place = src.Place
	e.Country = src.Country
	e.Type = src.Type
	e.Cost = src.Cost
	e.Participants = append([]string(nil), src.Participants...)
}

// ToDoc serializes the event for persistence and preview payloads.
func (e *Event) ToDoc() Doc {
	doc := Doc{
		"eid":          e.EID,
		"title":        e.Title,
		"start_date":   e.StartDate,
		"end_date":     e.EndDate,
		"place":        e.Place,
		"type":         e.Type.String(),
		"participants": append([]string(nil), e.Participants...),
	}
	if e.Country != "" {
		doc["country"] = e.Country
	}
	if e.Cost != nil {
		doc["cost"] = *e.Cost
	}
	return doc
}

// EventFromDoc hydrates an Event from its stored document.
func EventFromDoc(doc Doc) (*Event, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil event document")
	}

	start, _ := docTime(doc, "start_date")
	end, _ := docTime(doc, "end_date")

	typ, err := ParseEventType(docString(doc, "type"))
	if err != nil {
		typ = EventOtherType
	}

	e := &Event{
		EID:          docString(doc, "eid"),
		Title:        docString(doc, "title"),
		StartDate:    start,
		EndDate:      end,
		Place:        docString(doc, "place"),
		Country:      docString(doc, "country"),
		Type:         typ,
		Participants: docStrings(doc, "participants"),
	}
	if cost, ok := docFloat(doc, "cost"); ok {
		e.Cost = &cost
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}
