package domain

import (
	"fmt"
	"time"
)

// EventParticipant is the per-event snapshot of a participant's travel,
// document, and banking details. The same person may fly to one event and
// drive to the next, so these fields belong to the (event, participant)
// pair rather than to the participant. The pair is unique in the store;
// re-importing upserts instead of duplicating.
type EventParticipant struct {
	EventID       string `json:"event_id" validate:"required"`
	ParticipantID string `json:"participant_id" validate:"required"`

	Transportation Transport `json:"transportation" validate:"required"`
	TransportOther string    `json:"transport_other,omitempty"`
	TravelingFrom  string    `json:"traveling_from"`
	ReturningTo    string    `json:"returning_to"`

	TravelDocType       DocType    `json:"travel_doc_type" validate:"required"`
	TravelDocTypeOther  string     `json:"travel_doc_type_other,omitempty"`
	TravelDocNumber     string     `json:"travel_doc_number,omitempty"`
	TravelDocIssueDate  *time.Time `json:"travel_doc_issue_date,omitempty"`
	TravelDocExpiryDate *time.Time `json:"travel_doc_expiry_date,omitempty"`
	TravelDocIssuedBy   string     `json:"travel_doc_issued_by,omitempty"`

	BankName string    `json:"bank_name,omitempty"`
	IBAN     string    `json:"iban,omitempty"`
	IbanType *IbanType `json:"iban_type,omitempty"`
	SWIFT    string    `json:"swift,omitempty"`
}

// Key identifies the snapshot by its (event, participant) pair.
func (ep *EventParticipant) Key() string {
	return ep.EventID + "/" + ep.ParticipantID
}

// Validate enforces snapshot invariants: "Other" choices need their detail
// field, and document issue must not postdate expiry.
func (ep *EventParticipant) Validate() error {
	record := fmt.Sprintf("snapshot %q", ep.Key())
	if err := structErr(record, ep); err != nil {
		return err
	}
	if ep.Transportation == TransportOther && ep.TransportOther == "" {
		return &ValidationError{Record: record, Err: fmt.Errorf("transport_other required when transportation is %q", TransportOther)}
	}
	if ep.TravelDocType == DocOther && ep.TravelDocTypeOther == "" {
		return &ValidationError{Record: record, Err: fmt.Errorf("travel_doc_type_other required when travel_doc_type is %q", DocOther)}
	}
	if ep.TravelDocIssueDate != nil && ep.TravelDocExpiryDate != nil &&
		ep.TravelDocIssueDate.After(*ep.TravelDocExpiryDate) {
		return &ValidationError{Record: record, Err: fmt.Errorf("travel document issue date is after expiry date")}
	}
	return nil
}

// ToDoc serializes the snapshot, excluding absent optional fields.
func (ep *EventParticipant) ToDoc() Doc {
	doc := Doc{
		"event_id":        ep.EventID,
		"participant_id":  ep.ParticipantID,
		"transportation":  ep.Transportation.String(),
		"traveling_from":  ep.TravelingFrom,
		"returning_to":    ep.ReturningTo,
		"travel_doc_type": ep.TravelDocType.String(),
	}
	if ep.TransportOther != "" {
		doc["transport_other"] = ep.TransportOther
	}
	if ep.TravelDocTypeOther != "" {
		doc["travel_doc_type_other"] = ep.TravelDocTypeOther
	}
	if ep.TravelDocNumber != "" {
		doc["travel_doc_number"] = ep.TravelDocNumber
	}
	if ep.TravelDocIssueDate != nil {
		doc["travel_doc_issue_date"] = *ep.TravelDocIssueDate
	}
	if ep.TravelDocExpiryDate != nil {
		doc["travel_doc_expiry_date"] = *ep.TravelDocExpiryDate
	}
	if ep.TravelDocIssuedBy != "" {
		doc["travel_doc_issued_by"] = ep.TravelDocIssuedBy
	}
	if ep.BankName != "" {
		doc["bank_name"] = ep.BankName
	}
	if ep.IBAN != "" {
		doc["iban"] = ep.IBAN
	}
	if ep.IbanType != nil {
		doc["iban_type"] = ep.IbanType.String()
	}
	if ep.SWIFT != "" {
		doc["swift"] = ep.SWIFT
	}
	return doc
}

// EventParticipantFromDoc hydrates a snapshot from its stored document.
// The legacy "eid" key is accepted as an alias for "event_id".
func EventParticipantFromDoc(doc Doc) (*EventParticipant, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil snapshot document")
	}

	eventID := docString(doc, "event_id")
	if eventID == "" {
		eventID = docString(doc, "eid")
	}

	transport, _ := ParseTransport(docString(doc, "transportation"))
	docType, _ := ParseDocType(docString(doc, "travel_doc_type"))

	ep := &EventParticipant{
		EventID:            eventID,
		ParticipantID:      docString(doc, "participant_id"),
		Transportation:     transport,
		TransportOther:     docString(doc, "transport_other"),
		TravelingFrom:      docString(doc, "traveling_from"),
		ReturningTo:        docString(doc, "returning_to"),
		TravelDocType:      docType,
		TravelDocTypeOther: docString(doc, "travel_doc_type_other"),
		TravelDocNumber:    docString(doc, "travel_doc_number"),
		TravelDocIssuedBy:  docString(doc, "travel_doc_issued_by"),
		BankName:           docString(doc, "bank_name"),
		IBAN:               docString(doc, "iban"),
		SWIFT:              docString(doc, "swift"),
	}
	if t, ok := docTime(doc, "travel_doc_issue_date"); ok {
		ep.TravelDocIssueDate = &t
	}
	if t, ok := docTime(doc, "travel_doc_expiry_date"); ok {
		ep.TravelDocExpiryDate = &t
	}
	if it, ok := ParseIbanType(docString(doc, "iban_type")); ok {
		ep.IbanType = &it
	}
	if err := ep.Validate(); err != nil {
		return nil, err
	}
	return ep, nil
}
