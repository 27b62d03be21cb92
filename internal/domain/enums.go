package domain

// enums.go defines the closed string-backed enumerations used across the
// import pipeline. Every enum has an explicit Parse function and serializes
// through String(); raw spreadsheet values are converted exactly once at the
// ingestion boundary and only canonical values travel through merge, match,
// and commit logic.

import (
	"fmt"
	"strings"
)

// Gender is the participant gender classification.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// ParseGender converts a stored value to a Gender.
// Returns false for anything that is not an exact canonical value.
func ParseGender(s string) (Gender, bool) {
	switch Gender(s) {
	case GenderMale, GenderFemale:
		return Gender(s), true
	}
	return "", false
}

func (g Gender) String() string { return string(g) }

// Transport is the transportation mode for an event trip.
type Transport string

const (
	TransportPOV      Transport = "Personal Vehicle (POV)"
	TransportGOV      Transport = "Government (Official) Vehicle (GOV)"
	TransportAirplane Transport = "Air (Airplane)"
	TransportOther    Transport = "Other"
)

// ParseTransport maps free-form transportation text to a Transport value.
// Exact canonical values are accepted as-is; common shorthand ("pov", "air",
// "plane") is folded in so that roster cells written by hand still classify.
func ParseTransport(s string) (Transport, bool) {
	switch Transport(s) {
	case TransportPOV, TransportGOV, TransportAirplane, TransportOther:
		return Transport(s), true
	}

	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pov", "personal vehicle", "car", "own car":
		return TransportPOV, true
	case "gov", "government vehicle", "official vehicle":
		return TransportGOV, true
	case "air", "airplane", "plane", "flight":
		return TransportAirplane, true
	case "other":
		return TransportOther, true
	}
	return "", false
}

func (t Transport) String() string { return string(t) }

// DocType is the travel document classification.
type DocType string

const (
	DocPassport           DocType = "Passport"
	DocIDCard             DocType = "ID Card"
	DocDiplomaticPassport DocType = "Diplomatic Passport"
	DocServicePassport    DocType = "Service Passport"
	DocOther              DocType = "Other"
)

// ParseDocType converts a stored value to a DocType.
func ParseDocType(s string) (DocType, bool) {
	switch DocType(s) {
	case DocPassport, DocIDCard, DocDiplomaticPassport, DocServicePassport, DocOther:
		return DocType(s), true
	}
	return "", false
}

func (d DocType) String() string { return string(d) }

// IbanType is the currency classification of a bank account.
type IbanType string

const (
	IbanEUR   IbanType = "EURO"
	IbanUSD   IbanType = "USD"
	IbanMulti IbanType = "Multi-Currency"
)

// ParseIbanType converts a stored value to an IbanType.
func ParseIbanType(s string) (IbanType, bool) {
	switch IbanType(s) {
	case IbanEUR, IbanUSD, IbanMulti:
		return IbanType(s), true
	}

	switch strings.ToLower(strings.TrimSpace(s)) {
	case "eur", "euro", "€":
		return IbanEUR, true
	case "usd", "dollar", "$":
		return IbanUSD, true
	case "multi", "multicurrency", "multi currency":
		return IbanMulti, true
	}
	return "", false
}

func (i IbanType) String() string { return string(i) }

// Grade is the tri-state participant assessment.
type Grade int

const (
	GradeBlackList Grade = 0
	GradeNormal    Grade = 1
	GradeExcellent Grade = 2
)

// ParseGrade validates an integer grade value.
func ParseGrade(n int) (Grade, bool) {
	switch Grade(n) {
	case GradeBlackList, GradeNormal, GradeExcellent:
		return Grade(n), true
	}
	return GradeNormal, false
}

func (g Grade) String() string {
	switch g {
	case GradeBlackList:
		return "Black List"
	case GradeExcellent:
		return "Excellent"
	default:
		return "Normal"
	}
}

// EventType is the event category.
type EventType string

const (
	EventTraining   EventType = "Training"
	EventWorkshop   EventType = "Workshop"
	EventConference EventType = "Conference"
	EventExercise   EventType = "Exercise"
	EventOtherType  EventType = "Other"
)

// ParseEventType converts a stored value to an EventType.
// Unknown non-empty values fall back to EventOtherType so that older
// workbooks with ad-hoc categories still import.
func ParseEventType(s string) (EventType, error) {
	switch EventType(s) {
	case EventTraining, EventWorkshop, EventConference, EventExercise, EventOtherType:
		return EventType(s), nil
	}
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("empty event type")
	}
	return EventOtherType, nil
}

func (e EventType) String() string { return string(e) }
