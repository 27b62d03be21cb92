// Package etl turns one uploaded workbook into validated domain records:
// an event, its participants, and per-event snapshots. The flow is
// discover tables, extract and normalize rows, merge the three roster
// sources per person, match identities against the store, assemble a
// preview for human review, and finally commit. Parsing never writes;
// only Commit touches the repositories.
package etl

import (
	"sort"

	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/country"
)

// Sheet titles fixed by the workbook template.
const (
	SheetParticipants     = "Participants"
	SheetMainOnline       = "MAIN ONLINE"
	SheetParticipantsList = "Participants List"
	SheetCostOverview     = "COST Overview"
)

// Cross-cutting table names.
const (
	TableCrossRoster = "ParticipantsList"  // MAIN ONLINE sheet
	TableProfile     = "ParticipantsLista" // Participants List sheet
)

// costCell is the fixed location of the event's total cost figure.
const costCell = "B15"

// ExtraTables are non-country roster tables that may appear on the
// Participants sheet (institutions, facilitators, technical staff). They
// share the country-table column layout but are never required.
var ExtraTables = []string{"tableInst", "tableFac", "tblTech"}

// countryTableColumns maps the shared per-country roster headers to their
// target fields. Every country table uses this layout.
var countryTableColumns = map[string]string{
	"Name and Last Name":                  "name_full",
	"Expenses":                            "expenses",
	"Arrival date":                        "arrival_date",
	"Arrival time":                        "arrival_time",
	"Departure date":                      "departure_date",
	"Departure time":                      "departure_time",
	"Travel":                              "travel",
	"Traveling from":                      "traveling_from",
	"Grade (0 - BL, 1 - Pass, 2 - Excel)": "grade",
	"Notes":                               "notes",
}

// crossRosterColumns maps the MAIN ONLINE roster headers to target fields.
var crossRosterColumns = map[string]string{
	"No":                                   "row_no",
	"Country":                              "representing_country_raw",
	"Gender":                               "gender",
	"Name":                                 "first_name",
	"Middle name":                          "middle_name",
	"Last name":                            "last_name",
	"Date of Birth (DOB)":                  "dob",
	"Place Of Birth (POB)":                 "pob",
	"Country of Birth":                     "birth_country_raw",
	"Citizenship(s)":                       "citizenships_raw",
	"Phone number":                         "phone",
	"Email address":                        "email",
	"Traveling document type":              "travel_doc_type",
	"Traveling document number":            "travel_doc_number",
	"Traveling document issuance date":     "travel_doc_issue_date",
	"Traveling document expiration date":   "travel_doc_expiry_date",
	"Traveling document issued by":         "travel_doc_issued_by",
	"Transportation":                       "transportation",
	"Traveling from":                       "travelling_from",
	"Returning to":                         "returning_to",
	"Diet restrictions":                    "diet_restrictions",
	"Organization":                         "organization",
	"Unit Position":                        "unit_position",
	"Rank":                                 "rank",
	"Authority":                            "intl_authority",
	"Short professional biography":         "bio_short",
	"Bank name":                            "bank_name",
	"IBAN":                                 "iban",
	"IBAN Type":                            "iban_type",
	"SWIFT":                                "swift",
}

// profileColumns maps the Participants List detail-table headers.
var profileColumns = map[string]string{
	"No.":                        "row_no",
	"Name (LAST, First, Middle)": "name_lfm",
	"Position":                   "position",
	"Phone":                      "phone",
	"email":                      "email",
	"Country":                    "country_raw",
	"Name - Position":            "name_position",
}

// Mapping returns the header-to-field map for a (sheet, table) pair, the
// single structural source of truth. Unknown pairs yield an empty map.
func Mapping(sheet, table string) map[string]string {
	switch sheet {
	case SheetParticipants:
		if isCountryTable(table) || isExtraTable(table) {
			return countryTableColumns
		}
	case SheetMainOnline:
		if table == TableCrossRoster {
			return crossRosterColumns
		}
	case SheetParticipantsList:
		if table == TableProfile {
			return profileColumns
		}
	}
	return map[string]string{}
}

// CountryTables returns the fixed per-country roster table names in
// stable order.
func CountryTables() []string {
	names := make([]string, 0, len(country.TableMap))
	for name := range country.TableMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isCountryTable(name string) bool {
	_, ok := country.TableMap[name]
	return ok
}

func isExtraTable(name string) bool {
	for _, t := range ExtraTables {
		if t == name {
			return true
		}
	}
	return false
}
