package etl

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/domain"
)

// buildEventWorkbook writes a complete workbook honoring the structural
// contract: header cells, the cost sheet, all seven country roster tables,
// the cross-country roster, and the detailed-profile table. Only the
// Albania table carries data.
func buildEventWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	set := func(sheet, cell string, value any) {
		t.Helper()
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			t.Fatal(err)
		}
	}
	addTable := func(sheet, rangeRef, name string) {
		t.Helper()
		if err := f.AddTable(sheet, &excelize.Table{Range: rangeRef, Name: name}); err != nil {
			t.Fatalf("add table %s: %v", name, err)
		}
	}

	if err := f.SetSheetName("Sheet1", SheetParticipants); err != nil {
		t.Fatal(err)
	}
	for _, sheet := range []string{SheetCostOverview, SheetMainOnline, SheetParticipantsList} {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatal(err)
		}
	}

	// Event header block.
	set(SheetParticipants, "A1", "PFE25M2 REGIONAL CRISIS RESPONSE")
	set(SheetParticipants, "A2", "JUNE 23 - 27 - Opatija, CROATIA")
	set(SheetCostOverview, "B15", 1500.5)

	// Country roster tables, stacked down the Participants sheet. The
	// Albania table has one real row, one minimal row, and a TOTAL row.
	countryHeaders := []string{
		"Name and Last Name", "Travel", "Traveling from",
		"Grade (0 - BL, 1 - Pass, 2 - Excel)",
	}
	row := 4
	for _, name := range CountryTables() {
		start := row
		for c, h := range countryHeaders {
			cell, _ := excelize.CoordinatesToCellName(2+c, start)
			set(SheetParticipants, cell, h)
		}
		rows := 1 // blank data row
		if name == "tableAlb" {
			set(SheetParticipants, "B"+itoa(start+1), "VUÇETAJ, Gani")
			set(SheetParticipants, "C"+itoa(start+1), "Bus")
			set(SheetParticipants, "D"+itoa(start+1), "Tirana")
			set(SheetParticipants, "E"+itoa(start+1), 2)
			set(SheetParticipants, "B"+itoa(start+2), "Hoxha, Artan")
			set(SheetParticipants, "B"+itoa(start+3), "TOTAL")
			rows = 3
		}
		endCell, _ := excelize.CoordinatesToCellName(2+len(countryHeaders)-1, start+rows)
		addTable(SheetParticipants, "B"+itoa(start)+":"+endCell, name)
		row = start + rows + 2
	}

	// Cross-country roster on MAIN ONLINE.
	onlineHeaders := []string{
		"Country", "Gender", "Name", "Middle name", "Last name",
		"Date of Birth (DOB)", "Place Of Birth (POB)", "Country of Birth",
		"Citizenship(s)", "Phone number", "Email address",
		"Traveling document type", "Transportation", "Traveling from",
		"Returning to", "Organization", "Authority",
	}
	for c, h := range onlineHeaders {
		cell, _ := excelize.CoordinatesToCellName(1+c, 1)
		set(SheetMainOnline, cell, h)
	}
	onlineRow := []any{
		"Albania", "M", "Gani", "", "Vuçetaj",
		"1980-03-05", "Tirana", "Albania",
		"Albania; Kosovo", "+355 69 123 4567", "gani@example.com",
		"Passport", "Air (Airplane)", "Podgorica",
		"Tirana", "Ministry of Defence", "yes",
	}
	for c, v := range onlineRow {
		cell, _ := excelize.CoordinatesToCellName(1+c, 2)
		set(SheetMainOnline, cell, v)
	}
	endCell, _ := excelize.CoordinatesToCellName(len(onlineHeaders), 2)
	addTable(SheetMainOnline, "A1:"+endCell, TableCrossRoster)

	// Detailed-profile table.
	profileHeaders := []string{"No.", "Name (LAST, First, Middle)", "Position", "Phone", "email"}
	for c, h := range profileHeaders {
		cell, _ := excelize.CoordinatesToCellName(1+c, 1)
		set(SheetParticipantsList, cell, h)
	}
	for c, v := range []any{1, "VUÇETAJ, Gani", "Senior Analyst", "+355 69 123 4567", "gani.v@example.org"} {
		cell, _ := excelize.CoordinatesToCellName(1+c, 2)
		set(SheetParticipantsList, cell, v)
	}
	addTable(SheetParticipantsList, "A1:E2", TableProfile)

	path := filepath.Join(t.TempDir(), "PFE25M2.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func itoa(n int) string { return strconv.Itoa(n) }

func TestParseForPreview(t *testing.T) {
	path := buildEventWorkbook(t)
	s := newFakeStores()
	p := newTestPipeline(t, s)
	ctx := context.Background()

	preview, err := p.ParseForPreview(ctx, path)
	if err != nil {
		t.Fatal(err)
	}

	if preview.Event.EID != "PFE25M2" {
		t.Errorf("eid = %q", preview.Event.EID)
	}
	if preview.Event.Country != "C003" {
		t.Errorf("event country = %q, want Croatia's CID", preview.Event.Country)
	}
	if preview.Event.Cost == nil || *preview.Event.Cost != 1500.5 {
		t.Errorf("cost = %v", preview.Event.Cost)
	}
	wantStart := time.Date(2025, time.June, 23, 0, 0, 0, 0, time.UTC)
	if !preview.Event.StartDate.Equal(wantStart) {
		t.Errorf("start = %v", preview.Event.StartDate)
	}

	if len(preview.Attendees) != 1 {
		t.Fatalf("attendees = %+v, want 1", preview.Attendees)
	}
	a := preview.Attendees[0]
	if a.Name != "Gani VUÇETAJ" {
		t.Errorf("name = %q", a.Name)
	}
	if a.RepresentingCountry != "C001" {
		t.Errorf("representing country = %q", a.RepresentingCountry)
	}
	if a.Transportation != "Bus" {
		t.Errorf("transportation = %q, want the roster value over the declared one", a.Transportation)
	}
	if a.Grade != domain.GradeExcellent {
		t.Errorf("grade = %v", a.Grade)
	}
	if a.Position != "Senior Analyst" {
		t.Errorf("position = %q, want the profile value", a.Position)
	}
	if a.Phone != "+355691234567" {
		t.Errorf("phone = %q", a.Phone)
	}
	if a.Gender != domain.GenderMale {
		t.Errorf("gender = %v", a.Gender)
	}
	if a.DOB == nil || !a.DOB.Equal(time.Date(1980, time.March, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("dob = %v", a.DOB)
	}
	if len(a.Citizenships) != 2 || a.Citizenships[0] != "C001" || a.Citizenships[1] != "C004" {
		t.Errorf("citizenships = %v", a.Citizenships)
	}
	if a.TravelDocType != domain.DocPassport {
		t.Errorf("doc type = %v", a.TravelDocType)
	}
	if !a.IntlAuthority {
		t.Error("intl_authority = false, want true")
	}
	if a.PID != "" {
		t.Errorf("pid = %q, want unmatched", a.PID)
	}

	// The minimal row has no gender source and is excluded but reported.
	if len(preview.Skipped) != 1 || preview.Skipped[0].Name != "Artan HOXHA" {
		t.Errorf("skipped = %+v", preview.Skipped)
	}
}

func TestParseForPreviewMatchesExistingIdentity(t *testing.T) {
	path := buildEventWorkbook(t)
	s := newFakeStores()
	seedParticipant(s, "P0042", "Gani VUÇETAJ", "C001", datePtr(1980, time.March, 5))
	p := newTestPipeline(t, s)

	preview, err := p.ParseForPreview(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if len(preview.Attendees) != 1 || preview.Attendees[0].PID != "P0042" {
		t.Errorf("attendees = %+v, want matched P0042", preview.Attendees)
	}
}

func TestCommit(t *testing.T) {
	path := buildEventWorkbook(t)
	s := newFakeStores()
	p := newTestPipeline(t, s)
	ctx := context.Background()

	preview, err := p.ParseForPreview(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	result, err := p.Commit(ctx, preview)
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Created) != 1 || result.Created[0].PID != "P0001" {
		t.Fatalf("created = %+v", result.Created)
	}
	if result.Event == nil || len(result.Event.Participants) != 1 || result.Event.Participants[0] != "P0001" {
		t.Fatalf("event = %+v", result.Event)
	}
	if len(result.Snapshots) != 1 || result.Snapshots[0].Key() != "PFE25M2/P0001" {
		t.Fatalf("snapshots = %+v", result.Snapshots)
	}

	// Participants are written before the event.
	var order []string
	for _, w := range s.writes {
		switch {
		case strings.HasPrefix(w, "participant:"):
			order = append(order, "participant")
		case strings.HasPrefix(w, "snapshot:"):
			order = append(order, "snapshot")
		case strings.HasPrefix(w, "event:"):
			order = append(order, "event")
		}
	}
	want := []string{"participant", "snapshot", "event"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("write order = %v, want %v", order, want)
	}

	if s.events["PFE25M2"] == nil {
		t.Fatal("event not persisted")
	}
}

func TestCommitDuplicateEventWritesNothing(t *testing.T) {
	path := buildEventWorkbook(t)
	s := newFakeStores()
	p := newTestPipeline(t, s)
	ctx := context.Background()

	preview, err := p.ParseForPreview(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Commit(ctx, preview); err != nil {
		t.Fatal(err)
	}
	writesAfterFirst := len(s.writes)

	p.Reset()
	preview2, err := p.ParseForPreview(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	_, err = p.Commit(ctx, preview2)
	if !errors.Is(err, ErrDuplicateEvent) {
		t.Fatalf("err = %v, want ErrDuplicateEvent", err)
	}
	if len(s.writes) != writesAfterFirst {
		t.Errorf("writes grew from %d to %d on a duplicate commit", writesAfterFirst, len(s.writes))
	}
}

func TestValidateStructureMissingTables(t *testing.T) {
	// A workbook with header cells but no tables at all.
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", SheetParticipants); err != nil {
		t.Fatal(err)
	}
	if _, err := f.NewSheet(SheetCostOverview); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue(SheetParticipants, "A1", "PFE25M1 X"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue(SheetParticipants, "A2", "MAY 5 - 9 - Tirana, ALBANIA"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue(SheetCostOverview, "B15", 100); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "PFE25M1.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	p := newTestPipeline(t, newFakeStores())
	_, err := p.ParseForPreview(context.Background(), path)
	if !errors.Is(err, ErrMissingTables) {
		t.Fatalf("err = %v, want ErrMissingTables", err)
	}
	var missing *MissingTablesError
	if !errors.As(err, &missing) {
		t.Fatal("error does not carry the missing list")
	}
	// The profile table plus all seven country tables.
	if len(missing.Missing) != 8 {
		t.Errorf("missing = %v, want 8 entries", missing.Missing)
	}
}

func TestParseForPreviewCustomXML(t *testing.T) {
	const item = `<?xml version="1.0" encoding="UTF-8"?>
<data>
  <participant>
    <pid>P-001</pid>
    <representing_country>C123</representing_country>
    <gender>Male</gender>
    <grade>2</grade>
    <name>John Doe</name>
    <dob>2024-01-05</dob>
    <pob>Zagreb</pob>
    <birth_country>C123</birth_country>
    <citizenships>C123</citizenships>
    <email>john.doe@example.com</email>
    <phone>+38512345678</phone>
    <organization>ACME</organization>
    <intl_authority>true</intl_authority>
  </participant>
  <participant_event>
    <event_id>EVT-001</event_id>
    <participant_id>P-001</participant_id>
    <transportation>Air (Airplane)</transportation>
    <travelling_from>Zagreb</travelling_from>
    <returning_to>Zagreb</returning_to>
    <travel_doc_type>Passport</travel_doc_type>
    <travel_doc_issue_date>2024-01-01</travel_doc_issue_date>
    <travel_doc_expiry_date>2025-01-01</travel_doc_expiry_date>
    <iban_type>EURO</iban_type>
  </participant_event>
  <event>
    <eid>EVT-001</eid>
    <title>Sample Event</title>
    <start_date>2024-02-01</start_date>
    <end_date>2024-02-05</end_date>
    <place>Zagreb</place>
    <country>C123</country>
    <type>Training</type>
    <cost>199.5</cost>
  </event>
</data>`

	path := filepath.Join(t.TempDir(), "custom.xlsx")
	fh, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(fh)
	w, err := zw.Create("customXml/item1.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(item)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := fh.Close(); err != nil {
		t.Fatal(err)
	}

	s := newFakeStores()
	p := newTestPipeline(t, s)
	ctx := context.Background()

	preview, err := p.ParseForPreview(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if preview.Bundle == nil || preview.Bundle.Event == nil {
		t.Fatal("bundle not populated")
	}
	if preview.Event.EID != "EVT-001" {
		t.Errorf("eid = %q", preview.Event.EID)
	}
	if len(preview.Attendees) != 1 {
		t.Fatalf("attendees = %+v", preview.Attendees)
	}
	a := preview.Attendees[0]
	if a.PID != "P-001" || a.Transportation != "Air (Airplane)" || a.IbanType != "EURO" {
		t.Errorf("attendee = %+v", a)
	}

	result, err := p.Commit(ctx, preview)
	if err != nil {
		t.Fatal(err)
	}
	// The declared PID is unknown to the store, so a fresh one is allocated.
	if len(result.Created) != 1 || result.Created[0].PID != "P0001" {
		t.Fatalf("created = %+v", result.Created)
	}
	if _, ok := s.snapshots["EVT-001/P0001"]; !ok {
		t.Errorf("snapshot not rekeyed to the allocated PID: %v", s.snapshots)
	}
	if got := s.events["EVT-001"]; got == nil || len(got.Participants) != 1 || got.Participants[0] != "P0001" {
		t.Errorf("event = %+v", got)
	}
}
