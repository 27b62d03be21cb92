package xlsx

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

const (
	fixtureWorkbook = `<?xml version="1.0" encoding="UTF-8"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"
          xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <sheets>
    <sheet name="Participants" sheetId="1" r:id="rId1"/>
    <sheet name="COST Overview" sheetId="2" r:id="rId2"/>
  </sheets>
</workbook>`

	fixtureWorkbookRels = `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet2.xml"/>
  <Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

	fixtureSheet1 = `<?xml version="1.0" encoding="UTF-8"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"
           xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <sheetData/>
  <tableParts count="1"><tablePart r:id="rId7"/></tableParts>
</worksheet>`

	fixtureSheet1Rels = `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId7" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/table" Target="../tables/table1.xml"/>
</Relationships>`

	fixtureSheet2 = `<?xml version="1.0" encoding="UTF-8"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <sheetData/>
</worksheet>`

	fixtureTable1 = `<?xml version="1.0" encoding="UTF-8"?>
<table xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"
       id="1" name="tableAlb" displayName="tableAlb" ref="B6:K42"/>`
)

func writeZip(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func fixtureEntries() map[string]string {
	return map[string]string{
		"xl/workbook.xml":                  fixtureWorkbook,
		"xl/_rels/workbook.xml.rels":       fixtureWorkbookRels,
		"xl/worksheets/sheet1.xml":         fixtureSheet1,
		"xl/worksheets/_rels/sheet1.xml.rels": fixtureSheet1Rels,
		"xl/worksheets/sheet2.xml":         fixtureSheet2,
		"xl/tables/table1.xml":             fixtureTable1,
	}
}

func TestListSheets(t *testing.T) {
	path := writeZip(t, fixtureEntries())

	sheets, err := ListSheets(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(sheets) != 2 {
		t.Fatalf("got %d sheets, want 2: %+v", len(sheets), sheets)
	}
	byTitle := map[string]string{}
	for _, s := range sheets {
		byTitle[s.Title] = s.XMLPath
	}
	if byTitle["Participants"] != "xl/worksheets/sheet1.xml" {
		t.Errorf("Participants part = %q", byTitle["Participants"])
	}
	if byTitle["COST Overview"] != "xl/worksheets/sheet2.xml" {
		t.Errorf("COST Overview part = %q", byTitle["COST Overview"])
	}
}

func TestListSheetsMissingManifest(t *testing.T) {
	path := writeZip(t, map[string]string{"docProps/app.xml": "<x/>"})

	sheets, err := ListSheets(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(sheets) != 0 {
		t.Errorf("got %d sheets from empty container, want 0", len(sheets))
	}
}

func TestListTables(t *testing.T) {
	path := writeZip(t, fixtureEntries())

	tables, err := ListTables(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(tables) != 1 {
		t.Fatalf("got %d tables, want 1: %+v", len(tables), tables)
	}
	tbl := tables[0]
	if tbl.Name != "tableAlb" || tbl.NameNorm != "tablealb" {
		t.Errorf("name = %q norm = %q", tbl.Name, tbl.NameNorm)
	}
	if tbl.SheetTitle != "Participants" {
		t.Errorf("sheet = %q, want Participants", tbl.SheetTitle)
	}
	if tbl.Ref != "B6:K42" {
		t.Errorf("ref = %q, want B6:K42", tbl.Ref)
	}
	if tbl.XMLPath != "xl/tables/table1.xml" {
		t.Errorf("table part = %q", tbl.XMLPath)
	}
}

func TestNormTableName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"tableAlb", "tablealb"},
		{"Participants Lista", "participantslista"},
		{"tbl_Tech-01", "tbltech01"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormTableName(tt.in); got != tt.want {
			t.Errorf("NormTableName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveRelTarget(t *testing.T) {
	tests := []struct{ base, target, want string }{
		{"xl/worksheets/sheet1.xml", "../tables/table1.xml", "xl/tables/table1.xml"},
		{"xl/workbook.xml", "worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"xl/worksheets/sheet1.xml", "/xl/tables/table1.xml", "xl/tables/table1.xml"},
	}
	for _, tt := range tests {
		if got := resolveRelTarget(tt.base, tt.target); got != tt.want {
			t.Errorf("resolveRelTarget(%q, %q) = %q, want %q", tt.base, tt.target, got, tt.want)
		}
	}
}

func TestFindTable(t *testing.T) {
	idx := IndexTables([]TableRef{
		{Name: "tableAlb", NameNorm: "tablealb"},
		{Name: "ParticipantsLista", NameNorm: "participantslista"},
	})
	if got := FindTable(idx, "TableALB"); got == nil || got.Name != "tableAlb" {
		t.Errorf("FindTable(TableALB) = %+v", got)
	}
	if got := FindTable(idx, "tableXyz"); got != nil {
		t.Errorf("FindTable(tableXyz) = %+v, want nil", got)
	}
}

func TestCollectCustomRecords(t *testing.T) {
	const item = `<?xml version="1.0" encoding="UTF-8"?>
<data>
  <event>
    <eid>EVT-001</eid>
    <title>Sample Event</title>
    <start_date>2024-02-01</start_date>
  </event>
  <participant>
    <pid>P-001</pid>
    <name>John Doe</name>
    <grade>2</grade>
  </participant>
  <participant_event>
    <event_id>EVT-001</event_id>
    <participant_id>P-001</participant_id>
    <transportation>Air (Airplane)</transportation>
  </participant_event>
</data>`
	path := writeZip(t, map[string]string{"customXml/item1.xml": item})

	recs, err := CollectCustomRecords(path)
	if err != nil {
		t.Fatal(err)
	}
	if recs.Empty() {
		t.Fatal("no records collected")
	}
	if len(recs.Events) != 1 || recs.Events[0]["eid"] != "EVT-001" {
		t.Errorf("events = %+v", recs.Events)
	}
	if len(recs.Participants) != 1 || recs.Participants[0]["name"] != "John Doe" {
		t.Errorf("participants = %+v", recs.Participants)
	}
	if len(recs.ParticipantEvents) != 1 ||
		recs.ParticipantEvents[0]["transportation"] != "Air (Airplane)" {
		t.Errorf("participant events = %+v", recs.ParticipantEvents)
	}
}

func TestCollectCustomRecordsAbsent(t *testing.T) {
	path := writeZip(t, fixtureEntries())

	recs, err := CollectCustomRecords(path)
	if err != nil {
		t.Fatal(err)
	}
	if recs != nil {
		t.Errorf("records = %+v, want nil for a plain workbook", recs)
	}
}
