package etl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/xlsx"
)

// ErrMissingTables marks a structural validation failure. The concrete
// error is a *MissingTablesError carrying the full missing list.
var ErrMissingTables = errors.New("workbook structure incomplete")

// MissingTablesError reports every required element absent from the
// workbook, so the uploader can fix the file in one pass.
type MissingTablesError struct {
	Missing []string
}

func (e *MissingTablesError) Error() string {
	return fmt.Sprintf("workbook structure incomplete: missing %s", strings.Join(e.Missing, ", "))
}

func (e *MissingTablesError) Unwrap() error { return ErrMissingTables }

// Structure is the result of structural validation: what the workbook
// contains and what it lacks. OK() gates row-level parsing.
type Structure struct {
	// CustomXML is set when the workbook carries an embedded custom-XML
	// payload, which bypasses table discovery entirely.
	CustomXML         bool
	Events            int
	Participants      int
	ParticipantEvents int

	// Tables holds every discovered table by normalized name.
	Tables  map[string]xlsx.TableRef
	Missing []string
}

// OK reports whether every required structural element is present.
func (s *Structure) OK() bool { return len(s.Missing) == 0 }

// Err converts a failed validation into its error form, nil when valid.
func (s *Structure) Err() error {
	if s.OK() {
		return nil
	}
	return &MissingTablesError{Missing: s.Missing}
}

// ValidateStructure checks the workbook against the structural contract
// before any row-level work: header sheets and cells, the detailed-profile
// table, every per-country roster table, and (when required) the
// cross-country roster. All absences are collected, not just the first.
// A workbook with an embedded custom-XML payload passes outright.
func (p *Pipeline) ValidateStructure(path string, cache *xlsx.WorkbookCache) (*Structure, error) {
	if records, err := xlsx.CollectCustomRecords(path); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	} else if !records.Empty() {
		return &Structure{
			CustomXML:         true,
			Events:            len(records.Events),
			Participants:      len(records.Participants),
			ParticipantEvents: len(records.ParticipantEvents),
		}, nil
	}

	s := &Structure{Tables: make(map[string]xlsx.TableRef)}

	for _, sheet := range []string{SheetParticipants, SheetCostOverview} {
		ok, err := cache.HasSheet(sheet)
		if err != nil {
			return nil, err
		}
		if !ok {
			s.Missing = append(s.Missing, fmt.Sprintf("sheet %q", sheet))
		}
	}
	if len(s.Missing) > 0 {
		return s, nil
	}

	headerCells := []struct{ sheet, cell, what string }{
		{SheetParticipants, "A1", "eid + title"},
		{SheetParticipants, "A2", "dates + location"},
		{SheetCostOverview, costCell, "total cost"},
	}
	for _, hc := range headerCells {
		value, err := cache.CellValue(hc.sheet, hc.cell)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(value) == "" {
			s.Missing = append(s.Missing, fmt.Sprintf("%s!%s (%s)", hc.sheet, hc.cell, hc.what))
		}
	}

	tables, err := xlsx.ListTables(path)
	if err != nil {
		return nil, err
	}
	for _, t := range tables {
		if _, taken := s.Tables[t.NameNorm]; !taken {
			s.Tables[t.NameNorm] = t
		}
	}

	required := append([]string{TableProfile}, CountryTables()...)
	if p.RequireCrossRoster {
		required = append(required, TableCrossRoster)
	}
	for _, name := range required {
		if _, ok := s.Tables[xlsx.NormTableName(name)]; !ok {
			s.Missing = append(s.Missing, fmt.Sprintf("table %q", name))
		}
	}
	return s, nil
}
