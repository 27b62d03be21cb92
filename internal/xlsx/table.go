package xlsx

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/normalize"
)

// Table is a materialized table region: the header row plus data rows,
// both as trimmed strings. Columns whose header cell is blank are dropped,
// as are rows where every cell is blank.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Empty reports whether the table holds no data rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// Col returns the index of the column whose header equals h after
// whitespace collapsing, or -1.
func (t *Table) Col(h string) int {
	want := normalize.CollapseSpace(h)
	for i, header := range t.Headers {
		if strings.EqualFold(header, want) {
			return i
		}
	}
	return -1
}

// ColContains returns the index of the first column whose header contains
// sub, case-insensitively, or -1. Used where workbooks drift from the
// canonical header text.
func (t *Table) ColContains(sub string) int {
	want := strings.ToLower(sub)
	for i, header := range t.Headers {
		if strings.Contains(strings.ToLower(header), want) {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, col), or "" when either index is out of
// range. col may be -1, so callers can chain Col lookups without guards.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// parseRange splits a range like "B6:K42" into 1-based coordinate bounds.
func parseRange(ref string) (minCol, minRow, maxCol, maxRow int, err error) {
	first, second, found := strings.Cut(ref, ":")
	if !found {
		second = first
	}
	minCol, minRow, err = excelize.CellNameToCoordinates(strings.TrimSpace(first))
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("parse range %q: %w", ref, err)
	}
	maxCol, maxRow, err = excelize.CellNameToCoordinates(strings.TrimSpace(second))
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("parse range %q: %w", ref, err)
	}
	if maxCol < minCol || maxRow < minRow {
		return 0, 0, 0, 0, fmt.Errorf("parse range %q: inverted bounds", ref)
	}
	return minCol, minRow, maxCol, maxRow, nil
}

// Extract reads the table's cell range from the open workbook. Cells are
// read raw, so date cells yield their underlying serial values and the
// field normalizers see stable input regardless of display formatting.
func Extract(f *excelize.File, ref TableRef) (*Table, error) {
	minCol, minRow, maxCol, maxRow, err := parseRange(ref.Ref)
	if err != nil {
		return nil, err
	}

	raw := excelize.Options{RawCellValue: true}
	readRow := func(row int) ([]string, error) {
		cells := make([]string, 0, maxCol-minCol+1)
		for col := minCol; col <= maxCol; col++ {
			name, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return nil, err
			}
			value, err := f.GetCellValue(ref.SheetTitle, name, raw)
			if err != nil {
				return nil, fmt.Errorf("read %s!%s: %w", ref.SheetTitle, name, err)
			}
			cells = append(cells, normalize.CollapseSpace(value))
		}
		return cells, nil
	}

	header, err := readRow(minRow)
	if err != nil {
		return nil, err
	}

	// Keep only columns with a named header.
	var keep []int
	var headers []string
	for i, h := range header {
		if h != "" {
			keep = append(keep, i)
			headers = append(headers, h)
		}
	}

	table := &Table{Headers: headers}
	for row := minRow + 1; row <= maxRow; row++ {
		cells, err := readRow(row)
		if err != nil {
			return nil, err
		}
		kept := make([]string, len(keep))
		blank := true
		for i, src := range keep {
			kept[i] = cells[src]
			if kept[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		table.Rows = append(table.Rows, kept)
	}
	return table, nil
}
