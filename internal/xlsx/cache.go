package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Builder materializes a table region from an open workbook.
type Builder func(f *excelize.File, ref TableRef) (*Table, error)

// WorkbookCache holds one workbook's loaded state for the lifetime of a
// pipeline run. The file is opened at most once and each (sheet, range)
// pair is extracted at most once, so repeated references to the same table
// pay the extraction cost a single time. Not safe for concurrent use; the
// pipeline is single-threaded by contract.
type WorkbookCache struct {
	path   string
	file   *excelize.File
	tables map[[2]string]*Table
}

// NewWorkbookCache prepares a cache for the workbook at path. Nothing is
// loaded until the first access.
func NewWorkbookCache(path string) *WorkbookCache {
	return &WorkbookCache{path: path, tables: make(map[[2]string]*Table)}
}

// File returns the memoized open workbook, loading it on first call.
func (c *WorkbookCache) File() (*excelize.File, error) {
	if c.file == nil {
		f, err := excelize.OpenFile(c.path)
		if err != nil {
			return nil, fmt.Errorf("load workbook %s: %w", c.path, err)
		}
		c.file = f
	}
	return c.file, nil
}

// CellValue reads a single cell from the cached workbook, raw.
func (c *WorkbookCache) CellValue(sheet, cell string) (string, error) {
	f, err := c.File()
	if err != nil {
		return "", err
	}
	value, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return "", fmt.Errorf("read %s!%s: %w", sheet, cell, err)
	}
	return value, nil
}

// HasSheet reports whether the workbook contains a sheet with that name.
func (c *WorkbookCache) HasSheet(name string) (bool, error) {
	f, err := c.File()
	if err != nil {
		return false, err
	}
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return false, err
	}
	return idx >= 0, nil
}

// Table returns the memoized dataset for ref, invoking build on a miss.
func (c *WorkbookCache) Table(ref TableRef, build Builder) (*Table, error) {
	key := [2]string{ref.SheetTitle, ref.Ref}
	if t, ok := c.tables[key]; ok {
		return t, nil
	}
	f, err := c.File()
	if err != nil {
		return nil, err
	}
	t, err := build(f, ref)
	if err != nil {
		return nil, err
	}
	c.tables[key] = t
	return t, nil
}

// Dataset is Table with the standard extractor.
func (c *WorkbookCache) Dataset(ref TableRef) (*Table, error) {
	return c.Table(ref, Extract)
}

// Clear drops the loaded workbook and every cached dataset. Used between
// independent pipeline runs and in tests.
func (c *WorkbookCache) Clear() {
	if c.file != nil {
		c.file.Close()
		c.file = nil
	}
	c.tables = make(map[[2]string]*Table)
}
