// Package xlsx discovers and extracts structured table regions from xlsx
// workbooks. Discovery reads the container's zip entries and relationship
// graph directly rather than loading a full spreadsheet model, so listing
// the tables of a large workbook stays cheap. Extraction of an individual
// table range goes through the spreadsheet library and is memoized per
// workbook by WorkbookCache.
package xlsx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"
)

// OOXML namespace URIs used by workbook and relationship parts.
const (
	nsMain = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	nsRel  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPkg  = "http://schemas.openxmlformats.org/package/2006/relationships"
)

// SheetRef identifies a worksheet by its user-facing title and the XML part
// backing it inside the container.
type SheetRef struct {
	Title   string
	XMLPath string // e.g. "xl/worksheets/sheet1.xml"
}

// TableRef addresses a structured table region without materializing it.
// Immutable once discovered; (SheetTitle, Ref) doubles as the extraction
// cache key.
type TableRef struct {
	Name       string // declared displayName, e.g. "tableAlb"
	NameNorm   string // lowercase alphanumeric form of Name
	SheetTitle string
	Ref        string // cell range, e.g. "B6:K42"
	XMLPath    string // backing table part, e.g. "xl/tables/table1.xml"
}

// NormTableName reduces a table name to its matching key: lowercase with
// everything non-alphanumeric removed.
func NormTableName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}

type xmlWorkbook struct {
	Sheets []struct {
		Name string `xml:"name,attr"`
		RID  string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sheets>sheet"`
}

type xmlRelationships struct {
	Rels []struct {
		ID     string `xml:"Id,attr"`
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type xmlWorksheet struct {
	TableParts []struct {
		RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"tableParts>tablePart"`
}

type xmlTable struct {
	DisplayName string `xml:"displayName,attr"`
	Name        string `xml:"name,attr"`
	Ref         string `xml:"ref,attr"`
}

// readPart decodes one zip entry into v. Returns false when the entry does
// not exist; a present-but-malformed part is an error.
func readPart(zr *zip.Reader, partPath string, v any) (bool, error) {
	for _, f := range zr.File {
		if f.Name != partPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return false, fmt.Errorf("open part %s: %w", partPath, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return false, fmt.Errorf("read part %s: %w", partPath, err)
		}
		if err := xml.Unmarshal(data, v); err != nil {
			return false, fmt.Errorf("decode part %s: %w", partPath, err)
		}
		return true, nil
	}
	return false, nil
}

// resolveRelTarget resolves a relationship target (often "../tables/table1.xml")
// relative to the part that declared it, yielding a normalized zip path.
func resolveRelTarget(basePart, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(path.Dir(basePart), target))
}

// ListSheets returns every worksheet's title and backing part path, read
// from the workbook manifest and its relationship part. A container missing
// either part yields an empty list, not an error.
func ListSheets(filePath string) ([]SheetRef, error) {
	zr, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", filePath, err)
	}
	defer zr.Close()
	return listSheets(&zr.Reader)
}

func listSheets(zr *zip.Reader) ([]SheetRef, error) {
	var wb xmlWorkbook
	if ok, err := readPart(zr, "xl/workbook.xml", &wb); err != nil || !ok {
		return nil, err
	}

	ridToTitle := make(map[string]string, len(wb.Sheets))
	for _, s := range wb.Sheets {
		if s.RID != "" && s.Name != "" {
			ridToTitle[s.RID] = s.Name
		}
	}

	var rels xmlRelationships
	if ok, err := readPart(zr, "xl/_rels/workbook.xml.rels", &rels); err != nil || !ok {
		return nil, err
	}

	var out []SheetRef
	for _, rel := range rels.Rels {
		if rel.ID == "" || rel.Target == "" || !strings.HasSuffix(rel.Type, "/worksheet") {
			continue
		}
		title, ok := ridToTitle[rel.ID]
		if !ok {
			continue
		}
		out = append(out, SheetRef{
			Title:   title,
			XMLPath: resolveRelTarget("xl/workbook.xml", rel.Target),
		})
	}
	return out, nil
}

// ListTables scans every worksheet for embedded table-part references,
// follows the per-sheet relationship part to the table definition, and
// returns each table's declared name and range. Tables are addressed only;
// no cell data is read.
func ListTables(filePath string) ([]TableRef, error) {
	zr, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", filePath, err)
	}
	defer zr.Close()

	sheets, err := listSheets(&zr.Reader)
	if err != nil {
		return nil, err
	}

	var tables []TableRef
	for _, s := range sheets {
		var ws xmlWorksheet
		if ok, err := readPart(&zr.Reader, s.XMLPath, &ws); err != nil {
			return nil, err
		} else if !ok || len(ws.TableParts) == 0 {
			continue
		}

		relsPath := path.Join(path.Dir(s.XMLPath), "_rels", path.Base(s.XMLPath)+".rels")
		var rels xmlRelationships
		if ok, err := readPart(&zr.Reader, relsPath, &rels); err != nil {
			return nil, err
		} else if !ok {
			continue
		}

		ridToTarget := make(map[string]string, len(rels.Rels))
		for _, rel := range rels.Rels {
			if rel.ID != "" && rel.Target != "" && strings.HasSuffix(rel.Type, "/table") {
				ridToTarget[rel.ID] = rel.Target
			}
		}

		for _, tp := range ws.TableParts {
			target, ok := ridToTarget[tp.RID]
			if !ok {
				continue
			}
			tablePath := resolveRelTarget(s.XMLPath, target)

			var tbl xmlTable
			if ok, err := readPart(&zr.Reader, tablePath, &tbl); err != nil {
				return nil, err
			} else if !ok {
				if ok, err = readPart(&zr.Reader, strings.TrimPrefix(target, "/"), &tbl); err != nil || !ok {
					continue
				}
			}

			name := tbl.DisplayName
			if name == "" {
				name = tbl.Name
			}
			if name == "" || tbl.Ref == "" {
				continue
			}

			tables = append(tables, TableRef{
				Name:       name,
				NameNorm:   NormTableName(name),
				SheetTitle: s.Title,
				Ref:        tbl.Ref,
				XMLPath:    tablePath,
			})
		}
	}
	return tables, nil
}

// IndexTables groups discovered tables by normalized name.
func IndexTables(tables []TableRef) map[string][]TableRef {
	idx := make(map[string][]TableRef, len(tables))
	for _, t := range tables {
		idx[t.NameNorm] = append(idx[t.NameNorm], t)
	}
	return idx
}

// FindTable returns the first discovered table whose normalized name
// matches desired, or nil.
func FindTable(idx map[string][]TableRef, desired string) *TableRef {
	group := idx[NormTableName(desired)]
	if len(group) == 0 {
		return nil
	}
	return &group[0]
}
