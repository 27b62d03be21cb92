package etl

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/normalize"
	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/xlsx"
)

// EventHeader is the event metadata read from the workbook's fixed header
// cells before any table work.
type EventHeader struct {
	EID       string
	Title     string
	StartDate time.Time
	EndDate   time.Time
	Place     string
	Country   string // host country CID, or the raw text when unresolvable
	Cost      *float64
}

var (
	eidYearRE  = regexp.MustCompile(`PFE(\d{2})M`)
	monthDayRE = regexp.MustCompile(`^([A-Z]+)\s+(\d{1,2})`)
	digitsRE   = regexp.MustCompile(`\D`)
)

// FilenameYear infers the event's 4-digit year from the "PFE25M2" pattern
// in the uploaded file name. Absent a match, the current year is assumed.
func FilenameYear(filename string) int {
	m := eidYearRE.FindStringSubmatch(strings.ToUpper(filepath.Base(filename)))
	if m == nil {
		return time.Now().UTC().Year()
	}
	n, _ := strconv.Atoi(m[1])
	return 2000 + n
}

// parseEventHeader decodes the two fixed header cells:
//
//	A1 → "PFE25M2 TITLE OF EVENT"
//	A2 → "JUNE 23 - 27 - Opatija, CROATIA"
//
// The year is not in the cells; it comes from the file name.
func parseEventHeader(a1, a2 string, year int) (eid, title string, start, end time.Time, place, rawCountry string) {
	a1 = normalize.CollapseSpace(a1)
	if before, after, found := strings.Cut(a1, " "); found {
		eid, title = before, after
	} else {
		eid = a1
	}

	a2 = normalize.CollapseSpace(a2)
	parts := strings.Split(a2, " - ")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var location string
	if len(parts) >= 3 {
		location = parts[2]
		if m := monthDayRE.FindStringSubmatch(strings.ToUpper(parts[0])); m != nil {
			month := normalize.MonthNumber(m[1])
			startDay, _ := strconv.Atoi(m[2])
			endDigits := digitsRE.ReplaceAllString(parts[1], "")
			endDay, _ := strconv.Atoi(endDigits)
			if month != 0 && startDay > 0 && endDay > 0 {
				start = time.Date(year, month, startDay, 0, 0, 0, 0, time.UTC)
				end = time.Date(year, month, endDay, 0, 0, 0, 0, time.UTC)
			}
		}
	}

	place = location
	if location != "" {
		if before, after, found := strings.Cut(location, ","); found {
			place = strings.TrimSpace(before)
			rawCountry = strings.TrimSpace(after)
		}
	}
	return eid, title, start, end, place, rawCountry
}

// ReadEventHeader reads the event header block: A1/A2 of the Participants
// sheet plus the cost figure from the COST Overview sheet. The host country
// is resolved to a CID where possible, falling back to the raw text.
func (p *Pipeline) ReadEventHeader(ctx context.Context, cache *xlsx.WorkbookCache, path string) (EventHeader, error) {
	var hdr EventHeader

	for _, sheet := range []string{SheetParticipants, SheetCostOverview} {
		ok, err := cache.HasSheet(sheet)
		if err != nil {
			return hdr, err
		}
		if !ok {
			return hdr, fmt.Errorf("sheet %q not found", sheet)
		}
	}

	a1, err := cache.CellValue(SheetParticipants, "A1")
	if err != nil {
		return hdr, err
	}
	a2, err := cache.CellValue(SheetParticipants, "A2")
	if err != nil {
		return hdr, err
	}

	year := FilenameYear(path)
	var rawCountry string
	hdr.EID, hdr.Title, hdr.StartDate, hdr.EndDate, hdr.Place, rawCountry = parseEventHeader(a1, a2, year)

	if rawCountry != "" {
		cid, err := p.Countries.CID(ctx, rawCountry)
		if err != nil {
			return hdr, err
		}
		if cid != "" {
			hdr.Country = cid
		} else {
			hdr.Country = normalize.CollapseSpace(rawCountry)
		}
	}

	costRaw, err := cache.CellValue(SheetCostOverview, costCell)
	if err != nil {
		return hdr, err
	}
	if text := strings.TrimSpace(costRaw); text != "" {
		if cost, err := strconv.ParseFloat(text, 64); err == nil {
			hdr.Cost = &cost
		}
	}
	return hdr, nil
}
