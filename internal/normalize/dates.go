package normalize

import (
	"strconv"
	"strings"
	"time"
)

// Spreadsheet serial dates count days since 1899-12-30 (the 1900 date
// system with its fictitious leap day baked into the offset).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ghostDate is the spreadsheet's conventional "unset" date. Cells formatted
// as dates but never filled decode to it, so it is treated as absent.
var ghostDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// refZone is the fixed reference zone applied to timezone-aware inputs
// before the time of day is discarded.
var refZone = loadRefZone()

func loadRefZone() *time.Location {
	loc, err := time.LoadLocation("Europe/Zagreb")
	if err != nil {
		return time.UTC
	}
	return loc
}

var dateLayouts = []string{
	"2006-1-2",
	"2.1.2006",
	"1/2/2006",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Date coerces a raw cell value into a calendar date. Accepted inputs:
// numeric serial values (days since the serial epoch), the date patterns
// YYYY-M-D, D.M.YYYY and M/D/YYYY, and ISO 8601 date-times. Timezone-aware
// inputs are shifted to the reference zone before truncation so only the
// calendar date survives. The ghost date and anything unparseable report
// absent.
func Date(raw string) (time.Time, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(text, 64); err == nil {
		return serialDate(serial)
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, text)
		if err != nil {
			continue
		}
		return truncate(t)
	}
	return time.Time{}, false
}

// serialDate converts a spreadsheet serial number to a calendar date.
// Non-positive serials are absent (text cells that happened to parse).
func serialDate(serial float64) (time.Time, bool) {
	if serial <= 0 {
		return time.Time{}, false
	}
	t := serialEpoch.Add(time.Duration(serial * 24 * float64(time.Hour)))
	return truncate(t)
}

// truncate drops the time of day, converting zoned inputs to the reference
// zone first, and filters the ghost date.
func truncate(t time.Time) (time.Time, bool) {
	if t.Location() != time.UTC {
		t = t.In(refZone)
	}
	y, m, d := t.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if date.Equal(ghostDate) {
		return time.Time{}, false
	}
	return date, true
}

// MonthNumber maps an upper-case English month name to its number.
// Returns 0 for unknown names.
func MonthNumber(name string) time.Month {
	months := map[string]time.Month{
		"JANUARY": time.January, "FEBRUARY": time.February, "MARCH": time.March,
		"APRIL": time.April, "MAY": time.May, "JUNE": time.June,
		"JULY": time.July, "AUGUST": time.August, "SEPTEMBER": time.September,
		"OCTOBER": time.October, "NOVEMBER": time.November, "DECEMBER": time.December,
	}
	return months[strings.ToUpper(strings.TrimSpace(name))]
}
