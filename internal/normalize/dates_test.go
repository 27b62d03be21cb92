package normalize

import (
	"testing"
	"time"
)

func TestDate(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		in   string
		want time.Time
		ok   bool
	}{
		{name: "serial", in: "43831", want: day(2020, time.January, 1), ok: true},
		{name: "serial with fraction", in: "43831.5", want: day(2020, time.January, 1), ok: true},
		{name: "iso", in: "1980-03-05", want: day(1980, time.March, 5), ok: true},
		{name: "iso single digits", in: "1980-3-5", want: day(1980, time.March, 5), ok: true},
		{name: "dotted", in: "5.3.1980", want: day(1980, time.March, 5), ok: true},
		{name: "slashed", in: "3/5/1980", want: day(1980, time.March, 5), ok: true},
		{name: "datetime", in: "1980-03-05 14:30:00", want: day(1980, time.March, 5), ok: true},
		{name: "zoned datetime shifts to reference zone", in: "1980-03-05T23:30:00+01:00", want: day(1980, time.March, 5), ok: true},
		{name: "ghost date text", in: "1900-01-01", ok: false},
		{name: "ghost date serial", in: "2", ok: false},
		{name: "zero serial", in: "0", ok: false},
		{name: "negative serial", in: "-5", ok: false},
		{name: "garbage", in: "soon", ok: false},
		{name: "blank", in: "  ", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Date(tt.in)
			if ok != tt.ok {
				t.Fatalf("Date(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("Date(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMonthNumber(t *testing.T) {
	tests := []struct {
		in   string
		want time.Month
	}{
		{in: "JUNE", want: time.June},
		{in: "june", want: time.June},
		{in: " December ", want: time.December},
		{in: "JUNETEENTH", want: 0},
		{in: "", want: 0},
	}
	for _, tt := range tests {
		if got := MonthNumber(tt.in); got != tt.want {
			t.Errorf("MonthNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
