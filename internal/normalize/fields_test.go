package normalize

import (
	"testing"

	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/domain"
)

func TestGender(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Gender
		ok   bool
	}{
		{in: "M", want: domain.GenderMale, ok: true},
		{in: "male", want: domain.GenderMale, ok: true},
		{in: "Mr.", want: domain.GenderMale, ok: true},
		{in: "F", want: domain.GenderFemale, ok: true},
		{in: "Mrs.", want: domain.GenderFemale, ok: true},
		{in: "Ms", want: domain.GenderFemale, ok: true},
		{in: "unknown", ok: false},
		{in: "", ok: false},
	}
	for _, tt := range tests {
		got, ok := Gender(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Gender(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDocTypeStrict(t *testing.T) {
	tests := []struct {
		in   string
		want domain.DocType
	}{
		{in: "Passport", want: domain.DocPassport},
		{in: "passport", want: domain.DocIDCard}, // exact match only
		{in: "ID Card", want: domain.DocIDCard},
		{in: "", want: domain.DocIDCard},
	}
	for _, tt := range tests {
		if got := DocTypeStrict(tt.in); got != tt.want {
			t.Errorf("DocTypeStrict(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDocTypeLoose(t *testing.T) {
	tests := []struct {
		in   string
		want domain.DocType
		ok   bool
	}{
		{in: "Diplomatic passport", want: domain.DocDiplomaticPassport, ok: true},
		{in: "service passport", want: domain.DocServicePassport, ok: true},
		{in: "Passport", want: domain.DocPassport, ok: true},
		{in: "pp", want: domain.DocPassport, ok: true},
		{in: "national ID card", want: domain.DocIDCard, ok: true},
		{in: "laissez-passer", want: domain.DocOther, ok: true},
		{in: "", ok: false},
	}
	for _, tt := range tests {
		got, ok := DocTypeLoose(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("DocTypeLoose(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBool(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		present bool
	}{
		{in: "yes", want: true, present: true},
		{in: "TRUE", want: true, present: true},
		{in: "No", want: false, present: true},
		{in: "false", want: false, present: true},
		{in: "maybe", present: false},
		{in: "", present: false},
	}
	for _, tt := range tests {
		got, ok := Bool(tt.in)
		if ok != tt.present || got != tt.want {
			t.Errorf("Bool(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.present)
		}
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Grade
	}{
		{in: "0", want: domain.GradeBlackList},
		{in: "1", want: domain.GradeNormal},
		{in: "2", want: domain.GradeExcellent},
		{in: "2.0", want: domain.GradeExcellent},
		{in: "7", want: domain.GradeNormal},
		{in: "excellent", want: domain.GradeNormal},
		{in: "", want: domain.GradeNormal},
	}
	for _, tt := range tests {
		if got := Grade(tt.in); got != tt.want {
			t.Errorf("Grade(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
