package country

import (
	"reflect"
	"testing"
)

func TestResolveLadder(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		method  Method
		noMatch bool
	}{
		{name: "exact display name", in: "Croatia", want: "Croatia", method: MethodExact},
		{name: "alias abbreviation", in: "BH", want: "Bosnia and Herzegovina", method: MethodAlias},
		{name: "alias local language", in: "Republika Hrvatska", want: "Croatia", method: MethodAlias},
		{name: "iso alpha3", in: "hrv", want: "Croatia", method: MethodISO},
		{name: "iso spaced", in: "B. I. H.", want: "Bosnia and Herzegovina", method: MethodAlias},
		{name: "normalized stopwords", in: "Republic of Serbia", want: "Serbia", method: MethodAlias},
		{name: "normalized diacritics", in: "Čzech Republic", want: "Czech Republic", method: MethodNormalized},
		{name: "prefix adjectival", in: "Hungarians", want: "Hungary", method: MethodPrefix},
		{name: "unknown", in: "Freedonia", noMatch: true},
		{name: "blank", in: "   ", noMatch: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.in)
			if tt.noMatch {
				if got != nil {
					t.Fatalf("Resolve(%q) = %+v, want no match", tt.in, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("Resolve(%q) = nil, want %q", tt.in, tt.want)
			}
			if got.Country != tt.want {
				t.Errorf("Resolve(%q).Country = %q, want %q", tt.in, got.Country, tt.want)
			}
			if got.Method != tt.method {
				t.Errorf("Resolve(%q).Method = %q, want %q", tt.in, got.Method, tt.method)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Republika Srbija", "srbija"},
		{"Bosnia and Herzegovina", "bosnia herzegovina"},
		{"  CRNA   GORA ", "crna gora"},
		{"Kosovo*", "kosovo"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTableLabel(t *testing.T) {
	label, ok := TableLabel("tableBih")
	if !ok {
		t.Fatal("TableLabel(tableBih) not found")
	}
	if want := "Bosnia and Herzegovina, Europe & Eurasia"; label != want {
		t.Errorf("label = %q, want %q", label, want)
	}
	if _, ok := TableLabel("tableXyz"); ok {
		t.Error("TableLabel(tableXyz) matched, want miss")
	}
}

func TestLabelName(t *testing.T) {
	if got := LabelName("Albania, Europe & Eurasia"); got != "Albania" {
		t.Errorf("LabelName = %q, want Albania", got)
	}
	if got := LabelName("Kosovo"); got != "Kosovo" {
		t.Errorf("LabelName without comma = %q, want Kosovo", got)
	}
}

func TestSplitMulti(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "semicolons and commas",
			in:   []string{"Croatia; Bosnia and Herzegovina, Serbia"},
			want: []string{"Croatia", "Bosnia and Herzegovina", "Serbia"},
		},
		{
			name: "junk tokens dropped",
			in:   []string{"none", "N/A", "Croatia"},
			want: []string{"Croatia"},
		},
		{
			name: "digits only dropped",
			in:   []string{"123", "Serbia"},
			want: []string{"Serbia"},
		},
		{
			name: "empty input",
			in:   []string{"", "  "},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitMulti(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitMulti(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
