package normalize

import "testing"

func TestPhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{name: "e164 passthrough", in: "+38761234567", want: "+38761234567", ok: true},
		{name: "spaces and punctuation", in: "+387 61/234-567", want: "+38761234567", ok: true},
		{name: "int'l call prefix", in: "0038761234567", want: "+38761234567", ok: true},
		{name: "bare digits in window", in: "38761234567", want: "+38761234567", ok: true},
		{name: "too short", in: "1234567", ok: false},
		{name: "too long", in: "12345678901234567890", ok: false},
		{name: "words", in: "call me", ok: false},
		{name: "blank", in: "  ", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Phone(tt.in)
			if ok != tt.ok {
				t.Fatalf("Phone(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Phone(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPhoneLegacy(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{name: "full country-code number", in: "00387 61 234 567", want: "+38761234567", ok: true},
		{name: "already canonical", in: "+38761234567", want: "+38761234567", ok: true},
		{name: "local number rejected", in: "061/234-567", ok: false},
		{name: "blank", in: "", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PhoneLegacy(tt.in)
			if ok != tt.ok {
				t.Fatalf("PhoneLegacy(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("PhoneLegacy(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
