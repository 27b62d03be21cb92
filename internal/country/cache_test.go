package country

import (
	"context"
	"testing"

	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/domain"
)

type fakeCountryStore struct {
	countries []domain.Country
	inserted  []domain.Country
	findCalls int
}

func (f *fakeCountryStore) FindAll(ctx context.Context) ([]domain.Country, error) {
	f.findCalls++
	out := make([]domain.Country, len(f.countries))
	copy(out, f.countries)
	return out, nil
}

func (f *fakeCountryStore) Insert(ctx context.Context, c domain.Country) error {
	f.countries = append(f.countries, c)
	f.inserted = append(f.inserted, c)
	return nil
}

func seededStore() *fakeCountryStore {
	return &fakeCountryStore{countries: []domain.Country{
		{CID: "C001", Name: "Croatia"},
		{CID: "C002", Name: "Bosnia and Herzegovina"},
		{CID: "C007", Name: "Serbia"},
	}}
}

func TestCacheCID(t *testing.T) {
	ctx := context.Background()
	cache := NewCache(seededStore())

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "exact", in: "Croatia", want: "C001"},
		{name: "alias through resolver", in: "BiH", want: "C002"},
		{name: "iso through resolver", in: "hrv", want: "C001"},
		{name: "case insensitive fallback", in: "SERBIA", want: "C007"},
		{name: "unknown", in: "Freedonia", want: ""},
		{name: "blank", in: "  ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cache.CID(ctx, tt.in)
			if err != nil {
				t.Fatalf("CID(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("CID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCacheLoadsOnce(t *testing.T) {
	ctx := context.Background()
	fs := seededStore()
	cache := NewCache(fs)

	for range 3 {
		if _, err := cache.CID(ctx, "Croatia"); err != nil {
			t.Fatal(err)
		}
	}
	if fs.findCalls != 1 {
		t.Errorf("FindAll called %d times, want 1", fs.findCalls)
	}

	cache.Clear()
	if _, err := cache.CID(ctx, "Croatia"); err != nil {
		t.Fatal(err)
	}
	if fs.findCalls != 2 {
		t.Errorf("FindAll called %d times after Clear, want 2", fs.findCalls)
	}
}

func TestCacheEnsure(t *testing.T) {
	ctx := context.Background()
	fs := seededStore()
	cache := NewCache(fs)

	// Known name returns the existing code without an insert.
	cid, err := cache.Ensure(ctx, "Hrvatska")
	if err != nil {
		t.Fatal(err)
	}
	if cid != "C001" {
		t.Errorf("Ensure(Hrvatska) = %q, want C001", cid)
	}
	if len(fs.inserted) != 0 {
		t.Fatalf("insert count = %d, want 0", len(fs.inserted))
	}

	// Unknown name allocates past the highest existing sequence.
	cid, err = cache.Ensure(ctx, "Holandija")
	if err != nil {
		t.Fatal(err)
	}
	if cid != "C008" {
		t.Errorf("Ensure(Holandija) = %q, want C008", cid)
	}
	if len(fs.inserted) != 1 || fs.inserted[0].Name != "Holandija" {
		t.Fatalf("inserted = %+v, want one Holandija entry", fs.inserted)
	}

	// Repeat call is idempotent.
	again, err := cache.Ensure(ctx, "Holandija")
	if err != nil {
		t.Fatal(err)
	}
	if again != cid {
		t.Errorf("second Ensure = %q, want %q", again, cid)
	}
	if len(fs.inserted) != 1 {
		t.Errorf("insert count after repeat = %d, want 1", len(fs.inserted))
	}

	if _, err := cache.Ensure(ctx, "   "); err == nil {
		t.Error("Ensure(blank) succeeded, want error")
	}
}

func TestCacheName(t *testing.T) {
	ctx := context.Background()
	cache := NewCache(seededStore())
	if got := cache.Name(ctx, "C002"); got != "Bosnia and Herzegovina" {
		t.Errorf("Name(C002) = %q", got)
	}
	if got := cache.Name(ctx, "C999"); got != "C999" {
		t.Errorf("Name(C999) = %q, want passthrough", got)
	}
}
