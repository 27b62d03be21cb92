package etl

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/domain"
)

// In-memory store fakes. writes records the order of mutating calls so
// commit-ordering tests can assert participants land before the event.

type fakeStores struct {
	countries    []domain.Country
	participants map[string]*domain.Participant
	events       map[string]*domain.Event
	snapshots    map[string]domain.EventParticipant

	nextPID int
	writes  []string
}

func newFakeStores() *fakeStores {
	return &fakeStores{
		countries: []domain.Country{
			{CID: "C001", Name: "Albania"},
			{CID: "C002", Name: "Bosnia and Herzegovina"},
			{CID: "C003", Name: "Croatia"},
			{CID: "C004", Name: "Kosovo"},
			{CID: "C005", Name: "Montenegro"},
			{CID: "C006", Name: "North Macedonia"},
			{CID: "C007", Name: "Serbia"},
		},
		participants: map[string]*domain.Participant{},
		events:       map[string]*domain.Event{},
		snapshots:    map[string]domain.EventParticipant{},
	}
}

type fakeCountries struct{ s *fakeStores }

func (f fakeCountries) FindAll(ctx context.Context) ([]domain.Country, error) {
	return append([]domain.Country(nil), f.s.countries...), nil
}

func (f fakeCountries) Insert(ctx context.Context, c domain.Country) error {
	f.s.countries = append(f.s.countries, c)
	f.s.writes = append(f.s.writes, "country:"+c.CID)
	return nil
}

type fakeParticipants struct{ s *fakeStores }

func (f fakeParticipants) FindByPID(ctx context.Context, pid string) (*domain.Participant, error) {
	if p, ok := f.s.participants[pid]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, nil
}

func (f fakeParticipants) FindByCountry(ctx context.Context, cid string) ([]domain.Participant, error) {
	var out []domain.Participant
	for _, p := range f.s.participants {
		if p.RepresentingCountry == cid {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f fakeParticipants) Save(ctx context.Context, p *domain.Participant) error {
	if _, ok := f.s.participants[p.PID]; ok {
		return fmt.Errorf("participant %s already exists", p.PID)
	}
	clone := *p
	f.s.participants[p.PID] = &clone
	f.s.writes = append(f.s.writes, "participant:"+p.PID)
	return nil
}

func (f fakeParticipants) Update(ctx context.Context, p *domain.Participant) error {
	if _, ok := f.s.participants[p.PID]; !ok {
		return fmt.Errorf("participant %s not found", p.PID)
	}
	clone := *p
	f.s.participants[p.PID] = &clone
	f.s.writes = append(f.s.writes, "participant-update:"+p.PID)
	return nil
}

func (f fakeParticipants) NextPID(ctx context.Context) (string, error) {
	f.s.nextPID++
	return fmt.Sprintf("P%04d", f.s.nextPID), nil
}

type fakeEvents struct{ s *fakeStores }

func (f fakeEvents) FindByEID(ctx context.Context, eid string) (*domain.Event, error) {
	if e, ok := f.s.events[eid]; ok {
		clone := *e
		return &clone, nil
	}
	return nil, nil
}

func (f fakeEvents) Save(ctx context.Context, e *domain.Event) error {
	clone := *e
	f.s.events[e.EID] = &clone
	f.s.writes = append(f.s.writes, "event:"+e.EID)
	return nil
}

type fakeSnapshots struct{ s *fakeStores }

func (f fakeSnapshots) Find(ctx context.Context, eid, pid string) (*domain.EventParticipant, error) {
	if ep, ok := f.s.snapshots[eid+"/"+pid]; ok {
		clone := ep
		return &clone, nil
	}
	return nil, nil
}

func (f fakeSnapshots) BulkUpsert(ctx context.Context, snapshots []domain.EventParticipant) error {
	for _, ep := range snapshots {
		f.s.snapshots[ep.Key()] = ep
		f.s.writes = append(f.s.writes, "snapshot:"+ep.Key())
	}
	return nil
}

type fakeTranslator struct {
	translations map[string]string
	fail         bool
}

func (f fakeTranslator) Translate(ctx context.Context, text, targetLang, expectedSource string) (string, error) {
	if f.fail {
		return "", fmt.Errorf("translator offline")
	}
	if out, ok := f.translations[text]; ok {
		return out, nil
	}
	return text, nil
}

func newTestPipeline(t *testing.T, s *fakeStores) *Pipeline {
	t.Helper()
	return NewPipeline(Deps{
		Countries:    fakeCountries{s},
		Participants: fakeParticipants{s},
		Events:       fakeEvents{s},
		Snapshots:    fakeSnapshots{s},
		Log:          slog.New(slog.DiscardHandler),
	})
}
