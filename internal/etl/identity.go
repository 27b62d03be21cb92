package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/domain"
	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/normalize"
	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/store"
)

// ParticipantLookup matches attendee rows to stored participant
// identities. One instance lives for one pipeline run and is handed
// through the call chain; participants are loaded lazily per representing
// country and cached. Call Refresh between runs that might observe newly
// committed participants.
type ParticipantLookup struct {
	repo      store.ParticipantRepo
	byCountry map[string][]*domain.Participant
}

// NewParticipantLookup builds an empty per-run lookup over repo.
func NewParticipantLookup(repo store.ParticipantRepo) *ParticipantLookup {
	return &ParticipantLookup{
		repo:      repo,
		byCountry: make(map[string][]*domain.Participant),
	}
}

// Clear drops all cached participants.
func (l *ParticipantLookup) Clear() {
	l.byCountry = make(map[string][]*domain.Participant)
}

// Refresh is Clear under the name callers reach for between runs.
func (l *ParticipantLookup) Refresh() { l.Clear() }

func (l *ParticipantLookup) load(ctx context.Context, cid string) ([]*domain.Participant, error) {
	if cached, ok := l.byCountry[cid]; ok {
		return cached, nil
	}
	participants, err := l.repo.FindByCountry(ctx, cid)
	if err != nil {
		return nil, fmt.Errorf("load participants for %s: %w", cid, err)
	}
	loaded := make([]*domain.Participant, len(participants))
	for i := range participants {
		loaded[i] = &participants[i]
	}
	l.byCountry[cid] = loaded
	return loaded, nil
}

// identityName reduces a display name to its comparison form.
func identityName(name string) string {
	return normalize.Fold(normalize.DisplayName(name))
}

// sameDay compares two optional dates on the calendar day only.
func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return false
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Find returns the stored participant matching (display name, representing
// country, optional date of birth), or nil. A stored record without a DOB
// matches any incoming DOB; a stored DOB that conflicts with a provided one
// rejects the candidate. Name comparison is case- and accent-insensitive.
func (l *ParticipantLookup) Find(ctx context.Context, name, representingCID string, dob *time.Time) (*domain.Participant, error) {
	if representingCID == "" {
		return nil, nil
	}
	candidates, err := l.load(ctx, representingCID)
	if err != nil {
		return nil, err
	}

	want := identityName(name)
	if want == "" {
		return nil, nil
	}

	var nameOnly *domain.Participant
	for _, p := range candidates {
		if identityName(p.Name) != want {
			continue
		}
		if sameDay(p.DOB, dob) {
			return p, nil
		}
		if p.DOB == nil || dob == nil {
			if nameOnly == nil {
				nameOnly = p
			}
		}
		// Both DOBs present but different: not the same person.
	}
	return nameOnly, nil
}

// Add records a newly committed participant so later rows in the same run
// can match it without a refresh. Countries not yet loaded are left alone;
// their next load reads the store, which already has the new record.
func (l *ParticipantLookup) Add(p *domain.Participant) {
	cid := p.RepresentingCountry
	if loaded, ok := l.byCountry[cid]; ok {
		l.byCountry[cid] = append(loaded, p)
	}
}
