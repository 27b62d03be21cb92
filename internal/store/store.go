// Package store declares the persistence and lookup contracts the import
// pipeline consumes. The pipeline never owns these collaborators; it
// receives implementations from the caller and only writes through them in
// the commit phase. Production implementations (document store, HTTP
// translation client) live outside this module; a JSON file store ships
// here so the CLI works standalone, and tests use in-memory fakes.
package store

import (
	"context"

	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/domain"
)

// CountryStore is the country reference collection.
type CountryStore interface {
	// FindAll returns every country reference entry.
	FindAll(ctx context.Context) ([]domain.Country, error)
	// Insert persists a newly allocated country reference entry.
	Insert(ctx context.Context, c domain.Country) error
}

// ParticipantRepo is the participant identity collection.
type ParticipantRepo interface {
	FindByPID(ctx context.Context, pid string) (*domain.Participant, error)
	// FindByCountry returns all participants representing the given CID.
	FindByCountry(ctx context.Context, cid string) ([]domain.Participant, error)
	Save(ctx context.Context, p *domain.Participant) error
	Update(ctx context.Context, p *domain.Participant) error
	// NextPID allocates the next sequential participant identifier
	// (letter prefix plus zero-padded counter, e.g. "P0042").
	NextPID(ctx context.Context) (string, error)
}

// EventRepo is the event collection.
type EventRepo interface {
	FindByEID(ctx context.Context, eid string) (*domain.Event, error)
	Save(ctx context.Context, e *domain.Event) error
}

// ParticipantEventRepo holds the per-event participant snapshots, unique
// per (event id, participant id) pair.
type ParticipantEventRepo interface {
	Find(ctx context.Context, eid, pid string) (*domain.EventParticipant, error)
	// BulkUpsert inserts or replaces snapshots keyed by their pair.
	BulkUpsert(ctx context.Context, snapshots []domain.EventParticipant) error
}

// Translator converts text to a target language. When expectedSource is
// non-empty and the detected source language differs, the call fails.
// Translation is best-effort enrichment: callers fall back to the original
// text on error and never treat a failure as pipeline-fatal.
type Translator interface {
	Translate(ctx context.Context, text, targetLang, expectedSource string) (string, error)
}
