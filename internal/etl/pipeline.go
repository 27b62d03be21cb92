package etl

import (
	"context"
	"log/slog"

	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/country"
	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/store"
)

// Pipeline wires the import flow to its collaborators. One Pipeline serves
// one import run: its country cache and participant lookup carry run-local
// state. Construct a fresh one per upload, or call Reset in between.
type Pipeline struct {
	Countries *country.Cache
	Repo      store.ParticipantRepo
	Events    store.EventRepo
	Snapshots store.ParticipantEventRepo

	// Translator is optional best-effort enrichment; nil disables it.
	Translator store.Translator

	Lookup *ParticipantLookup
	Log    *slog.Logger

	// RequireCrossRoster makes the MAIN ONLINE roster table mandatory
	// during structural validation.
	RequireCrossRoster bool
}

// Deps are the collaborators a Pipeline needs. Repositories are consumed,
// never owned; tests pass in-memory fakes.
type Deps struct {
	Countries          store.CountryStore
	Participants       store.ParticipantRepo
	Events             store.EventRepo
	Snapshots          store.ParticipantEventRepo
	Translator         store.Translator
	Log                *slog.Logger
	RequireCrossRoster bool
}

// NewPipeline builds a run-scoped pipeline over the given collaborators.
func NewPipeline(d Deps) *Pipeline {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		Countries:          country.NewCache(d.Countries),
		Repo:               d.Participants,
		Events:             d.Events,
		Snapshots:          d.Snapshots,
		Translator:         d.Translator,
		Lookup:             NewParticipantLookup(d.Participants),
		Log:                log,
		RequireCrossRoster: d.RequireCrossRoster,
	}
}

// Reset drops all run-local cached state so the pipeline can serve another
// independent import.
func (p *Pipeline) Reset() {
	p.Countries.Clear()
	p.Lookup.Clear()
}

// translate converts free text to English when a translator is wired.
// Failures fall back to the original text; translation is enrichment, not
// a gate.
func (p *Pipeline) translate(ctx context.Context, text string) string {
	if p.Translator == nil || text == "" {
		return text
	}
	out, err := p.Translator.Translate(ctx, text, "en", "")
	if err != nil {
		p.Log.Debug("translation failed", "error", err)
		return text
	}
	return out
}
