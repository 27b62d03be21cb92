package etl

import (
	"context"
	"fmt"

	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/normalize"
)

// PhoneFixResult summarizes one renormalization pass.
type PhoneFixResult struct {
	Scanned int
	Fixed   int
	Cleared int
}

// RenormalizePhones is the one-off maintenance pass over persisted
// participants: every stored phone is pushed through the strict legacy
// acceptance window (a full country-code number, 11 to 12 digits).
// Numbers that re-normalize to a different value are updated; values that
// fail the window are cleared as corrupt. Participants are reached per
// country through the reference collection.
func (p *Pipeline) RenormalizePhones(ctx context.Context) (*PhoneFixResult, error) {
	countries, err := p.Countries.Known(ctx)
	if err != nil {
		return nil, err
	}

	result := &PhoneFixResult{}
	for _, name := range countries {
		cid, err := p.Countries.CID(ctx, name)
		if err != nil {
			return nil, err
		}
		if cid == "" {
			continue
		}
		participants, err := p.Repo.FindByCountry(ctx, cid)
		if err != nil {
			return nil, fmt.Errorf("load participants for %s: %w", cid, err)
		}

		for i := range participants {
			participant := &participants[i]
			if participant.Phone == nil || *participant.Phone == "" {
				continue
			}
			result.Scanned++

			fixed, ok := normalize.PhoneLegacy(*participant.Phone)
			switch {
			case !ok:
				p.Log.Warn("clearing corrupt phone",
					"pid", participant.PID, "phone", *participant.Phone)
				participant.Phone = nil
				result.Cleared++
			case fixed == *participant.Phone:
				continue
			default:
				p.Log.Info("renormalized phone",
					"pid", participant.PID, "from", *participant.Phone, "to", fixed)
				participant.Phone = &fixed
				result.Fixed++
			}

			if err := p.Repo.Update(ctx, participant); err != nil {
				return nil, fmt.Errorf("update participant %s: %w", participant.PID, err)
			}
		}
	}
	return result, nil
}
