package etl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/domain"
)

// ErrDuplicateEvent aborts a commit whose event was already uploaded.
// Nothing is written when it is returned.
var ErrDuplicateEvent = errors.New("event already uploaded")

// CommitResult summarizes what one commit wrote.
type CommitResult struct {
	Event     *domain.Event
	Created   []*domain.Participant
	Updated   []*domain.Participant
	Snapshots []*domain.EventParticipant
	Skipped   []SkippedRow
}

// Commit persists a reviewed preview: participants first (matching
// identities, allocating PIDs for new people), then the per-event
// snapshots, then the event itself carrying the final participant list.
// A duplicate event id aborts before any write. Individual records failing
// validation are skipped and reported; the batch continues.
func (p *Pipeline) Commit(ctx context.Context, preview *Preview) (*CommitResult, error) {
	if preview == nil || preview.Event.EID == "" {
		return nil, fmt.Errorf("commit: preview has no event")
	}
	eid := preview.Event.EID

	existing, err := p.Events.FindByEID(ctx, eid)
	if err != nil {
		return nil, fmt.Errorf("commit %s: %w", eid, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("commit %s: %w", eid, ErrDuplicateEvent)
	}

	if preview.Bundle != nil {
		return p.commitBundle(ctx, preview)
	}
	return p.commitAttendees(ctx, preview)
}

func (p *Pipeline) commitAttendees(ctx context.Context, preview *Preview) (*CommitResult, error) {
	eid := preview.Event.EID
	now := time.Now().UTC()
	result := &CommitResult{}

	var pids []string
	var snapshots []domain.EventParticipant

	for i := range preview.Attendees {
		attendee := preview.Attendees[i]

		stored, err := p.matchStored(ctx, &attendee)
		if err != nil {
			return nil, err
		}

		if stored != nil {
			attendee.PID = stored.PID
			stored.ApplyUpdate(attendee.Participant(), now)
			if err := stored.Validate(); err != nil {
				result.Skipped = append(result.Skipped, SkippedRow{
					Name: attendee.Name, Reason: err.Error(),
				})
				continue
			}
			if err := p.Repo.Update(ctx, stored); err != nil {
				return nil, fmt.Errorf("update participant %s: %w", stored.PID, err)
			}
			result.Updated = append(result.Updated, stored)
		} else {
			pid, err := p.Repo.NextPID(ctx)
			if err != nil {
				return nil, fmt.Errorf("allocate pid: %w", err)
			}
			attendee.PID = pid
			participant := attendee.Participant()
			if err := participant.Validate(); err != nil {
				result.Skipped = append(result.Skipped, SkippedRow{
					Name: attendee.Name, Reason: err.Error(),
				})
				continue
			}
			if err := p.Repo.Save(ctx, participant); err != nil {
				return nil, fmt.Errorf("save participant %s: %w", pid, err)
			}
			p.Lookup.Add(participant)
			result.Created = append(result.Created, participant)
		}

		pids = append(pids, attendee.PID)

		snapshot := attendee.Snapshot(eid)
		if err := snapshot.Validate(); err != nil {
			result.Skipped = append(result.Skipped, SkippedRow{
				Name: attendee.Name, Reason: err.Error(),
			})
			continue
		}
		snapshots = append(snapshots, *snapshot)
		result.Snapshots = append(result.Snapshots, snapshot)
	}

	if len(snapshots) > 0 {
		if err := p.Snapshots.BulkUpsert(ctx, snapshots); err != nil {
			return nil, fmt.Errorf("upsert snapshots for %s: %w", eid, err)
		}
	}

	event := preview.Event
	event.Participants = pids
	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("commit %s: %w", eid, err)
	}
	if err := p.Events.Save(ctx, &event); err != nil {
		return nil, fmt.Errorf("save event %s: %w", eid, err)
	}
	result.Event = &event

	p.Log.Info("import committed", "eid", eid,
		"created", len(result.Created), "updated", len(result.Updated),
		"snapshots", len(result.Snapshots), "skipped", len(result.Skipped))
	return result, nil
}

// matchStored finds the stored identity for an attendee, by PID when the
// preview already matched one, else by (name, country, DOB).
func (p *Pipeline) matchStored(ctx context.Context, a *Attendee) (*domain.Participant, error) {
	if a.PID != "" {
		stored, err := p.Repo.FindByPID(ctx, a.PID)
		if err != nil {
			return nil, fmt.Errorf("find participant %s: %w", a.PID, err)
		}
		if stored != nil {
			return stored, nil
		}
	}
	return p.Lookup.Find(ctx, a.Name, a.RepresentingCountry, a.DOB)
}

// commitBundle persists domain objects that arrived fully built through
// the custom-XML path. Participants without a PID, or whose PID is unknown
// to the store, go through the same identity matching as roster rows.
func (p *Pipeline) commitBundle(ctx context.Context, preview *Preview) (*CommitResult, error) {
	bundle := preview.Bundle
	eid := preview.Event.EID
	now := time.Now().UTC()
	result := &CommitResult{}

	pidAlias := make(map[string]string, len(bundle.Participants))
	var pids []string

	for _, incoming := range bundle.Participants {
		declaredPID := incoming.PID

		var stored *domain.Participant
		var err error
		if declaredPID != "" {
			stored, err = p.Repo.FindByPID(ctx, declaredPID)
			if err != nil {
				return nil, fmt.Errorf("find participant %s: %w", declaredPID, err)
			}
		}
		if stored == nil {
			stored, err = p.Lookup.Find(ctx, incoming.Name, incoming.RepresentingCountry, incoming.DOB)
			if err != nil {
				return nil, err
			}
		}

		if stored != nil {
			stored.ApplyUpdate(incoming, now)
			if err := p.Repo.Update(ctx, stored); err != nil {
				return nil, fmt.Errorf("update participant %s: %w", stored.PID, err)
			}
			pidAlias[declaredPID] = stored.PID
			pids = append(pids, stored.PID)
			result.Updated = append(result.Updated, stored)
			continue
		}

		pid, err := p.Repo.NextPID(ctx)
		if err != nil {
			return nil, fmt.Errorf("allocate pid: %w", err)
		}
		incoming.PID = pid
		if err := p.Repo.Save(ctx, incoming); err != nil {
			return nil, fmt.Errorf("save participant %s: %w", pid, err)
		}
		p.Lookup.Add(incoming)
		pidAlias[declaredPID] = pid
		pids = append(pids, pid)
		result.Created = append(result.Created, incoming)
	}

	var snapshots []domain.EventParticipant
	for _, snapshot := range bundle.Snapshots {
		ep := *snapshot
		ep.EventID = eid
		if mapped, ok := pidAlias[ep.ParticipantID]; ok {
			ep.ParticipantID = mapped
		}
		if err := ep.Validate(); err != nil {
			result.Skipped = append(result.Skipped, SkippedRow{
				Name: ep.ParticipantID, Reason: err.Error(),
			})
			continue
		}
		snapshots = append(snapshots, ep)
		result.Snapshots = append(result.Snapshots, &snapshots[len(snapshots)-1])
	}
	if len(snapshots) > 0 {
		if err := p.Snapshots.BulkUpsert(ctx, snapshots); err != nil {
			return nil, fmt.Errorf("upsert snapshots for %s: %w", eid, err)
		}
	}

	event := preview.Event
	event.Participants = pids
	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("commit %s: %w", eid, err)
	}
	if err := p.Events.Save(ctx, &event); err != nil {
		return nil, fmt.Errorf("save event %s: %w", eid, err)
	}
	result.Event = &event

	p.Log.Info("import committed", "eid", eid, "source", "custom_xml",
		"created", len(result.Created), "updated", len(result.Updated),
		"snapshots", len(result.Snapshots), "skipped", len(result.Skipped))
	return result, nil
}
