package etl

import (
	"context"
	"fmt"

	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/country"
	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/domain"
	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/normalize"
	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/xlsx"
)

// SkippedRow reports a roster row excluded from the batch, with enough
// context for the reviewer to find it in the workbook.
type SkippedRow struct {
	Table  string `json:"table"`
	Row    int    `json:"row"` // 0-based data row within the table
	Name   string `json:"name,omitempty"`
	Reason string `json:"reason"`
}

// Bundle holds fully built domain objects. Populated only on the
// custom-XML path, where the workbook embeds them directly.
type Bundle struct {
	Event        *domain.Event
	Events       []*domain.Event
	Participants []*domain.Participant
	Snapshots    []*domain.EventParticipant
}

// Preview is the parse result put before a human before anything is
// written: the event, the merged attendees, and what was skipped.
type Preview struct {
	Event     domain.Event
	Attendees []Attendee
	Bundle    *Bundle
	Skipped   []SkippedRow
}

// ParseForPreview parses the workbook into a preview payload. No store
// writes happen here; the store is only read for country resolution and
// identity matching. A workbook with an embedded custom-XML payload skips
// table discovery entirely.
func (p *Pipeline) ParseForPreview(ctx context.Context, path string) (*Preview, error) {
	records, err := xlsx.CollectCustomRecords(path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if !records.Empty() {
		return p.previewFromCustomXML(records)
	}

	cache := xlsx.NewWorkbookCache(path)
	defer cache.Clear()

	structure, err := p.ValidateStructure(path, cache)
	if err != nil {
		return nil, err
	}
	if err := structure.Err(); err != nil {
		return nil, err
	}

	hdr, err := p.ReadEventHeader(ctx, cache, path)
	if err != nil {
		return nil, err
	}

	preview := &Preview{
		Event: domain.Event{
			EID:       hdr.EID,
			Title:     hdr.Title,
			StartDate: hdr.StartDate,
			EndDate:   hdr.EndDate,
			Place:     hdr.Place,
			Country:   hdr.Country,
			Type:      domain.EventTraining,
			Cost:      hdr.Cost,
		},
	}

	profileLookup := map[string]ProfileEntry{}
	if ref, ok := structure.Tables[xlsx.NormTableName(TableProfile)]; ok {
		table, err := cache.Dataset(ref)
		if err != nil {
			return nil, err
		}
		profileLookup = BuildProfileLookup(table)
	}

	onlineLookup := map[string]*OnlineEntry{}
	if ref, ok := structure.Tables[xlsx.NormTableName(TableCrossRoster)]; ok {
		table, err := cache.Dataset(ref)
		if err != nil {
			return nil, err
		}
		onlineLookup = p.BuildOnlineLookup(ctx, table)
	}

	p.Log.Debug("lookup indexes built",
		"profile_entries", len(profileLookup), "online_entries", len(onlineLookup))

	for _, tableName := range CountryTables() {
		ref, ok := structure.Tables[xlsx.NormTableName(tableName)]
		if !ok {
			continue
		}
		label, _ := country.TableLabel(tableName)
		if err := p.parseCountryTable(ctx, cache, ref, label, profileLookup, onlineLookup, preview); err != nil {
			return nil, err
		}
	}
	return preview, nil
}

// parseCountryTable merges every row of one per-country roster into the
// preview. Rows failing strict validation are reported and excluded; the
// rest of the batch continues.
func (p *Pipeline) parseCountryTable(
	ctx context.Context,
	cache *xlsx.WorkbookCache,
	ref xlsx.TableRef,
	countryLabel string,
	profileLookup map[string]ProfileEntry,
	onlineLookup map[string]*OnlineEntry,
	preview *Preview,
) error {
	table, err := cache.Dataset(ref)
	if err != nil {
		return err
	}
	if table.Empty() {
		return nil
	}

	mapping := Mapping(SheetParticipants, ref.Name)
	headerFor := func(field string) string {
		for header, target := range mapping {
			if target == field {
				return header
			}
		}
		return ""
	}

	nameCol := table.Col(headerFor("name_full"))
	travelCol := table.Col(headerFor("travel"))
	fromCol := table.Col(headerFor("traveling_from"))
	gradeCol := table.Col(headerFor("grade"))
	if nameCol < 0 {
		return nil
	}

	countryName := country.LabelName(countryLabel)
	countryCID := p.resolveCID(ctx, countryName)
	if countryCID == "" {
		countryCID = countryName
	}

	for i := range table.Rows {
		rawName := table.Cell(i, nameCol)
		if rawName == "" || normalize.Fold(rawName) == "total" {
			continue
		}

		row := rosterRow{
			RawName:         rawName,
			Transportation:  table.Cell(i, travelCol),
			TravelingFrom:   table.Cell(i, fromCol),
			hasTravelColumn: travelCol >= 0,
		}
		if gradeCol >= 0 {
			if raw := table.Cell(i, gradeCol); raw != "" {
				g := normalize.Grade(raw)
				row.Grade = &g
			}
		}

		online, _ := findByVariants(onlineLookup, rawName)
		var profile *ProfileEntry
		if entry, ok := findByVariants(profileLookup, rawName); ok {
			profile = &entry
		}

		attendee := p.buildAttendee(ctx, row, countryCID, profile, online)

		existing, err := p.Lookup.Find(ctx, attendee.Name, attendee.RepresentingCountry, attendee.DOB)
		if err != nil {
			return err
		}
		if existing != nil {
			attendee.PID = existing.PID
		}

		probe := attendee
		if probe.PID == "" {
			probe.PID = "TMP"
		}
		if err := probe.Participant().Validate(); err != nil {
			preview.Skipped = append(preview.Skipped, SkippedRow{
				Table: ref.Name, Row: i, Name: attendee.Name, Reason: err.Error(),
			})
			p.Log.Debug("row excluded", "table", ref.Name, "row", i, "error", err)
			continue
		}

		preview.Attendees = append(preview.Attendees, attendee)
	}
	return nil
}

// previewFromCustomXML builds the preview from embedded records. Records
// failing validation are reported and dropped, mirroring the row policy of
// the table path.
func (p *Pipeline) previewFromCustomXML(records *xlsx.CustomRecords) (*Preview, error) {
	bundle := &Bundle{}
	preview := &Preview{Bundle: bundle}

	for i, rec := range records.Events {
		event, err := buildEventFromRecord(rec)
		if err != nil {
			preview.Skipped = append(preview.Skipped, SkippedRow{
				Table: "customXml/event", Row: i, Reason: err.Error(),
			})
			continue
		}
		bundle.Events = append(bundle.Events, event)
	}
	if len(bundle.Events) > 0 {
		bundle.Event = bundle.Events[0]
		preview.Event = *bundle.Event
	}

	for i, rec := range records.Participants {
		participant, err := buildParticipantFromRecord(rec)
		if err != nil {
			preview.Skipped = append(preview.Skipped, SkippedRow{
				Table: "customXml/participant", Row: i, Name: rec["name"], Reason: err.Error(),
			})
			continue
		}
		bundle.Participants = append(bundle.Participants, participant)
	}

	for i, rec := range records.ParticipantEvents {
		snapshot, err := buildSnapshotFromRecord(rec)
		if err != nil {
			preview.Skipped = append(preview.Skipped, SkippedRow{
				Table: "customXml/participant_event", Row: i, Reason: err.Error(),
			})
			continue
		}
		bundle.Snapshots = append(bundle.Snapshots, snapshot)
	}

	if bundle.Event == nil && len(bundle.Participants) == 0 && len(bundle.Snapshots) == 0 {
		return nil, fmt.Errorf("custom XML payload contained no valid records")
	}

	byPID := make(map[string]*domain.Participant, len(bundle.Participants))
	for _, participant := range bundle.Participants {
		byPID[participant.PID] = participant
	}
	for _, snapshot := range bundle.Snapshots {
		participant, ok := byPID[snapshot.ParticipantID]
		if !ok {
			continue
		}
		preview.Attendees = append(preview.Attendees, mergeAttendeePreview(participant, snapshot))
	}
	return preview, nil
}

// mergeAttendeePreview combines a participant and its event snapshot into
// one flat attendee view for human review.
func mergeAttendeePreview(participant *domain.Participant, snapshot *domain.EventParticipant) Attendee {
	a := Attendee{
		PID:                 participant.PID,
		Name:                participant.Name,
		RepresentingCountry: participant.RepresentingCountry,
		Gender:              participant.Gender,
		Grade:               participant.Grade,
		DOB:                 participant.DOB,
		POB:                 participant.POB,
		BirthCountry:        participant.BirthCountry,
		Citizenships:        append([]string(nil), participant.Citizenships...),
		DietRestrictions:    participant.DietRestrictions,
		Organization:        participant.Organization,
		Unit:                participant.Unit,
		Position:            participant.Position,
		Rank:                participant.Rank,
		IntlAuthority:       participant.IntlAuthority,
		BioShort:            participant.BioShort,

		Transportation:    snapshot.Transportation.String(),
		TransportOther:    snapshot.TransportOther,
		TravelingFrom:     snapshot.TravelingFrom,
		ReturningTo:       snapshot.ReturningTo,
		TravelDocType:     snapshot.TravelDocType,
		TravelDocNumber:   snapshot.TravelDocNumber,
		TravelDocIssue:    snapshot.TravelDocIssueDate,
		TravelDocExpiry:   snapshot.TravelDocExpiryDate,
		TravelDocIssuedBy: snapshot.TravelDocIssuedBy,
		BankName:          snapshot.BankName,
		IBAN:              snapshot.IBAN,
		SWIFT:             snapshot.SWIFT,
	}
	if participant.Email != nil {
		a.Email = *participant.Email
	}
	if participant.Phone != nil {
		a.Phone = *participant.Phone
	}
	if snapshot.IbanType != nil {
		a.IbanType = snapshot.IbanType.String()
	}
	return a
}
