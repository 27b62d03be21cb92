package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/domain"
)

// FileStore is a JSON-file-backed implementation of every repository
// contract, used by the CLI so imports work without external services.
// Each collection lives in one file under the data directory; documents
// are held in memory and flushed on every write. The typed repositories
// are exposed through the Countries, Participants, Events, and Snapshots
// views.
type FileStore struct {
	dir string

	mu           sync.Mutex
	countries    []domain.Doc
	participants []domain.Doc
	events       []domain.Doc
	snapshots    []domain.Doc
}

// OpenFileStore loads (or initializes) the collections under dir.
func OpenFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("open store %s: %w", dir, err)
	}
	s := &FileStore{dir: dir}

	for name, target := range map[string]*[]domain.Doc{
		"countries":    &s.countries,
		"participants": &s.participants,
		"events":       &s.events,
		"snapshots":    &s.snapshots,
	} {
		if err := s.loadCollection(name, target); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Countries returns the country reference view.
func (s *FileStore) Countries() CountryStore { return countryFiles{s} }

// Participants returns the participant identity view.
func (s *FileStore) Participants() ParticipantRepo { return participantFiles{s} }

// Events returns the event view.
func (s *FileStore) Events() EventRepo { return eventFiles{s} }

// Snapshots returns the per-event snapshot view.
func (s *FileStore) Snapshots() ParticipantEventRepo { return snapshotFiles{s} }

func (s *FileStore) loadCollection(name string, target *[]domain.Doc) error {
	path := filepath.Join(s.dir, name+".json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		*target = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// flushCollection is called with the mutex held.
func (s *FileStore) flushCollection(name string, docs []domain.Doc) error {
	path := filepath.Join(s.dir, name+".json")
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func (s *FileStore) indexOf(docs []domain.Doc, key, value string) int {
	for i, doc := range docs {
		if v, _ := doc[key].(string); v == value {
			return i
		}
	}
	return -1
}

// SeedCountries inserts reference entries for any of the given names not
// yet present, allocating sequential codes. Used to initialize a fresh
// data directory with the known country set.
func (s *FileStore) SeedCountries(ctx context.Context, names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	known := make(map[string]bool, len(s.countries))
	maxSeq := 0
	for _, doc := range s.countries {
		name, _ := doc["country"].(string)
		known[strings.ToLower(name)] = true
		cid, _ := doc["cid"].(string)
		if n, err := strconv.Atoi(strings.TrimPrefix(cid, "C")); err == nil && n > maxSeq {
			maxSeq = n
		}
	}

	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	changed := false
	for _, name := range sorted {
		if name == "" || known[strings.ToLower(name)] {
			continue
		}
		maxSeq++
		c := domain.Country{CID: fmt.Sprintf("C%03d", maxSeq), Name: name}
		if err := c.Validate(); err != nil {
			return err
		}
		s.countries = append(s.countries, c.ToDoc())
		known[strings.ToLower(name)] = true
		changed = true
	}
	if !changed {
		return nil
	}
	return s.flushCollection("countries", s.countries)
}

// Reset truncates every collection. Destructive; the CLI asks for an
// explicit flag before calling this.
func (s *FileStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.countries = nil
	s.participants = nil
	s.events = nil
	s.snapshots = nil
	for name, docs := range map[string][]domain.Doc{
		"countries":    s.countries,
		"participants": s.participants,
		"events":       s.events,
		"snapshots":    s.snapshots,
	} {
		if err := s.flushCollection(name, docs); err != nil {
			return err
		}
	}
	return nil
}

type countryFiles struct{ s *FileStore }

func (f countryFiles) FindAll(ctx context.Context) ([]domain.Country, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	out := make([]domain.Country, 0, len(f.s.countries))
	for _, doc := range f.s.countries {
		c, err := domain.CountryFromDoc(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

func (f countryFiles) Insert(ctx context.Context, c domain.Country) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if f.s.indexOf(f.s.countries, "cid", c.CID) >= 0 {
		return fmt.Errorf("country %s already exists", c.CID)
	}
	f.s.countries = append(f.s.countries, c.ToDoc())
	return f.s.flushCollection("countries", f.s.countries)
}

type participantFiles struct{ s *FileStore }

// FindByPID returns (nil, nil) for a missing participant.
func (f participantFiles) FindByPID(ctx context.Context, pid string) (*domain.Participant, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	i := f.s.indexOf(f.s.participants, "pid", pid)
	if i < 0 {
		return nil, nil
	}
	return domain.ParticipantFromDoc(f.s.participants[i])
}

func (f participantFiles) FindByCountry(ctx context.Context, cid string) ([]domain.Participant, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	var out []domain.Participant
	for _, doc := range f.s.participants {
		p, err := domain.ParticipantFromDoc(doc)
		if err != nil {
			return nil, err
		}
		if p.RepresentingCountry == cid {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f participantFiles) Save(ctx context.Context, p *domain.Participant) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if f.s.indexOf(f.s.participants, "pid", p.PID) >= 0 {
		return fmt.Errorf("participant %s already exists", p.PID)
	}
	f.s.participants = append(f.s.participants, p.ToDoc())
	return f.s.flushCollection("participants", f.s.participants)
}

func (f participantFiles) Update(ctx context.Context, p *domain.Participant) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	i := f.s.indexOf(f.s.participants, "pid", p.PID)
	if i < 0 {
		return fmt.Errorf("participant %s not found", p.PID)
	}
	f.s.participants[i] = p.ToDoc()
	return f.s.flushCollection("participants", f.s.participants)
}

// NextPID allocates "P" plus a zero-padded counter one past the highest
// allocated so far.
func (f participantFiles) NextPID(ctx context.Context) (string, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	maxSeq := 0
	for _, doc := range f.s.participants {
		pid, _ := doc["pid"].(string)
		if n, err := strconv.Atoi(strings.TrimPrefix(pid, "P")); err == nil && n > maxSeq {
			maxSeq = n
		}
	}
	return fmt.Sprintf("P%04d", maxSeq+1), nil
}

type eventFiles struct{ s *FileStore }

// FindByEID returns (nil, nil) for a missing event.
func (f eventFiles) FindByEID(ctx context.Context, eid string) (*domain.Event, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	i := f.s.indexOf(f.s.events, "eid", eid)
	if i < 0 {
		return nil, nil
	}
	return domain.EventFromDoc(f.s.events[i])
}

// Save replaces any document with the same EID.
func (f eventFiles) Save(ctx context.Context, e *domain.Event) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if i := f.s.indexOf(f.s.events, "eid", e.EID); i >= 0 {
		f.s.events[i] = e.ToDoc()
	} else {
		f.s.events = append(f.s.events, e.ToDoc())
	}
	return f.s.flushCollection("events", f.s.events)
}

type snapshotFiles struct{ s *FileStore }

// Find returns (nil, nil) for a missing snapshot.
func (f snapshotFiles) Find(ctx context.Context, eid, pid string) (*domain.EventParticipant, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	for _, doc := range f.s.snapshots {
		if eventID, _ := doc["event_id"].(string); eventID != eid {
			continue
		}
		if participantID, _ := doc["participant_id"].(string); participantID == pid {
			return domain.EventParticipantFromDoc(doc)
		}
	}
	return nil, nil
}

// BulkUpsert inserts or replaces snapshots keyed by (event, participant).
func (f snapshotFiles) BulkUpsert(ctx context.Context, snapshots []domain.EventParticipant) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	byKey := make(map[string]int, len(f.s.snapshots))
	for i, doc := range f.s.snapshots {
		eventID, _ := doc["event_id"].(string)
		participantID, _ := doc["participant_id"].(string)
		byKey[eventID+"/"+participantID] = i
	}
	for i := range snapshots {
		ep := &snapshots[i]
		if j, ok := byKey[ep.Key()]; ok {
			f.s.snapshots[j] = ep.ToDoc()
		} else {
			byKey[ep.Key()] = len(f.s.snapshots)
			f.s.snapshots = append(f.s.snapshots, ep.ToDoc())
		}
	}
	return f.s.flushCollection("snapshots", f.s.snapshots)
}
