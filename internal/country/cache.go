package country

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/domain"
	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/normalize"
	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/store"
)

// entry is a cached country with its precomputed matching forms.
type entry struct {
	cid    string
	name   string
	lower  string
	folded string
}

// Cache resolves country names to CID reference codes against the country
// store. It is instantiated per pipeline run and passed through the call
// chain, so there is no process-global state, and loads the reference
// collection lazily on first use. Concurrent imports against one Cache are
// not supported; see the pipeline's resource model.
type Cache struct {
	store store.CountryStore

	mu      sync.Mutex
	loaded  bool
	entries []entry
	byNorm  map[string]string // Normalize(name) → cid
	maxSeq  int
}

// NewCache wraps the country store with a lazy per-run lookup cache.
func NewCache(cs store.CountryStore) *Cache {
	return &Cache{store: cs}
}

// Clear drops all cached state so the next lookup reloads from the store.
// Call between independent pipeline runs that may observe new countries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
	c.entries = nil
	c.byNorm = nil
	c.maxSeq = 0
}

func (c *Cache) load(ctx context.Context) error {
	if c.loaded {
		return nil
	}

	all, err := c.store.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load countries: %w", err)
	}

	c.entries = make([]entry, 0, len(all))
	c.byNorm = make(map[string]string, len(all))
	for _, ct := range all {
		c.add(ct)
	}
	c.loaded = true
	return nil
}

func (c *Cache) add(ct domain.Country) {
	c.entries = append(c.entries, entry{
		cid:    ct.CID,
		name:   ct.Name,
		lower:  strings.ToLower(ct.Name),
		folded: normalize.Fold(ct.Name),
	})
	c.byNorm[Normalize(ct.Name)] = ct.CID
	if seq, ok := cidSequence(ct.CID); ok && seq > c.maxSeq {
		c.maxSeq = seq
	}
}

// cidSequence extracts the numeric suffix of a CID like "C033".
func cidSequence(cid string) (int, bool) {
	if len(cid) != 4 || (cid[0] != 'C' && cid[0] != 'c') {
		return 0, false
	}
	n := 0
	for _, ch := range cid[1:] {
		if ch < '0' || ch > '9' {
			return 0, false
		}
		n = n*10 + int(ch-'0')
	}
	return n, true
}

// CID resolves a free-text country value to a reference code, trying the
// canonical resolver first and falling back to direct name comparison
// against the cached store entries (exact, lowercase, then folded).
// Returns "" when the country is unknown.
func (c *Cache) CID(ctx context.Context, raw string) (string, error) {
	value := normalize.CollapseSpace(raw)
	if value == "" {
		return "", nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return "", err
	}

	if m := Resolve(value); m != nil {
		if cid, ok := c.byNorm[Normalize(m.Country)]; ok {
			return cid, nil
		}
	}

	lower := strings.ToLower(value)
	folded := normalize.Fold(value)
	for _, e := range c.entries {
		if e.name == value || e.lower == lower || e.folded == folded {
			return e.cid, nil
		}
	}
	return "", nil
}

// Ensure resolves a country name to its CID, allocating the next
// sequential code and persisting a new reference entry when the name has
// never been seen. Idempotent per normalized name within a run: the second
// call for "Holandija" returns the code allocated by the first.
func (c *Cache) Ensure(ctx context.Context, name string) (string, error) {
	value := normalize.CollapseSpace(name)
	if value == "" {
		return "", fmt.Errorf("empty country name")
	}

	if m := Resolve(value); m != nil {
		value = m.Country
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return "", err
	}

	if cid, ok := c.byNorm[Normalize(value)]; ok {
		return cid, nil
	}

	c.maxSeq++
	ct := domain.Country{CID: fmt.Sprintf("C%03d", c.maxSeq), Name: value}
	if err := ct.Validate(); err != nil {
		return "", err
	}
	if err := c.store.Insert(ctx, ct); err != nil {
		return "", fmt.Errorf("insert country %q: %w", value, err)
	}
	c.add(ct)
	return ct.CID, nil
}

// Name returns the display name for a CID, or the CID itself when unknown.
func (c *Cache) Name(ctx context.Context, cid string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return cid
	}
	for _, e := range c.entries {
		if e.cid == cid {
			return e.name
		}
	}
	return cid
}

// Known returns the cached display names in stable order, mainly for the
// inspection CLI.
func (c *Cache) Known(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.name
	}
	sort.Strings(names)
	return names, nil
}
