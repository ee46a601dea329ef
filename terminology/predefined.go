package terminology

import (
	"sort"
	"strings"
	"sync"

	"github.com/ayushbridge/conceptmapper/service"
)

// PredefinedTable is the curated mapping table. Entries are indexed in
// both directions at load time: the reverse direction keeps the
// authored confidence and inverts the equivalence, so reverse lookups
// go through the same exact-key Find as forward ones. Several curated
// pairings may reverse onto the same key (many NAMASTE codes onto one
// ICD code), so each key holds a list. An explicitly authored entry
// always wins over derived reverse entries.
type PredefinedTable struct {
	mu      sync.RWMutex
	entries map[string][]service.PredefinedMapping
	derived map[string]bool // keys that only hold derived reverses
}

// NewPredefinedTable creates an empty table.
func NewPredefinedTable() *PredefinedTable {
	return &PredefinedTable{
		entries: make(map[string][]service.PredefinedMapping),
		derived: make(map[string]bool),
	}
}

// Add inserts curated mappings and their derived reverse entries.
func (t *PredefinedTable) Add(mappings ...service.PredefinedMapping) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, m := range mappings {
		if m.SourceSystem == "" || m.SourceCode == "" || m.TargetSystem == "" || m.TargetCode == "" {
			continue
		}

		k := mappingKey(m.SourceSystem, m.SourceCode, m.TargetSystem)
		if t.derived[k] {
			// The first authored entry on a key evicts its derived
			// reverses.
			delete(t.entries, k)
			delete(t.derived, k)
		}
		t.entries[k] = upsertMapping(t.entries[k], m)

		reverse := service.PredefinedMapping{
			SourceSystem: m.TargetSystem,
			SourceCode:   m.TargetCode,
			TargetSystem: m.SourceSystem,
			TargetCode:   m.SourceCode,
			Equivalence:  m.Equivalence.Inverse(),
			Confidence:   m.Confidence,
		}
		rk := mappingKey(reverse.SourceSystem, reverse.SourceCode, reverse.TargetSystem)
		if _, exists := t.entries[rk]; exists && !t.derived[rk] {
			continue // authored entries win
		}
		t.entries[rk] = upsertMapping(t.entries[rk], reverse)
		t.derived[rk] = true
	}
}

// Replace swaps the entire table atomically.
func (t *PredefinedTable) Replace(mappings []service.PredefinedMapping) {
	next := NewPredefinedTable()
	next.Add(mappings...)

	t.mu.Lock()
	t.entries = next.entries
	t.derived = next.derived
	t.mu.Unlock()
}

// Find implements service.PredefinedLookup. It returns every entry
// indexed under the key, ordered by confidence descending with target
// code ascending ties; a reverse key carries one derived entry per
// authored pairing onto the source code.
func (t *PredefinedTable) Find(sourceSystem, sourceCode, targetSystem string) ([]service.PredefinedMapping, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	entries := t.entries[mappingKey(sourceSystem, sourceCode, targetSystem)]
	if len(entries) == 0 {
		return nil, false
	}
	out := make([]service.PredefinedMapping, len(entries))
	copy(out, entries)
	return out, true
}

// Len returns the number of indexed entries, derived reverses included.
func (t *PredefinedTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, entries := range t.entries {
		n += len(entries)
	}
	return n
}

func mappingKey(sourceSystem, sourceCode, targetSystem string) string {
	return strings.Join([]string{sourceSystem, sourceCode, targetSystem}, "|")
}

// upsertMapping replaces the entry sharing m's target code or appends,
// keeping the list ordered by confidence descending with target code
// ascending ties.
func upsertMapping(entries []service.PredefinedMapping, m service.PredefinedMapping) []service.PredefinedMapping {
	replaced := false
	for i := range entries {
		if entries[i].TargetCode == m.TargetCode {
			entries[i] = m
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, m)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Confidence != entries[j].Confidence {
			return entries[i].Confidence > entries[j].Confidence
		}
		return entries[i].TargetCode < entries[j].TargetCode
	})
	return entries
}

// Verify interface compliance.
var _ service.PredefinedLookup = (*PredefinedTable)(nil)
