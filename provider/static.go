package provider

import (
	"context"
	"sort"
	"sync"

	"github.com/ayushbridge/conceptmapper/service"
	"github.com/ayushbridge/conceptmapper/similarity"
)

// Static serves candidates from a bounded in-memory set. It is
// symmetric: any loaded system can be queried, so the same instance
// serves forward and reverse translation. Lookups tokenize the query
// and rank entries by token overlap with their display and definition.
type Static struct {
	mu      sync.RWMutex
	entries map[string][]service.CandidateEntry // system -> entries
}

// NewStatic creates an empty static provider.
func NewStatic() *Static {
	return &Static{entries: make(map[string][]service.CandidateEntry)}
}

// NewStaticFromStore builds a static provider over every record of the
// store, keeping the provider and the record store in lockstep.
func NewStaticFromStore(store service.RecordStore) *Static {
	p := NewStatic()
	for _, system := range store.Systems() {
		for _, rec := range store.Records(system) {
			p.Add(service.CandidateEntry{
				System:     rec.System,
				Code:       rec.Code,
				Display:    rec.Display,
				Definition: rec.Definition,
			})
		}
	}
	return p
}

// Add inserts candidate entries. Entries with an empty system or code
// are ignored.
func (p *Static) Add(entries ...service.CandidateEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range entries {
		if e.System == "" || e.Code == "" {
			continue
		}
		p.entries[e.System] = append(p.entries[e.System], e)
	}
}

// Lookup implements service.CandidateProvider. An unknown system or a
// query with no matching tokens yields an empty list, not an error.
// Results are ordered by descending token overlap with the query, ties
// broken by ascending code, so output is deterministic.
func (p *Static) Lookup(ctx context.Context, system, query string, limit int) ([]service.CandidateEntry, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	queryTokens := similarity.Tokens(query)
	if len(queryTokens) == 0 || limit <= 0 {
		return nil, nil
	}

	p.mu.RLock()
	entries := p.entries[system]
	p.mu.RUnlock()

	type scored struct {
		entry   service.CandidateEntry
		overlap int
	}
	var matches []scored
	for _, e := range entries {
		text := make(map[string]struct{})
		for _, t := range similarity.Tokens(e.Display + " " + e.Definition) {
			text[t] = struct{}{}
		}
		overlap := 0
		for _, t := range queryTokens {
			if _, ok := text[t]; ok {
				overlap++
			}
		}
		if overlap > 0 {
			matches = append(matches, scored{entry: e, overlap: overlap})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].overlap != matches[j].overlap {
			return matches[i].overlap > matches[j].overlap
		}
		return matches[i].entry.Code < matches[j].entry.Code
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]service.CandidateEntry, len(matches))
	for i, m := range matches {
		out[i] = m.entry
	}
	return out, nil
}

// Verify interface compliance.
var _ service.CandidateProvider = (*Static)(nil)
