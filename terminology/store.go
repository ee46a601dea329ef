package terminology

import (
	"sort"
	"sync"

	"github.com/ayushbridge/conceptmapper/service"
)

// Store is an in-memory indexed collection of terminology records.
// It is populated at startup and read-only thereafter; concurrent reads
// need no coordination beyond the internal RWMutex, and Replace swaps
// the whole index atomically.
type Store struct {
	mu      sync.RWMutex
	records map[string]map[string]service.TerminologyRecord // system -> code -> record
}

// NewStore creates an empty record store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]map[string]service.TerminologyRecord),
	}
}

// Add inserts records into the store. Records with an empty system or
// code are ignored. Later records win on identical identity.
func (s *Store) Add(records ...service.TerminologyRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		if r.System == "" || r.Code == "" {
			continue
		}
		if s.records[r.System] == nil {
			s.records[r.System] = make(map[string]service.TerminologyRecord)
		}
		s.records[r.System][r.Code] = r
	}
}

// Replace swaps the entire store contents with the given records.
// Readers see either the old or the new index, never a mix.
func (s *Store) Replace(records []service.TerminologyRecord) {
	next := make(map[string]map[string]service.TerminologyRecord)
	for _, r := range records {
		if r.System == "" || r.Code == "" {
			continue
		}
		if next[r.System] == nil {
			next[r.System] = make(map[string]service.TerminologyRecord)
		}
		next[r.System][r.Code] = r
	}

	s.mu.Lock()
	s.records = next
	s.mu.Unlock()
}

// Record implements service.RecordReader.
func (s *Store) Record(system, code string) (service.TerminologyRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[system][code]
	return r, ok
}

// Records returns all records of a system sorted by code. The returned
// slice is a copy.
func (s *Store) Records(system string) []service.TerminologyRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byCode := s.records[system]
	out := make([]service.TerminologyRecord, 0, len(byCode))
	for _, r := range byCode {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Systems returns the loaded system URIs, sorted.
func (s *Store) Systems() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.records))
	for sys := range s.records {
		out = append(out, sys)
	}
	sort.Strings(out)
	return out
}

// Len returns the total number of records across all systems.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, byCode := range s.records {
		n += len(byCode)
	}
	return n
}

// Verify interface compliance.
var _ service.RecordStore = (*Store)(nil)
