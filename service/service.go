// Package service defines the plain datatypes and small interfaces the
// mapping engine consumes. Implementations live in the terminology and
// provider packages; tests supply their own fakes.
package service

import (
	"context"

	cm "github.com/ayushbridge/conceptmapper"
)

// TerminologyRecord is a single code of a loaded coding system.
// Identity is (System, Code). Records are immutable after load.
type TerminologyRecord struct {
	System     string `json:"system"`
	Code       string `json:"code"`
	Display    string `json:"display"`
	Definition string `json:"definition,omitempty"`
	Category   string `json:"category,omitempty"`
	BodySystem string `json:"bodySystem,omitempty"`
}

// Ref returns the concept reference for this record.
func (r TerminologyRecord) Ref() cm.ConceptRef {
	return cm.ConceptRef{System: r.System, Code: r.Code, Display: r.Display}
}

// CandidateEntry is a candidate target concept returned by a provider.
// Structurally a subset of TerminologyRecord, but sourced externally;
// the definition may be missing.
type CandidateEntry struct {
	System     string `json:"system"`
	Code       string `json:"code"`
	Display    string `json:"display"`
	Definition string `json:"definition,omitempty"`
}

// PredefinedMapping is a curated source-to-target pairing. Confidence
// is fixed at authoring time and never recomputed.
type PredefinedMapping struct {
	SourceSystem string         `json:"sourceSystem"`
	SourceCode   string         `json:"sourceCode"`
	TargetSystem string         `json:"targetSystem"`
	TargetCode   string         `json:"targetCode"`
	Equivalence  cm.Equivalence `json:"equivalence"`
	Confidence   float64        `json:"confidence"`
}

// --- Small Interfaces (1-2 methods per concern) ---

// RecordReader looks up a single record by identity.
type RecordReader interface {
	Record(system, code string) (TerminologyRecord, bool)
}

// RecordStore is the read view of a loaded record collection.
// Records must return a stable, code-sorted slice so that consumers
// (in particular the ConceptMap builder) are deterministic.
type RecordStore interface {
	RecordReader
	Records(system string) []TerminologyRecord
	Systems() []string
}

// CandidateProvider looks up candidate target entries for free text.
// It must be callable for any system URI the engine is configured with,
// in either mapping direction. Implementations signal transport
// problems with an error; the resolver downgrades every provider error
// to an empty candidate list.
type CandidateProvider interface {
	Lookup(ctx context.Context, system, query string, limit int) ([]CandidateEntry, error)
}

// PredefinedLookup is the exact-key lookup into the curated table.
// Several curated pairings can reverse onto the same key, so Find
// returns every matching entry in a deterministic order.
type PredefinedLookup interface {
	Find(sourceSystem, sourceCode, targetSystem string) ([]PredefinedMapping, bool)
}
