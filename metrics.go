package conceptmapper

import "sync/atomic"

// Metrics tracks resolution counters using lock-free atomics.
// All methods are safe for concurrent use.
type Metrics struct {
	predefinedHits       atomic.Uint64
	automaticResolutions atomic.Uint64
	candidatesScored     atomic.Uint64
	providerFailures     atomic.Uint64
	emptyResults         atomic.Uint64
	notFoundErrors       atomic.Uint64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordPredefinedHit records a resolution served from the curated table.
func (m *Metrics) RecordPredefinedHit() {
	m.predefinedHits.Add(1)
}

// RecordAutomaticResolution records a completed automatic resolution.
func (m *Metrics) RecordAutomaticResolution() {
	m.automaticResolutions.Add(1)
}

// RecordCandidatesScored records the number of candidates scored in one
// resolution.
func (m *Metrics) RecordCandidatesScored(n int) {
	if n > 0 {
		m.candidatesScored.Add(uint64(n))
	}
}

// RecordProviderFailure records a provider call that failed or timed out.
func (m *Metrics) RecordProviderFailure() {
	m.providerFailures.Add(1)
}

// RecordEmptyResult records a resolution that produced no mapping.
func (m *Metrics) RecordEmptyResult() {
	m.emptyResults.Add(1)
}

// RecordNotFound records a resolution rejected for an unknown source code.
func (m *Metrics) RecordNotFound() {
	m.notFoundErrors.Add(1)
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	PredefinedHits       uint64 `json:"predefinedHits"`
	AutomaticResolutions uint64 `json:"automaticResolutions"`
	CandidatesScored     uint64 `json:"candidatesScored"`
	ProviderFailures     uint64 `json:"providerFailures"`
	EmptyResults         uint64 `json:"emptyResults"`
	NotFoundErrors       uint64 `json:"notFoundErrors"`
}

// Snapshot returns a consistent-enough copy of all counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		PredefinedHits:       m.predefinedHits.Load(),
		AutomaticResolutions: m.automaticResolutions.Load(),
		CandidatesScored:     m.candidatesScored.Load(),
		ProviderFailures:     m.providerFailures.Load(),
		EmptyResults:         m.emptyResults.Load(),
		NotFoundErrors:       m.notFoundErrors.Load(),
	}
}
