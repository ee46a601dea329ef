package engine

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	cm "github.com/ayushbridge/conceptmapper"
	"github.com/ayushbridge/conceptmapper/service"
	"github.com/ayushbridge/conceptmapper/similarity"
)

// Resolver resolves a source code against a target system. It holds
// only read-only collaborators and is safe for concurrent use; every
// resolution computes into its own local result.
type Resolver struct {
	store      service.RecordStore
	predefined service.PredefinedLookup
	provider   service.CandidateProvider
	scorer     *similarity.Scorer
	opts       *cm.Options
	metrics    *cm.Metrics
	logger     *zap.Logger
}

// NewResolver creates a resolver over the given store, curated table
// and candidate provider.
func NewResolver(store service.RecordStore, predefined service.PredefinedLookup, provider service.CandidateProvider, opts ...cm.Option) (*Resolver, error) {
	if store == nil || predefined == nil || provider == nil {
		return nil, fmt.Errorf("store, predefined table and provider are required")
	}

	o := cm.DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("invalid resolver options: %w", err)
	}

	return &Resolver{
		store:      store,
		predefined: predefined,
		provider:   provider,
		scorer:     similarity.NewScorer(similarity.FromOptions(o)),
		opts:       o,
		metrics:    cm.NewMetrics(),
		logger:     o.Logger,
	}, nil
}

// Options returns the effective configuration.
func (r *Resolver) Options() *cm.Options {
	return r.opts
}

// Metrics returns the resolver's counters.
func (r *Resolver) Metrics() *cm.Metrics {
	return r.metrics
}

// Resolve maps a source code to the target system. Curated entries, if
// present, are returned verbatim with method "predefined" and no
// scoring is attempted; a reverse key can carry one entry per authored
// pairing onto the code. Otherwise provider candidates are scored,
// filtered by
// the minimum confidence, classified into equivalence bands and ranked.
//
// An empty slice is a valid result meaning "no mapping found". An
// unknown source code returns a NotFoundError. Provider failures and
// timeouts degrade to an empty automatic result.
func (r *Resolver) Resolve(ctx context.Context, sourceSystem, sourceCode, targetSystem string) ([]cm.ResolvedMapping, error) {
	if pms, ok := r.predefined.Find(sourceSystem, sourceCode, targetSystem); ok {
		r.metrics.RecordPredefinedHit()
		mappings := make([]cm.ResolvedMapping, 0, len(pms))
		for _, pm := range pms {
			mappings = append(mappings, r.fromPredefined(pm))
		}
		return mappings, nil
	}

	record, ok := r.store.Record(sourceSystem, sourceCode)
	if !ok {
		r.metrics.RecordNotFound()
		return nil, &cm.NotFoundError{System: sourceSystem, Code: sourceCode}
	}

	lookupCtx, cancel := context.WithTimeout(ctx, r.opts.ProviderTimeout)
	defer cancel()

	candidates, err := r.provider.Lookup(lookupCtx, targetSystem, record.Display, r.opts.CandidateLimit)
	if err != nil {
		// Provider instability is not a resolution failure: degrade to
		// "no candidates" so predefined-only deployments stay available.
		r.metrics.RecordProviderFailure()
		r.logger.Warn("candidate lookup failed, degrading to empty result",
			zap.String("sourceSystem", sourceSystem),
			zap.String("sourceCode", sourceCode),
			zap.String("targetSystem", targetSystem),
			zap.Error(err))
		candidates = nil
	}

	mappings := make([]cm.ResolvedMapping, 0, len(candidates))
	for _, c := range candidates {
		confidence := r.scorer.Score(record, c)
		if confidence < r.opts.MinConfidence {
			continue
		}
		equivalence, err := cm.ClassifyEquivalence(confidence, r.opts.Bands)
		if err != nil {
			return nil, err // configuration bug, fatal to the call
		}
		mappings = append(mappings, cm.ResolvedMapping{
			Source:      record.Ref(),
			Target:      cm.ConceptRef{System: targetSystem, Code: c.Code, Display: c.Display},
			Equivalence: equivalence,
			Confidence:  confidence,
			Method:      cm.MethodAutomatic,
		})
	}
	r.metrics.RecordCandidatesScored(len(candidates))

	// Confidence descending; ties broken by target code ascending so
	// equal scores still order deterministically.
	sort.SliceStable(mappings, func(i, j int) bool {
		if mappings[i].Confidence != mappings[j].Confidence {
			return mappings[i].Confidence > mappings[j].Confidence
		}
		return mappings[i].Target.Code < mappings[j].Target.Code
	})

	mappings = dedupeByTargetCode(mappings)
	if r.opts.MaxResults > 0 && len(mappings) > r.opts.MaxResults {
		mappings = mappings[:r.opts.MaxResults]
	}

	r.metrics.RecordAutomaticResolution()
	if len(mappings) == 0 {
		r.metrics.RecordEmptyResult()
	}
	return mappings, nil
}

// fromPredefined wraps a curated entry as a resolved mapping, filling
// display strings from the record store when available.
func (r *Resolver) fromPredefined(pm service.PredefinedMapping) cm.ResolvedMapping {
	m := cm.ResolvedMapping{
		Source:      cm.ConceptRef{System: pm.SourceSystem, Code: pm.SourceCode},
		Target:      cm.ConceptRef{System: pm.TargetSystem, Code: pm.TargetCode},
		Equivalence: pm.Equivalence,
		Confidence:  pm.Confidence,
		Method:      cm.MethodPredefined,
	}
	if rec, ok := r.store.Record(pm.SourceSystem, pm.SourceCode); ok {
		m.Source.Display = rec.Display
	}
	if rec, ok := r.store.Record(pm.TargetSystem, pm.TargetCode); ok {
		m.Target.Display = rec.Display
	}
	return m
}

// dedupeByTargetCode keeps the first (highest ranked) mapping per
// target code. The input must already be sorted.
func dedupeByTargetCode(mappings []cm.ResolvedMapping) []cm.ResolvedMapping {
	seen := make(map[string]struct{}, len(mappings))
	out := mappings[:0]
	for _, m := range mappings {
		if _, ok := seen[m.Target.Code]; ok {
			continue
		}
		seen[m.Target.Code] = struct{}{}
		out = append(out, m)
	}
	return out
}
