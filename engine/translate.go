package engine

import (
	"context"

	cm "github.com/ayushbridge/conceptmapper"
	"github.com/ayushbridge/conceptmapper/service"
)

// Translator is the public entry point for translations. It expands a
// target selection into a concrete ordered list of systems and invokes
// the resolver once per target. Reverse lookup is the same call with
// source and target roles swapped; the provider and store are symmetric
// so the translator needs no direction-specific logic.
type Translator struct {
	resolver *Resolver
	targets  []string // canonical order for "both"/"all" selections
}

// NewTranslator creates a translator with the given canonical target
// systems. Pass conceptmapper.KnownTargetSystems() for the bundled
// ICD-11 linearizations.
func NewTranslator(resolver *Resolver, targets []string) *Translator {
	known := make([]string, len(targets))
	copy(known, targets)
	return &Translator{resolver: resolver, targets: known}
}

// Translate resolves a source code against the selected target systems
// and groups the mappings per system in request order. A result with
// only empty groups is success ("no mapping available"), distinct from
// the NotFoundError raised for an unknown source code.
func (t *Translator) Translate(ctx context.Context, sourceSystem, code string, selection cm.TargetSelection) (*cm.TranslationResult, error) {
	systems, err := selection.Resolve(t.targets)
	if err != nil {
		return nil, err
	}

	result := &cm.TranslationResult{
		Source: cm.ConceptRef{System: sourceSystem, Code: code},
		Groups: make([]cm.TargetGroup, 0, len(systems)),
	}
	if rec, ok := t.resolver.store.Record(sourceSystem, code); ok {
		result.Source.Display = rec.Display
	}

	for _, target := range systems {
		if target == sourceSystem {
			// A system never maps onto itself, but the group stays so
			// callers always get one group per requested target.
			result.Groups = append(result.Groups, cm.TargetGroup{
				System:   target,
				Mappings: []cm.ResolvedMapping{},
			})
			continue
		}
		mappings, err := t.resolver.Resolve(ctx, sourceSystem, code, target)
		if err != nil {
			return nil, err
		}
		if mappings == nil {
			mappings = []cm.ResolvedMapping{}
		}
		result.Groups = append(result.Groups, cm.TargetGroup{
			System:   target,
			Mappings: mappings,
		})
	}
	return result, nil
}

// Recommendation values returned by ValidateMapping.
const (
	RecommendationAccept = "accept"
	RecommendationReview = "review"
	RecommendationReject = "reject"
)

// ValidationResult is the outcome of reviewing one proposed mapping.
type ValidationResult struct {
	Valid          bool           `json:"valid"`
	Confidence     float64        `json:"confidence"`
	Equivalence    cm.Equivalence `json:"equivalence"`
	Recommendation string         `json:"recommendation"`
	Source         cm.ConceptRef  `json:"source"`
	Target         cm.ConceptRef  `json:"target"`
}

// ValidateMapping scores one proposed source/target pairing and returns
// the confidence, equivalence band and an accept/review/reject
// recommendation. Both codes must exist: the source in the record
// store, the target in the store or via the candidate provider.
func (t *Translator) ValidateMapping(ctx context.Context, sourceSystem, sourceCode, targetSystem, targetCode string) (*ValidationResult, error) {
	r := t.resolver

	record, ok := r.store.Record(sourceSystem, sourceCode)
	if !ok {
		return nil, &cm.NotFoundError{System: sourceSystem, Code: sourceCode}
	}

	candidate, err := t.findTarget(ctx, targetSystem, targetCode)
	if err != nil {
		return nil, err
	}

	confidence := r.scorer.Score(record, candidate)
	equivalence, err := cm.ClassifyEquivalence(confidence, r.opts.Bands)
	if err != nil {
		return nil, err
	}

	recommendation := RecommendationReject
	switch {
	case confidence > r.opts.Bands.Wider:
		recommendation = RecommendationAccept
	case confidence >= r.opts.MinConfidence:
		recommendation = RecommendationReview
	}

	return &ValidationResult{
		Valid:          confidence >= r.opts.MinConfidence,
		Confidence:     confidence,
		Equivalence:    equivalence,
		Recommendation: recommendation,
		Source:         record.Ref(),
		Target:         cm.ConceptRef{System: targetSystem, Code: targetCode, Display: candidate.Display},
	}, nil
}

// findTarget resolves the proposed target concept, preferring the local
// store and falling back to a provider lookup by code.
func (t *Translator) findTarget(ctx context.Context, system, code string) (service.CandidateEntry, error) {
	if rec, ok := t.resolver.store.Record(system, code); ok {
		return service.CandidateEntry{
			System:     rec.System,
			Code:       rec.Code,
			Display:    rec.Display,
			Definition: rec.Definition,
		}, nil
	}

	lookupCtx, cancel := context.WithTimeout(ctx, t.resolver.opts.ProviderTimeout)
	defer cancel()

	candidates, err := t.resolver.provider.Lookup(lookupCtx, system, code, t.resolver.opts.CandidateLimit)
	if err == nil {
		for _, c := range candidates {
			if c.Code == code {
				return c, nil
			}
		}
	}
	return service.CandidateEntry{}, &cm.NotFoundError{System: system, Code: code}
}
