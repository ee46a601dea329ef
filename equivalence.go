package conceptmapper

// Equivalence is the qualitative relationship between a source and a
// target concept. Maps to ConceptMap.group.element.target.equivalence
// in FHIR R4.
type Equivalence string

const (
	// EquivalenceEquivalent means the concepts are interchangeable.
	EquivalenceEquivalent Equivalence = "equivalent"
	// EquivalenceWider means the target concept is broader than the source.
	EquivalenceWider Equivalence = "wider"
	// EquivalenceNarrower means the target concept is narrower than the source.
	EquivalenceNarrower Equivalence = "narrower"
	// EquivalenceRelated means the concepts are related without a known
	// subsumption relationship.
	EquivalenceRelated Equivalence = "related"
)

// IsValid returns true if this is a known equivalence value.
func (e Equivalence) IsValid() bool {
	switch e {
	case EquivalenceEquivalent, EquivalenceWider, EquivalenceNarrower, EquivalenceRelated:
		return true
	default:
		return false
	}
}

// Inverse returns the equivalence seen from the opposite direction:
// wider and narrower swap, equivalent and related are symmetric.
func (e Equivalence) Inverse() Equivalence {
	switch e {
	case EquivalenceWider:
		return EquivalenceNarrower
	case EquivalenceNarrower:
		return EquivalenceWider
	default:
		return e
	}
}

// String returns the equivalence code.
func (e Equivalence) String() string {
	return string(e)
}

// Bands holds the lower bounds of the equivalence bands. Bands are
// evaluated high-to-low and each bound is inclusive: a confidence of
// exactly Equivalent classifies as equivalent, not wider. Everything
// below Narrower (down to the resolver's minimum confidence) is related.
type Bands struct {
	Equivalent float64 `json:"equivalent"`
	Wider      float64 `json:"wider"`
	Narrower   float64 `json:"narrower"`
}

// DefaultBands returns the default band bounds. The values are tuned by
// inspection against the curated mapping table, not derived.
func DefaultBands() Bands {
	return Bands{
		Equivalent: 0.8,
		Wider:      0.6,
		Narrower:   0.4,
	}
}

// Validate checks that the bands partition (0, 1] without overlap.
func (b Bands) Validate() error {
	if !(b.Narrower > 0 && b.Narrower < b.Wider && b.Wider < b.Equivalent && b.Equivalent <= 1) {
		return &InvalidEquivalenceBandError{Bands: b}
	}
	return nil
}

// ClassifyEquivalence maps a confidence score to its equivalence band.
// The confidence must lie in [0, 1]; anything else indicates a
// configuration or scoring bug and returns InvalidEquivalenceBandError.
func ClassifyEquivalence(confidence float64, b Bands) (Equivalence, error) {
	// NaN fails every comparison, including with itself.
	if confidence != confidence || confidence < 0 || confidence > 1 {
		return "", &InvalidEquivalenceBandError{Confidence: confidence, Bands: b}
	}
	if err := b.Validate(); err != nil {
		return "", err
	}

	switch {
	case confidence >= b.Equivalent:
		return EquivalenceEquivalent, nil
	case confidence >= b.Wider:
		return EquivalenceWider, nil
	case confidence >= b.Narrower:
		return EquivalenceNarrower, nil
	default:
		return EquivalenceRelated, nil
	}
}
