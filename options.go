package conceptmapper

import (
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
)

// Option configures the mapping engine.
type Option func(*Options)

// Options holds all tunable parameters for similarity scoring,
// equivalence classification and candidate retrieval.
//
// The similarity weights and thresholds carry no documented derivation;
// they were tuned by inspection against the curated mapping table.
// Treat them as configuration, not as a formula to second-guess.
type Options struct {
	// TextWeight is the weight of the token-overlap score. Default 0.8.
	TextWeight float64

	// KeywordWeight is the weight of the structured-attribute bonus.
	// Default 0.2.
	KeywordWeight float64

	// KeywordBonus is the fixed increment added to the bonus for each
	// category or body-system keyword found in the candidate text.
	// Default 0.1.
	KeywordBonus float64

	// MinConfidence is the minimum confidence for an automatic mapping
	// to be proposed at all. Below it a mapping is simply absent.
	// Default 0.3.
	MinConfidence float64

	// Bands are the equivalence band bounds. Default 0.8/0.6/0.4.
	Bands Bands

	// CandidateLimit is the maximum number of candidates requested from
	// the provider per lookup. Default 10.
	CandidateLimit int

	// MaxResults caps the number of automatic mappings returned per
	// resolution. Zero means unlimited. Default 5.
	MaxResults int

	// ProviderTimeout bounds every candidate provider call. Default 30s.
	ProviderTimeout time.Duration

	// WorkerCount is the number of workers used for full ConceptMap
	// builds. Defaults to runtime.NumCPU().
	WorkerCount int

	// Logger receives structured diagnostics. Defaults to zap.NewNop().
	Logger *zap.Logger
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		TextWeight:    0.8,
		KeywordWeight: 0.2,
		KeywordBonus:  0.1,

		MinConfidence: 0.3,
		Bands:         DefaultBands(),

		CandidateLimit:  10,
		MaxResults:      5,
		ProviderTimeout: 30 * time.Second,

		WorkerCount: runtime.NumCPU(),
		Logger:      zap.NewNop(),
	}
}

// Validate checks the options for consistency.
func (o *Options) Validate() error {
	if o.TextWeight < 0 || o.KeywordWeight < 0 {
		return fmt.Errorf("similarity weights must be non-negative, got text=%v keyword=%v", o.TextWeight, o.KeywordWeight)
	}
	if o.TextWeight+o.KeywordWeight == 0 {
		return fmt.Errorf("at least one similarity weight must be positive")
	}
	if o.KeywordBonus < 0 || o.KeywordBonus > 1 {
		return fmt.Errorf("keyword bonus must be in [0,1], got %v", o.KeywordBonus)
	}
	if o.MinConfidence <= 0 || o.MinConfidence > 1 {
		return fmt.Errorf("minimum confidence must be in (0,1], got %v", o.MinConfidence)
	}
	if err := o.Bands.Validate(); err != nil {
		return err
	}
	if o.MinConfidence > o.Bands.Narrower {
		return fmt.Errorf("minimum confidence %v must not exceed the narrower band bound %v", o.MinConfidence, o.Bands.Narrower)
	}
	if o.CandidateLimit <= 0 {
		return fmt.Errorf("candidate limit must be positive, got %d", o.CandidateLimit)
	}
	if o.MaxResults < 0 {
		return fmt.Errorf("max results must not be negative, got %d", o.MaxResults)
	}
	if o.ProviderTimeout <= 0 {
		return fmt.Errorf("provider timeout must be positive, got %v", o.ProviderTimeout)
	}
	return nil
}

// --- Similarity Options ---

// WithSimilarityWeights sets the weights of the token-overlap score and
// the structured-attribute bonus.
func WithSimilarityWeights(text, keyword float64) Option {
	return func(o *Options) {
		o.TextWeight = text
		o.KeywordWeight = keyword
	}
}

// WithKeywordBonus sets the per-keyword bonus increment.
func WithKeywordBonus(bonus float64) Option {
	return func(o *Options) {
		o.KeywordBonus = bonus
	}
}

// --- Classification Options ---

// WithMinConfidence sets the minimum confidence threshold for automatic
// mappings.
func WithMinConfidence(min float64) Option {
	return func(o *Options) {
		o.MinConfidence = min
	}
}

// WithBands sets the equivalence band bounds.
func WithBands(b Bands) Option {
	return func(o *Options) {
		o.Bands = b
	}
}

// --- Retrieval Options ---

// WithCandidateLimit sets the number of candidates requested from the
// provider per lookup.
func WithCandidateLimit(limit int) Option {
	return func(o *Options) {
		if limit > 0 {
			o.CandidateLimit = limit
		}
	}
}

// WithMaxResults caps the number of automatic mappings returned per
// resolution. Use 0 for unlimited.
func WithMaxResults(max int) Option {
	return func(o *Options) {
		if max >= 0 {
			o.MaxResults = max
		}
	}
}

// WithProviderTimeout bounds every candidate provider call.
func WithProviderTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		if timeout > 0 {
			o.ProviderTimeout = timeout
		}
	}
}

// --- Execution Options ---

// WithWorkerCount sets the number of workers for ConceptMap builds.
// Defaults to runtime.NumCPU().
func WithWorkerCount(count int) Option {
	return func(o *Options) {
		if count > 0 {
			o.WorkerCount = count
		}
	}
}

// WithLogger sets the structured logger used by the engine.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}
