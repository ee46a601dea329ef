// Package similarity computes normalized similarity scores between
// terminology records and candidate target entries. Scoring is pure and
// deterministic: identical inputs always produce the identical score,
// which keeps automatic mapping results stable across calls.
package similarity

import (
	"strings"
	"unicode"

	cm "github.com/ayushbridge/conceptmapper"
	"github.com/ayushbridge/conceptmapper/service"
)

// Config holds the scorer weights. The defaults were tuned by
// inspection; they are exposed as configuration rather than constants.
type Config struct {
	// TextWeight is the weight of the token-overlap score.
	TextWeight float64
	// KeywordWeight is the weight of the structured-attribute bonus.
	KeywordWeight float64
	// KeywordBonus is the increment per matched category or body-system
	// keyword.
	KeywordBonus float64
}

// DefaultConfig returns the default scorer configuration.
func DefaultConfig() Config {
	return Config{
		TextWeight:    0.8,
		KeywordWeight: 0.2,
		KeywordBonus:  0.1,
	}
}

// FromOptions derives a scorer configuration from engine options.
func FromOptions(o *cm.Options) Config {
	return Config{
		TextWeight:    o.TextWeight,
		KeywordWeight: o.KeywordWeight,
		KeywordBonus:  o.KeywordBonus,
	}
}

// Scorer scores record/candidate pairs. It holds no mutable state and
// is safe for concurrent use.
type Scorer struct {
	cfg Config
}

// NewScorer creates a scorer with the given configuration.
func NewScorer(cfg Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score returns a similarity score in [0, 1] between a source record
// and a candidate target entry.
//
// The score is a weighted sum of a Jaccard token-overlap score over the
// normalized display+definition text of both sides and a
// structured-attribute bonus for category/body-system keywords found in
// the candidate text. Identical normalized displays short-circuit to
// 1.0 regardless of the token math, so literal round-trip matches are
// always exact. Empty token sets on either side score 0.
func (s *Scorer) Score(record service.TerminologyRecord, candidate service.CandidateEntry) float64 {
	recDisplay := Normalize(record.Display)
	candDisplay := Normalize(candidate.Display)
	if recDisplay != "" && recDisplay == candDisplay {
		return 1.0
	}

	recTokens := tokenSet(record.Display + " " + record.Definition)
	candTokens := tokenSet(candidate.Display + " " + candidate.Definition)
	if len(recTokens) == 0 || len(candTokens) == 0 {
		return 0.0
	}

	overlap := jaccard(recTokens, candTokens)

	bonus := 0.0
	for kw := range tokenSet(record.Category + " " + record.BodySystem) {
		if _, ok := candTokens[kw]; ok {
			bonus += s.cfg.KeywordBonus
		}
	}
	if bonus > 1 {
		bonus = 1
	}

	score := s.cfg.TextWeight*overlap + s.cfg.KeywordWeight*bonus
	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return score
}

// Normalize case-folds text, strips punctuation and collapses
// whitespace.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokens returns the normalized tokens of a text, in occurrence order
// with duplicates removed.
func Tokens(text string) []string {
	fields := strings.Fields(Normalize(text))
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

func tokenSet(text string) map[string]struct{} {
	fields := strings.Fields(Normalize(text))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// jaccard computes set intersection over union. Token order is
// irrelevant; this is set math, not substring containment.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
