package similarity

import (
	"math"
	"reflect"
	"testing"

	"github.com/ayushbridge/conceptmapper/service"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "Migraine", "migraine"},
		{"punctuation stripped", "Ama (Undigested food toxins)", "ama undigested food toxins"},
		{"whitespace collapsed", "  pain,   not  classified ", "pain not classified"},
		{"hyphenated", "Tension-type headache", "tension type headache"},
		{"digits kept", "TM2.01 pattern", "tm2 01 pattern"},
		{"empty", "", ""},
		{"only punctuation", "---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q; want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokens(t *testing.T) {
	t.Run("dedup preserves order", func(t *testing.T) {
		got := Tokens("pain head pain chronic head")
		want := []string{"pain", "head", "chronic"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Tokens() = %v; want %v", got, want)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := Tokens("  "); len(got) != 0 {
			t.Errorf("Tokens() = %v; want empty", got)
		}
	})
}

func TestScorerScore(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	record := service.TerminologyRecord{
		Code:       "NAM006",
		Display:    "Shirahshula (Headache)",
		Definition: "Head pain due to various doshic imbalances",
		Category:   "Neurological Disorders",
		BodySystem: "Nervous System",
	}

	t.Run("identical display short-circuits to one", func(t *testing.T) {
		candidate := service.CandidateEntry{Display: "Shirahshula (Headache)"}
		if got := scorer.Score(record, candidate); got != 1.0 {
			t.Errorf("Score() = %v; want 1.0", got)
		}
	})

	t.Run("display match survives punctuation differences", func(t *testing.T) {
		candidate := service.CandidateEntry{Display: "shirahshula headache"}
		if got := scorer.Score(record, candidate); got != 1.0 {
			t.Errorf("Score() = %v; want 1.0", got)
		}
	})

	t.Run("disjoint text scores zero", func(t *testing.T) {
		candidate := service.CandidateEntry{
			Display:    "Constipation",
			Definition: "Difficulty passing stools",
		}
		if got := scorer.Score(record, candidate); got != 0.0 {
			t.Errorf("Score() = %v; want 0.0", got)
		}
	})

	t.Run("empty candidate scores zero", func(t *testing.T) {
		if got := scorer.Score(record, service.CandidateEntry{}); got != 0.0 {
			t.Errorf("Score() = %v; want 0.0", got)
		}
	})

	t.Run("empty record scores zero", func(t *testing.T) {
		candidate := service.CandidateEntry{Display: "Migraine"}
		if got := scorer.Score(service.TerminologyRecord{}, candidate); got != 0.0 {
			t.Errorf("Score() = %v; want 0.0", got)
		}
	})

	t.Run("partial overlap lands between zero and one", func(t *testing.T) {
		candidate := service.CandidateEntry{
			Display:    "Migraine",
			Definition: "Recurrent headache disorder with attacks of severe pain",
		}
		got := scorer.Score(record, candidate)
		if got <= 0 || got >= 1 {
			t.Errorf("Score() = %v; want in (0, 1)", got)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		candidate := service.CandidateEntry{
			Display:    "Migraine",
			Definition: "Recurrent headache disorder with attacks of severe pain",
		}
		first := scorer.Score(record, candidate)
		for i := 0; i < 10; i++ {
			if got := scorer.Score(record, candidate); got != first {
				t.Fatalf("Score() = %v on run %d; want %v", got, i, first)
			}
		}
	})
}

func TestScorerKeywordBonus(t *testing.T) {
	record := service.TerminologyRecord{
		Display:    "alpha",
		Definition: "beta",
		Category:   "gamma",
		BodySystem: "delta",
	}
	// Display differs from the record's so the exact-match short-circuit
	// stays out of the way.
	candidate := service.CandidateEntry{
		Display:    "alpha epsilon",
		Definition: "gamma delta",
	}

	t.Run("bonus raises the score", func(t *testing.T) {
		with := NewScorer(Config{TextWeight: 0.8, KeywordWeight: 0.2, KeywordBonus: 0.1})
		without := NewScorer(Config{TextWeight: 0.8, KeywordWeight: 0.2, KeywordBonus: 0})
		if with.Score(record, candidate) <= without.Score(record, candidate) {
			t.Error("keyword bonus did not raise the score")
		}
	})

	t.Run("pure keyword scoring", func(t *testing.T) {
		s := NewScorer(Config{TextWeight: 0, KeywordWeight: 1, KeywordBonus: 0.1})
		got := s.Score(record, candidate)
		// Two keyword hits (gamma, delta) at 0.1 each, weighted 1.0.
		if math.Abs(got-0.2) > 1e-9 {
			t.Errorf("Score() = %v; want 0.2", got)
		}
	})

	t.Run("bonus is clamped", func(t *testing.T) {
		s := NewScorer(Config{TextWeight: 0, KeywordWeight: 1, KeywordBonus: 0.9})
		got := s.Score(record, candidate)
		// 2 * 0.9 clamps to 1.0 before weighting.
		if got != 1.0 {
			t.Errorf("Score() = %v; want 1.0", got)
		}
	})
}

func TestScorerJaccard(t *testing.T) {
	// With pure text weighting the score is exactly the Jaccard index.
	s := NewScorer(Config{TextWeight: 1, KeywordWeight: 0, KeywordBonus: 0})
	record := service.TerminologyRecord{Display: "alpha beta gamma"}

	tests := []struct {
		name      string
		candidate string
		want      float64
	}{
		{"one of three shared, four total", "alpha x", 1.0 / 4.0},
		{"subset candidate", "alpha beta", 2.0 / 3.0},
		{"superset candidate", "alpha beta gamma delta", 3.0 / 4.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(record, service.CandidateEntry{Display: tt.candidate})
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score() = %v; want %v", got, tt.want)
			}
		})
	}
}
