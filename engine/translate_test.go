package engine

import (
	"context"
	"testing"

	cm "github.com/ayushbridge/conceptmapper"
	"github.com/ayushbridge/conceptmapper/service"
	"github.com/ayushbridge/conceptmapper/terminology"
)

func sampleTranslator(t *testing.T) *Translator {
	t.Helper()
	return NewTranslator(sampleResolver(t, nil), cm.KnownTargetSystems())
}

func TestTranslate(t *testing.T) {
	ctx := context.Background()

	t.Run("both targets in canonical order", func(t *testing.T) {
		tr := sampleTranslator(t)

		result, err := tr.Translate(ctx, cm.SystemNAMASTE, "NAM001", cm.SelectBoth())
		if err != nil {
			t.Fatalf("Translate() error = %v", err)
		}

		if len(result.Groups) != 2 {
			t.Fatalf("got %d groups; want 2", len(result.Groups))
		}
		if result.Groups[0].System != cm.SystemICD11TM2 {
			t.Errorf("first group = %q; want TM2", result.Groups[0].System)
		}
		if result.Groups[1].System != cm.SystemICD11Biomedicine {
			t.Errorf("second group = %q; want Biomedicine", result.Groups[1].System)
		}

		if result.Source.Display != "Ama (Undigested food toxins)" {
			t.Errorf("Source.Display = %q", result.Source.Display)
		}

		tm2 := result.Groups[0].Mappings
		if len(tm2) != 1 || tm2[0].Target.Code != "TM2.02" {
			t.Errorf("TM2 mappings = %+v; want TM2.02", tm2)
		}
		bio := result.Groups[1].Mappings
		if len(bio) != 1 || bio[0].Target.Code != "K30" {
			t.Errorf("Biomedicine mappings = %+v; want K30", bio)
		}
	})

	t.Run("single target", func(t *testing.T) {
		tr := sampleTranslator(t)

		result, err := tr.Translate(ctx, cm.SystemNAMASTE, "NAM001", cm.SelectSystem(cm.SystemICD11TM2))
		if err != nil {
			t.Fatalf("Translate() error = %v", err)
		}
		if len(result.Groups) != 1 || result.Groups[0].System != cm.SystemICD11TM2 {
			t.Errorf("groups = %+v; want one TM2 group", result.Groups)
		}
	})

	t.Run("reverse translation", func(t *testing.T) {
		tr := sampleTranslator(t)

		result, err := tr.Translate(ctx, cm.SystemICD11Biomedicine, "G44.2", cm.SelectSystem(cm.SystemNAMASTE))
		if err != nil {
			t.Fatalf("Translate() error = %v", err)
		}
		mappings := result.Mappings()
		if len(mappings) != 1 || mappings[0].Target.Code != "NAM006" {
			t.Errorf("mappings = %+v; want NAM006", mappings)
		}
	})

	t.Run("source system stays an empty group", func(t *testing.T) {
		// Translating a TM2 code with "both" keeps the TM2 group so the
		// result has one group per requested target, but never maps the
		// system onto itself.
		tr := sampleTranslator(t)

		result, err := tr.Translate(ctx, cm.SystemICD11TM2, "TM2.01", cm.SelectBoth())
		if err != nil {
			t.Fatalf("Translate() error = %v", err)
		}
		if len(result.Groups) != 2 {
			t.Fatalf("got %d groups; want 2", len(result.Groups))
		}
		self := result.Groups[0]
		if self.System != cm.SystemICD11TM2 {
			t.Fatalf("first group = %q; want TM2", self.System)
		}
		if self.Mappings == nil || len(self.Mappings) != 0 {
			t.Errorf("self group mappings = %+v; want empty", self.Mappings)
		}
	})

	t.Run("unknown code propagates not found", func(t *testing.T) {
		tr := sampleTranslator(t)

		_, err := tr.Translate(ctx, cm.SystemNAMASTE, "NOPE123", cm.SelectBoth())
		if !cm.IsNotFound(err) {
			t.Errorf("error = %v; want NotFoundError", err)
		}
	})

	t.Run("groups are never nil", func(t *testing.T) {
		// With a failing provider and no curated entries every group is
		// present but empty.
		store := terminology.NewSampleStore()
		r, err := NewResolver(store, terminology.NewPredefinedTable(), failingProvider{})
		if err != nil {
			t.Fatalf("NewResolver() error = %v", err)
		}
		tr := NewTranslator(r, cm.KnownTargetSystems())

		result, err := tr.Translate(ctx, cm.SystemNAMASTE, "NAM001", cm.SelectBoth())
		if err != nil {
			t.Fatalf("Translate() error = %v", err)
		}
		if !result.Empty() {
			t.Error("Empty() = false; want true")
		}
		if len(result.Groups) != 2 {
			t.Fatalf("got %d groups; want 2", len(result.Groups))
		}
		for _, g := range result.Groups {
			if g.Mappings == nil {
				t.Errorf("group %s has nil mappings", g.System)
			}
		}
	})

	t.Run("invalid selection", func(t *testing.T) {
		tr := sampleTranslator(t)
		if _, err := tr.Translate(ctx, cm.SystemNAMASTE, "NAM001", cm.SelectSystem("")); err == nil {
			t.Error("expected error for empty selection")
		}
	})
}

func TestValidateMapping(t *testing.T) {
	ctx := context.Background()

	t.Run("sample pairing fills references", func(t *testing.T) {
		tr := sampleTranslator(t)

		// NAM006 and G44.2 share little display text, so assert on the
		// shape of the verdict rather than a fixed score.
		result, err := tr.ValidateMapping(ctx, cm.SystemNAMASTE, "NAM006", cm.SystemICD11Biomedicine, "G44.2")
		if err != nil {
			t.Fatalf("ValidateMapping() error = %v", err)
		}
		if result.Source.Code != "NAM006" || result.Target.Code != "G44.2" {
			t.Errorf("refs = %+v / %+v", result.Source, result.Target)
		}
		if result.Recommendation == "" {
			t.Error("empty recommendation")
		}
		if result.Target.Display != "Tension-type headache" {
			t.Errorf("Target.Display = %q", result.Target.Display)
		}
	})

	t.Run("high confidence pairing", func(t *testing.T) {
		store := terminology.NewStore()
		store.Add(
			terminologyRecord("src", "S1", "alpha beta gamma"),
			terminologyRecord("tgt", "T1", "alpha beta gamma"),
		)
		r, err := NewResolver(store, terminology.NewPredefinedTable(), failingProvider{}, cm.WithSimilarityWeights(1, 0))
		if err != nil {
			t.Fatalf("NewResolver() error = %v", err)
		}
		tr := NewTranslator(r, cm.KnownTargetSystems())

		result, err := tr.ValidateMapping(ctx, "src", "S1", "tgt", "T1")
		if err != nil {
			t.Fatalf("ValidateMapping() error = %v", err)
		}
		if !result.Valid {
			t.Error("Valid = false; want true")
		}
		if result.Confidence != 1.0 {
			t.Errorf("Confidence = %v; want 1.0", result.Confidence)
		}
		if result.Equivalence != cm.EquivalenceEquivalent {
			t.Errorf("Equivalence = %q", result.Equivalence)
		}
		if result.Recommendation != RecommendationAccept {
			t.Errorf("Recommendation = %q; want accept", result.Recommendation)
		}
	})

	t.Run("weak pairing is rejected", func(t *testing.T) {
		store := terminology.NewStore()
		store.Add(
			terminologyRecord("src", "S1", "alpha beta gamma"),
			terminologyRecord("tgt", "T1", "delta epsilon zeta"),
		)
		r, err := NewResolver(store, terminology.NewPredefinedTable(), failingProvider{}, cm.WithSimilarityWeights(1, 0))
		if err != nil {
			t.Fatalf("NewResolver() error = %v", err)
		}
		tr := NewTranslator(r, cm.KnownTargetSystems())

		result, err := tr.ValidateMapping(ctx, "src", "S1", "tgt", "T1")
		if err != nil {
			t.Fatalf("ValidateMapping() error = %v", err)
		}
		if result.Valid {
			t.Error("Valid = true; want false")
		}
		if result.Recommendation != RecommendationReject {
			t.Errorf("Recommendation = %q; want reject", result.Recommendation)
		}
	})

	t.Run("borderline pairing needs review", func(t *testing.T) {
		store := terminology.NewStore()
		store.Add(
			terminologyRecord("src", "S1", "alpha beta gamma"),
			// 3 shared of 6 -> 0.5: below the wider bound, above minimum.
			terminologyRecord("tgt", "T1", "alpha beta gamma delta epsilon zeta"),
		)
		r, err := NewResolver(store, terminology.NewPredefinedTable(), failingProvider{}, cm.WithSimilarityWeights(1, 0))
		if err != nil {
			t.Fatalf("NewResolver() error = %v", err)
		}
		tr := NewTranslator(r, cm.KnownTargetSystems())

		result, err := tr.ValidateMapping(ctx, "src", "S1", "tgt", "T1")
		if err != nil {
			t.Fatalf("ValidateMapping() error = %v", err)
		}
		if !result.Valid {
			t.Error("Valid = false; want true")
		}
		if result.Recommendation != RecommendationReview {
			t.Errorf("Recommendation = %q; want review", result.Recommendation)
		}
	})

	t.Run("unknown source code", func(t *testing.T) {
		tr := sampleTranslator(t)
		_, err := tr.ValidateMapping(ctx, cm.SystemNAMASTE, "NOPE123", cm.SystemICD11TM2, "TM2.01")
		if !cm.IsNotFound(err) {
			t.Errorf("error = %v; want NotFoundError", err)
		}
	})

	t.Run("unknown target code", func(t *testing.T) {
		tr := sampleTranslator(t)
		_, err := tr.ValidateMapping(ctx, cm.SystemNAMASTE, "NAM001", cm.SystemICD11TM2, "TM2.99")
		if !cm.IsNotFound(err) {
			t.Errorf("error = %v; want NotFoundError", err)
		}
	})
}

func terminologyRecord(system, code, display string) service.TerminologyRecord {
	return service.TerminologyRecord{System: system, Code: code, Display: display}
}
