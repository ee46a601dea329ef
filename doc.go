// Package conceptmapper provides terminology mapping between the NAMASTE
// traditional-medicine terminology and the WHO ICD-11 classification
// (Traditional Medicine Module 2 and Biomedicine).
//
// The engine establishes equivalence between codes of independent coding
// systems and produces ConceptMap artifacts suitable for clinical
// dual-coding. Curated (predefined) mappings always take precedence;
// for everything else a similarity scorer ranks candidates returned by a
// pluggable candidate provider and classifies each surviving candidate
// into an equivalence band derived from its confidence.
//
// # Quick Start
//
//	import (
//	    cm "github.com/ayushbridge/conceptmapper"
//	    "github.com/ayushbridge/conceptmapper/engine"
//	    "github.com/ayushbridge/conceptmapper/provider"
//	    "github.com/ayushbridge/conceptmapper/terminology"
//	)
//
//	store := terminology.NewSampleStore()
//	table := terminology.NewSamplePredefinedTable()
//	prov := provider.NewStaticFromStore(store)
//
//	resolver, err := engine.NewResolver(store, table, prov)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	translator := engine.NewTranslator(resolver, cm.KnownTargetSystems())
//	result, err := translator.Translate(ctx, cm.SystemNAMASTE, "NAM006", cm.SelectBoth())
//
// # Functional Options
//
// All decision constants (similarity weights, keyword bonus, minimum
// confidence, equivalence bands, candidate limits, provider timeout) are
// tunable:
//
//	resolver, err := engine.NewResolver(store, table, prov,
//	    cm.WithMinConfidence(0.3),
//	    cm.WithSimilarityWeights(0.8, 0.2),
//	    cm.WithProviderTimeout(10*time.Second),
//	)
//
// # Architecture
//
//   - Small interfaces (1-2 methods each) in the service package
//   - Read-only record store and predefined table after startup; reloads
//     swap the whole structure atomically
//   - The candidate provider is the only external I/O; its failures
//     degrade to "no candidates" and never abort a resolution
//   - Worker pool fan-out for full ConceptMap builds
package conceptmapper
