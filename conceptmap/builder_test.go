package conceptmap

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	cm "github.com/ayushbridge/conceptmapper"
	"github.com/ayushbridge/conceptmapper/engine"
	"github.com/ayushbridge/conceptmapper/provider"
	"github.com/ayushbridge/conceptmapper/terminology"
)

// brokenResolver fails every resolution with a non-identity error.
type brokenResolver struct{}

func (brokenResolver) Resolve(ctx context.Context, sourceSystem, sourceCode, targetSystem string) ([]cm.ResolvedMapping, error) {
	return nil, errors.New("backing store offline")
}

// missingResolver reports every code as unknown.
type missingResolver struct{}

func (missingResolver) Resolve(ctx context.Context, sourceSystem, sourceCode, targetSystem string) ([]cm.ResolvedMapping, error) {
	return nil, &cm.NotFoundError{System: sourceSystem, Code: sourceCode}
}

func sampleBuilder(t *testing.T, opts ...BuilderOption) *Builder {
	t.Helper()

	store := terminology.NewSampleStore()
	resolver, err := engine.NewResolver(store,
		terminology.NewSamplePredefinedTable(),
		provider.NewStaticFromStore(store))
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	b, err := NewBuilder(store, resolver, opts...)
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	return b
}

func TestNewBuilder(t *testing.T) {
	if _, err := NewBuilder(nil, nil); err == nil {
		t.Error("expected error for nil collaborators")
	}
}

func TestBuild(t *testing.T) {
	ctx := context.Background()

	t.Run("one element per source record", func(t *testing.T) {
		b := sampleBuilder(t)

		artifact, err := b.Build(ctx, cm.SystemNAMASTE)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}

		if artifact.SourceSystem != cm.SystemNAMASTE {
			t.Errorf("SourceSystem = %q", artifact.SourceSystem)
		}
		if artifact.Status != "active" {
			t.Errorf("Status = %q; want active", artifact.Status)
		}
		if len(artifact.Groups) != 2 {
			t.Fatalf("got %d groups; want 2", len(artifact.Groups))
		}
		if artifact.Groups[0].Target != cm.SystemICD11TM2 {
			t.Errorf("first group target = %q; want TM2", artifact.Groups[0].Target)
		}

		// Ten NAMASTE sample records, each present exactly once per group.
		for _, g := range artifact.Groups {
			if len(g.Elements) != 10 {
				t.Errorf("group %s has %d elements; want 10", g.Target, len(g.Elements))
			}
			for _, e := range g.Elements {
				if e.Targets == nil {
					t.Errorf("element %s has nil targets", e.Code)
				}
			}
		}
	})

	t.Run("elements are code sorted", func(t *testing.T) {
		b := sampleBuilder(t)

		artifact, err := b.Build(ctx, cm.SystemNAMASTE)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}

		for _, g := range artifact.Groups {
			for i := 1; i < len(g.Elements); i++ {
				if g.Elements[i-1].Code >= g.Elements[i].Code {
					t.Errorf("group %s elements not sorted at %d: %s then %s",
						g.Target, i, g.Elements[i-1].Code, g.Elements[i].Code)
				}
			}
		}
	})

	t.Run("curated mappings appear with comments", func(t *testing.T) {
		b := sampleBuilder(t)

		artifact, err := b.Build(ctx, cm.SystemNAMASTE, cm.SystemICD11TM2)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if len(artifact.Groups) != 1 {
			t.Fatalf("got %d groups; want 1", len(artifact.Groups))
		}

		var nam006 *Element
		for i := range artifact.Groups[0].Elements {
			if artifact.Groups[0].Elements[i].Code == "NAM006" {
				nam006 = &artifact.Groups[0].Elements[i]
			}
		}
		if nam006 == nil {
			t.Fatal("NAM006 element missing")
		}
		if len(nam006.Targets) != 1 || nam006.Targets[0].Code != "TM2.03" {
			t.Fatalf("NAM006 targets = %+v; want TM2.03", nam006.Targets)
		}

		target := nam006.Targets[0]
		if target.Equivalence != cm.EquivalenceEquivalent {
			t.Errorf("Equivalence = %q", target.Equivalence)
		}
		if target.Method != cm.MethodPredefined {
			t.Errorf("Method = %q; want predefined", target.Method)
		}
		if target.Comment != "Mapped via predefined method with confidence 1.00" {
			t.Errorf("Comment = %q", target.Comment)
		}
	})

	t.Run("repeated builds are byte identical", func(t *testing.T) {
		b := sampleBuilder(t)

		first, err := b.Build(ctx, cm.SystemNAMASTE)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		second, err := b.Build(ctx, cm.SystemNAMASTE)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}

		firstJSON, err := json.Marshal(first)
		if err != nil {
			t.Fatal(err)
		}
		secondJSON, err := json.Marshal(second)
		if err != nil {
			t.Fatal(err)
		}
		if string(firstJSON) != string(secondJSON) {
			t.Error("repeated builds differ")
		}
	})

	t.Run("id is stable and version five", func(t *testing.T) {
		b := sampleBuilder(t)

		artifact, err := b.Build(ctx, cm.SystemNAMASTE)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if artifact.ID == "" {
			t.Fatal("empty artifact id")
		}
		again, err := b.Build(ctx, cm.SystemNAMASTE)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if artifact.ID != again.ID {
			t.Errorf("id changed between builds: %s vs %s", artifact.ID, again.ID)
		}

		// Different target sets yield different ids.
		tm2Only, err := b.Build(ctx, cm.SystemNAMASTE, cm.SystemICD11TM2)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if tm2Only.ID == artifact.ID {
			t.Error("different target sets share an id")
		}
	})

	t.Run("builder options shape the artifact", func(t *testing.T) {
		b := sampleBuilder(t,
			WithArtifactURL("http://example.org/fhir/ConceptMap/custom"),
			WithArtifactVersion("2.0.0"),
			WithArtifactName("Custom", "Custom Map"),
			WithPublisher("Example Org"),
			WithDate("2026-01-01"),
			WithWorkers(2),
		)

		artifact, err := b.Build(ctx, cm.SystemNAMASTE)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if artifact.URL != "http://example.org/fhir/ConceptMap/custom" {
			t.Errorf("URL = %q", artifact.URL)
		}
		if artifact.Version != "2.0.0" || artifact.Name != "Custom" || artifact.Title != "Custom Map" {
			t.Errorf("artifact = %+v", artifact)
		}
		if artifact.Publisher != "Example Org" || artifact.Date != "2026-01-01" {
			t.Errorf("artifact = %+v", artifact)
		}
	})

	t.Run("resolver failure aborts the build", func(t *testing.T) {
		b, err := NewBuilder(terminology.NewSampleStore(), brokenResolver{})
		if err != nil {
			t.Fatalf("NewBuilder() error = %v", err)
		}

		_, err = b.Build(ctx, cm.SystemNAMASTE)
		if err == nil {
			t.Fatal("Build() succeeded with a failing resolver")
		}
		if !strings.Contains(err.Error(), "backing store offline") {
			t.Errorf("error = %v; want the resolver failure", err)
		}
	})

	t.Run("not found results leave elements empty", func(t *testing.T) {
		b, err := NewBuilder(terminology.NewSampleStore(), missingResolver{})
		if err != nil {
			t.Fatalf("NewBuilder() error = %v", err)
		}

		artifact, err := b.Build(ctx, cm.SystemNAMASTE, cm.SystemICD11TM2)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		for _, e := range artifact.Groups[0].Elements {
			if len(e.Targets) != 0 {
				t.Errorf("element %s has %d targets; want 0", e.Code, len(e.Targets))
			}
		}
	})

	t.Run("unknown source system", func(t *testing.T) {
		b := sampleBuilder(t)
		if _, err := b.Build(ctx, "http://unknown"); err == nil {
			t.Error("expected error for unknown source system")
		}
	})
}

func TestArtifactCounts(t *testing.T) {
	a := &Artifact{
		Groups: []Group{
			{Elements: []Element{
				{Code: "A", Targets: []TargetMapping{{Code: "T1"}, {Code: "T2"}}},
				{Code: "B", Targets: []TargetMapping{}},
			}},
			{Elements: []Element{
				{Code: "A", Targets: []TargetMapping{{Code: "T3"}}},
			}},
		},
	}
	if a.ElementCount() != 3 {
		t.Errorf("ElementCount() = %d; want 3", a.ElementCount())
	}
	if a.MappingCount() != 3 {
		t.Errorf("MappingCount() = %d; want 3", a.MappingCount())
	}
}
