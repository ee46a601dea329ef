package conceptmapper

import "fmt"

// MappingMethod records how a mapping was established.
type MappingMethod string

const (
	// MethodPredefined marks a mapping taken verbatim from the curated
	// table. Predefined mappings always win over automatic ones.
	MethodPredefined MappingMethod = "predefined"
	// MethodAutomatic marks a mapping computed at runtime via similarity
	// scoring against provider candidates.
	MethodAutomatic MappingMethod = "automatic"
)

// ConceptRef identifies a concept within a coding system. Identity is
// (System, Code); Display is carried for convenience and may be empty.
type ConceptRef struct {
	System  string `json:"system"`
	Code    string `json:"code"`
	Display string `json:"display,omitempty"`
}

// ResolvedMapping is a single source-to-target mapping with its
// equivalence and confidence. Values are never mutated after creation;
// a new resolution always produces new values.
type ResolvedMapping struct {
	Source      ConceptRef    `json:"source"`
	Target      ConceptRef    `json:"target"`
	Equivalence Equivalence   `json:"equivalence"`
	Confidence  float64       `json:"confidence"`
	Method      MappingMethod `json:"method"`
}

// TargetGroup holds the mappings resolved against one target system.
type TargetGroup struct {
	System   string            `json:"system"`
	Mappings []ResolvedMapping `json:"mappings"`
}

// TranslationResult is the outcome of a translate call: one group per
// requested target system, in request order. An empty result (all
// groups empty) is success, distinct from a NotFoundError.
type TranslationResult struct {
	Source ConceptRef    `json:"source"`
	Groups []TargetGroup `json:"groups"`
}

// Empty returns true if no target system produced any mapping.
func (r *TranslationResult) Empty() bool {
	for _, g := range r.Groups {
		if len(g.Mappings) > 0 {
			return false
		}
	}
	return true
}

// Mappings returns all mappings flattened in group order.
func (r *TranslationResult) Mappings() []ResolvedMapping {
	var all []ResolvedMapping
	for _, g := range r.Groups {
		all = append(all, g.Mappings...)
	}
	return all
}

// TargetMode selects how translation targets are chosen.
type TargetMode int

const (
	// TargetSingle translates against one named system.
	TargetSingle TargetMode = iota
	// TargetBoth translates against both ICD-11 linearizations (or, more
	// generally, every configured target system) in canonical order.
	TargetBoth
	// TargetAll translates against every configured target system in
	// canonical order.
	TargetAll
)

// TargetSelection is a tagged selection of translation targets. It is
// resolved to a concrete ordered list of system URIs before the
// resolver is invoked, so output order never depends on internal
// iteration order.
type TargetSelection struct {
	Mode   TargetMode
	System string // only for TargetSingle
}

// SelectSystem selects a single target system by URI.
func SelectSystem(uri string) TargetSelection {
	return TargetSelection{Mode: TargetSingle, System: uri}
}

// SelectBoth selects both configured target systems in canonical order.
func SelectBoth() TargetSelection {
	return TargetSelection{Mode: TargetBoth}
}

// SelectAll selects every configured target system in canonical order.
func SelectAll() TargetSelection {
	return TargetSelection{Mode: TargetAll}
}

// Resolve expands the selection against the configured target systems.
// The returned slice preserves the canonical order of known.
func (s TargetSelection) Resolve(known []string) ([]string, error) {
	switch s.Mode {
	case TargetSingle:
		if s.System == "" {
			return nil, fmt.Errorf("target selection names no system")
		}
		return []string{s.System}, nil
	case TargetBoth, TargetAll:
		if len(known) == 0 {
			return nil, fmt.Errorf("no target systems configured")
		}
		out := make([]string, len(known))
		copy(out, known)
		return out, nil
	default:
		return nil, fmt.Errorf("unknown target mode %d", s.Mode)
	}
}
