package conceptmap

import (
	cm "github.com/ayushbridge/conceptmapper"
)

// Artifact is the aggregated mapping set for one source system against
// one or more target systems. Plain values only; serialize with any
// codec the boundary layer chooses, or export to FHIR via R4.
type Artifact struct {
	ID           string  `json:"id"`
	URL          string  `json:"url"`
	Version      string  `json:"version"`
	Name         string  `json:"name"`
	Title        string  `json:"title,omitempty"`
	Status       string  `json:"status"`
	Date         string  `json:"date,omitempty"`
	Publisher    string  `json:"publisher,omitempty"`
	Description  string  `json:"description,omitempty"`
	SourceSystem string  `json:"sourceSystem"`
	Groups       []Group `json:"groups"`
}

// Group holds the mappings from the source system to one target system.
type Group struct {
	Source   string    `json:"source"`
	Target   string    `json:"target"`
	Elements []Element `json:"elements"`
}

// Element is one source code and its resolved targets. Targets is empty
// (never nil) for a known code without mappings.
type Element struct {
	Code    string          `json:"code"`
	Display string          `json:"display"`
	Targets []TargetMapping `json:"targets"`
}

// TargetMapping is one resolved target within an element.
type TargetMapping struct {
	Code        string           `json:"code"`
	Display     string           `json:"display"`
	Equivalence cm.Equivalence   `json:"equivalence"`
	Confidence  float64          `json:"confidence"`
	Method      cm.MappingMethod `json:"method"`
	Comment     string           `json:"comment,omitempty"`
}

// ElementCount returns the total number of elements across groups.
func (a *Artifact) ElementCount() int {
	n := 0
	for _, g := range a.Groups {
		n += len(g.Elements)
	}
	return n
}

// MappingCount returns the total number of target mappings.
func (a *Artifact) MappingCount() int {
	n := 0
	for _, g := range a.Groups {
		for _, e := range g.Elements {
			n += len(e.Targets)
		}
	}
	return n
}
