package conceptmap

import (
	"github.com/gofhir/fhir/r4"

	cm "github.com/ayushbridge/conceptmapper"
)

// R4 exports the artifact as a FHIR R4 ConceptMap resource.
func (a *Artifact) R4() *r4.ConceptMap {
	status := publicationStatus(a.Status)
	out := &r4.ConceptMap{
		Id:          optStr(a.ID),
		Url:         optStr(a.URL),
		Version:     optStr(a.Version),
		Name:        optStr(a.Name),
		Title:       optStr(a.Title),
		Status:      &status,
		Date:        optStr(a.Date),
		Publisher:   optStr(a.Publisher),
		Description: optStr(a.Description),
		SourceUri:   optStr(a.SourceSystem),
	}

	out.Group = make([]r4.ConceptMapGroup, 0, len(a.Groups))
	for _, g := range a.Groups {
		group := r4.ConceptMapGroup{
			Source:  strPtr(g.Source),
			Target:  strPtr(g.Target),
			Element: make([]r4.ConceptMapGroupElement, 0, len(g.Elements)),
		}
		for _, e := range g.Elements {
			element := r4.ConceptMapGroupElement{
				Code:    strPtr(e.Code),
				Display: optStr(e.Display),
				Target:  make([]r4.ConceptMapGroupElementTarget, 0, len(e.Targets)),
			}
			for _, tm := range e.Targets {
				eq := r4Equivalence(tm.Equivalence)
				target := r4.ConceptMapGroupElementTarget{
					Code:        strPtr(tm.Code),
					Display:     optStr(tm.Display),
					Equivalence: &eq,
					Comment:     optStr(tm.Comment),
				}
				element.Target = append(element.Target, target)
			}
			group.Element = append(group.Element, element)
		}
		out.Group = append(out.Group, group)
	}
	return out
}

func publicationStatus(status string) r4.PublicationStatus {
	switch status {
	case "active":
		return r4.PublicationStatusActive
	case "retired":
		return r4.PublicationStatusRetired
	default:
		return r4.PublicationStatusDraft
	}
}

func r4Equivalence(eq cm.Equivalence) r4.ConceptMapEquivalence {
	switch eq {
	case cm.EquivalenceEquivalent:
		return r4.ConceptMapEquivalenceEquivalent
	case cm.EquivalenceWider:
		return r4.ConceptMapEquivalenceWider
	case cm.EquivalenceNarrower:
		return r4.ConceptMapEquivalenceNarrower
	default:
		return r4.ConceptMapEquivalenceRelatedto
	}
}

func strPtr(s string) *string {
	return &s
}

// optStr returns nil for the empty string so unset fields are omitted
// from the serialized resource.
func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
