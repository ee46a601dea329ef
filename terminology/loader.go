package terminology

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gofhir/fhir/r4"

	"github.com/ayushbridge/conceptmapper/service"
)

// RecordsFromCodeSystem converts a FHIR R4 CodeSystem into terminology
// records. Category and body-system metadata travel as the concept
// properties "category" and "bodySystem", the way the NAMASTE
// CodeSystem export authors them. Concepts without a code are skipped.
func RecordsFromCodeSystem(cs *r4.CodeSystem) ([]service.TerminologyRecord, error) {
	if cs == nil || cs.Url == nil {
		return nil, fmt.Errorf("codesystem is nil or has no URL")
	}

	var out []service.TerminologyRecord
	collectConcepts(cs.Concept, *cs.Url, &out)
	return out, nil
}

func collectConcepts(concepts []r4.CodeSystemConcept, system string, out *[]service.TerminologyRecord) {
	for i := range concepts {
		concept := &concepts[i]
		if concept.Code == nil {
			continue
		}

		rec := service.TerminologyRecord{
			System: system,
			Code:   *concept.Code,
		}
		if concept.Display != nil {
			rec.Display = *concept.Display
		}
		if concept.Definition != nil {
			rec.Definition = *concept.Definition
		}
		for _, prop := range concept.Property {
			if prop.Code == nil || prop.ValueString == nil {
				continue
			}
			switch *prop.Code {
			case "category":
				rec.Category = *prop.ValueString
			case "bodySystem":
				rec.BodySystem = *prop.ValueString
			}
		}
		if rec.Definition == "" {
			rec.Definition = rec.Display
		}
		*out = append(*out, rec)

		// Recurse into nested concepts for hierarchical CodeSystems.
		if len(concept.Concept) > 0 {
			collectConcepts(concept.Concept, system, out)
		}
	}
}

// LoadCodeSystem adds every concept of a CodeSystem to the store.
// Returns the number of records added.
func (s *Store) LoadCodeSystem(cs *r4.CodeSystem) (int, error) {
	records, err := RecordsFromCodeSystem(cs)
	if err != nil {
		return 0, err
	}
	s.Add(records...)
	return len(records), nil
}

// LoadCodeSystemFile reads a CodeSystem JSON file and adds its concepts
// to the store.
func (s *Store) LoadCodeSystemFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read codesystem file: %w", err)
	}

	var cs r4.CodeSystem
	if err := json.Unmarshal(data, &cs); err != nil {
		return 0, fmt.Errorf("failed to parse codesystem %s: %w", path, err)
	}
	return s.LoadCodeSystem(&cs)
}

// LoadPredefinedFile reads a JSON array of predefined mappings into the
// table.
func (t *PredefinedTable) LoadPredefinedFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read mapping file: %w", err)
	}

	var mappings []service.PredefinedMapping
	if err := json.Unmarshal(data, &mappings); err != nil {
		return 0, fmt.Errorf("failed to parse mapping file %s: %w", path, err)
	}
	t.Add(mappings...)
	return len(mappings), nil
}
