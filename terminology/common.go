package terminology

import (
	cm "github.com/ayushbridge/conceptmapper"
	"github.com/ayushbridge/conceptmapper/service"
)

// namasteRecords is the bundled NAMASTE sample dataset covering the
// Ayurveda, Siddha and Unani disciplines. Production deployments load
// the full terminology from CodeSystem bundles or spreadsheet exports.
var namasteRecords = []service.TerminologyRecord{
	{
		System:     cm.SystemNAMASTE,
		Code:       "NAM001",
		Display:    "Ama (Undigested food toxins)",
		Definition: "Accumulation of undigested food particles leading to toxicity",
		Category:   "Digestive Disorders",
		BodySystem: "Gastrointestinal",
	},
	{
		System:     cm.SystemNAMASTE,
		Code:       "NAM002",
		Display:    "Vata Dosha Imbalance",
		Definition: "Constitutional imbalance of Vata dosha affecting movement and nervous system",
		Category:   "Constitutional Disorders",
		BodySystem: "Nervous System",
	},
	{
		System:     cm.SystemNAMASTE,
		Code:       "NAM003",
		Display:    "Pitta Dosha Imbalance",
		Definition: "Constitutional imbalance of Pitta dosha affecting metabolism and heat",
		Category:   "Constitutional Disorders",
		BodySystem: "Metabolic System",
	},
	{
		System:     cm.SystemNAMASTE,
		Code:       "NAM004",
		Display:    "Kapha Dosha Imbalance",
		Definition: "Constitutional imbalance of Kapha dosha affecting structure and immunity",
		Category:   "Constitutional Disorders",
		BodySystem: "Immune System",
	},
	{
		System:     cm.SystemNAMASTE,
		Code:       "NAM005",
		Display:    "Ajirna (Indigestion)",
		Definition: "Impaired digestion leading to various gastrointestinal symptoms",
		Category:   "Digestive Disorders",
		BodySystem: "Gastrointestinal",
	},
	{
		System:     cm.SystemNAMASTE,
		Code:       "NAM006",
		Display:    "Shirahshula (Headache)",
		Definition: "Head pain due to various doshic imbalances",
		Category:   "Neurological Disorders",
		BodySystem: "Nervous System",
	},
	{
		System:     cm.SystemNAMASTE,
		Code:       "SID001",
		Display:    "Vatham Imbalance",
		Definition: "Vatham dosha imbalance in Siddha system",
		Category:   "Constitutional Disorders",
		BodySystem: "Nervous System",
	},
	{
		System:     cm.SystemNAMASTE,
		Code:       "SID002",
		Display:    "Pitham Imbalance",
		Definition: "Pitham dosha imbalance in Siddha system",
		Category:   "Constitutional Disorders",
		BodySystem: "Metabolic System",
	},
	{
		System:     cm.SystemNAMASTE,
		Code:       "UNA001",
		Display:    "Su-i-Mizaj (Temperament Disorder)",
		Definition: "Imbalance in temperament according to Unani medicine",
		Category:   "Temperament Disorders",
		BodySystem: "Constitutional",
	},
	{
		System:     cm.SystemNAMASTE,
		Code:       "UNA002",
		Display:    "Soo-i-Hazm (Dyspepsia)",
		Definition: "Digestive disorder characterized by impaired digestion",
		Category:   "Digestive Disorders",
		BodySystem: "Gastrointestinal",
	},
}

// icd11TM2Records is the bundled ICD-11 Traditional Medicine Module 2
// subset used when no live WHO API is configured.
var icd11TM2Records = []service.TerminologyRecord{
	{
		System:     cm.SystemICD11TM2,
		Code:       "TM2.01",
		Display:    "Traditional Medicine Pattern - Constitutional Type",
		Definition: "Traditional medicine constitutional pattern disorders",
	},
	{
		System:     cm.SystemICD11TM2,
		Code:       "TM2.02",
		Display:    "Traditional Medicine Pattern - Digestive Disorders",
		Definition: "Traditional medicine digestive pattern disorders",
	},
	{
		System:     cm.SystemICD11TM2,
		Code:       "TM2.03",
		Display:    "Traditional Medicine Pattern - Neurological Disorders",
		Definition: "Traditional medicine neurological pattern disorders",
	},
}

// icd11BiomedicineRecords is the bundled ICD-11 Biomedicine (MMS)
// subset covering the conditions referenced by the curated table.
var icd11BiomedicineRecords = []service.TerminologyRecord{
	{
		System:     cm.SystemICD11Biomedicine,
		Code:       "G43",
		Display:    "Migraine",
		Definition: "Recurrent headache disorder with attacks of moderate to severe pain",
	},
	{
		System:     cm.SystemICD11Biomedicine,
		Code:       "G44.2",
		Display:    "Tension-type headache",
		Definition: "Primary headache disorder characterized by bilateral pain",
	},
	{
		System:     cm.SystemICD11Biomedicine,
		Code:       "K30",
		Display:    "Functional dyspepsia",
		Definition: "Indigestion with discomfort centred in the upper abdomen",
	},
	{
		System:     cm.SystemICD11Biomedicine,
		Code:       "K59.0",
		Display:    "Constipation",
		Definition: "Difficulty in passing stools or infrequent bowel movements",
	},
	{
		System:     cm.SystemICD11Biomedicine,
		Code:       "R52",
		Display:    "Pain, not elsewhere classified",
		Definition: "Pain not assignable to a specific body system or condition",
	},
	{
		System:     cm.SystemICD11Biomedicine,
		Code:       "Z73.3",
		Display:    "Stress, not elsewhere classified",
		Definition: "General constitutional and stress-related state",
	},
}

// predefinedMappings is the curated NAMASTE to ICD-11 table. Equivalent
// pairs are authored at confidence 1.0, wider pairs at 0.9.
var predefinedMappings = []service.PredefinedMapping{
	// Ama (Undigested food toxins)
	{SourceSystem: cm.SystemNAMASTE, SourceCode: "NAM001", TargetSystem: cm.SystemICD11TM2, TargetCode: "TM2.02", Equivalence: cm.EquivalenceEquivalent, Confidence: 1.0},
	{SourceSystem: cm.SystemNAMASTE, SourceCode: "NAM001", TargetSystem: cm.SystemICD11Biomedicine, TargetCode: "K30", Equivalence: cm.EquivalenceWider, Confidence: 0.9},
	// Vata Dosha Imbalance
	{SourceSystem: cm.SystemNAMASTE, SourceCode: "NAM002", TargetSystem: cm.SystemICD11TM2, TargetCode: "TM2.01", Equivalence: cm.EquivalenceEquivalent, Confidence: 1.0},
	{SourceSystem: cm.SystemNAMASTE, SourceCode: "NAM002", TargetSystem: cm.SystemICD11Biomedicine, TargetCode: "Z73.3", Equivalence: cm.EquivalenceWider, Confidence: 0.9},
	// Pitta Dosha Imbalance
	{SourceSystem: cm.SystemNAMASTE, SourceCode: "NAM003", TargetSystem: cm.SystemICD11TM2, TargetCode: "TM2.01", Equivalence: cm.EquivalenceEquivalent, Confidence: 1.0},
	{SourceSystem: cm.SystemNAMASTE, SourceCode: "NAM003", TargetSystem: cm.SystemICD11Biomedicine, TargetCode: "Z73.3", Equivalence: cm.EquivalenceWider, Confidence: 0.9},
	// Kapha Dosha Imbalance
	{SourceSystem: cm.SystemNAMASTE, SourceCode: "NAM004", TargetSystem: cm.SystemICD11TM2, TargetCode: "TM2.01", Equivalence: cm.EquivalenceEquivalent, Confidence: 1.0},
	{SourceSystem: cm.SystemNAMASTE, SourceCode: "NAM004", TargetSystem: cm.SystemICD11Biomedicine, TargetCode: "Z73.3", Equivalence: cm.EquivalenceWider, Confidence: 0.9},
	// Ajirna (Indigestion)
	{SourceSystem: cm.SystemNAMASTE, SourceCode: "NAM005", TargetSystem: cm.SystemICD11TM2, TargetCode: "TM2.02", Equivalence: cm.EquivalenceEquivalent, Confidence: 1.0},
	{SourceSystem: cm.SystemNAMASTE, SourceCode: "NAM005", TargetSystem: cm.SystemICD11Biomedicine, TargetCode: "K30", Equivalence: cm.EquivalenceEquivalent, Confidence: 1.0},
	// Shirahshula (Headache)
	{SourceSystem: cm.SystemNAMASTE, SourceCode: "NAM006", TargetSystem: cm.SystemICD11TM2, TargetCode: "TM2.03", Equivalence: cm.EquivalenceEquivalent, Confidence: 1.0},
	{SourceSystem: cm.SystemNAMASTE, SourceCode: "NAM006", TargetSystem: cm.SystemICD11Biomedicine, TargetCode: "G44.2", Equivalence: cm.EquivalenceEquivalent, Confidence: 1.0},
	// Vatham Imbalance (Siddha)
	{SourceSystem: cm.SystemNAMASTE, SourceCode: "SID001", TargetSystem: cm.SystemICD11TM2, TargetCode: "TM2.01", Equivalence: cm.EquivalenceEquivalent, Confidence: 1.0},
	{SourceSystem: cm.SystemNAMASTE, SourceCode: "SID001", TargetSystem: cm.SystemICD11Biomedicine, TargetCode: "Z73.3", Equivalence: cm.EquivalenceWider, Confidence: 0.9},
	// Pitham Imbalance (Siddha)
	{SourceSystem: cm.SystemNAMASTE, SourceCode: "SID002", TargetSystem: cm.SystemICD11TM2, TargetCode: "TM2.01", Equivalence: cm.EquivalenceEquivalent, Confidence: 1.0},
	{SourceSystem: cm.SystemNAMASTE, SourceCode: "SID002", TargetSystem: cm.SystemICD11Biomedicine, TargetCode: "Z73.3", Equivalence: cm.EquivalenceWider, Confidence: 0.9},
	// Su-i-Mizaj (Unani)
	{SourceSystem: cm.SystemNAMASTE, SourceCode: "UNA001", TargetSystem: cm.SystemICD11TM2, TargetCode: "TM2.01", Equivalence: cm.EquivalenceEquivalent, Confidence: 1.0},
	{SourceSystem: cm.SystemNAMASTE, SourceCode: "UNA001", TargetSystem: cm.SystemICD11Biomedicine, TargetCode: "Z73.3", Equivalence: cm.EquivalenceWider, Confidence: 0.9},
	// Soo-i-Hazm (Unani)
	{SourceSystem: cm.SystemNAMASTE, SourceCode: "UNA002", TargetSystem: cm.SystemICD11TM2, TargetCode: "TM2.02", Equivalence: cm.EquivalenceEquivalent, Confidence: 1.0},
	{SourceSystem: cm.SystemNAMASTE, SourceCode: "UNA002", TargetSystem: cm.SystemICD11Biomedicine, TargetCode: "K30", Equivalence: cm.EquivalenceEquivalent, Confidence: 1.0},
}

// SampleRecords returns the bundled records of all three systems.
func SampleRecords() []service.TerminologyRecord {
	out := make([]service.TerminologyRecord, 0, len(namasteRecords)+len(icd11TM2Records)+len(icd11BiomedicineRecords))
	out = append(out, namasteRecords...)
	out = append(out, icd11TM2Records...)
	out = append(out, icd11BiomedicineRecords...)
	return out
}

// SamplePredefinedMappings returns the curated mapping table entries.
func SamplePredefinedMappings() []service.PredefinedMapping {
	out := make([]service.PredefinedMapping, len(predefinedMappings))
	copy(out, predefinedMappings)
	return out
}

// NewSampleStore returns a store pre-loaded with the bundled NAMASTE
// and ICD-11 sample records.
func NewSampleStore() *Store {
	s := NewStore()
	s.Add(SampleRecords()...)
	return s
}

// NewSamplePredefinedTable returns the curated table, indexed in both
// directions.
func NewSamplePredefinedTable() *PredefinedTable {
	t := NewPredefinedTable()
	t.Add(SamplePredefinedMappings()...)
	return t
}
