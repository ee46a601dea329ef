package conceptmapper

// Version is the library version.
const Version = "0.1.0"

// Canonical system URIs for the coding systems this engine ships with.
// Any other system URI can be used as long as the record store and the
// candidate provider know about it.
const (
	// SystemNAMASTE is the NAMASTE terminology of the Ministry of AYUSH
	// (Ayurveda, Siddha and Unani disorder codes).
	SystemNAMASTE = "http://terminology.mohayush.gov.in/namaste"

	// SystemICD11TM2 is the WHO ICD-11 Traditional Medicine Module 2
	// linearization.
	SystemICD11TM2 = "http://id.who.int/icd/release/11/2023-01/tm2"

	// SystemICD11Biomedicine is the WHO ICD-11 MMS (Biomedicine)
	// linearization.
	SystemICD11Biomedicine = "http://id.who.int/icd/release/11/2023-01/mms"
)

// KnownTargetSystems returns the canonical ordered list of ICD-11 target
// systems. The order is fixed (TM2 before Biomedicine) so that "both"
// and "all" translations produce reproducible output.
func KnownTargetSystems() []string {
	return []string{SystemICD11TM2, SystemICD11Biomedicine}
}
