// Package terminology provides the in-memory record store and the
// curated predefined mapping table.
//
// Both structures are loaded once at startup and treated as read-only
// for the process lifetime; Replace swaps the whole structure atomically
// so concurrent readers never observe a half-updated table. The package
// also bundles the NAMASTE and ICD-11 sample datasets and loaders for
// FHIR R4 CodeSystem bundles and NAMASTE spreadsheet exports.
package terminology
