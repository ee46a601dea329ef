// Package conceptmap aggregates resolved mappings into an exportable
// ConceptMap artifact.
//
// The artifact is a plain structured value: every known source record
// appears as an element even when it has no mapping, so consumers can
// tell "known code, no mapping" from "unknown code". Building is
// deterministic: unchanged inputs produce a byte-for-byte identical
// artifact, including the UUIDv5 id.
package conceptmap
