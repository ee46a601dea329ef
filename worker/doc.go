// Package worker provides a bounded worker pool for running many
// resolutions concurrently, used when building full ConceptMaps.
// Each job computes into its own result; nothing is shared between
// in-flight resolutions.
package worker
