package conceptmapper

import (
	"errors"
	"fmt"
)

// NotFoundError indicates that a code does not exist in the record
// store. This is a caller error: it is always propagated, never
// converted into an empty result.
type NotFoundError struct {
	System string
	Code   string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("code %q not found in system %q", e.Code, e.System)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ProviderUnavailableError indicates that a candidate provider could not
// be reached or returned a transport-level failure. The resolver absorbs
// this error and degrades to an empty candidate list; it never reaches
// resolver callers.
type ProviderUnavailableError struct {
	System string
	Err    error
}

// Error implements the error interface.
func (e *ProviderUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("candidate provider unavailable for system %q: %v", e.System, e.Err)
	}
	return fmt.Sprintf("candidate provider unavailable for system %q", e.System)
}

// Unwrap returns the underlying transport error.
func (e *ProviderUnavailableError) Unwrap() error {
	return e.Err
}

// IsProviderUnavailable reports whether err is (or wraps) a
// ProviderUnavailableError.
func IsProviderUnavailable(err error) bool {
	var pu *ProviderUnavailableError
	return errors.As(err, &pu)
}

// InvalidEquivalenceBandError indicates a confidence score that cannot
// be classified, or band bounds that do not partition (0, 1]. Either way
// this is a configuration bug, not a per-request condition.
type InvalidEquivalenceBandError struct {
	Confidence float64
	Bands      Bands
}

// Error implements the error interface.
func (e *InvalidEquivalenceBandError) Error() string {
	return fmt.Sprintf("confidence %v cannot be classified with bands %+v", e.Confidence, e.Bands)
}
