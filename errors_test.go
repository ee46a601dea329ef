package conceptmapper

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{System: SystemNAMASTE, Code: "NAM999"}

	if !IsNotFound(err) {
		t.Error("IsNotFound() = false for NotFoundError")
	}
	if !IsNotFound(fmt.Errorf("resolving: %w", err)) {
		t.Error("IsNotFound() = false for wrapped NotFoundError")
	}
	if IsNotFound(errors.New("other")) {
		t.Error("IsNotFound() = true for unrelated error")
	}
	if IsNotFound(nil) {
		t.Error("IsNotFound(nil) = true")
	}
}

func TestProviderUnavailableError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &ProviderUnavailableError{System: SystemICD11TM2, Err: cause}

	if !IsProviderUnavailable(err) {
		t.Error("IsProviderUnavailable() = false")
	}
	if !errors.Is(err, cause) {
		t.Error("expected Unwrap to expose the cause")
	}
	if IsProviderUnavailable(cause) {
		t.Error("IsProviderUnavailable() = true for bare cause")
	}

	// Without a cause the message still names the system.
	bare := &ProviderUnavailableError{System: SystemICD11TM2}
	if bare.Error() == "" {
		t.Error("expected non-empty message")
	}
}
