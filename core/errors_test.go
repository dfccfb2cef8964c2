package core

import (
	"errors"
	"fmt"
	"testing"
)

// Error class tests
func TestErrorClasses(t *testing.T) {
	configErrs := []error{ErrDuplicateFamily, ErrAbstractModule, ErrNotAModule, ErrRegistryLocked, ErrAlreadyConstructed}
	for _, err := range configErrs {
		if !IsConfiguration(err) || IsUsage(err) {
			t.Fatalf("%v should be a configuration error only", err)
		}
	}

	usageErrs := []error{ErrUndeclaredLifecycle, ErrInvalidLifecycle, ErrReservedLifecycle, ErrSecondaryDestroy, ErrNoPrimaryHost, ErrArgumentMismatch, ErrNodeDestroyed}
	for _, err := range usageErrs {
		if !IsUsage(err) || IsConfiguration(err) {
			t.Fatalf("%v should be a usage error only", err)
		}
	}
}

func TestErrorf_KeepsSentinel(t *testing.T) {
	err := Errorf(ErrDuplicateFamily, "%s taken by %s", "Audio", "MutedAudio")
	if !errors.Is(err, ErrDuplicateFamily) || !IsConfiguration(err) {
		t.Fatalf("Errorf lost its sentinel: %v", err)
	}
	if got, want := err.Error(), "module family already registered: Audio taken by MutedAudio"; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}

	wrapped := fmt.Errorf("setup: %w", Errorf(ErrUsage, "bad"))
	if !IsUsage(wrapped) {
		t.Fatalf("wrapped usage error not recognized: %v", wrapped)
	}
}

func TestNewID_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID()
		if id == "" || seen[id] {
			t.Fatalf("duplicate or empty id %q", id)
		}
		seen[id] = true
	}
}
