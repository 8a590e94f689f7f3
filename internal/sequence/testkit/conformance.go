package testkit

import (
	"testing"

	"github.com/louisbranch/copyless/internal/sequence"
)

// ValidateDispatcherConformance checks the membership surface of an
// initialised dispatcher against the identities it was declared with:
//
//   - the flag is the OR of one bit per declared identity
//   - NumSequences equals the number of declared identities
//   - IsMember agrees with the flag for every identity, including out of range
//   - dispatching a non-member is ignored without error
//
// It never dispatches to a member, so handler state is left untouched.
func ValidateDispatcherConformance(t *testing.T, d sequence.Dispatcher, ids ...sequence.ID) {
	t.Helper()

	var want sequence.Flag
	for _, id := range ids {
		want |= sequence.Flag(1) << id
	}
	if got := d.CompositionFlag(); got != want {
		t.Errorf("CompositionFlag = %s, want %s", got, want)
	}
	if got := d.NumSequences(); got != len(ids) {
		t.Errorf("NumSequences = %d, want %d", got, len(ids))
	}

	for id := 0; id <= 255; id++ {
		seqID := sequence.ID(id)
		member := want.Has(seqID)
		if got := d.IsMember(seqID); got != member {
			t.Errorf("IsMember(%d) = %v, want %v", id, got, member)
		}
		if member {
			continue
		}
		handled, err := d.Dispatch(seqID, 0)
		if err != nil {
			t.Errorf("Dispatch(%d) error = %v, want nil", id, err)
		}
		if handled {
			t.Errorf("Dispatch(%d) handled a non-member", id)
		}
	}
}

// AssertDispatchAllocs fails the test when dispatching raw to id allocates.
func AssertDispatchAllocs(t *testing.T, d sequence.Dispatcher, id sequence.ID, raw sequence.OpcodeBase) {
	t.Helper()

	var dispatchErr error
	allocs := testing.AllocsPerRun(100, func() {
		if _, err := d.Dispatch(id, raw); err != nil {
			dispatchErr = err
		}
	})
	if dispatchErr != nil {
		t.Fatalf("Dispatch(%d, %d): %v", id, raw, dispatchErr)
	}
	if allocs != 0 {
		t.Fatalf("Dispatch(%d, %d) allocs = %v, want 0", id, raw, allocs)
	}
}
