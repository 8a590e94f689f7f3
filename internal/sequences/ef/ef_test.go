package ef

import (
	"errors"
	"testing"

	apperrors "github.com/louisbranch/copyless/internal/platform/errors"
	"github.com/louisbranch/copyless/internal/sequence"
	"github.com/louisbranch/copyless/internal/sequence/testkit"
	"github.com/louisbranch/copyless/internal/transaction"
)

func TestCompositionConstants(t *testing.T) {
	if TestSequenceFlag != 3 {
		t.Fatalf("TestSequenceFlag = %s, want 0x3", TestSequenceFlag)
	}
	if TestSequenceNumSequences != 2 {
		t.Fatalf("TestSequenceNumSequences = %d, want 2", TestSequenceNumSequences)
	}
	if WideSequenceFlag != 7 || WideSequenceNumSequences != 3 {
		t.Fatalf("WideSequence = %s/%d, want 0x7/3", WideSequenceFlag, WideSequenceNumSequences)
	}
	if GenericComposition.Flag() != TestSequenceFlag {
		t.Fatalf("generic flag = %s, want %s", GenericComposition.Flag(), TestSequenceFlag)
	}
	if TestSequenceComposition.NumSequences() != 2 {
		t.Fatalf("composition count = %d, want 2", TestSequenceComposition.NumSequences())
	}
}

func TestTestSequenceDispatch(t *testing.T) {
	var txn transaction.Transaction
	var seq TestSequence
	seq.Init(&txn)

	if seq.CompositionFlag() != 3 || seq.NumSequences() != 2 {
		t.Fatalf("flag/count = %s/%d, want 0x3/2", seq.CompositionFlag(), seq.NumSequences())
	}
	if !seq.IsMember(EID) || !seq.IsMember(FID) || seq.IsMember(GID) {
		t.Fatal("unexpected membership")
	}
	if seq.E().Transaction() != &txn || seq.F().Transaction() != &txn {
		t.Fatal("expected every sequence to share the transaction")
	}

	handled, err := seq.Dispatch(EID, uint32(RunB))
	if err != nil || !handled {
		t.Fatalf("dispatch(0, RunB) = %v, %v", handled, err)
	}
	if seq.E().Runs(RunB) != 1 || seq.E().Y() != "b" {
		t.Fatalf("E runs(RunB) = %d, y = %q", seq.E().Runs(RunB), seq.E().Y())
	}
	if seq.F().Runs(RunX) != 0 || seq.F().Runs(RunY) != 0 {
		t.Fatal("expected F to stay untouched")
	}
	if txn.Steps() != 1 || txn.Touched() != 1 {
		t.Fatalf("txn steps/touched = %d/%s, want 1/0x1", txn.Steps(), txn.Touched())
	}

	handled, err = seq.Dispatch(5, 0)
	if err != nil || handled {
		t.Fatalf("dispatch(5, 0) = %v, %v, want false, nil", handled, err)
	}
	if txn.Steps() != 1 {
		t.Fatal("expected non-member dispatch to leave the transaction unchanged")
	}

	if _, err := seq.Dispatch(FID, uint32(RunY)); err != nil {
		t.Fatalf("dispatch(1, RunY): %v", err)
	}
	if seq.F().Runs(RunY) != 1 {
		t.Fatalf("F runs(RunY) = %d, want 1", seq.F().Runs(RunY))
	}
}

func TestTestSequenceAccessorsAreStable(t *testing.T) {
	var seq TestSequence
	seq.Init(new(transaction.Transaction))
	e := seq.E()
	if seq.E() != e {
		t.Fatal("expected E to return the same pointer")
	}
	if _, err := seq.Dispatch(EID, uint32(RunA)); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if e.X() != 11 {
		t.Fatalf("x = %d, want 11", e.X())
	}
}

func TestTestSequenceQueriesAreIdempotent(t *testing.T) {
	var seq TestSequence
	seq.Init(new(transaction.Transaction))
	for range 3 {
		if seq.CompositionFlag() != TestSequenceFlag || seq.NumSequences() != 2 {
			t.Fatal("expected stable queries")
		}
	}
}

func TestTestSequenceOpcodeErrors(t *testing.T) {
	var txn transaction.Transaction
	var seq TestSequence
	seq.Init(&txn)

	handled, err := seq.Dispatch(EID, 9)
	if !handled || !errors.Is(err, sequence.ErrOpcodeInvalid) {
		t.Fatalf("dispatch(0, 9) = %v, %v, want invalid opcode", handled, err)
	}
	if txn.Steps() != 0 {
		t.Fatal("expected invalid opcode to skip the handler")
	}
	if apperrors.CodeOf(err) != apperrors.CodeOpcodeInvalid {
		t.Fatalf("code = %s", apperrors.CodeOf(err))
	}
}

func TestWideSequenceUnknownOpcode(t *testing.T) {
	var seq WideSequence
	seq.Init(new(transaction.Transaction))

	handled, err := seq.Dispatch(GID, uint32(RunR))
	if !handled || !errors.Is(err, sequence.ErrOpcodeUnknown) {
		t.Fatalf("dispatch(2, RunR) = %v, %v, want unknown opcode", handled, err)
	}
	var opErr *sequence.OpcodeError
	if !errors.As(err, &opErr) || opErr.Sequence != GID || opErr.Opcode != "RunR" {
		t.Fatalf("error = %#v", err)
	}

	if _, err := seq.Dispatch(GID, uint32(RunP)); err != nil {
		t.Fatalf("dispatch(2, RunP): %v", err)
	}
	if !seq.G().On() {
		t.Fatal("expected G to be on")
	}
}

func TestGeneratedAndGenericAgree(t *testing.T) {
	var txnA, txnB transaction.Transaction
	var generated TestSequence
	var generic GenericSequence
	generated.Init(&txnA)
	if err := generic.Init(&txnB); err != nil {
		t.Fatalf("generic init: %v", err)
	}

	steps := []struct {
		id  sequence.ID
		raw sequence.OpcodeBase
	}{
		{0, 0}, {1, 0}, {1, 1}, {5, 0}, {0, 1}, {63, 3}, {1, 7},
	}
	for _, step := range steps {
		h1, err1 := generated.Dispatch(step.id, step.raw)
		h2, err2 := generic.Dispatch(step.id, step.raw)
		if h1 != h2 || apperrors.CodeOf(err1) != apperrors.CodeOf(err2) {
			t.Fatalf("dispatch(%d, %d): generated %v/%v, generic %v/%v", step.id, step.raw, h1, err1, h2, err2)
		}
	}
	if generated.F().Total() != generic.Second().Total() || generated.E().X() != generic.First().X() {
		t.Fatal("expected both composites to reach the same state")
	}
	if txnA.Steps() != txnB.Steps() {
		t.Fatalf("steps = %d/%d", txnA.Steps(), txnB.Steps())
	}
}

func TestZeroValueCompositesAgreeBeforeInit(t *testing.T) {
	var generated TestSequence
	var generic GenericSequence
	for name, d := range map[string]sequence.Dispatcher{"generated": &generated, "generic": &generic} {
		if d.CompositionFlag() != TestSequenceFlag || d.NumSequences() != 2 {
			t.Fatalf("%s flag/count = %s/%d, want %s/2", name, d.CompositionFlag(), d.NumSequences(), TestSequenceFlag)
		}
		if !d.IsMember(EID) || !d.IsMember(FID) || d.IsMember(GID) {
			t.Fatalf("%s membership differs from the flag", name)
		}
		handled, err := d.Dispatch(EID, uint32(RunB))
		if handled || err != nil {
			t.Fatalf("%s dispatch before Init = %v, %v, want false, nil", name, handled, err)
		}
	}
	if generated.E().Y() != "" || generic.First().Y() != "" {
		t.Fatal("no handler may run before Init")
	}

	var txn transaction.Transaction
	generated.Init(&txn)
	if err := generic.Init(&txn); err != nil {
		t.Fatalf("generic Init: %v", err)
	}
	for name, d := range map[string]sequence.Dispatcher{"generated": &generated, "generic": &generic} {
		if d.CompositionFlag() != TestSequenceFlag {
			t.Fatalf("%s flag after Init = %s", name, d.CompositionFlag())
		}
		if handled, err := d.Dispatch(EID, uint32(RunB)); !handled || err != nil {
			t.Fatalf("%s dispatch after Init = %v, %v", name, handled, err)
		}
	}
	if txn.Steps() != 2 {
		t.Fatalf("txn steps = %d, want 2", txn.Steps())
	}
}

func TestDispatcherConformance(t *testing.T) {
	var seq WideSequence
	seq.Init(new(transaction.Transaction))
	testkit.ValidateDispatcherConformance(t, &seq, EID, FID, GID)

	var generic GenericSequence
	if err := generic.Init(new(transaction.Transaction)); err != nil {
		t.Fatalf("init: %v", err)
	}
	testkit.ValidateDispatcherConformance(t, &generic, EID, FID)
}

func TestDispatchDoesNotAllocate(t *testing.T) {
	var seq TestSequence
	seq.Init(new(transaction.Transaction))
	testkit.AssertDispatchAllocs(t, &seq, EID, uint32(RunA))
	testkit.AssertDispatchAllocs(t, &seq, 5, 0)

	var generic GenericSequence
	if err := generic.Init(new(transaction.Transaction)); err != nil {
		t.Fatalf("init: %v", err)
	}
	testkit.AssertDispatchAllocs(t, &generic, FID, uint32(RunX))
}

func TestOpcodeStrings(t *testing.T) {
	if RunB.String() != "RunB" || RunY.String() != "RunY" || RunR.String() != "RunR" {
		t.Fatal("unexpected opcode names")
	}
	if EOps(9).String() != "EOps(9)" {
		t.Fatalf("EOps(9) = %q", EOps(9).String())
	}
	if FOps(2).Valid() || !GOps(2).Valid() {
		t.Fatal("unexpected validity")
	}
}
