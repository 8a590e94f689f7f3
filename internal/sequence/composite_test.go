package sequence_test

import (
	"errors"
	"testing"

	"github.com/louisbranch/copyless/internal/sequence"
	"github.com/louisbranch/copyless/internal/sequence/testkit"
)

// Compile-time interface checks.
var (
	_ sequence.Dispatcher = (*testkit.Pair[testkit.Kind0, testkit.Kind1])(nil)
	_ sequence.Dispatcher = (*testkit.Triple[testkit.Kind0, testkit.Kind1, testkit.Kind2])(nil)
	_ sequence.Dispatcher = (*testkit.Quad[testkit.Kind0, testkit.Kind1, testkit.Kind5, testkit.Kind63])(nil)
)

func TestCompositeInitConstructsEveryHandlerWithSharedContext(t *testing.T) {
	var ctx testkit.Context
	var c testkit.Triple[testkit.Kind0, testkit.Kind2, testkit.Kind5]
	if err := c.Init(&ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if c.First().Inits != 1 || c.Second().Inits != 1 || c.Third().Inits != 1 {
		t.Fatalf("inits = %d/%d/%d, want 1/1/1", c.First().Inits, c.Second().Inits, c.Third().Inits)
	}
	if c.First().Context() != &ctx || c.Second().Context() != &ctx || c.Third().Context() != &ctx {
		t.Fatal("expected every handler to share the context")
	}
	testkit.ValidateDispatcherConformance(t, &c, 0, 2, 5)
}

func TestCompositeFlagAndCount(t *testing.T) {
	var ctx testkit.Context
	var c testkit.Quad[testkit.Kind0, testkit.Kind1, testkit.Kind5, testkit.Kind63]
	if err := c.Init(&ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	want := sequence.Flag(1<<0 | 1<<1 | 1<<5 | 1<<63)
	if c.CompositionFlag() != want {
		t.Fatalf("flag = %s, want %s", c.CompositionFlag(), want)
	}
	if c.NumSequences() != 4 {
		t.Fatalf("sequences = %d, want 4", c.NumSequences())
	}
	testkit.ValidateDispatcherConformance(t, &c, 0, 1, 5, 63)
}

func TestCompositeDispatchRoutesToExactlyOneHandler(t *testing.T) {
	var ctx testkit.Context
	var c testkit.Triple[testkit.Kind0, testkit.Kind1, testkit.Kind2]
	if err := c.Init(&ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}

	handled, err := c.Dispatch(1, uint32(testkit.OpB))
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !handled {
		t.Fatal("expected member dispatch to be handled")
	}
	if c.Second().Calls != 1 || c.Second().Last != testkit.OpB {
		t.Fatalf("second = %d calls, last %s; want 1 call, OpB", c.Second().Calls, c.Second().Last)
	}
	if c.First().Calls != 0 || c.Third().Calls != 0 {
		t.Fatalf("other handlers touched: first=%d third=%d", c.First().Calls, c.Third().Calls)
	}
	if ctx.Processed != 1 || ctx.LastSequence != 1 {
		t.Fatalf("context = %+v, want one call from sequence 1", ctx)
	}
}

func TestCompositeDispatchIgnoresNonMembers(t *testing.T) {
	var ctx testkit.Context
	var c testkit.Pair[testkit.Kind0, testkit.Kind1]
	if err := c.Init(&ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	for _, id := range []sequence.ID{2, 5, 63, 64, 255} {
		handled, err := c.Dispatch(id, 0)
		if err != nil || handled {
			t.Fatalf("Dispatch(%d) = %v, %v; want false, nil", id, handled, err)
		}
	}
	if c.First().Calls != 0 || c.Second().Calls != 0 || ctx.Processed != 0 {
		t.Fatal("expected no handler to run")
	}
}

func TestCompositeDispatchIsRepeatable(t *testing.T) {
	var ctx testkit.Context
	var c testkit.Pair[testkit.Kind0, testkit.Kind1]
	if err := c.Init(&ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	for i := 1; i <= 2; i++ {
		if _, err := c.Dispatch(0, uint32(testkit.OpB)); err != nil {
			t.Fatalf("Dispatch: %v", err)
		}
		if c.First().Calls != i {
			t.Fatalf("calls after %d dispatches = %d", i, c.First().Calls)
		}
	}
}

func TestCompositeDispatchRejectsInvalidOpcode(t *testing.T) {
	var ctx testkit.Context
	var c testkit.Pair[testkit.Kind0, testkit.Kind1]
	if err := c.Init(&ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}

	handled, err := c.Dispatch(0, 42)
	if !handled {
		t.Fatal("expected member dispatch to report handled")
	}
	if !errors.Is(err, sequence.ErrOpcodeInvalid) {
		t.Fatalf("error = %v, want invalid opcode", err)
	}
	var opErr *sequence.OpcodeError
	if !errors.As(err, &opErr) || opErr.Sequence != 0 || opErr.Raw != 42 {
		t.Fatalf("opcode error = %+v", opErr)
	}
	if c.First().Calls != 0 {
		t.Fatal("handler must not run for an invalid opcode")
	}
}

func TestCompositeDispatchSurfacesUnknownOpcode(t *testing.T) {
	var ctx testkit.Context
	var c testkit.Pair[testkit.Kind0, testkit.Kind1]
	if err := c.Init(&ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	handled, err := c.Dispatch(1, uint32(testkit.OpUnhandled))
	if !handled {
		t.Fatal("expected handled")
	}
	if !errors.Is(err, sequence.ErrOpcodeUnknown) {
		t.Fatalf("error = %v, want unknown opcode", err)
	}
	var opErr *sequence.OpcodeError
	if !errors.As(err, &opErr) || opErr.Opcode != "OpUnhandled" {
		t.Fatalf("opcode error = %+v", opErr)
	}
}

func TestCompositeInitRejectsInvalidCompositions(t *testing.T) {
	var ctx testkit.Context

	var unordered testkit.Pair[testkit.Kind1, testkit.Kind0]
	if err := unordered.Init(&ctx); !errors.Is(err, sequence.ErrIDUnordered) {
		t.Fatalf("unordered Init error = %v", err)
	}
	if unordered.First().Inits != 0 || unordered.Second().Inits != 0 {
		t.Fatal("no handler may be initialised when validation fails")
	}

	var duplicate testkit.Pair[testkit.Kind5, testkit.Kind5]
	if err := duplicate.Init(&ctx); !errors.Is(err, sequence.ErrIDDuplicate) {
		t.Fatalf("duplicate Init error = %v", err)
	}

	var outOfRange testkit.Pair[testkit.Kind0, testkit.Kind64]
	if err := outOfRange.Init(&ctx); !errors.Is(err, sequence.ErrIDOutOfRange) {
		t.Fatalf("out of range Init error = %v", err)
	}

	for _, c := range []sequence.Dispatcher{&unordered, &duplicate, &outOfRange} {
		if c.CompositionFlag() != 0 {
			t.Fatalf("flag = %s, want 0 after failed Init", c.CompositionFlag())
		}
		if handled, _ := c.Dispatch(0, 0); handled {
			t.Fatal("failed composite must ignore dispatches")
		}
	}
}

func TestCompositeZeroValue(t *testing.T) {
	var c testkit.Triple[testkit.Kind0, testkit.Kind2, testkit.Kind63]
	want := sequence.Flag(1<<0 | 1<<2 | 1<<63)
	if c.CompositionFlag() != want || c.NumSequences() != 3 {
		t.Fatalf("zero value flag/count = %s/%d, want %s/3", c.CompositionFlag(), c.NumSequences(), want)
	}
	if !c.IsMember(63) || c.IsMember(1) {
		t.Fatal("zero value membership differs from the flag")
	}
	if handled, err := c.Dispatch(2, uint32(testkit.OpA)); handled || err != nil {
		t.Fatalf("dispatch before Init = %v, %v, want false, nil", handled, err)
	}
	if c.Second().Calls != 0 {
		t.Fatal("no handler may run before Init")
	}

	var ctx testkit.Context
	if err := c.Init(&ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if c.CompositionFlag() != want {
		t.Fatalf("flag after Init = %s, want %s", c.CompositionFlag(), want)
	}
	if handled, err := c.Dispatch(2, uint32(testkit.OpA)); !handled || err != nil {
		t.Fatalf("dispatch after Init = %v, %v", handled, err)
	}
}

func TestCompositeCompositionWithoutInstance(t *testing.T) {
	c, err := (*testkit.Triple[testkit.Kind0, testkit.Kind2, testkit.Kind63])(nil).Composition("Sparse")
	if err != nil {
		t.Fatalf("Composition: %v", err)
	}
	if c.Flag() != 1<<0|1<<2|1<<63 || c.NumSequences() != 3 {
		t.Fatalf("composition = %s/%d", c.Flag(), c.NumSequences())
	}

	_, err = (*testkit.Pair[testkit.Kind2, testkit.Kind1])(nil).Composition("Backwards")
	if !errors.Is(err, sequence.ErrIDUnordered) {
		t.Fatalf("error = %v, want unordered", err)
	}
}

func TestCompositeAccessorsAreStable(t *testing.T) {
	var ctx testkit.Context
	var c testkit.Pair[testkit.Kind0, testkit.Kind1]
	if err := c.Init(&ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	first := c.First()
	if _, err := c.Dispatch(0, 0); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if c.First() != first {
		t.Fatal("First returned a different pointer")
	}
	if first.Calls != 1 {
		t.Fatalf("calls through stable pointer = %d, want 1", first.Calls)
	}
}

func TestCompositeDispatchDoesNotAllocate(t *testing.T) {
	var ctx testkit.Context
	c := new(testkit.Quad[testkit.Kind0, testkit.Kind1, testkit.Kind5, testkit.Kind63])
	if err := c.Init(&ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	testkit.AssertDispatchAllocs(t, c, 63, uint32(testkit.OpA))
	testkit.AssertDispatchAllocs(t, c, 7, uint32(testkit.OpA))
}

func TestDispatchStrict(t *testing.T) {
	var ctx testkit.Context
	var c testkit.Pair[testkit.Kind0, testkit.Kind1]
	if err := c.Init(&ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := sequence.DispatchStrict(&c, 1, 0); err != nil {
		t.Fatalf("DispatchStrict member: %v", err)
	}
	err := sequence.DispatchStrict(&c, 9, 0)
	if !errors.Is(err, sequence.ErrNotMember) {
		t.Fatalf("error = %v, want not member", err)
	}
	var notMember *sequence.NotMemberError
	if !errors.As(err, &notMember) || notMember.ID != 9 || notMember.Flag != 3 {
		t.Fatalf("not member error = %+v", notMember)
	}
}
