package ef

import (
	"strconv"

	"github.com/louisbranch/copyless/internal/sequence"
	"github.com/louisbranch/copyless/internal/transaction"
)

// EID is the identity of E.
const EID sequence.ID = 0

// EOps is the opcode set of E.
type EOps uint32

const (
	RunA EOps = iota
	RunB
)

// Valid reports whether op is a declared E opcode.
func (op EOps) Valid() bool {
	return op <= RunB
}

func (op EOps) String() string {
	switch op {
	case RunA:
		return "RunA"
	case RunB:
		return "RunB"
	default:
		return "EOps(" + strconv.FormatUint(uint64(op), 10) + ")"
	}
}

// E counts its runs and keeps a small piece of state.
type E struct {
	txn  *transaction.Transaction
	x    int
	y    string
	runs [2]int
}

// SequenceID returns EID.
func (E) SequenceID() sequence.ID {
	return EID
}

// Init resets E in place and binds it to txn.
func (e *E) Init(txn *transaction.Transaction) {
	*e = E{txn: txn, x: 10, y: "abc"}
}

// Process runs op against E.
func (e *E) Process(op EOps) error {
	switch op {
	case RunA:
		e.x++
	case RunB:
		e.y = "b"
	default:
		return sequence.UnknownOpcode(EID, op)
	}
	e.runs[op]++
	if e.txn != nil {
		e.txn.Record(EID, sequence.OpcodeBase(op))
	}
	return nil
}

// Transaction returns the context E was initialised with.
func (e *E) Transaction() *transaction.Transaction { return e.txn }

// X returns the counter advanced by RunA.
func (e *E) X() int { return e.x }

// Y returns the label set by RunB.
func (e *E) Y() string { return e.y }

// Runs returns how many times op was processed.
func (e *E) Runs(op EOps) int {
	if !op.Valid() {
		return 0
	}
	return e.runs[op]
}
