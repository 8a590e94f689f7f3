package ef

import (
	"strconv"

	"github.com/louisbranch/copyless/internal/sequence"
	"github.com/louisbranch/copyless/internal/transaction"
)

// FID is the identity of F.
const FID sequence.ID = 1

// FOps is the opcode set of F.
type FOps uint32

const (
	RunX FOps = iota
	RunY
)

// Valid reports whether op is a declared F opcode.
func (op FOps) Valid() bool {
	return op <= RunY
}

func (op FOps) String() string {
	switch op {
	case RunX:
		return "RunX"
	case RunY:
		return "RunY"
	default:
		return "FOps(" + strconv.FormatUint(uint64(op), 10) + ")"
	}
}

// F accumulates a total: RunX adds one, RunY doubles it.
type F struct {
	txn   *transaction.Transaction
	total int
	runs  [2]int
}

// SequenceID returns FID.
func (F) SequenceID() sequence.ID {
	return FID
}

// Init resets F in place and binds it to txn.
func (f *F) Init(txn *transaction.Transaction) {
	*f = F{txn: txn}
}

// Process runs op against F.
func (f *F) Process(op FOps) error {
	switch op {
	case RunX:
		f.total++
	case RunY:
		f.total *= 2
	default:
		return sequence.UnknownOpcode(FID, op)
	}
	f.runs[op]++
	if f.txn != nil {
		f.txn.Record(FID, sequence.OpcodeBase(op))
	}
	return nil
}

// Transaction returns the context F was initialised with.
func (f *F) Transaction() *transaction.Transaction { return f.txn }

// Total returns the accumulated total.
func (f *F) Total() int { return f.total }

// Runs returns how many times op was processed.
func (f *F) Runs(op FOps) int {
	if !op.Valid() {
		return 0
	}
	return f.runs[op]
}
