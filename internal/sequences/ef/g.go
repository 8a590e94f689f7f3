package ef

import (
	"strconv"

	"github.com/louisbranch/copyless/internal/sequence"
	"github.com/louisbranch/copyless/internal/transaction"
)

// GID is the identity of G.
const GID sequence.ID = 2

// GOps is the opcode set of G. RunR is declared but G has no handling for
// it, so dispatching it reports an unknown opcode.
type GOps uint32

const (
	RunP GOps = iota
	RunQ
	RunR
)

// Valid reports whether op is a declared G opcode.
func (op GOps) Valid() bool {
	return op <= RunR
}

func (op GOps) String() string {
	switch op {
	case RunP:
		return "RunP"
	case RunQ:
		return "RunQ"
	case RunR:
		return "RunR"
	default:
		return "GOps(" + strconv.FormatUint(uint64(op), 10) + ")"
	}
}

// G toggles a switch.
type G struct {
	txn  *transaction.Transaction
	on   bool
	runs [2]int
}

// SequenceID returns GID.
func (G) SequenceID() sequence.ID {
	return GID
}

// Init resets G in place and binds it to txn.
func (g *G) Init(txn *transaction.Transaction) {
	*g = G{txn: txn}
}

// Process runs op against G.
func (g *G) Process(op GOps) error {
	switch op {
	case RunP:
		g.on = true
	case RunQ:
		g.on = false
	default:
		return sequence.UnknownOpcode(GID, op)
	}
	g.runs[op]++
	if g.txn != nil {
		g.txn.Record(GID, sequence.OpcodeBase(op))
	}
	return nil
}

// On reports the switch state.
func (g *G) On() bool { return g.on }

// Runs returns how many times op was processed.
func (g *G) Runs(op GOps) int {
	if op > RunQ {
		return 0
	}
	return g.runs[op]
}
