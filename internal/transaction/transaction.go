// Package transaction provides the shared context composed sequences work
// against. A Transaction is created and owned by the caller and must outlive
// every composite initialised with it; sequences only keep a pointer back to
// it.
package transaction

import "github.com/louisbranch/copyless/internal/sequence"

// Step is one processed operation.
type Step struct {
	Sequence sequence.ID
	Opcode   sequence.OpcodeBase
}

// Transaction is the shared mutable context. The zero value is ready to use.
type Transaction struct {
	steps   int
	last    Step
	touched sequence.Flag
	perSeq  [sequence.MaxID]int
}

// Record notes that sequence id processed opcode. It never allocates.
func (t *Transaction) Record(id sequence.ID, opcode sequence.OpcodeBase) {
	if !id.Valid() {
		return
	}
	t.steps++
	t.last = Step{Sequence: id, Opcode: opcode}
	t.touched |= sequence.Flag(1) << id
	t.perSeq[id]++
}

// Steps returns the number of recorded operations.
func (t *Transaction) Steps() int {
	return t.steps
}

// StepsFor returns the number of operations recorded by sequence id.
func (t *Transaction) StepsFor(id sequence.ID) int {
	if !id.Valid() {
		return 0
	}
	return t.perSeq[id]
}

// Last returns the most recent step, if any.
func (t *Transaction) Last() (Step, bool) {
	return t.last, t.steps > 0
}

// Touched returns the flag of sequences that recorded at least one step.
func (t *Transaction) Touched() sequence.Flag {
	return t.touched
}

// Reset clears every recorded step.
func (t *Transaction) Reset() {
	*t = Transaction{}
}
