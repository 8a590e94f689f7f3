// Package testkit provides recording sequences for composite tests.
//
// Recorder[K] is one handler kind per identity kind K, so tests can compose
// arbitrary identity lists (including invalid ones) without declaring a new
// handler type each time.
package testkit

import (
	"fmt"

	"github.com/louisbranch/copyless/internal/sequence"
)

// Context is the shared context handed to every recorder.
type Context struct {
	// Processed counts Process calls across all recorders.
	Processed    int
	LastSequence sequence.ID
	LastOp       Op
}

// Op is the opcode set of every recorder.
type Op uint32

const (
	OpA Op = iota
	OpB
	// OpUnhandled is a declared opcode recorders have no case for; it reaches
	// the failure arm of Process.
	OpUnhandled
)

// Valid reports whether op is declared.
func (op Op) Valid() bool {
	return op <= OpUnhandled
}

func (op Op) String() string {
	switch op {
	case OpA:
		return "OpA"
	case OpB:
		return "OpB"
	case OpUnhandled:
		return "OpUnhandled"
	default:
		return fmt.Sprintf("Op(%d)", uint32(op))
	}
}

// Kind selects a recorder identity.
type Kind interface {
	SequenceID() sequence.ID
}

// Kind0, Kind1, Kind2, Kind5 and Kind63 are valid identity kinds for Recorder;
// Kind64 is out of range.
type (
	Kind0  struct{}
	Kind1  struct{}
	Kind2  struct{}
	Kind5  struct{}
	Kind63 struct{}
	Kind64 struct{}
)

func (Kind0) SequenceID() sequence.ID  { return 0 }
func (Kind1) SequenceID() sequence.ID  { return 1 }
func (Kind2) SequenceID() sequence.ID  { return 2 }
func (Kind5) SequenceID() sequence.ID  { return 5 }
func (Kind63) SequenceID() sequence.ID { return 63 }
func (Kind64) SequenceID() sequence.ID { return 64 }

// Recorder is a sequence that counts what reaches it.
type Recorder[K Kind] struct {
	ctx   *Context
	Inits int
	Calls int
	Last  Op
}

// SequenceID returns the identity of K.
func (Recorder[K]) SequenceID() sequence.ID {
	var kind K
	return kind.SequenceID()
}

// Init records the shared context.
func (r *Recorder[K]) Init(ctx *Context) {
	r.ctx = ctx
	r.Inits++
}

// Context returns the context passed to Init.
func (r *Recorder[K]) Context() *Context {
	return r.ctx
}

// Process records op on the recorder and on the shared context.
func (r *Recorder[K]) Process(op Op) error {
	switch op {
	case OpA, OpB:
		r.Calls++
		r.Last = op
		if r.ctx != nil {
			r.ctx.Processed++
			r.ctx.LastSequence = r.SequenceID()
			r.ctx.LastOp = op
		}
		return nil
	default:
		return sequence.UnknownOpcode(r.SequenceID(), op)
	}
}

// Pair composes two recorders.
type Pair[K1, K2 Kind] = sequence.Composite2[Context,
	Recorder[K1], Op, *Recorder[K1],
	Recorder[K2], Op, *Recorder[K2],
]

// Triple composes three recorders.
type Triple[K1, K2, K3 Kind] = sequence.Composite3[Context,
	Recorder[K1], Op, *Recorder[K1],
	Recorder[K2], Op, *Recorder[K2],
	Recorder[K3], Op, *Recorder[K3],
]

// Quad composes four recorders.
type Quad[K1, K2, K3, K4 Kind] = sequence.Composite4[Context,
	Recorder[K1], Op, *Recorder[K1],
	Recorder[K2], Op, *Recorder[K2],
	Recorder[K3], Op, *Recorder[K3],
	Recorder[K4], Op, *Recorder[K4],
]
