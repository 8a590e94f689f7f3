// Package handlers holds sequence fixtures for seqgen inspection tests.
package handlers

import "github.com/louisbranch/copyless/internal/sequence"

type Ctx struct{ N int }

type OtherCtx struct{}

type Ops uint32

func (op Ops) Valid() bool    { return op < 2 }
func (op Ops) String() string { return "Ops" }

type WideOps int

func (op WideOps) Valid() bool    { return true }
func (op WideOps) String() string { return "WideOps" }

const lowID sequence.ID = 3

type Low struct{ ctx *Ctx }

func (Low) SequenceID() sequence.ID { return lowID }
func (l *Low) Init(ctx *Ctx)        { l.ctx = ctx }
func (l *Low) Process(op Ops) error { return nil }

type High struct{}

func (High) SequenceID() sequence.ID { return 40 }
func (h *High) Init(ctx *Ctx)        {}
func (h *High) Process(op Ops) error { return nil }

type Twin struct{}

func (Twin) SequenceID() sequence.ID { return 3 }
func (t *Twin) Init(ctx *Ctx)        {}
func (t *Twin) Process(op Ops) error { return nil }

type Huge struct{}

func (Huge) SequenceID() sequence.ID { return 64 }
func (h *Huge) Init(ctx *Ctx)        {}
func (h *Huge) Process(op Ops) error { return nil }

var dynamicID sequence.ID = 5

type Dynamic struct{}

func (Dynamic) SequenceID() sequence.ID { return dynamicID }
func (d *Dynamic) Init(ctx *Ctx)        {}
func (d *Dynamic) Process(op Ops) error { return nil }

type PointerID struct{}

func (*PointerID) SequenceID() sequence.ID { return 6 }
func (p *PointerID) Init(ctx *Ctx)         {}
func (p *PointerID) Process(op Ops) error  { return nil }

type Wide struct{}

func (Wide) SequenceID() sequence.ID     { return 7 }
func (w *Wide) Init(ctx *Ctx)            {}
func (w *Wide) Process(op WideOps) error { return nil }

type Elsewhere struct{}

func (Elsewhere) SequenceID() sequence.ID { return 8 }
func (e *Elsewhere) Init(ctx *OtherCtx)   {}
func (e *Elsewhere) Process(op Ops) error { return nil }
