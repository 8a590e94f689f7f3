package sequence

// Composite2 embeds two sequences by value, in declaration order, and
// routes dispatches to them. Declare it through a type alias naming every
// handler, opcode set and pointer type:
//
//	type GenericSequence = sequence.Composite2[Transaction, E, EOps, *E, F, FOps, *F]
//
// The zero value reports the composition flag of its handler types but
// ignores every dispatch until Init succeeds.
type Composite2[C any, T1 any, O1 OpcodeSet, P1 Handler[T1, C, O1], T2 any, O2 OpcodeSet, P2 Handler[T2, C, O2]] struct {
	first  T1
	second T2
	ids    [2]ID
	flag   Flag // set by a successful Init; gates Dispatch
}

// Composition validates the declared handler list without an instance; it
// may be called on a nil pointer. Pair it with Must in a package-level
// variable to fail at initialisation.
func (c *Composite2[C, T1, O1, P1, T2, O2, P2]) Composition(name string) (Composition, error) {
	return Define(name,
		IdentityOf[T1, P1](),
		IdentityOf[T2, P2](),
	)
}

// Init validates the composition and constructs every handler in place, in
// declaration order, with the same context. No handler is initialised when
// validation fails.
func (c *Composite2[C, T1, O1, P1, T2, O2, P2]) Init(ctx *C) error {
	ids := [2]ID{
		P1(&c.first).SequenceID(),
		P2(&c.second).SequenceID(),
	}
	flag, err := compose("", ids[:])
	if err != nil {
		return err
	}
	P1(&c.first).Init(ctx)
	P2(&c.second).Init(ctx)
	c.ids = ids
	c.flag = flag
	return nil
}

// CompositionFlag returns the composition flag of the handler types. It is
// the same before and after Init, and zero when the identities do not form a
// valid composition.
func (c *Composite2[C, T1, O1, P1, T2, O2, P2]) CompositionFlag() Flag {
	if c.flag != 0 {
		return c.flag
	}
	return staticFlag(
		IdentityOf[T1, P1](),
		IdentityOf[T2, P2](),
	)
}

// NumSequences returns the number of embedded sequences.
func (c *Composite2[C, T1, O1, P1, T2, O2, P2]) NumSequences() int {
	return 2
}

// IsMember reports whether id belongs to the composition.
func (c *Composite2[C, T1, O1, P1, T2, O2, P2]) IsMember(id ID) bool {
	return c.CompositionFlag().Has(id)
}

// Dispatch routes raw to the embedded sequence whose identity is id.
func (c *Composite2[C, T1, O1, P1, T2, O2, P2]) Dispatch(id ID, raw OpcodeBase) (bool, error) {
	if !c.flag.Has(id) {
		return false, nil
	}
	switch id {
	case c.ids[0]:
		return true, run[O1](P1(&c.first), id, raw)
	case c.ids[1]:
		return true, run[O2](P2(&c.second), id, raw)
	}
	return false, nil
}

// First returns the embedded first sequence. The pointer is stable for the
// composite's lifetime.
func (c *Composite2[C, T1, O1, P1, T2, O2, P2]) First() *T1 {
	return &c.first
}

// Second returns the embedded second sequence. The pointer is stable for the
// composite's lifetime.
func (c *Composite2[C, T1, O1, P1, T2, O2, P2]) Second() *T2 {
	return &c.second
}
