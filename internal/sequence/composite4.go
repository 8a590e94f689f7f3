package sequence

// Composite4 is Composite2 with four embedded sequences.
type Composite4[C any, T1 any, O1 OpcodeSet, P1 Handler[T1, C, O1], T2 any, O2 OpcodeSet, P2 Handler[T2, C, O2], T3 any, O3 OpcodeSet, P3 Handler[T3, C, O3], T4 any, O4 OpcodeSet, P4 Handler[T4, C, O4]] struct {
	first  T1
	second T2
	third  T3
	fourth T4
	ids    [4]ID
	flag   Flag // set by a successful Init; gates Dispatch
}

// Composition validates the declared handler list without an instance.
func (c *Composite4[C, T1, O1, P1, T2, O2, P2, T3, O3, P3, T4, O4, P4]) Composition(name string) (Composition, error) {
	return Define(name,
		IdentityOf[T1, P1](),
		IdentityOf[T2, P2](),
		IdentityOf[T3, P3](),
		IdentityOf[T4, P4](),
	)
}

// Init validates the composition and constructs every handler in place.
func (c *Composite4[C, T1, O1, P1, T2, O2, P2, T3, O3, P3, T4, O4, P4]) Init(ctx *C) error {
	ids := [4]ID{
		P1(&c.first).SequenceID(),
		P2(&c.second).SequenceID(),
		P3(&c.third).SequenceID(),
		P4(&c.fourth).SequenceID(),
	}
	flag, err := compose("", ids[:])
	if err != nil {
		return err
	}
	P1(&c.first).Init(ctx)
	P2(&c.second).Init(ctx)
	P3(&c.third).Init(ctx)
	P4(&c.fourth).Init(ctx)
	c.ids = ids
	c.flag = flag
	return nil
}

func (c *Composite4[C, T1, O1, P1, T2, O2, P2, T3, O3, P3, T4, O4, P4]) CompositionFlag() Flag {
	if c.flag != 0 {
		return c.flag
	}
	return staticFlag(
		IdentityOf[T1, P1](),
		IdentityOf[T2, P2](),
		IdentityOf[T3, P3](),
		IdentityOf[T4, P4](),
	)
}

func (c *Composite4[C, T1, O1, P1, T2, O2, P2, T3, O3, P3, T4, O4, P4]) NumSequences() int {
	return 4
}

func (c *Composite4[C, T1, O1, P1, T2, O2, P2, T3, O3, P3, T4, O4, P4]) IsMember(id ID) bool {
	return c.CompositionFlag().Has(id)
}

// Dispatch routes raw to the embedded sequence whose identity is id.
func (c *Composite4[C, T1, O1, P1, T2, O2, P2, T3, O3, P3, T4, O4, P4]) Dispatch(id ID, raw OpcodeBase) (bool, error) {
	if !c.flag.Has(id) {
		return false, nil
	}
	switch id {
	case c.ids[0]:
		return true, run[O1](P1(&c.first), id, raw)
	case c.ids[1]:
		return true, run[O2](P2(&c.second), id, raw)
	case c.ids[2]:
		return true, run[O3](P3(&c.third), id, raw)
	case c.ids[3]:
		return true, run[O4](P4(&c.fourth), id, raw)
	}
	return false, nil
}

// First returns a stable pointer to the first sequence.
func (c *Composite4[C, T1, O1, P1, T2, O2, P2, T3, O3, P3, T4, O4, P4]) First() *T1 {
	return &c.first
}

// Second returns a stable pointer to the second sequence.
func (c *Composite4[C, T1, O1, P1, T2, O2, P2, T3, O3, P3, T4, O4, P4]) Second() *T2 {
	return &c.second
}

// Third returns a stable pointer to the third sequence.
func (c *Composite4[C, T1, O1, P1, T2, O2, P2, T3, O3, P3, T4, O4, P4]) Third() *T3 {
	return &c.third
}

// Fourth returns a stable pointer to the fourth sequence.
func (c *Composite4[C, T1, O1, P1, T2, O2, P2, T3, O3, P3, T4, O4, P4]) Fourth() *T4 {
	return &c.fourth
}
