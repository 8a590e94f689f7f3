package sequence

// Composite3 is Composite2 with three embedded sequences.
type Composite3[C any, T1 any, O1 OpcodeSet, P1 Handler[T1, C, O1], T2 any, O2 OpcodeSet, P2 Handler[T2, C, O2], T3 any, O3 OpcodeSet, P3 Handler[T3, C, O3]] struct {
	first  T1
	second T2
	third  T3
	ids    [3]ID
	flag   Flag // set by a successful Init; gates Dispatch
}

// Composition validates the declared handler list without an instance.
func (c *Composite3[C, T1, O1, P1, T2, O2, P2, T3, O3, P3]) Composition(name string) (Composition, error) {
	return Define(name,
		IdentityOf[T1, P1](),
		IdentityOf[T2, P2](),
		IdentityOf[T3, P3](),
	)
}

// Init validates the composition and constructs every handler in place.
func (c *Composite3[C, T1, O1, P1, T2, O2, P2, T3, O3, P3]) Init(ctx *C) error {
	ids := [3]ID{
		P1(&c.first).SequenceID(),
		P2(&c.second).SequenceID(),
		P3(&c.third).SequenceID(),
	}
	flag, err := compose("", ids[:])
	if err != nil {
		return err
	}
	P1(&c.first).Init(ctx)
	P2(&c.second).Init(ctx)
	P3(&c.third).Init(ctx)
	c.ids = ids
	c.flag = flag
	return nil
}

func (c *Composite3[C, T1, O1, P1, T2, O2, P2, T3, O3, P3]) CompositionFlag() Flag {
	if c.flag != 0 {
		return c.flag
	}
	return staticFlag(
		IdentityOf[T1, P1](),
		IdentityOf[T2, P2](),
		IdentityOf[T3, P3](),
	)
}

func (c *Composite3[C, T1, O1, P1, T2, O2, P2, T3, O3, P3]) NumSequences() int {
	return 3
}

func (c *Composite3[C, T1, O1, P1, T2, O2, P2, T3, O3, P3]) IsMember(id ID) bool {
	return c.CompositionFlag().Has(id)
}

// Dispatch routes raw to the embedded sequence whose identity is id.
func (c *Composite3[C, T1, O1, P1, T2, O2, P2, T3, O3, P3]) Dispatch(id ID, raw OpcodeBase) (bool, error) {
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
	}
	return false, nil
}

// First returns a stable pointer to the first sequence.
func (c *Composite3[C, T1, O1, P1, T2, O2, P2, T3, O3, P3]) First() *T1 {
	return &c.first
}

// Second returns a stable pointer to the second sequence.
func (c *Composite3[C, T1, O1, P1, T2, O2, P2, T3, O3, P3]) Second() *T2 {
	return &c.second
}

// Third returns a stable pointer to the third sequence.
func (c *Composite3[C, T1, O1, P1, T2, O2, P2, T3, O3, P3]) Third() *T3 {
	return &c.third
}
