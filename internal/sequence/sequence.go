package sequence

// Identity exposes a sequence kind's static identity. SequenceID must use a
// value receiver and return a constant, so the identity is readable from the
// zero value and by seqgen without constructing a handler.
type Identity interface {
	SequenceID() ID
}

// Sequence is the contract every composed handler satisfies. C is the shared
// context type and O the handler's opcode set.
//
// Init constructs the handler in place; the context pointer is a
// non-owning back-reference that must outlive the composite. Process handles
// one opcode and must end its switch with UnknownOpcode instead of
// panicking.
type Sequence[C any, O OpcodeSet] interface {
	Identity
	Init(ctx *C)
	Process(op O) error
}

// Handler constrains P to be *T implementing Sequence, which lets composites
// embed T by value and still call its pointer methods.
type Handler[T any, C any, O OpcodeSet] interface {
	*T
	Sequence[C, O]
}

// Dispatcher is the runtime surface shared by generic and generated
// composites.
type Dispatcher interface {
	CompositionFlag() Flag
	NumSequences() int
	IsMember(id ID) bool
	// Dispatch routes raw to the member owning id. handled is false, with a
	// nil error, when id is not a member.
	Dispatch(id ID, raw OpcodeBase) (handled bool, err error)
}

// DispatchStrict dispatches through d and turns an ignored identity into a
// *NotMemberError, for callers that must not drop misrouted operations.
func DispatchStrict(d Dispatcher, id ID, raw OpcodeBase) error {
	handled, err := d.Dispatch(id, raw)
	if err != nil {
		return err
	}
	if !handled {
		return &NotMemberError{ID: id, Flag: d.CompositionFlag()}
	}
	return nil
}

// IdentityOf returns the static identity of sequence type T from its zero
// value.
func IdentityOf[T any, P interface {
	*T
	Identity
}]() ID {
	var zero T
	return P(&zero).SequenceID()
}

// run decodes raw into h's opcode set and processes it.
func run[O OpcodeSet, P interface{ Process(O) error }](h P, id ID, raw OpcodeBase) error {
	op, err := DecodeOpcode[O](id, raw)
	if err != nil {
		return err
	}
	return h.Process(op)
}
