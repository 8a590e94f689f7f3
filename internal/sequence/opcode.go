package sequence

import apperrors "github.com/louisbranch/copyless/internal/platform/errors"

// OpcodeBase is the representation shared by every opcode set, so a raw
// opcode can cross the dispatch boundary before its owner is known.
type OpcodeBase = uint32

// OpcodeSet is a closed enumeration of operations owned by one sequence kind.
// Valid reports whether the value is one of the declared opcodes.
type OpcodeSet interface {
	~uint32
	Valid() bool
	String() string
}

// DecodeOpcode converts a raw opcode into the opcode set O of sequence id,
// rejecting values outside the set.
func DecodeOpcode[O OpcodeSet](id ID, raw OpcodeBase) (O, error) {
	op := O(raw)
	if !op.Valid() {
		return op, &OpcodeError{Code: apperrors.CodeOpcodeInvalid, Sequence: id, Raw: raw}
	}
	return op, nil
}

// UnknownOpcode is the failure arm of a Process switch: it reports an opcode
// the handler has no case for.
func UnknownOpcode[O OpcodeSet](id ID, op O) error {
	return &OpcodeError{
		Code:     apperrors.CodeOpcodeUnknown,
		Sequence: id,
		Raw:      OpcodeBase(op),
		Opcode:   op.String(),
	}
}
