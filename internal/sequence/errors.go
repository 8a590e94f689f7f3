package sequence

import (
	"fmt"
	"strconv"

	apperrors "github.com/louisbranch/copyless/internal/platform/errors"
)

var (
	// ErrCompositionEmpty indicates a composition without sequences.
	ErrCompositionEmpty = apperrors.New(apperrors.CodeCompositionEmpty, "composition declares no sequences")
	// ErrIDOutOfRange indicates a sequence identity outside [0, 64).
	ErrIDOutOfRange = apperrors.New(apperrors.CodeSequenceIDOutOfRange, "sequence id out of range")
	// ErrIDDuplicate indicates two sequences sharing an identity.
	ErrIDDuplicate = apperrors.New(apperrors.CodeSequenceIDDuplicate, "duplicate sequence id")
	// ErrIDUnordered indicates sequences not declared in increasing identity order.
	ErrIDUnordered = apperrors.New(apperrors.CodeSequenceIDUnordered, "sequence ids not in increasing order")
	// ErrIdentityMismatch indicates a handler whose identity differs from the
	// one its composition was generated with.
	ErrIdentityMismatch = apperrors.New(apperrors.CodeSequenceIdentityMismatch, "sequence identity mismatch")
	// ErrNotMember indicates a dispatch to an identity outside the composition.
	ErrNotMember = apperrors.New(apperrors.CodeSequenceNotMember, "sequence id is not a member")
	// ErrOpcodeInvalid indicates a raw opcode outside the target opcode set.
	ErrOpcodeInvalid = apperrors.New(apperrors.CodeOpcodeInvalid, "invalid opcode")
	// ErrOpcodeUnknown indicates an opcode that reached a handler without a
	// matching case.
	ErrOpcodeUnknown = apperrors.New(apperrors.CodeOpcodeUnknown, "unknown opcode")
)

// CompositionError reports an invalid composition. It is a definition-time
// failure: the composition can never be used.
type CompositionError struct {
	Code        apperrors.Code
	Composition string
	// Index is the position of the offending sequence in the declared list.
	Index    int
	ID       ID
	Previous ID
}

func (e *CompositionError) Error() string {
	prefix := "sequence composition"
	if e.Composition != "" {
		prefix = "sequence composition " + e.Composition
	}
	switch e.Code {
	case apperrors.CodeCompositionEmpty:
		return prefix + ": no sequences declared"
	case apperrors.CodeSequenceIDOutOfRange:
		return fmt.Sprintf("%s: id %d at position %d is outside [0, %d)", prefix, e.ID, e.Index, MaxID)
	case apperrors.CodeSequenceIDDuplicate:
		return fmt.Sprintf("%s: duplicate id %d at position %d", prefix, e.ID, e.Index)
	case apperrors.CodeSequenceIDUnordered:
		return fmt.Sprintf("%s: id %d at position %d follows %d; ids must increase", prefix, e.ID, e.Index, e.Previous)
	case apperrors.CodeSequenceIdentityMismatch:
		return fmt.Sprintf("%s: sequence at position %d reports id %d, generated with %d", prefix, e.Index, e.ID, e.Previous)
	default:
		return fmt.Sprintf("%s: %s", prefix, e.Code)
	}
}

// Is matches the package sentinels by code.
func (e *CompositionError) Is(target error) bool {
	if t, ok := target.(*apperrors.Error); ok {
		return t.Code == e.Code
	}
	return false
}

// AppError describes the failure for the localized error catalog.
func (e *CompositionError) AppError() *apperrors.Error {
	return apperrors.WithMetadata(e.Code, e.Error(), map[string]string{
		"Composition": e.Composition,
		"Index":       strconv.Itoa(e.Index),
		"ID":          e.ID.String(),
		"Previous":    e.Previous.String(),
	})
}

// OpcodeError reports an opcode rejected on the way into a handler, either
// while decoding the raw value or by the handler's failure arm.
type OpcodeError struct {
	Code     apperrors.Code
	Sequence ID
	Raw      OpcodeBase
	// Opcode is the opcode name when the value decoded.
	Opcode string
}

func (e *OpcodeError) Error() string {
	if e.Code == apperrors.CodeOpcodeUnknown {
		name := e.Opcode
		if name == "" {
			name = strconv.FormatUint(uint64(e.Raw), 10)
		}
		return fmt.Sprintf("sequence %d: unknown opcode %s", e.Sequence, name)
	}
	return fmt.Sprintf("sequence %d: invalid opcode %d", e.Sequence, e.Raw)
}

// Is matches the package sentinels by code.
func (e *OpcodeError) Is(target error) bool {
	if t, ok := target.(*apperrors.Error); ok {
		return t.Code == e.Code
	}
	return false
}

// AppError describes the failure for the localized error catalog.
func (e *OpcodeError) AppError() *apperrors.Error {
	opcode := e.Opcode
	if opcode == "" {
		opcode = strconv.FormatUint(uint64(e.Raw), 10)
	}
	return apperrors.WithMetadata(e.Code, e.Error(), map[string]string{
		"ID":     e.Sequence.String(),
		"Raw":    strconv.FormatUint(uint64(e.Raw), 10),
		"Opcode": opcode,
	})
}

// NotMemberError reports a dispatch to an identity outside the composition.
// Composites never return it themselves; DispatchStrict does.
type NotMemberError struct {
	ID   ID
	Flag Flag
}

func (e *NotMemberError) Error() string {
	return fmt.Sprintf("sequence %d is not a member of composition %s", e.ID, e.Flag)
}

// Is matches ErrNotMember.
func (e *NotMemberError) Is(target error) bool {
	if t, ok := target.(*apperrors.Error); ok {
		return t.Code == apperrors.CodeSequenceNotMember
	}
	return false
}

// AppError describes the failure for the localized error catalog.
func (e *NotMemberError) AppError() *apperrors.Error {
	return apperrors.WithMetadata(apperrors.CodeSequenceNotMember, e.Error(), map[string]string{
		"ID":   e.ID.String(),
		"Flag": e.Flag.String(),
	})
}
