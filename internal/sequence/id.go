package sequence

import (
	"math/bits"
	"strconv"

	apperrors "github.com/louisbranch/copyless/internal/platform/errors"
)

// ID identifies a sequence kind. Valid identities are in [0, MaxID).
type ID uint8

// MaxID is the exclusive upper bound of sequence identities, one per bit of
// a Flag.
const MaxID ID = 64

// Valid reports whether id fits in a composition flag.
func (id ID) Valid() bool {
	return id < MaxID
}

// String returns the decimal form of id.
func (id ID) String() string {
	return strconv.Itoa(int(id))
}

// Flag is a composition bitmask: bit i is set iff a member has identity i.
type Flag uint64

// IDFlag returns the single-bit flag of id.
func IDFlag(id ID) (Flag, error) {
	if !id.Valid() {
		return 0, &CompositionError{Code: apperrors.CodeSequenceIDOutOfRange, ID: id}
	}
	return Flag(1) << id, nil
}

// Has reports whether bit id is set. Identities outside [0, MaxID) are never
// members.
func (f Flag) Has(id ID) bool {
	return id < MaxID && f&(Flag(1)<<id) != 0
}

// Count returns the number of identities in the flag.
func (f Flag) Count() int {
	return bits.OnesCount64(uint64(f))
}

// IDs returns the member identities in increasing order, which is also the
// declaration order of any valid composition producing f.
func (f Flag) IDs() []ID {
	ids := make([]ID, 0, f.Count())
	for rest := uint64(f); rest != 0; rest &= rest - 1 {
		ids = append(ids, ID(bits.TrailingZeros64(rest)))
	}
	return ids
}

// String returns the flag in hexadecimal, e.g. "0x3".
func (f Flag) String() string {
	return "0x" + strconv.FormatUint(uint64(f), 16)
}

// Compose validates an ordered identity list and returns the OR of the
// single-bit flags. The list must be non-empty, in range, free of duplicates
// and strictly increasing.
func Compose(ids ...ID) (Flag, error) {
	return compose("", ids)
}

func compose(name string, ids []ID) (Flag, error) {
	if len(ids) == 0 {
		return 0, &CompositionError{Code: apperrors.CodeCompositionEmpty, Composition: name}
	}
	var flag Flag
	for i, id := range ids {
		bit, err := IDFlag(id)
		if err != nil {
			return 0, &CompositionError{
				Code:        apperrors.CodeSequenceIDOutOfRange,
				Composition: name,
				Index:       i,
				ID:          id,
			}
		}
		if flag&bit != 0 {
			return 0, &CompositionError{
				Code:        apperrors.CodeSequenceIDDuplicate,
				Composition: name,
				Index:       i,
				ID:          id,
			}
		}
		if i > 0 && id < ids[i-1] {
			return 0, &CompositionError{
				Code:        apperrors.CodeSequenceIDUnordered,
				Composition: name,
				Index:       i,
				ID:          id,
				Previous:    ids[i-1],
			}
		}
		flag |= bit
	}
	return flag, nil
}

// staticFlag is compose without the error: the flag of a valid identity
// list, zero otherwise.
func staticFlag(ids ...ID) Flag {
	var flag Flag
	for i, id := range ids {
		if !id.Valid() || (i > 0 && id <= ids[i-1]) {
			return 0
		}
		flag |= 1 << id
	}
	return flag
}
