package sequence

import apperrors "github.com/louisbranch/copyless/internal/platform/errors"

// Composition is a validated, named set of sequence identities. Because
// identities are declared in strictly increasing order, the flag alone
// determines the declaration order.
type Composition struct {
	name string
	flag Flag
}

// Define validates ids, in declaration order, as the composition name.
func Define(name string, ids ...ID) (Composition, error) {
	flag, err := compose(name, ids)
	if err != nil {
		return Composition{}, err
	}
	return Composition{name: name, flag: flag}, nil
}

// MustDefine is Define for package-level declarations: an invalid
// composition panics while the package initialises, before any use.
func MustDefine(name string, ids ...ID) Composition {
	return Must(Define(name, ids...))
}

// Must panics with err when it is non-nil and returns c otherwise.
func Must(c Composition, err error) Composition {
	if err != nil {
		panic(err)
	}
	return c
}

// MustMatch checks that handler identities, in declaration order, still form
// the composition a generator recorded as want. Generated code calls it from
// init so an identity edited after generation stops the program at startup.
func MustMatch(name string, want Flag, ids ...ID) Composition {
	c := MustDefine(name, ids...)
	if c.flag == want {
		return c
	}
	expected := want.IDs()
	for i, id := range ids {
		if i >= len(expected) || expected[i] != id {
			previous := ID(0)
			if i < len(expected) {
				previous = expected[i]
			}
			panic(&CompositionError{
				Code:        apperrors.CodeSequenceIdentityMismatch,
				Composition: name,
				Index:       i,
				ID:          id,
				Previous:    previous,
			})
		}
	}
	panic(&CompositionError{
		Code:        apperrors.CodeSequenceIdentityMismatch,
		Composition: name,
		Index:       len(ids),
	})
}

// Name returns the composition name.
func (c Composition) Name() string {
	return c.name
}

// Flag returns the composition flag.
func (c Composition) Flag() Flag {
	return c.flag
}

// NumSequences returns the number of composed sequences.
func (c Composition) NumSequences() int {
	return c.flag.Count()
}

// IsMember reports whether id is part of the composition.
func (c Composition) IsMember(id ID) bool {
	return c.flag.Has(id)
}

// IDs returns the member identities in declaration order.
func (c Composition) IDs() []ID {
	return c.flag.IDs()
}
