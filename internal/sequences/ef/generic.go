package ef

import (
	"github.com/louisbranch/copyless/internal/sequence"
	"github.com/louisbranch/copyless/internal/transaction"
)

// GenericSequence composes E and F without generated code.
type GenericSequence = sequence.Composite2[transaction.Transaction, E, EOps, *E, F, FOps, *F]

// GenericComposition is the validated definition of GenericSequence.
var GenericComposition = sequence.Must((*GenericSequence)(nil).Composition("GenericSequence"))
