// Package ef holds the E, F and G sequences over a transaction.Transaction
// and the compositions built from them. TestSequence and WideSequence are
// generated from sequences.yaml; GenericSequence is the same pair as
// TestSequence declared through sequence.Composite2.
package ef

//go:generate go run ../../../cmd/seqgen -manifest sequences.yaml
