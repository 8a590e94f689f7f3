// Package sequence composes independently typed sequence handlers into one
// aggregate and routes a runtime (identifier, opcode) pair to the single
// handler that owns the identifier.
//
// A sequence is a value type with a static identity (an ID in [0, 64)), a
// closed opcode set sharing the OpcodeBase representation, in-place
// construction from a shared context pointer, and a Process operation. A
// composite embeds one value of each declared sequence, in strictly
// increasing identity order, and exposes the composition flag (bit i set iff
// a member has identity i) for constant-time membership checks.
//
// Composition rules (range, uniqueness, canonical order) are checked before a
// composite can be used: generated composites are validated by seqgen and
// cross-checked when their package initialises; generic composites validate
// in Init and through Composition. Dispatching an identity outside the
// composition is ignored and reported as handled == false. Raw opcodes are
// decoded through the target handler's opcode set, so an out-of-range value
// is rejected with an *OpcodeError before the handler runs.
//
// Dispatch is synchronous and allocation free on the success path. Callers
// serialise access; composites carry no locks.
package sequence
