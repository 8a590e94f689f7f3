// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Composition errors
	CodeCompositionEmpty         Code = "SEQUENCE_COMPOSITION_EMPTY"
	CodeSequenceIDOutOfRange     Code = "SEQUENCE_ID_OUT_OF_RANGE"
	CodeSequenceIDDuplicate      Code = "SEQUENCE_ID_DUPLICATE"
	CodeSequenceIDUnordered      Code = "SEQUENCE_ID_UNORDERED"
	CodeSequenceIdentityMismatch Code = "SEQUENCE_IDENTITY_MISMATCH"

	// Dispatch errors
	CodeSequenceNotMember Code = "SEQUENCE_NOT_MEMBER"
	CodeOpcodeInvalid     Code = "SEQUENCE_OPCODE_INVALID"
	CodeOpcodeUnknown     Code = "SEQUENCE_OPCODE_UNKNOWN"

	// Scenario errors
	CodeScenarioTargetNotFound      Code = "SCENARIO_TARGET_NOT_FOUND"
	CodeScenarioTargetDuplicate     Code = "SCENARIO_TARGET_DUPLICATE"
	CodeScenarioExpectationFailed   Code = "SCENARIO_EXPECTATION_FAILED"
	CodeScenarioTargetNotSelected   Code = "SCENARIO_TARGET_NOT_SELECTED"
	CodeScenarioUnknownStep         Code = "SCENARIO_UNKNOWN_STEP"
	CodeScenarioInvalidStepArgument Code = "SCENARIO_INVALID_STEP_ARGUMENT"

	// Generator errors
	CodeGeneratorTypeNotFound     Code = "GENERATOR_TYPE_NOT_FOUND"
	CodeGeneratorContractMismatch Code = "GENERATOR_CONTRACT_MISMATCH"
)

// Fatal reports whether the code describes a definition-time failure. A
// composition carrying one of these codes can never be used, so callers stop
// instead of continuing with the next operation.
func (c Code) Fatal() bool {
	switch c {
	case CodeCompositionEmpty,
		CodeSequenceIDOutOfRange,
		CodeSequenceIDDuplicate,
		CodeSequenceIDUnordered,
		CodeSequenceIdentityMismatch,
		CodeGeneratorTypeNotFound,
		CodeGeneratorContractMismatch:
		return true
	default:
		return false
	}
}
