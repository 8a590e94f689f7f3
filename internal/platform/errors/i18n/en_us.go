package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeCompositionEmpty            = "SEQUENCE_COMPOSITION_EMPTY"
	CodeSequenceIDOutOfRange        = "SEQUENCE_ID_OUT_OF_RANGE"
	CodeSequenceIDDuplicate         = "SEQUENCE_ID_DUPLICATE"
	CodeSequenceIDUnordered         = "SEQUENCE_ID_UNORDERED"
	CodeSequenceIdentityMismatch    = "SEQUENCE_IDENTITY_MISMATCH"
	CodeSequenceNotMember           = "SEQUENCE_NOT_MEMBER"
	CodeOpcodeInvalid               = "SEQUENCE_OPCODE_INVALID"
	CodeOpcodeUnknown               = "SEQUENCE_OPCODE_UNKNOWN"
	CodeScenarioTargetNotFound      = "SCENARIO_TARGET_NOT_FOUND"
	CodeScenarioTargetDuplicate     = "SCENARIO_TARGET_DUPLICATE"
	CodeScenarioExpectationFailed   = "SCENARIO_EXPECTATION_FAILED"
	CodeScenarioTargetNotSelected   = "SCENARIO_TARGET_NOT_SELECTED"
	CodeScenarioUnknownStep         = "SCENARIO_UNKNOWN_STEP"
	CodeScenarioInvalidStepArgument = "SCENARIO_INVALID_STEP_ARGUMENT"
	CodeGeneratorTypeNotFound       = "GENERATOR_TYPE_NOT_FOUND"
	CodeGeneratorContractMismatch   = "GENERATOR_CONTRACT_MISMATCH"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		// Composition errors
		CodeCompositionEmpty:         "Composition {{.Composition}} declares no sequences",
		CodeSequenceIDOutOfRange:     "Sequence id {{.ID}} at position {{.Index}} is outside [0, 64)",
		CodeSequenceIDDuplicate:      "Sequence id {{.ID}} appears more than once in {{.Composition}}",
		CodeSequenceIDUnordered:      "Sequence id {{.ID}} at position {{.Index}} must be greater than {{.Previous}}",
		CodeSequenceIdentityMismatch: "Sequence at position {{.Index}} of {{.Composition}} reports id {{.ID}}, expected {{.Previous}}",

		// Dispatch errors
		CodeSequenceNotMember: "Sequence id {{.ID}} is not part of the composition",
		CodeOpcodeInvalid:     "Opcode {{.Raw}} is not valid for sequence {{.ID}}",
		CodeOpcodeUnknown:     "Sequence {{.ID}} has no handling for opcode {{.Opcode}}",

		// Scenario errors
		CodeScenarioTargetNotFound:      "Scenario target {{.Target}} is not registered",
		CodeScenarioTargetDuplicate:     "Scenario target {{.Target}} is already registered",
		CodeScenarioExpectationFailed:   "Expected {{.Expectation}} to be {{.Want}}, got {{.Got}}",
		CodeScenarioTargetNotSelected:   "Scenario has no target; call target() first",
		CodeScenarioUnknownStep:         "Scenario step {{.Step}} is not supported",
		CodeScenarioInvalidStepArgument: "Scenario step {{.Step}} has an invalid {{.Argument}}",

		// Generator errors
		CodeGeneratorTypeNotFound:     "Type {{.Type}} was not found in package {{.Package}}",
		CodeGeneratorContractMismatch: "Type {{.Type}} does not satisfy the sequence contract: {{.Reason}}",
	},
}
