package i18n

var ptBRCatalog = &Catalog{
	locale: "pt-BR",
	messages: map[Code]string{
		CodeCompositionEmpty:         "A composição {{.Composition}} não declara nenhuma sequência",
		CodeSequenceIDOutOfRange:     "O id de sequência {{.ID}} na posição {{.Index}} está fora de [0, 64)",
		CodeSequenceIDDuplicate:      "O id de sequência {{.ID}} aparece mais de uma vez em {{.Composition}}",
		CodeSequenceIDUnordered:      "O id de sequência {{.ID}} na posição {{.Index}} deve ser maior que {{.Previous}}",
		CodeSequenceIdentityMismatch: "A sequência na posição {{.Index}} de {{.Composition}} informa id {{.ID}}, esperado {{.Previous}}",

		CodeSequenceNotMember: "O id de sequência {{.ID}} não faz parte da composição",
		CodeOpcodeInvalid:     "O opcode {{.Raw}} não é válido para a sequência {{.ID}}",
		CodeOpcodeUnknown:     "A sequência {{.ID}} não trata o opcode {{.Opcode}}",

		CodeScenarioTargetNotFound:    "O alvo de cenário {{.Target}} não está registrado",
		CodeScenarioExpectationFailed: "Esperava {{.Expectation}} igual a {{.Want}}, obtido {{.Got}}",
	},
}
