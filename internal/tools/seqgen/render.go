package seqgen

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"
)

var fileTemplate = template.Must(template.New("composites").Funcs(template.FuncMap{
	"members": joinMembers,
}).Parse(`// Code generated by seqgen from {{.Source}}. DO NOT EDIT.

package {{.Package}}

import (
{{- range .Imports}}
	"{{.Path}}"
{{- end}}
)
{{range .Compositions}}{{$c := .}}
// {{.Name}} composes {{members .Sequences}}.
type {{.Name}} struct {
{{- range .Sequences}}
	{{.Field}} {{.Type}}
{{- end}}
	ready bool
}

const (
	// {{.Name}}Flag is the composition flag of {{.Name}}.
	{{.Name}}Flag sequence.Flag = {{.Flag}}
	// {{.Name}}NumSequences is the number of sequences in {{.Name}}.
	{{.Name}}NumSequences = {{len .Sequences}}
)

// {{.Name}}Composition fails package initialisation if a sequence identity
// drifts from the generated flag.
var {{.Name}}Composition = sequence.MustMatch("{{.Name}}", {{.Name}}Flag,
{{- range .Sequences}}
	sequence.IdentityOf[{{.Type}}, *{{.Type}}](),
{{- end}}
)

// Init constructs every sequence in place, in declaration order, with the
// same context.
func (s *{{.Name}}) Init(ctx *{{.Context}}) {
{{- range .Sequences}}
	s.{{.Field}}.Init(ctx)
{{- end}}
	s.ready = true
}

// CompositionFlag returns {{.Name}}Flag.
func (s *{{.Name}}) CompositionFlag() sequence.Flag {
	return {{.Name}}Flag
}

// NumSequences returns {{.Name}}NumSequences.
func (s *{{.Name}}) NumSequences() int {
	return {{.Name}}NumSequences
}

// IsMember reports whether id is part of {{.Name}}.
func (s *{{.Name}}) IsMember(id sequence.ID) bool {
	return {{.Name}}Flag.Has(id)
}

// Dispatch routes raw to the sequence whose identity is id. Identities
// outside {{.Name}}, and every identity before Init, are ignored with
// handled == false.
func (s *{{.Name}}) Dispatch(id sequence.ID, raw sequence.OpcodeBase) (bool, error) {
	if !s.ready || !{{.Name}}Flag.Has(id) {
		return false, nil
	}
	switch id {
{{- range .Sequences}}
	case {{printf "%d" .ID}}: // {{.Type}}
		op, err := sequence.DecodeOpcode[{{.Opcode}}](id, raw)
		if err != nil {
			return true, err
		}
		return true, s.{{.Field}}.Process(op)
{{- end}}
	}
	return false, nil
}
{{range .Sequences}}
// {{.Accessor}} returns the embedded {{.Type}} sequence.
func (s *{{$c.Name}}) {{.Accessor}}() *{{.Type}} {
	return &s.{{.Field}}
}
{{end}}
{{- end}}`))

// Render produces the formatted generated file for model.
func Render(model Model) ([]byte, error) {
	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, model); err != nil {
		return nil, fmt.Errorf("render %s: %w", model.Output, err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", model.Output, err)
	}
	return src, nil
}
