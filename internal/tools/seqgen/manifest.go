// Package seqgen generates concrete composites from a YAML manifest. It
// loads the handler package with go/packages, reads each handler's constant
// identity and opcode set, validates every composition the same way
// sequence.Define does, and renders a dispatch switch with one inline field
// per handler.
package seqgen

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest lists the compositions generated into one package.
type Manifest struct {
	// Output is the generated file name, relative to the package directory.
	Output       string            `yaml:"output"`
	Compositions []CompositionSpec `yaml:"compositions"`
}

// CompositionSpec names a composite and its handler types in declaration
// order.
type CompositionSpec struct {
	Name      string   `yaml:"name"`
	Sequences []string `yaml:"sequences"`
}

// reserved holds the method names every generated composite defines.
var reserved = map[string]struct{}{
	"Init":            {},
	"Dispatch":        {},
	"IsMember":        {},
	"NumSequences":    {},
	"CompositionFlag": {},
}

// readyField is the generated field recording a completed Init.
const readyField = "ready"

// LoadManifest reads and validates the manifest at path.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParseManifest decodes and validates a manifest. Unknown keys are rejected.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return Manifest{}, errors.New("manifest is empty")
		}
		return Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Validate checks the manifest shape. Identity checks happen once the
// handler package is loaded.
func (m Manifest) Validate() error {
	if strings.TrimSpace(m.Output) == "" {
		return errors.New("output is required")
	}
	if filepath.Base(m.Output) != m.Output || !strings.HasSuffix(m.Output, ".go") || strings.HasSuffix(m.Output, "_test.go") {
		return fmt.Errorf("output %q must be a non-test .go file name", m.Output)
	}
	if len(m.Compositions) == 0 {
		return errors.New("at least one composition is required")
	}
	names := make(map[string]struct{}, len(m.Compositions))
	for i, c := range m.Compositions {
		if !token.IsIdentifier(c.Name) || !token.IsExported(c.Name) {
			return fmt.Errorf("composition %d: name %q must be an exported identifier", i, c.Name)
		}
		if _, ok := names[c.Name]; ok {
			return fmt.Errorf("composition %s: declared more than once", c.Name)
		}
		names[c.Name] = struct{}{}
		if len(c.Sequences) == 0 {
			return fmt.Errorf("composition %s: at least one sequence is required", c.Name)
		}
		seen := make(map[string]struct{}, len(c.Sequences))
		for _, typ := range c.Sequences {
			if !token.IsIdentifier(typ) {
				return fmt.Errorf("composition %s: sequence %q is not an identifier", c.Name, typ)
			}
			if _, ok := seen[typ]; ok {
				return fmt.Errorf("composition %s: sequence %s listed more than once", c.Name, typ)
			}
			seen[typ] = struct{}{}
			if _, ok := reserved[accessorName(typ)]; ok {
				return fmt.Errorf("composition %s: sequence %s collides with a composite method", c.Name, typ)
			}
			if fieldName(typ) == readyField {
				return fmt.Errorf("composition %s: sequence %s collides with the %s field", c.Name, typ, readyField)
			}
		}
	}
	return nil
}
