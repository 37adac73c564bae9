package gen

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"dhallgen/internal/errors"
	"dhallgen/internal/native"
)

// yamlIndent matches the indentation of hand-written job files.
const yamlIndent = 2

// YAMLPrinter prints declarations as a YAML document, for printers of other
// targets that consume the neutral form.
type YAMLPrinter struct{}

// NewYAMLPrinter creates a YAMLPrinter.
func NewYAMLPrinter() *YAMLPrinter {
	return &YAMLPrinter{}
}

type yamlDocument struct {
	Declarations []native.Declaration `yaml:"declarations"`
}

// Print renders decls under a top-level "declarations" key.
func (p *YAMLPrinter) Print(filename string, decls ...native.Declaration) (*GeneratedFile, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)

	if err := enc.Encode(yamlDocument{Declarations: decls}); err != nil {
		return nil, errors.Wrap(err, "encoding declarations")
	}

	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "encoding declarations")
	}

	return &GeneratedFile{Filename: filename, Content: buf.Bytes()}, nil
}
