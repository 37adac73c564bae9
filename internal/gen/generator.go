package gen

import (
	"bytes"
	"text/template"

	"golang.org/x/tools/imports"

	"dhallgen/internal/errors"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the name of the generated package.
	PackageName string
	// OutputDir is the directory where generated files are written.
	OutputDir string
	// GenerateComments enables doc comments on generated declarations.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PackageName:      "config",
		OutputDir:        "./generated",
		GenerateComments: true,
	}
}

// GeneratedFile represents a generated source file.
type GeneratedFile struct {
	// Filename is the name of the file relative to the output directory.
	Filename string
	// Content is the formatted file content.
	Content []byte
}

// header starts every generated Go file.
const header = "// Code generated by dhallgen. DO NOT EDIT.\n\n"

var formatOptions = &imports.Options{
	Comments:   true,
	TabIndent:  true,
	TabWidth:   8,
	FormatOnly: true,
}

// renderGo executes tmpl and formats the output. On a formatting failure
// the unformatted code is returned along with the error and written to a
// sidecar file when an output directory is configured.
func renderGo(config GeneratorConfig, filename string, tmpl *template.Template, data any) (*GeneratedFile, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "executing template")
	}

	formatted, err := imports.Process(filename, buf.Bytes(), formatOptions)
	if err != nil {
		if config.OutputDir != "" {
			_ = writeDebugUnformatted(config.OutputDir, filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: filename,
			Content:  buf.Bytes(),
		}, errors.Wrap(err, "formatting code (unformatted code returned)")
	}

	return &GeneratedFile{
		Filename: filename,
		Content:  formatted,
	}, nil
}
