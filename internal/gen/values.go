package gen

import (
	"slices"
	"text/template"

	"dhallgen/internal/embed"
)

// NamedValue is an embedded value to be printed as a package-level
// variable.
type NamedValue struct {
	// Name is the Go variable name, emitted verbatim.
	Name string
	// Origin describes where the value came from, for the doc comment.
	Origin string
	// Fragment is the embedded Go expression.
	Fragment embed.Fragment
}

// ValuePrinter prints embedded values as Go variables of type core.Expr.
type ValuePrinter struct {
	config GeneratorConfig
}

// NewValuePrinter creates a ValuePrinter.
func NewValuePrinter(config GeneratorConfig) *ValuePrinter {
	return &ValuePrinter{config: config}
}

type valuesData struct {
	PackageName      string
	Imports          []string
	GenerateComments bool
	Values           []NamedValue
}

// Print renders values into one Go file. Imports are the union of the
// fragments' imports.
func (p *ValuePrinter) Print(filename string, values ...NamedValue) (*GeneratedFile, error) {
	if err := validateIdentifier(rolePackage, p.config.PackageName); err != nil {
		return nil, err
	}

	names := topLevel{}
	imports := []string{embed.CoreImportPath}

	for _, v := range values {
		if err := validateIdentifier(roleValue, v.Name); err != nil {
			return nil, err
		}

		if err := names.claim(roleValue, v.Name); err != nil {
			return nil, err
		}

		for _, imp := range v.Fragment.Imports {
			if !slices.Contains(imports, imp) {
				imports = append(imports, imp)
			}
		}
	}

	slices.Sort(imports)

	return renderGo(p.config, filename, valuesTemplate, valuesData{
		PackageName:      p.config.PackageName,
		Imports:          imports,
		GenerateComments: p.config.GenerateComments,
		Values:           values,
	})
}

var valuesTemplate = template.Must(template.New("values").Parse(header +
	`package {{.PackageName}}

import (
{{range .Imports}}	"{{.}}"
{{end}})
{{range .Values}}
{{if $.GenerateComments}}// {{.Name}} is the resolved value of {{if .Origin}}{{.Origin}}{{else}}its source expression{{end}}.
{{end}}var {{.Name}} core.Expr = {{.Fragment.Source}}
{{end}}`))
