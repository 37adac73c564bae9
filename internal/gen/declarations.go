package gen

import (
	"strings"
	"text/template"

	"dhallgen/internal/diagnostic"
	"dhallgen/internal/errors"
	"dhallgen/internal/native"
)

// DeclarationPrinter prints declarations as Go sum types.
type DeclarationPrinter struct {
	config GeneratorConfig
}

// NewDeclarationPrinter creates a DeclarationPrinter.
func NewDeclarationPrinter(config GeneratorConfig) *DeclarationPrinter {
	return &DeclarationPrinter{config: config}
}

type declarationsData struct {
	PackageName      string
	Imports          []string
	GenerateComments bool
	Declarations     []declarationData
}

type declarationData struct {
	Name     string
	Marker   string
	Variants []variantData
}

type variantData struct {
	Name        string
	Declaration string
	Marker      string
	Fields      []fieldData
}

type fieldData struct {
	Name string
	Type string
}

// Print renders decls into one Go file. Every name is emitted verbatim; a
// name that cannot be fails the whole file with an InvalidIdentifierError.
func (p *DeclarationPrinter) Print(
	filename string,
	decls ...native.Declaration,
) (*GeneratedFile, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	if err := validateIdentifier(rolePackage, p.config.PackageName); err != nil {
		return nil, diags, err
	}

	data := declarationsData{
		PackageName:      p.config.PackageName,
		GenerateComments: p.config.GenerateComments,
	}

	names := topLevel{}
	usesBig := false

	for _, decl := range decls {
		d, err := p.declaration(decl, names, &usesBig, &diags)
		if err != nil {
			return nil, diags, err
		}

		data.Declarations = append(data.Declarations, d)
	}

	if usesBig {
		data.Imports = []string{bigImportPath}
	}

	file, err := renderGo(p.config, filename, declarationsTemplate, data)
	if err != nil {
		return file, diags, err
	}

	return file, diags, nil
}

func (p *DeclarationPrinter) declaration(
	decl native.Declaration,
	names topLevel,
	usesBig *bool,
	diags *diagnostic.Diagnostics,
) (declarationData, error) {
	if err := validateIdentifier(roleDeclaration, decl.Name); err != nil {
		return declarationData{}, err
	}

	if err := names.claim(roleDeclaration, decl.Name); err != nil {
		return declarationData{}, err
	}

	if !isExported(decl.Name) {
		diags.AddWarning(diagnostic.CodeUnexported,
			"declaration is not exported and can only be used inside its package", decl.Name, "")
	}

	if len(decl.Variants) == 0 {
		diags.AddInfo(diagnostic.CodeEmptyUnion,
			"declaration has no variants; the interface has no implementations", decl.Name, "")
	}

	d := declarationData{Name: decl.Name, Marker: markerName(decl.Name)}

	for _, v := range decl.Variants {
		vd, err := p.variant(decl.Name, d.Marker, v, names, usesBig, diags)
		if err != nil {
			return declarationData{}, err
		}

		d.Variants = append(d.Variants, vd)
	}

	return d, nil
}

func (p *DeclarationPrinter) variant(
	declName, marker string,
	v native.Variant,
	names topLevel,
	usesBig *bool,
	diags *diagnostic.Diagnostics,
) (variantData, error) {
	if err := validateIdentifier(roleConstructor, v.Name); err != nil {
		return variantData{}, err
	}

	if err := names.claim(roleConstructor, v.Name); err != nil {
		return variantData{}, err
	}

	if !isExported(v.Name) {
		diags.AddWarning(diagnostic.CodeUnexported,
			"constructor is not exported and can only be used inside its package", declName, v.Name)
	}

	vd := variantData{Name: v.Name, Declaration: declName, Marker: marker}

	switch v.Shape.Kind {
	case native.ShapeEmpty:
	case native.ShapeSingle:
		if v.Shape.Single == nil {
			return variantData{}, errors.Newf("variant %s.%s has a single shape without a type", declName, v.Name)
		}

		typ, err := goType(*v.Shape.Single, usesBig)
		if err != nil {
			return variantData{}, err
		}

		vd.Fields = []fieldData{{Name: "Value", Type: typ}}
	case native.ShapeRecord:
		seen := map[string]bool{}

		for _, f := range v.Shape.Fields {
			if err := validateIdentifier(roleField, f.Name); err != nil {
				return variantData{}, err
			}

			if f.Name == marker {
				return variantData{}, diagnostic.NewInvalidIdentifierError(roleField, f.Name,
					"the name clashes with the marker method of "+declName)
			}

			if seen[f.Name] {
				return variantData{}, diagnostic.NewInvalidIdentifierError(roleField, f.Name,
					"the name is used twice in "+v.Name)
			}

			seen[f.Name] = true

			typ, err := goType(f.Type, usesBig)
			if err != nil {
				return variantData{}, err
			}

			vd.Fields = append(vd.Fields, fieldData{Name: f.Name, Type: typ})
		}
	default:
		return variantData{}, errors.Newf("variant %s.%s has unknown shape %s", declName, v.Name, v.Shape.Kind)
	}

	return vd, nil
}

var templateFuncs = template.FuncMap{
	"variantNames": func(vs []variantData) string {
		names := make([]string, len(vs))
		for i, v := range vs {
			names[i] = v.Name
		}

		return strings.Join(names, ", ")
	},
}

var declarationsTemplate = template.Must(template.New("declarations").Funcs(templateFuncs).Parse(header +
	`package {{.PackageName}}
{{if .Imports}}
import (
{{range .Imports}}	"{{.}}"
{{end}})
{{end}}
{{- range .Declarations}}
{{if $.GenerateComments}}// {{.Name}} is implemented by {{if .Variants}}{{variantNames .Variants}}{{else}}no variant{{end}}.
{{end}}type {{.Name}} interface {
	{{.Marker}}()
}
{{range .Variants}}
{{if $.GenerateComments}}// {{.Name}} is a variant of {{.Declaration}}.
{{end}}type {{.Name}} {{if .Fields}}struct {
{{- range .Fields}}
	{{.Name}} {{.Type}}
{{- end}}
}{{else}}struct{}{{end}}

func ({{.Name}}) {{.Marker}}() {}
{{end}}
{{- end}}
`))
