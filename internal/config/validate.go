package config

import (
	"fmt"
	"strings"

	"dhallgen/internal/diagnostic"
	"dhallgen/internal/errors"
	"dhallgen/internal/match"
)

// Diagnostic codes reported by Validate.
const (
	CodeNoTargets      = "no-targets"
	CodeUnknownKind    = "unknown-kind"
	CodeUnknownFormat  = "unknown-format"
	CodeMissingName    = "missing-name"
	CodeSourceConflict = "source-conflict"
	CodeMissingSource  = "missing-source"
	CodeMixedFile      = "mixed-file"
	CodeEmptyPackage   = "empty-package"
)

// maxKindDistance bounds the suggestion for a misspelled kind or format.
const maxKindDistance = 2

var (
	knownKinds   = []string{string(KindEmbed), string(KindUnion)}
	knownFormats = []string{string(FormatGo), string(FormatYAML)}
)

func normalizeWord(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Validate checks a defaulted job file. Errors make the job unusable;
// warnings are informational.
func Validate(j *JobFile) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if j == nil {
		res.AddError(CodeNoTargets, "job file is nil", "", "")
		return res
	}

	if len(j.Targets) == 0 {
		res.AddError(CodeNoTargets, "job file has no targets", "", "targets")
		return res
	}

	for i, t := range j.Targets {
		validateTarget(res, i, t)
	}

	validateGroups(res, j)

	return res
}

func validateTarget(res *diagnostic.Diagnostics, i int, t Target) {
	path := fmt.Sprintf("targets[%d]", i)
	label := t.Label()

	switch t.Kind {
	case KindEmbed, KindUnion:
	default:
		msg := fmt.Sprintf("unknown kind %q, expected one of %s", t.Kind, strings.Join(knownKinds, ", "))
		if best, ok := match.ClosestIdent(string(t.Kind), knownKinds, maxKindDistance); ok && t.Kind != "" {
			msg += fmt.Sprintf("; did you mean %q?", best)
		}

		res.AddError(CodeUnknownKind, msg, label, path+".kind")
	}

	switch t.Format {
	case FormatGo:
	case FormatYAML:
		if t.Kind == KindEmbed {
			res.AddError(CodeUnknownFormat, "embed targets can only be generated as Go", label, path+".format")
		}
	default:
		msg := fmt.Sprintf("unknown format %q, expected one of %s", t.Format, strings.Join(knownFormats, ", "))
		if best, ok := match.ClosestIdent(string(t.Format), knownFormats, maxKindDistance); ok {
			msg += fmt.Sprintf("; did you mean %q?", best)
		}

		res.AddError(CodeUnknownFormat, msg, label, path+".format")
	}

	if t.Name == "" {
		res.AddError(CodeMissingName, "target has no name", label, path+".name")
	}

	switch {
	case t.Source != "" && t.Expr != "":
		res.AddError(CodeSourceConflict, "source and expr are mutually exclusive", label, path)
	case t.Source == "" && t.Expr == "":
		res.AddError(CodeMissingSource, "target needs a source file or an inline expr", label, path)
	}

	if t.Format == FormatGo && t.Package == "" {
		res.AddError(CodeEmptyPackage, "Go output needs a package name", label, path+".package")
	}
}

// validateGroups checks that targets sharing a file agree on what the file
// contains.
func validateGroups(res *diagnostic.Diagnostics, j *JobFile) {
	for _, g := range j.Groups() {
		for _, t := range g.Targets[1:] {
			switch {
			case t.Kind != g.Kind:
				res.AddError(CodeMixedFile,
					fmt.Sprintf("file %s mixes %s and %s targets", g.File, g.Kind, t.Kind), t.Label(), g.File)
			case t.Format != g.Format:
				res.AddError(CodeMixedFile,
					fmt.Sprintf("file %s mixes %s and %s output", g.File, g.Format, t.Format), t.Label(), g.File)
			case t.Package != g.Package:
				res.AddError(CodeMixedFile,
					fmt.Sprintf("file %s mixes packages %s and %s", g.File, g.Package, t.Package), t.Label(), g.File)
			}
		}
	}
}

// diagnosticsError turns error diagnostics into one error listing them all.
func diagnosticsError(d *diagnostic.Diagnostics) error {
	lines := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		line := e.Message
		if e.Path != "" {
			line = e.Path + ": " + line
		}

		lines = append(lines, line)
	}

	return errors.WithDetail(
		errors.Mark(errors.Newf("%d problem(s): %s", len(lines), strings.Join(lines, "; ")), ErrInvalidJob),
		strings.Join(lines, "\n"),
	)
}
