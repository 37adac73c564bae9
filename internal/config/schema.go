package config

import (
	"strings"
)

// TargetKind says what a target generates.
type TargetKind string

const (
	// KindEmbed generates a variable holding the resolved value.
	KindEmbed TargetKind = "embed"
	// KindUnion generates a sum type from a union type.
	KindUnion TargetKind = "union"
)

// Format is the output format of a union target.
type Format string

const (
	FormatGo   Format = "go"
	FormatYAML Format = "yaml"
)

// DefaultJobFile is the job file name looked up when none is given.
const DefaultJobFile = "dhallgen.yaml"

// JobFile is the root of a job file.
type JobFile struct {
	// Package is the default package name of generated Go files.
	Package string `mapstructure:"package"`
	// Output is the directory generated files are written to, relative to
	// the job file.
	Output string `mapstructure:"output"`
	// Comments enables doc comments in generated Go code.
	Comments bool `mapstructure:"comments"`
	// RemoteImports allows http(s) imports.
	RemoteImports bool `mapstructure:"remote_imports"`
	// CacheDir is the scratch directory for remote downloads.
	CacheDir string `mapstructure:"cache_dir"`
	// Targets are processed in order.
	Targets []Target `mapstructure:"targets"`

	// Path is the absolute path of the job file. Not read from the file.
	Path string `mapstructure:"-"`
	// BaseDir is the directory of the job file. Sources and the output
	// directory are relative to it.
	BaseDir string `mapstructure:"-"`
}

// Target is one generation request.
type Target struct {
	Kind TargetKind `mapstructure:"kind"`
	// Name is the Go identifier of the generated variable or declaration.
	Name string `mapstructure:"name"`
	// Source is a path to a source file. Mutually exclusive with Expr.
	Source string `mapstructure:"source"`
	// Expr is an inline expression. Mutually exclusive with Source.
	Expr string `mapstructure:"expr"`
	// File is the output file name, relative to the output directory.
	File string `mapstructure:"file"`
	// Format applies to union targets only.
	Format Format `mapstructure:"format"`
	// Package overrides JobFile.Package.
	Package string `mapstructure:"package"`
}

// Label identifies the target in messages.
func (t Target) Label() string {
	if t.Name == "" {
		return string(t.Kind)
	}

	return string(t.Kind) + " " + t.Name
}

// defaultFile derives the output file name from the target name.
func (t Target) defaultFile() string {
	ext := ".go"
	if t.Format == FormatYAML {
		ext = ".yaml"
	}

	return strings.ToLower(t.Name) + ext
}

// Group is a set of targets written to the same file.
type Group struct {
	File    string
	Kind    TargetKind
	Format  Format
	Package string
	Targets []Target
}

// Groups returns the targets grouped by output file, in order of first
// appearance. Targets keep their relative order within a group.
func (j *JobFile) Groups() []Group {
	var groups []Group

	index := map[string]int{}

	for _, t := range j.Targets {
		i, ok := index[t.File]
		if !ok {
			i = len(groups)
			index[t.File] = i
			groups = append(groups, Group{
				File:    t.File,
				Kind:    t.Kind,
				Format:  t.Format,
				Package: t.Package,
			})
		}

		groups[i].Targets = append(groups[i].Targets, t)
	}

	return groups
}
