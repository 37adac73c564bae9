package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dhallgen/internal/errors"
)

func writeJob(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeJob(t, "dhallgen.yaml", `
package: cfg
output: ./out
targets:
  - kind: embed
    name: Server
    source: ./server.dhall
  - kind: Union
    name: Shape
    expr: "< Circle : { radius : Double } | Point >"
    format: yaml
`)

	job, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "cfg", job.Package)
	assert.Equal(t, "./out", job.Output)
	assert.True(t, job.Comments)
	assert.True(t, job.RemoteImports)
	assert.Equal(t, filepath.Dir(path), job.BaseDir)
	assert.Equal(t, path, job.Path)

	require.Len(t, job.Targets, 2)

	server := job.Targets[0]
	assert.Equal(t, KindEmbed, server.Kind)
	assert.Equal(t, "server.go", server.File)
	assert.Equal(t, FormatGo, server.Format)
	assert.Equal(t, "cfg", server.Package)

	shape := job.Targets[1]
	assert.Equal(t, KindUnion, shape.Kind)
	assert.Equal(t, "shape.yaml", shape.File)
	assert.Equal(t, "< Circle : { radius : Double } | Point >", shape.Expr)
}

func TestLoad_TOML(t *testing.T) {
	path := writeJob(t, "dhallgen.toml", `
package = "cfg"
comments = false

[[targets]]
kind = "union"
name = "Mode"
expr = "< Fast | Slow >"
file = "mode_gen.go"
`)

	job, err := Load(path)
	require.NoError(t, err)

	assert.False(t, job.Comments)
	assert.Equal(t, DefaultOutput, job.Output)
	require.Len(t, job.Targets, 1)
	assert.Equal(t, "mode_gen.go", job.Targets[0].File)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DHALLGEN_OUTPUT", "/tmp/elsewhere")
	t.Setenv("DHALLGEN_PACKAGE", "fromenv")

	path := writeJob(t, "dhallgen.yaml", `
package: cfg
targets:
  - kind: embed
    name: X
    expr: "1"
`)

	job, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/elsewhere", job.Output)
	assert.Equal(t, "fromenv", job.Package)
	assert.Equal(t, "fromenv", job.Targets[0].Package)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestLoad_InvalidJob(t *testing.T) {
	path := writeJob(t, "dhallgen.yaml", `
targets:
  - kind: embedd
    name: X
    expr: "1"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidJob))
	assert.Contains(t, err.Error(), `did you mean "embed"?`)
	assert.Contains(t, err.Error(), "targets[0].kind")
}

func TestLoadWithViper_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("targets", []map[string]any{{"kind": "embed", "name": "Value", "expr": "True"}})

	job, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, DefaultPackage, job.Package)
	assert.Equal(t, DefaultOutput, job.Output)
	assert.Equal(t, "value.go", job.Targets[0].File)
	assert.Empty(t, job.BaseDir)
}

func TestValidate(t *testing.T) {
	valid := func() Target {
		return Target{Kind: KindUnion, Name: "T", Expr: "< A >", File: "t.go", Format: FormatGo, Package: "cfg"}
	}

	tests := []struct {
		name    string
		targets []Target
		code    string
		message string
	}{
		{
			name:    "no targets",
			code:    CodeNoTargets,
			message: "no targets",
		},
		{
			name:    "unknown kind",
			targets: []Target{func() Target { t := valid(); t.Kind = "unoin"; return t }()},
			code:    CodeUnknownKind,
			message: `did you mean "union"?`,
		},
		{
			name:    "unknown format",
			targets: []Target{func() Target { t := valid(); t.Format = "yml"; return t }()},
			code:    CodeUnknownFormat,
			message: `did you mean "yaml"?`,
		},
		{
			name:    "yaml embed",
			targets: []Target{func() Target { t := valid(); t.Kind = KindEmbed; t.Format = FormatYAML; return t }()},
			code:    CodeUnknownFormat,
			message: "only be generated as Go",
		},
		{
			name:    "missing name",
			targets: []Target{func() Target { t := valid(); t.Name = ""; return t }()},
			code:    CodeMissingName,
		},
		{
			name:    "both sources",
			targets: []Target{func() Target { t := valid(); t.Source = "./t.dhall"; return t }()},
			code:    CodeSourceConflict,
		},
		{
			name:    "no source",
			targets: []Target{func() Target { t := valid(); t.Expr = ""; return t }()},
			code:    CodeMissingSource,
		},
		{
			name:    "empty package",
			targets: []Target{func() Target { t := valid(); t.Package = ""; return t }()},
			code:    CodeEmptyPackage,
		},
		{
			name: "mixed kinds in one file",
			targets: []Target{
				valid(),
				func() Target { t := valid(); t.Kind = KindEmbed; t.Name = "V"; return t }(),
			},
			code:    CodeMixedFile,
			message: "mixes union and embed targets",
		},
		{
			name: "mixed packages in one file",
			targets: []Target{
				valid(),
				func() Target { t := valid(); t.Name = "U"; t.Package = "other"; return t }(),
			},
			code:    CodeMixedFile,
			message: "mixes packages",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := Validate(&JobFile{Targets: tt.targets})
			require.True(t, diags.HasErrors())

			codes := make([]string, 0, len(diags.Errors))
			messages := make([]string, 0, len(diags.Errors))

			for _, d := range diags.Errors {
				codes = append(codes, d.Code)
				messages = append(messages, d.Message)
			}

			assert.Contains(t, codes, tt.code)

			if tt.message != "" {
				assert.Contains(t, strings.Join(messages, "\n"), tt.message)
			}
		})
	}
}

func TestValidate_SharedFileIsAllowed(t *testing.T) {
	job := &JobFile{Targets: []Target{
		{Kind: KindUnion, Name: "A", Expr: "< X >", File: "types.go", Format: FormatGo, Package: "cfg"},
		{Kind: KindUnion, Name: "B", Expr: "< Y >", File: "types.go", Format: FormatGo, Package: "cfg"},
	}}

	diags := Validate(job)
	assert.False(t, diags.HasErrors())

	groups := job.Groups()
	require.Len(t, groups, 1)
	assert.Equal(t, "types.go", groups[0].File)
	assert.Len(t, groups[0].Targets, 2)
}

func TestJobFile_GroupsKeepOrder(t *testing.T) {
	job := &JobFile{Targets: []Target{
		{Name: "A", File: "b.go"},
		{Name: "B", File: "a.go"},
		{Name: "C", File: "b.go"},
	}}

	groups := job.Groups()
	require.Len(t, groups, 2)
	assert.Equal(t, "b.go", groups[0].File)
	assert.Equal(t, []string{"A", "C"}, []string{groups[0].Targets[0].Name, groups[0].Targets[1].Name})
	assert.Equal(t, "a.go", groups[1].File)
}
