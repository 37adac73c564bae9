package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dhallgen/internal/errors"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(t.Context())

	return stdout.String(), stderr.String(), err
}

func TestEmbedCmd_Inline(t *testing.T) {
	out, _, err := execute(t, "", "embed", "--name", "Server", "--package", "cfg", `{ port = 8000 + 80, debug = False }`)
	require.NoError(t, err)

	assert.Contains(t, out, "package cfg")
	assert.Contains(t, out, "var Server core.Expr = core.RecordLit{")
	assert.Contains(t, out, `core.MustNatural("8080")`)
	assert.Contains(t, out, "core.BoolLit(false)")
}

func TestEmbedCmd_StdinToFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "gen", "value.go")

	out, _, err := execute(t, `"héllo"`, "embed", "--no-comments", "--out", target, "-")
	require.NoError(t, err)
	assert.Empty(t, out)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(content), `var Config core.Expr = core.PlainText("héllo")`)
	assert.NotContains(t, string(content), "is the resolved value")
}

func TestEmbedCmd_File(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.dhall"), []byte(`{ retries = 3 }`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.dhall"), []byte(`./base.dhall // { name = "app" }`), 0o644))

	out, _, err := execute(t, "", "embed", filepath.Join(dir, "app.dhall"))
	require.NoError(t, err)

	assert.Contains(t, out, `{Name: "retries", Value: core.MustNatural("3")}, {Name: "name", Value: core.PlainText("app")}`)
}

func TestUnionCmd_Go(t *testing.T) {
	out, stderr, err := execute(t, "", "union", "--name", "Shape", "--package", "shapes",
		`< Circle : { radius : Double } | Point | label : Text >`)
	require.NoError(t, err)

	assert.Contains(t, out, "type Shape interface")
	assert.Contains(t, out, "type Circle struct")
	assert.Contains(t, out, "type Point struct{}")
	assert.Contains(t, out, "func (label) isShape() {}")
	assert.Contains(t, stderr, "warning: Shape.label:")
}

func TestUnionCmd_YAML(t *testing.T) {
	out, _, err := execute(t, "", "union", "-n", "Mode", "-f", "yaml", `< Fast | Slow >`)
	require.NoError(t, err)

	assert.Contains(t, out, "declarations:")
	assert.Contains(t, out, "name: Fast")
}

func TestUnionCmd_Errors(t *testing.T) {
	_, _, err := execute(t, "", "union", "--name", "T", `{ x : Bool }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not a union type")

	_, _, err = execute(t, "", "union", "--name", "T", "--format", "toml", `< A >`)
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "--format go")

	_, _, err = execute(t, "", "union", `< A >`)
	require.Error(t, err)
}

func TestInspectCmd(t *testing.T) {
	out, _, err := execute(t, "", "inspect", `let x = 2 in { a = x * 3, b = [ "q" ] }`)
	require.NoError(t, err)

	assert.Equal(t, "{ a = 6, b = [ \"q\" ] }\n: { a : Natural, b : List Text }\n", out)
}

func TestInspectCmd_Dump(t *testing.T) {
	out, _, err := execute(t, "", "inspect", "--dump", `Some True`)
	require.NoError(t, err)

	assert.Contains(t, out, "Some True\n: Optional Bool\n")
	assert.Contains(t, out, "core.Some")
	assert.Contains(t, out, "core.BoolLit")
}

func TestInspectCmd_ResolutionError(t *testing.T) {
	_, _, err := execute(t, "", "inspect", `{ a = 1 }.b`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record has no field")
}

func TestRunCmd(t *testing.T) {
	dir := t.TempDir()
	job := filepath.Join(dir, "dhallgen.yaml")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "shape.dhall"), []byte(`< Circle : Double | Point >`), 0o644))
	require.NoError(t, os.WriteFile(job, []byte(`
package: shapes
output: gen
targets:
  - kind: union
    name: Shape
    source: shape.dhall
`), 0o644))

	out, _, err := execute(t, "", "run", "--config", job)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+filepath.Join(dir, "gen", "shape.go"))

	content, err := os.ReadFile(filepath.Join(dir, "gen", "shape.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Value float64")
}

func TestRunCmd_DryRun(t *testing.T) {
	dir := t.TempDir()
	job := filepath.Join(dir, "dhallgen.yaml")

	require.NoError(t, os.WriteFile(job, []byte(`
targets:
  - kind: embed
    name: Answer
    expr: "6 * 7"
`), 0o644))

	out, _, err := execute(t, "", "run", "--dry-run", "-c", job)
	require.NoError(t, err)
	assert.Contains(t, out, "would write")

	_, statErr := os.Stat(filepath.Join(dir, "generated"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer

	printError(&buf, errors.WithHint(errors.New("boom"), "try again"))

	assert.Equal(t, "Error: boom\n\nHint: try again\n", buf.String())
}
