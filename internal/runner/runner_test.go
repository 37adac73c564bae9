package runner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dhallgen/internal/config"
	"dhallgen/internal/diagnostic"
	"dhallgen/internal/errors"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func job(dir string, targets ...config.Target) *config.JobFile {
	for i := range targets {
		if targets[i].Format == "" {
			targets[i].Format = config.FormatGo
		}

		if targets[i].Package == "" {
			targets[i].Package = "cfg"
		}
	}

	return &config.JobFile{
		Package:  "cfg",
		Output:   "out",
		Comments: true,
		BaseDir:  dir,
		Targets:  targets,
	}
}

func TestRunner_Run(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"server.dhall":      `{ host = "localhost", port = ./shared/port.dhall }`,
		"shared/port.dhall": `8000 + 80`,
		"shape.dhall":       `< Circle : { radius : Double } | Point >`,
	})

	j := job(dir,
		config.Target{Kind: config.KindEmbed, Name: "Server", Source: "server.dhall", File: "server.go"},
		config.Target{Kind: config.KindUnion, Name: "Shape", Source: "shape.dhall", File: "types.go"},
		config.Target{Kind: config.KindUnion, Name: "Mode", Expr: "< Fast | Slow >", File: "types.go"},
		config.Target{Kind: config.KindUnion, Name: "Shape", Source: "shape.dhall", File: "shape.yaml", Format: config.FormatYAML},
	)

	res, err := New().Run(t.Context(), j)
	require.NoError(t, err)

	require.Len(t, res.Files, 3)
	assert.Equal(t, filepath.Join(dir, "out"), res.OutputDir)

	server, err := os.ReadFile(filepath.Join(dir, "out", "server.go"))
	require.NoError(t, err)
	assert.Contains(t, string(server), "var Server core.Expr =")
	assert.Contains(t, string(server), `core.MustNatural("8080")`)

	types, err := os.ReadFile(filepath.Join(dir, "out", "types.go"))
	require.NoError(t, err)
	assert.Contains(t, string(types), "type Shape interface")
	assert.Contains(t, string(types), "type Mode interface")
	assert.Contains(t, string(types), "func (Slow) isMode() {}")

	shape, err := os.ReadFile(filepath.Join(dir, "out", "shape.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(shape), "name: Circle")

	assert.Equal(t, []string{
		filepath.Join(dir, "server.dhall"),
		filepath.Join(dir, "shape.dhall"),
		filepath.Join(dir, "shared", "port.dhall"),
	}, res.Inputs)
}

func TestRunner_Run_DryRun(t *testing.T) {
	dir := t.TempDir()

	j := job(dir, config.Target{Kind: config.KindEmbed, Name: "N", Expr: "1 + 1", File: "n.go"})

	res, err := New().DryRun(true).Run(t.Context(), j)
	require.NoError(t, err)
	require.Len(t, res.Files, 1)

	_, statErr := os.Stat(filepath.Join(dir, "out"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunner_Run_FailureWritesNothing(t *testing.T) {
	dir := t.TempDir()

	j := job(dir,
		config.Target{Kind: config.KindEmbed, Name: "Ok", Expr: "True", File: "ok.go"},
		config.Target{Kind: config.KindUnion, Name: "Bad", Expr: "< A : { nested : { x : Bool } } >", File: "bad.go"},
	)

	_, err := New().Run(t.Context(), j)
	require.Error(t, err)
	assert.True(t, errors.Is(err, diagnostic.ErrUnsupportedType))
	assert.Contains(t, err.Error(), "target union Bad")

	_, statErr := os.Stat(filepath.Join(dir, "out"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunner_Run_CollectsDiagnostics(t *testing.T) {
	dir := t.TempDir()

	j := job(dir, config.Target{Kind: config.KindUnion, Name: "mode", Expr: "< fast | Slow >", File: "mode.go"})

	res, err := New().DryRun(true).Run(t.Context(), j)
	require.NoError(t, err)
	assert.Len(t, res.Diagnostics.Warnings, 2)
}

func TestRunner_Run_RemoteImportsDisabled(t *testing.T) {
	dir := t.TempDir()

	j := job(dir, config.Target{Kind: config.KindEmbed, Name: "R", Expr: "https://example.com/x.dhall", File: "r.go"})
	j.RemoteImports = false

	_, err := New().DryRun(true).Run(t.Context(), j)
	require.Error(t, err)
	assert.True(t, errors.Is(err, diagnostic.ErrResolution))
	assert.Contains(t, err.Error(), "remote imports are disabled")
}
