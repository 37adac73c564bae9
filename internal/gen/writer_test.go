package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	files := []GeneratedFile{
		{Filename: "a.go", Content: []byte("package a\n")},
		{Filename: filepath.Join("nested", "b.yaml"), Content: []byte("declarations: []\n")},
	}

	require.NoError(t, WriteFiles(files, dir))

	got, err := os.ReadFile(filepath.Join(dir, "a.go"))
	require.NoError(t, err)
	assert.Equal(t, "package a\n", string(got))

	got, err = os.ReadFile(filepath.Join(dir, "nested", "b.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "declarations: []\n", string(got))
}

func TestRenderGo_WritesSidecarOnFormatFailure(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()
	cfg.OutputDir = dir

	file, err := renderGo(cfg, "broken.go", valuesTemplate, valuesData{
		PackageName: "broken",
		Imports:     []string{"dhallgen/core"},
		Values:      []NamedValue{{Name: "X"}},
	})
	require.Error(t, err)
	require.NotNil(t, file)
	assert.Contains(t, string(file.Content), "var X core.Expr =")

	_, statErr := os.Stat(filepath.Join(dir, "broken.unformatted.go"))
	assert.NoError(t, statErr)
}
