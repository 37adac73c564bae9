package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestYAMLPrinter_Print(t *testing.T) {
	file, err := NewYAMLPrinter().Print("shape.yaml", shapeDeclaration())
	require.NoError(t, err)

	want := `declarations:
  - name: Shape
    variants:
      - name: Circle
        shape:
          kind: record
          fields:
            - name: radius
              type: Float64
            - name: label
              type: OptionalOf(Str)
      - name: Polygon
        shape:
          kind: single
          single: ListOf(UnsignedBigInt)
      - name: Point
        shape:
          kind: empty
`
	assert.Equal(t, want, string(file.Content))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(file.Content, &doc))
	assert.Contains(t, doc, "declarations")
}
