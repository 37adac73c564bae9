package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWithHint(t *testing.T) {
	err := WithHint(New("error"), "try this fix")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "try this fix", hints[0])
	assert.Equal(t, "error", err.Error())
}

func TestMark(t *testing.T) {
	sentinel := New("sentinel")
	err := Mark(New("specific"), sentinel)

	assert.True(t, Is(err, sentinel))
	assert.Equal(t, "specific", err.Error())
}
