package diagnostic

import (
	"strings"
)

// Path builds a readable location inside a type for error messages.
// Examples:
//   - "T" for a declaration
//   - "T.A" for one of its constructors
//   - "T.A.x" for a record field of that constructor
//   - "T.A.x[]" for the elements of a list field
//   - "T.A.x?" for the contents of an optional field
type Path struct {
	parts []string
}

// NewPath creates a new Path from a root name. An empty root yields an
// empty path that grows from its first field.
func NewPath(root string) *Path {
	if root == "" {
		return &Path{}
	}

	return &Path{parts: []string{root}}
}

// Field appends a field name to the path.
func (p *Path) Field(name string) *Path {
	return &Path{
		parts: append(append([]string{}, p.parts...), name),
	}
}

// Elem marks the path as pointing at list elements.
func (p *Path) Elem() *Path {
	return p.suffix("[]")
}

// Optional marks the path as pointing inside an optional.
func (p *Path) Optional() *Path {
	return p.suffix("?")
}

func (p *Path) suffix(s string) *Path {
	if len(p.parts) == 0 {
		return &Path{parts: []string{s}}
	}

	newParts := make([]string, len(p.parts))
	copy(newParts, p.parts)
	newParts[len(newParts)-1] += s

	return &Path{parts: newParts}
}

// String returns the full path string.
func (p *Path) String() string {
	return strings.Join(p.parts, ".")
}
