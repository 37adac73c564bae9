package diagnostic

import (
	"fmt"
	"strings"

	"dhallgen/internal/errors"
)

// Sentinels for errors.Is checks.
var (
	ErrResolution        = errors.New("resolution failed")
	ErrUnsupportedType   = errors.New("unsupported type")
	ErrNotAUnion         = errors.New("not a union type")
	ErrInvalidIdentifier = errors.New("invalid identifier")
)

// Phase is the resolver stage that failed.
type Phase int

const (
	PhaseParse Phase = iota
	PhaseImport
	PhaseTypecheck
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseParse:
		return "parse"
	case PhaseImport:
		return "import"
	case PhaseTypecheck:
		return "type-check"
	default:
		return "resolve"
	}
}

func (p Phase) rule() string {
	switch p {
	case PhaseParse:
		return "The input must be a well-formed expression of the configuration language."
	case PhaseImport:
		return "Every import must be reachable, acyclic and itself resolvable.\n" +
			"Remote imports cannot reference local files or environment variables."
	default:
		return "The expression must be well-typed and normalize to a closed value."
	}
}

func (p Phase) example() string {
	switch p {
	case PhaseParse:
		return `{ name = "server", port = 8080, tags = [ "a", "b" ] }`
	case PhaseImport:
		return `let shared = ./shared.dhall in shared.port`
	default:
		return `[ 1, 2, 3 ] : List Natural`
	}
}

// ResolutionError reports a parse, import or type-check failure.
type ResolutionError struct {
	Phase Phase
	// Location is "name:line:col" when known.
	Location string
	// Message is the short description of what went wrong.
	Message string
	// Offending is the rendered input at fault, if any.
	Offending string
	// Cause is the underlying failure (I/O, nested import, ...).
	Cause error
}

// Error returns the long-form message.
func (e *ResolutionError) Error() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s error", e.Phase)

	if e.Location != "" {
		fmt.Fprintf(&sb, " at %s", e.Location)
	}

	fmt.Fprintf(&sb, ": %s\n\n", e.Message)
	sb.WriteString("Explanation: " + e.Phase.rule() + "\n\n")
	sb.WriteString("For example:\n\n    " + e.Phase.example() + "\n")

	if e.Offending != "" {
		sb.WriteString("\nThe input at fault is:\n\n↳ " + e.Offending + "\n")
	}

	if e.Cause != nil {
		sb.WriteString("\nCaused by: " + e.Cause.Error() + "\n")
	}

	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

// NewResolutionError builds a ResolutionError carrying a stack trace and
// the ErrResolution mark.
func NewResolutionError(phase Phase, location, message, offending string, cause error) error {
	err := &ResolutionError{
		Phase:     phase,
		Location:  location,
		Message:   message,
		Offending: offending,
		Cause:     cause,
	}

	return errors.WithHint(
		errors.WithStack(errors.Mark(err, ErrResolution)),
		"For example: "+phase.example(),
	)
}

// SupportedTypesMessage is the fixed explanation attached to every
// UnsupportedTypeError.
const SupportedTypesMessage = `Only the following types can be converted to native types:

- Bool
- Double
- Integer
- Natural
- Text
- List of a supported type
- Optional of a supported type`

// UnsupportedTypeError reports a type outside the mappable subset.
type UnsupportedTypeError struct {
	// Path locates the type inside the declaration, e.g. "T.A.x[]".
	Path string
	// Rendered is the offending type in source syntax.
	Rendered string
}

// Error returns the long-form message.
func (e *UnsupportedTypeError) Error() string {
	var sb strings.Builder

	sb.WriteString("Unsupported type")

	if e.Path != "" {
		sb.WriteString(" at " + e.Path)
	}

	sb.WriteString("\n\nExplanation: " + SupportedTypesMessage + "\n\n")
	sb.WriteString("For example:\n\n    List (Optional Text)\n\n")
	sb.WriteString("The following type cannot be converted:\n\n↳ " + e.Rendered + "\n")

	return sb.String()
}

// NewUnsupportedTypeError builds an UnsupportedTypeError.
func NewUnsupportedTypeError(path, rendered string) error {
	err := &UnsupportedTypeError{Path: path, Rendered: rendered}

	return errors.WithDetail(
		errors.WithStack(errors.Mark(err, ErrUnsupportedType)),
		rendered,
	)
}

// UnionExampleName and UnionExampleType form the minimal valid input for a
// declaration.
const (
	UnionExampleName = "T"
	UnionExampleType = "< A : { x : Bool } | B >"
)

// NotAUnionError reports a declaration requested from a non-union type.
type NotAUnionError struct {
	// Name is the requested declaration name.
	Name string
	// Rendered is the offending expression in source syntax.
	Rendered string
}

// Error returns the long-form message.
func (e *NotAUnionError) Error() string {
	var sb strings.Builder

	sb.WriteString("Not a union type")

	if e.Name != "" {
		sb.WriteString(" for declaration " + e.Name)
	}

	sb.WriteString("\n\nExplanation: A declaration can only be generated from a union type, like this:\n\n")
	fmt.Fprintf(&sb, "    UnionToDeclaration(%q, %q)\n\n", UnionExampleName, UnionExampleType)
	sb.WriteString("You provided the following expression instead:\n\n↳ " + e.Rendered + "\n\n")
	sb.WriteString("which is not a union type.\n")

	return sb.String()
}

// NewNotAUnionError builds a NotAUnionError.
func NewNotAUnionError(name, rendered string) error {
	err := &NotAUnionError{Name: name, Rendered: rendered}

	return errors.WithHintf(
		errors.WithDetail(errors.WithStack(errors.Mark(err, ErrNotAUnion)), rendered),
		"try %q", UnionExampleType,
	)
}

// InvalidIdentifierError reports a name the Go printer cannot emit.
type InvalidIdentifierError struct {
	// Role is what the name is used for: "declaration", "constructor" or "field".
	Role string
	// Identifier is the offending name, verbatim.
	Identifier string
	// Reason says which rule the name breaks.
	Reason string
}

// Error returns the long-form message.
func (e *InvalidIdentifierError) Error() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Invalid %s name %q: %s\n\n", e.Role, e.Identifier, e.Reason)
	sb.WriteString("Explanation: Names are emitted verbatim and must be Go identifiers that are not\n")
	sb.WriteString("keywords and do not clash with each other, like this:\n\n")
	sb.WriteString("    < Circle : { radius : Double } | Square : { side : Double } >\n\n")
	sb.WriteString("Rename the alternative or field in the source type.\n")

	return sb.String()
}

// NewInvalidIdentifierError builds an InvalidIdentifierError.
func NewInvalidIdentifierError(role, identifier, reason string) error {
	err := &InvalidIdentifierError{Role: role, Identifier: identifier, Reason: reason}

	return errors.WithStack(errors.Mark(err, ErrInvalidIdentifier))
}
