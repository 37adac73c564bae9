package generate

import (
	"context"

	"dhallgen/core"
	"dhallgen/internal/embed"
	"dhallgen/internal/native"
	"dhallgen/internal/union"
)

// Resolver turns source text into a closed, type-checked, normalized
// expression. Failures are *diagnostic.ResolutionError values.
type Resolver interface {
	Resolve(ctx context.Context, source string) (core.Expr, error)
}

// Fragment is a Go expression plus the imports it needs.
type Fragment = embed.Fragment

// Declaration is a neutral sum-type declaration.
type Declaration = native.Declaration

// ResolveAndEmbed resolves source and encodes the result as a Go
// expression that reconstructs it.
func ResolveAndEmbed(ctx context.Context, r Resolver, source string) (Fragment, error) {
	v, err := r.Resolve(ctx, source)
	if err != nil {
		return Fragment{}, err
	}

	return embed.Embed(v)
}

// UnionToDeclaration resolves source, which must denote a union type, and
// compiles it into a declaration called declarationName. Either every
// alternative is compiled or an error is returned.
func UnionToDeclaration(ctx context.Context, r Resolver, declarationName, source string) (Declaration, error) {
	v, err := r.Resolve(ctx, source)
	if err != nil {
		return Declaration{}, err
	}

	return union.Compile(declarationName, v)
}
