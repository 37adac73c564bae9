package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"dhallgen/core"
	"dhallgen/generate"
	"dhallgen/internal/errors"
)

// stdinArg reads the source from standard input.
const stdinArg = "-"

// argResolver resolves a command-line argument that is either "-", the
// path of an existing file or an inline expression.
type argResolver struct {
	r     *generate.BundledResolver
	stdin io.Reader
}

func (a argResolver) Resolve(ctx context.Context, arg string) (core.Expr, error) {
	v, _, err := a.resolveTyped(ctx, arg)
	return v, err
}

func (a argResolver) resolveTyped(ctx context.Context, arg string) (core.Expr, core.Expr, error) {
	if arg == stdinArg {
		raw, err := io.ReadAll(a.stdin)
		if err != nil {
			return nil, nil, errors.Wrap(err, "reading standard input")
		}

		return a.r.ResolveBytes(ctx, raw)
	}

	if isFile(arg) {
		return a.r.ResolveFile(ctx, arg)
	}

	return a.r.ResolveTyped(ctx, arg)
}

func isFile(arg string) bool {
	info, err := os.Stat(arg)
	return err == nil && info.Mode().IsRegular()
}

// output writes content to path, or to w when path is empty.
func output(w io.Writer, path string, content []byte) error {
	if path == "" {
		_, err := w.Write(content)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "creating directory for %s", path)
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}

	return nil
}
