package dhall

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/go-getter"

	"dhallgen/core"
	"dhallgen/internal/diagnostic"
	"dhallgen/internal/errors"
	"dhallgen/internal/logger"
)

// location is where an expression was read from. Relative imports chain
// off it.
type location struct {
	kind ImportKind
	// path is an absolute file path, a URL or an environment variable name.
	path string
}

// String returns the canonical form used in diagnostics and cache keys.
func (l location) String() string {
	switch l.kind {
	case ImportEnv:
		return "env:" + l.path
	case ImportMissing:
		return "missing"
	default:
		return l.path
	}
}

// locationType is the type of an import read "as Location".
var locationType = core.UnionType{Alternatives: core.Alternatives{
	{Name: "Local", Type: core.Text},
	{Name: "Remote", Type: core.Text},
	{Name: "Environment", Type: core.Text},
	{Name: "Missing"},
}}

func (l location) value() core.Expr {
	switch l.kind {
	case ImportLocal:
		return core.UnionVal{Type: locationType, Alternative: "Local", Payload: core.PlainText(l.path)}
	case ImportRemote:
		return core.UnionVal{Type: locationType, Alternative: "Remote", Payload: core.PlainText(l.path)}
	case ImportEnv:
		return core.UnionVal{Type: locationType, Alternative: "Environment", Payload: core.PlainText(l.path)}
	default:
		return core.UnionVal{Type: locationType, Alternative: "Missing"}
	}
}

// importer replaces the imports of one parsed source by their values.
type importer struct {
	r      *Resolver
	ctx    context.Context
	source string
	// stack holds the locations being resolved, outermost first.
	stack []string
}

func (im *importer) errorf(t Term, offending string, cause error, format string, args ...any) error {
	return diagnostic.NewResolutionError(
		diagnostic.PhaseImport,
		im.source+":"+t.Position().String(),
		fmt.Sprintf(format, args...),
		offending,
		cause,
	)
}

// resolve walks t and loads every import in it, relative to here. The tree
// is updated in place.
func (im *importer) resolve(t Term, here location) (Term, error) {
	var err error

	switch x := t.(type) {
	case *Import:
		return im.load(x, here)
	case *Op:
		if x.Kind == OpAlt {
			return im.resolveAlt(x, here)
		}

		if x.L, err = im.resolve(x.L, here); err != nil {
			return nil, err
		}

		x.R, err = im.resolve(x.R, here)
	case *TextLit:
		for i := range x.Chunks {
			if x.Chunks[i].Expr, err = im.resolve(x.Chunks[i].Expr, here); err != nil {
				return nil, err
			}
		}
	case *ListLit:
		for i := range x.Items {
			if x.Items[i], err = im.resolve(x.Items[i], here); err != nil {
				return nil, err
			}
		}
	case *EmptyList:
		x.Type, err = im.resolve(x.Type, here)
	case *RecordType:
		err = im.resolveFields(x.Fields, here)
	case *RecordLit:
		err = im.resolveFields(x.Fields, here)
	case *UnionType:
		for i := range x.Alts {
			if x.Alts[i].Type == nil {
				continue
			}

			if x.Alts[i].Type, err = im.resolve(x.Alts[i].Type, here); err != nil {
				return nil, err
			}
		}
	case *Let:
		for i := range x.Bindings {
			b := &x.Bindings[i]
			if b.Annot != nil {
				if b.Annot, err = im.resolve(b.Annot, here); err != nil {
					return nil, err
				}
			}

			if b.Value, err = im.resolve(b.Value, here); err != nil {
				return nil, err
			}
		}

		x.Body, err = im.resolve(x.Body, here)
	case *If:
		if x.Cond, err = im.resolve(x.Cond, here); err != nil {
			return nil, err
		}

		if x.Then, err = im.resolve(x.Then, here); err != nil {
			return nil, err
		}

		x.Else, err = im.resolve(x.Else, here)
	case *Annot:
		if x.Expr, err = im.resolve(x.Expr, here); err != nil {
			return nil, err
		}

		x.Type, err = im.resolve(x.Type, here)
	case *Pi:
		if x.Domain, err = im.resolve(x.Domain, here); err != nil {
			return nil, err
		}

		x.Codomain, err = im.resolve(x.Codomain, here)
	case *App:
		if x.Fn, err = im.resolve(x.Fn, here); err != nil {
			return nil, err
		}

		x.Arg, err = im.resolve(x.Arg, here)
	case *Some:
		x.Value, err = im.resolve(x.Value, here)
	case *Field:
		x.Record, err = im.resolve(x.Record, here)
	case *Project:
		x.Record, err = im.resolve(x.Record, here)
	}

	if err != nil {
		return nil, err
	}

	return t, nil
}

func (im *importer) resolveFields(fields []FieldTerm, here location) error {
	for i := range fields {
		v, err := im.resolve(fields[i].Value, here)
		if err != nil {
			return err
		}

		fields[i].Value = v
	}

	return nil
}

// resolveAlt tries the left operand of "?" and falls back to the right one
// if its imports fail.
func (im *importer) resolveAlt(x *Op, here location) (Term, error) {
	left, leftErr := im.resolve(x.L, here)
	if leftErr == nil {
		return left, nil
	}

	logger.Logger.Debugw("falling back to alternative import",
		logger.FieldImport, im.source,
		logger.FieldError, firstLine(leftErr.Error()),
	)

	right, err := im.resolve(x.R, here)
	if err != nil {
		return nil, im.errorf(x, "", err, "both sides of ? failed; the left side failed with: %s",
			firstLine(leftErr.Error()))
	}

	return right, nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func (im *importer) load(x *Import, here location) (Term, error) {
	if x.Hash != "" {
		return nil, im.errorf(x, x.Target, nil, "integrity checks (sha256:...) are not supported")
	}

	target, err := im.locate(x, here)
	if err != nil {
		return nil, err
	}

	if x.Mode == ModeLocation {
		return &Resolved{node: x.node, Value: target.value(), Type: locationType}, nil
	}

	key := target.String()
	if x.Mode == ModeText {
		key += " as Text"
	}

	if x.Mode == ModeCode && slices.Contains(im.stack, key) {
		cycle := strings.Join(append(slices.Clone(im.stack), key), " -> ")
		return nil, im.errorf(x, target.String(), nil, "import cycle: %s", cycle)
	}

	if c, ok := im.r.cached(key); ok {
		logger.Logger.Debugw("import cache hit", logger.FieldImport, key, logger.FieldCached, true)
		return &Resolved{node: x.node, Value: c.value, Type: c.typ}, nil
	}

	start := time.Now()

	raw, err := im.fetch(x, target)
	if err != nil {
		return nil, err
	}

	src, err := decodeSource(raw)
	if err != nil {
		return nil, im.errorf(x, target.String(), err, "cannot read import %s", target)
	}

	var value, typ core.Expr

	if x.Mode == ModeText {
		value, typ = core.PlainText(src), core.Text
	} else {
		stack := append(slices.Clone(im.stack), key)

		value, typ, err = im.r.evaluate(im.ctx, target.String(), src, target, stack)
		if err != nil {
			return nil, im.errorf(x, target.String(), err, "failed to resolve import %s", target)
		}
	}

	im.r.store(key, cachedImport{value: value, typ: typ})

	logger.Logger.Debugw("import resolved",
		logger.FieldImport, key,
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
	)

	return &Resolved{node: x.node, Value: value, Type: typ}, nil
}

// locate chains an import off the location of the source that contains it.
// Remote sources may only import relative paths.
func (im *importer) locate(x *Import, here location) (location, error) {
	switch x.Kind {
	case ImportMissing:
		return location{kind: ImportMissing}, nil
	case ImportEnv:
		if here.kind == ImportRemote {
			return location{}, im.errorf(x, "env:"+x.Target, nil,
				"remote import %s cannot read environment variables", here)
		}

		return location{kind: ImportEnv, path: x.Target}, nil
	case ImportRemote:
		u, err := url.Parse(x.Target)
		if err != nil {
			return location{}, im.errorf(x, x.Target, err, "invalid URL")
		}

		return location{kind: ImportRemote, path: u.String()}, nil
	}

	path := x.Target

	if here.kind == ImportRemote {
		if !strings.HasPrefix(path, "./") && !strings.HasPrefix(path, "../") {
			return location{}, im.errorf(x, path, nil, "remote import %s cannot read local file %s", here, path)
		}

		base, err := url.Parse(here.path)
		if err != nil {
			return location{}, im.errorf(x, here.path, err, "invalid URL")
		}

		ref, err := url.Parse(path)
		if err != nil {
			return location{}, im.errorf(x, path, err, "invalid relative URL")
		}

		return location{kind: ImportRemote, path: base.ResolveReference(ref).String()}, nil
	}

	switch {
	case strings.HasPrefix(path, "~/"):
		home, err := os.UserHomeDir()
		if err != nil {
			return location{}, im.errorf(x, path, err, "cannot find home directory")
		}

		path = filepath.Join(home, path[2:])
	case filepath.IsAbs(path):
	default:
		dir := im.r.cfg.BaseDir
		if here.kind == ImportLocal {
			dir = filepath.Dir(here.path)
		}

		path = filepath.Join(dir, path)
	}

	return location{kind: ImportLocal, path: filepath.Clean(path)}, nil
}

func (im *importer) fetch(x *Import, target location) ([]byte, error) {
	switch target.kind {
	case ImportLocal:
		raw, err := os.ReadFile(target.path)
		if err != nil {
			return nil, im.errorf(x, target.path, err, "cannot read file %s", target.path)
		}

		im.r.track(target.path)

		return raw, nil
	case ImportEnv:
		v, ok := im.r.cfg.LookupEnv(target.path)
		if !ok {
			return nil, im.errorf(x, target.String(), nil, "environment variable %s is not set", target.path)
		}

		return []byte(v), nil
	case ImportRemote:
		if im.r.cfg.DisableRemote {
			return nil, im.errorf(x, target.path, nil, "remote imports are disabled")
		}

		raw, err := im.r.cfg.Fetch(im.ctx, target.path)
		if err != nil {
			return nil, im.errorf(x, target.path, err, "cannot fetch %s", target.path)
		}

		return raw, nil
	default:
		return nil, im.errorf(x, "missing", nil, "missing import")
	}
}

// FetchFunc downloads a remote import.
type FetchFunc func(ctx context.Context, rawURL string) ([]byte, error)

// GetterFetch returns a FetchFunc that downloads through go-getter into a
// scratch directory under dir (the system temp dir when empty).
func GetterFetch(dir string) FetchFunc {
	return func(ctx context.Context, rawURL string) ([]byte, error) {
		tempDir, err := os.MkdirTemp(dir, "dhallgen-import-*")
		if err != nil {
			return nil, errors.Wrap(err, "creating download directory")
		}
		defer os.RemoveAll(tempDir)

		dst := filepath.Join(tempDir, "import.dhall")

		client := &getter.Client{
			Ctx:     ctx,
			Src:     rawURL,
			Dst:     dst,
			Mode:    getter.ClientModeFile,
			Getters: getter.Getters,
		}

		if err := client.Get(); err != nil {
			return nil, errors.Wrapf(err, "downloading %s", rawURL)
		}

		raw, err := os.ReadFile(dst)
		if err != nil {
			return nil, errors.Wrap(err, "reading downloaded import")
		}

		return raw, nil
	}
}
