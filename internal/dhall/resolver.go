package dhall

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"dhallgen/core"
	"dhallgen/internal/diagnostic"
	"dhallgen/internal/errors"
	"dhallgen/internal/logger"
)

// DefaultSourceName names source text passed to Resolve in diagnostics.
const DefaultSourceName = "(input)"

// Config controls a Resolver. The zero value resolves relative imports
// against the working directory and reads the process environment.
type Config struct {
	// BaseDir is the directory relative imports in source text are
	// resolved against.
	BaseDir string
	// SourceName names source text in diagnostics.
	SourceName string
	// LookupEnv reads env: imports. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
	// Fetch downloads remote imports. Defaults to GetterFetch(CacheDir).
	Fetch FetchFunc
	// DisableRemote rejects every http(s) import.
	DisableRemote bool
	// CacheDir is the scratch directory for remote downloads.
	CacheDir string
}

type cachedImport struct {
	value core.Expr
	typ   core.Expr
}

// Resolver turns source text into closed, normalized values. Resolved
// imports are cached for the lifetime of the Resolver; it is safe for
// concurrent use.
type Resolver struct {
	cfg Config

	mu    sync.Mutex
	cache map[string]cachedImport
	files map[string]bool
}

// New creates a Resolver.
func New(cfg Config) *Resolver {
	if cfg.BaseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			cfg.BaseDir = wd
		}
	}

	if cfg.SourceName == "" {
		cfg.SourceName = DefaultSourceName
	}

	if cfg.LookupEnv == nil {
		cfg.LookupEnv = os.LookupEnv
	}

	if cfg.Fetch == nil {
		cfg.Fetch = GetterFetch(cfg.CacheDir)
	}

	return &Resolver{
		cfg:   cfg,
		cache: make(map[string]cachedImport),
		files: make(map[string]bool),
	}
}

// Resolve resolves source text to its normal form.
func (r *Resolver) Resolve(ctx context.Context, source string) (core.Expr, error) {
	v, _, err := r.ResolveTyped(ctx, source)
	return v, err
}

// ResolveTyped is like Resolve but also returns the inferred type.
func (r *Resolver) ResolveTyped(ctx context.Context, source string) (core.Expr, core.Expr, error) {
	here := location{kind: ImportLocal, path: filepath.Join(r.cfg.BaseDir, r.cfg.SourceName)}

	return r.evaluate(ctx, r.cfg.SourceName, source, here, nil)
}

// ResolveBytes decodes raw source as UTF-8 and resolves it.
func (r *Resolver) ResolveBytes(ctx context.Context, raw []byte) (core.Expr, core.Expr, error) {
	src, err := decodeSource(raw)
	if err != nil {
		return nil, nil, diagnostic.NewResolutionError(diagnostic.PhaseParse, r.cfg.SourceName,
			"source is not valid UTF-8", "", err)
	}

	return r.ResolveTyped(ctx, src)
}

// ResolveFile reads and resolves a file. Its relative imports are resolved
// against the file's directory.
func (r *Resolver) ResolveFile(ctx context.Context, path string) (core.Expr, core.Expr, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "resolving path %s", path)
	}

	raw, err := os.ReadFile(abs)
	if err != nil {
		return nil, nil, diagnostic.NewResolutionError(diagnostic.PhaseImport, path,
			"cannot read file "+path, "", err)
	}

	r.track(abs)

	src, err := decodeSource(raw)
	if err != nil {
		return nil, nil, diagnostic.NewResolutionError(diagnostic.PhaseParse, path,
			"source is not valid UTF-8", "", err)
	}

	return r.evaluate(ctx, path, src, location{kind: ImportLocal, path: abs}, []string{abs})
}

// LocalFiles returns every local file read so far, sorted.
func (r *Resolver) LocalFiles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	files := make([]string, 0, len(r.files))
	for f := range r.files {
		files = append(files, f)
	}

	slices.Sort(files)

	return files
}

// Reset drops cached imports so changed files are read again.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache = make(map[string]cachedImport)
	r.files = make(map[string]bool)
}

func (r *Resolver) evaluate(
	ctx context.Context,
	name, src string,
	here location,
	stack []string,
) (core.Expr, core.Expr, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "resolution cancelled")
	}

	t, err := parse(src)
	if err != nil {
		return nil, nil, parseError(name, src, err)
	}

	im := &importer{r: r, ctx: ctx, source: name, stack: stack}

	t, err = im.resolve(t, here)
	if err != nil {
		return nil, nil, err
	}

	c := &checker{source: name}

	v, typ, err := c.check(t)
	if err != nil {
		return nil, nil, err
	}

	if hasFreeVars(v) {
		return nil, nil, c.errorf(t, v, notClosedMessage)
	}

	logger.Logger.Debugw("resolved", logger.FieldFile, name)

	return v, typ, nil
}

func (r *Resolver) cached(key string) (cachedImport, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cache[key]

	return c, ok
}

func (r *Resolver) store(key string, c cachedImport) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache[key] = c
}

func (r *Resolver) track(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.files[path] = true
}

func parseError(name, src string, err error) error {
	var le *lexError
	if errors.As(err, &le) {
		return diagnostic.NewResolutionError(diagnostic.PhaseParse,
			name+":"+le.pos.String(), le.msg, sourceLine(src, le.pos.Line), nil)
	}

	return diagnostic.NewResolutionError(diagnostic.PhaseParse, name, "malformed input", "", err)
}

func sourceLine(src string, line int) string {
	lines := strings.Split(src, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}

	return strings.TrimRight(lines[line-1], "\r")
}
