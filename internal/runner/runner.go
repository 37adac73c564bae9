// Package runner executes job files: it resolves every target, prints the
// generated files and writes them to the output directory.
package runner

import (
	"context"
	"path/filepath"
	"time"

	"dhallgen/core"
	"dhallgen/generate"
	"dhallgen/internal/config"
	"dhallgen/internal/diagnostic"
	"dhallgen/internal/errors"
	"dhallgen/internal/gen"
	"dhallgen/internal/logger"
)

// Result describes one run.
type Result struct {
	// Files are the generated files, in job order.
	Files []gen.GeneratedFile
	// OutputDir is the absolute directory the files belong in.
	OutputDir string
	// Inputs are the local source files read, including imports.
	Inputs []string
	// Diagnostics are the non-fatal notes of the Go printer.
	Diagnostics diagnostic.Diagnostics
}

// Runner runs jobs. A fresh resolver is created per run so that edited
// sources are always read again.
type Runner struct {
	options []generate.Option
	dryRun  bool
}

// New creates a Runner. The options are applied to every resolver after
// the job's own settings.
func New(options ...generate.Option) *Runner {
	return &Runner{options: options}
}

// DryRun makes Run skip writing files.
func (r *Runner) DryRun(enabled bool) *Runner {
	r.dryRun = enabled
	return r
}

// fileResolver resolves sources that are file paths.
type fileResolver struct {
	r *generate.BundledResolver
}

func (f fileResolver) Resolve(ctx context.Context, path string) (core.Expr, error) {
	v, _, err := f.r.ResolveFile(ctx, path)
	return v, err
}

// Run processes all targets of job in order. The first failing target
// aborts the run and nothing is written.
func (r *Runner) Run(ctx context.Context, job *config.JobFile) (*Result, error) {
	start := time.Now()
	log := logger.Named("runner")

	opts := []generate.Option{
		generate.WithBaseDir(job.BaseDir),
		generate.WithCacheDir(job.CacheDir),
	}
	if !job.RemoteImports {
		opts = append(opts, generate.WithoutRemoteImports())
	}

	resolver := generate.NewResolver(append(opts, r.options...)...)

	res := &Result{OutputDir: outputDir(job)}

	for _, group := range job.Groups() {
		file, err := r.runGroup(ctx, job, resolver, group, res)
		if err != nil {
			return nil, err
		}

		res.Files = append(res.Files, *file)
	}

	res.Inputs = resolver.LocalFiles()

	if !r.dryRun {
		if err := gen.WriteFiles(res.Files, res.OutputDir); err != nil {
			return nil, err
		}
	}

	log.Infow("run finished",
		logger.FieldCount, len(res.Files),
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
	)

	return res, nil
}

func outputDir(job *config.JobFile) string {
	if filepath.IsAbs(job.Output) || job.BaseDir == "" {
		return job.Output
	}

	return filepath.Join(job.BaseDir, job.Output)
}

func (r *Runner) runGroup(
	ctx context.Context,
	job *config.JobFile,
	resolver *generate.BundledResolver,
	group config.Group,
	res *Result,
) (*gen.GeneratedFile, error) {
	genCfg := gen.GeneratorConfig{
		PackageName:      group.Package,
		OutputDir:        res.OutputDir,
		GenerateComments: job.Comments,
	}

	switch group.Kind {
	case config.KindEmbed:
		values := make([]gen.NamedValue, 0, len(group.Targets))

		for _, t := range group.Targets {
			src, origin := source(job, t, resolver)

			frag, err := generate.ResolveAndEmbed(ctx, src, origin)
			if err != nil {
				return nil, targetError(err, t)
			}

			values = append(values, gen.NamedValue{Name: t.Name, Origin: originLabel(t), Fragment: frag})
		}

		file, err := gen.NewValuePrinter(genCfg).Print(group.File, values...)
		if err != nil {
			return nil, errors.Wrapf(err, "printing %s", group.File)
		}

		return file, nil
	case config.KindUnion:
		decls := make([]generate.Declaration, 0, len(group.Targets))

		for _, t := range group.Targets {
			src, origin := source(job, t, resolver)

			decl, err := generate.UnionToDeclaration(ctx, src, t.Name, origin)
			if err != nil {
				return nil, targetError(err, t)
			}

			decls = append(decls, decl)
		}

		if group.Format == config.FormatYAML {
			file, err := gen.NewYAMLPrinter().Print(group.File, decls...)
			if err != nil {
				return nil, errors.Wrapf(err, "printing %s", group.File)
			}

			return file, nil
		}

		file, diags, err := gen.NewDeclarationPrinter(genCfg).Print(group.File, decls...)
		res.Diagnostics.Merge(diags)

		for _, w := range diags.Warnings {
			logger.Logger.Warnw(w.Message, logger.FieldTarget, w.Declaration, logger.FieldFile, group.File)
		}

		if err != nil {
			return nil, errors.Wrapf(err, "printing %s", group.File)
		}

		return file, nil
	default:
		return nil, errors.Newf("unknown target kind %q", group.Kind)
	}
}

// source picks the resolver and the text to hand it for a target.
func source(job *config.JobFile, t config.Target, r *generate.BundledResolver) (generate.Resolver, string) {
	if t.Source == "" {
		return r, t.Expr
	}

	path := t.Source
	if !filepath.IsAbs(path) && job.BaseDir != "" {
		path = filepath.Join(job.BaseDir, path)
	}

	return fileResolver{r: r}, path
}

func originLabel(t config.Target) string {
	if t.Source != "" {
		return t.Source
	}

	return ""
}

func targetError(err error, t config.Target) error {
	return errors.Wrapf(err, "target %s", t.Label())
}
