package main

import (
	"github.com/spf13/cobra"

	"dhallgen/generate"
	"dhallgen/internal/errors"
	"dhallgen/internal/logger"
)

// globalFlags are shared by every command.
type globalFlags struct {
	jsonLogs bool
	verbose  int
	noRemote bool
	cacheDir string
	baseDir  string
}

// resolverOptions turns the global flags into resolver options.
func (g *globalFlags) resolverOptions() []generate.Option {
	var opts []generate.Option

	if g.noRemote {
		opts = append(opts, generate.WithoutRemoteImports())
	}

	if g.cacheDir != "" {
		opts = append(opts, generate.WithCacheDir(g.cacheDir))
	}

	if g.baseDir != "" {
		opts = append(opts, generate.WithBaseDir(g.baseDir))
	}

	return opts
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "dhallgen",
		Short: "Generate Go code from configuration expressions",
		Long: `dhallgen resolves configuration expressions (imports fetched, type-checked,
normalized) and turns the result into Go source that needs no interpreter at
runtime.

Examples:
  dhallgen embed --name Server ./server.dhall     # variable holding the value
  dhallgen union --name Shape ./shape.dhall       # sum type from a union type
  dhallgen run                                    # every target of dhallgen.yaml
  dhallgen watch                                  # run again on every change
  dhallgen inspect '{ port = 8000 + 80 }'         # show the resolved value`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if err := logger.Initialize(flags.jsonLogs, flags.verbose); err != nil {
				return errors.Wrap(err, "initializing logger")
			}

			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&flags.jsonLogs, "json-logs", false, "Write logs as JSON")
	pf.CountVarP(&flags.verbose, "verbose", "v", "Increase log verbosity (-v, -vv)")
	pf.BoolVar(&flags.noRemote, "no-remote", false, "Reject http(s) imports")
	pf.StringVar(&flags.cacheDir, "cache-dir", "", "Scratch directory for remote downloads")
	pf.StringVar(&flags.baseDir, "base-dir", "", "Directory inline expressions resolve relative imports against")

	root.AddCommand(
		newEmbedCmd(flags),
		newUnionCmd(flags),
		newRunCmd(flags),
		newWatchCmd(flags),
		newInspectCmd(flags),
	)

	return root
}
