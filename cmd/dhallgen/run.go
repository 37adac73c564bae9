package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"dhallgen/internal/config"
	"dhallgen/internal/runner"
)

func newRunCmd(flags *globalFlags) *cobra.Command {
	var (
		jobPath string
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process every target of a job file",
		Long: `Load a job file (dhallgen.yaml by default; TOML and JSON work too) and
generate all of its targets. Nothing is written unless every target succeeds.

Top-level settings can be overridden with environment variables such as
DHALLGEN_OUTPUT and DHALLGEN_PACKAGE.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			job, err := config.Load(jobPath)
			if err != nil {
				return err
			}

			res, err := runner.New(flags.resolverOptions()...).DryRun(dryRun).Run(cmd.Context(), job)
			if err != nil {
				return err
			}

			report(cmd.OutOrStdout(), res, dryRun)

			return nil
		},
	}

	cmd.Flags().StringVarP(&jobPath, "config", "c", config.DefaultJobFile, "Job file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Generate without writing files")

	return cmd
}

func report(w io.Writer, res *runner.Result, dryRun bool) {
	verb := "wrote"
	if dryRun {
		verb = "would write"
	}

	for _, f := range res.Files {
		fmt.Fprintf(w, "%s %s\n", verb, filepath.Join(res.OutputDir, f.Filename))
	}

	for _, d := range res.Diagnostics.Warnings {
		fmt.Fprintf(w, "warning: %s: %s\n", d.Declaration, d.Message)
	}
}
