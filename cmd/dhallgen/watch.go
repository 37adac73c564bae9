package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"dhallgen/internal/config"
	"dhallgen/internal/logger"
	"dhallgen/internal/runner"
	"dhallgen/internal/watch"
)

func newWatchCmd(flags *globalFlags) *cobra.Command {
	var (
		jobPath  string
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run a job file again whenever an input changes",
		Long: `Run the job file once, then watch the job file and every local source it
read, imports included. Each change reruns the whole job. A failing run is
reported and watching continues. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			run := runner.New(flags.resolverOptions()...)

			rebuild := func(ctx context.Context) ([]string, error) {
				job, err := config.Load(jobPath)
				if err != nil {
					return nil, err
				}

				res, err := run.Run(ctx, job)
				if err != nil {
					return nil, err
				}

				report(cmd.OutOrStdout(), res, false)

				return append([]string{job.Path}, res.Inputs...), nil
			}

			w, err := watch.New(rebuild, debounce)
			if err != nil {
				return err
			}

			files, err := rebuild(ctx)
			if err != nil {
				// Keep watching the job file so a fix is picked up.
				printError(cmd.ErrOrStderr(), err)

				files = []string{jobPath}
			}

			if err := w.Watch(files); err != nil {
				return err
			}

			logger.Logger.Infow("watching for changes", logger.FieldCount, len(files))
			fmt.Fprintln(cmd.ErrOrStderr(), "watching for changes, press Ctrl-C to stop")

			return w.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&jobPath, "config", "c", config.DefaultJobFile, "Job file")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before a rerun")

	return cmd
}
