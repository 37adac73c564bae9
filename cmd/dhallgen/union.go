package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"dhallgen/generate"
	"dhallgen/internal/config"
	"dhallgen/internal/errors"
	"dhallgen/internal/gen"
	"dhallgen/internal/logger"
)

func newUnionCmd(flags *globalFlags) *cobra.Command {
	var (
		name       string
		pkg        string
		out        string
		format     string
		noComments bool
	)

	cmd := &cobra.Command{
		Use:   "union [flags] <source|file|->",
		Short: "Compile a union type into a Go sum type",
		Long: `Resolve an expression that denotes a union type and emit a sealed interface
with one struct per alternative, in source order:

    < Circle : { radius : Double } | Point >

becomes

    type Shape interface{ isShape() }
    type Circle struct{ radius float64 }
    type Point struct{}

With --format yaml the neutral declaration is written instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := argResolver{r: generate.NewResolver(flags.resolverOptions()...), stdin: cmd.InOrStdin()}

			decl, err := generate.UnionToDeclaration(cmd.Context(), r, name, args[0])
			if err != nil {
				return err
			}

			var file *gen.GeneratedFile

			switch config.Format(format) {
			case config.FormatYAML:
				file, err = gen.NewYAMLPrinter().Print(fileName(out, name, ".yaml"), decl)
			case config.FormatGo:
				cfg := gen.GeneratorConfig{PackageName: pkg, GenerateComments: !noComments}
				if out != "" {
					cfg.OutputDir = filepath.Dir(out)
				}

				file, err = printDeclaration(cmd, cfg, fileName(out, name, ".go"), decl)
			default:
				return errors.WithHint(errors.Newf("unknown format %q", format), "use --format go or --format yaml")
			}

			if err != nil {
				return errors.Wrap(err, "printing declaration")
			}

			return output(cmd.OutOrStdout(), out, file.Content)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the generated declaration")
	cmd.Flags().StringVarP(&pkg, "package", "p", "config", "Package of the generated file")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", string(config.FormatGo), "Output format: go or yaml")
	cmd.Flags().BoolVar(&noComments, "no-comments", false, "Omit doc comments")

	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// printDeclaration prints decl as Go and reports the printer's warnings on
// stderr.
func printDeclaration(cmd *cobra.Command, cfg gen.GeneratorConfig, filename string, decl generate.Declaration) (*gen.GeneratedFile, error) {
	file, diags, err := gen.NewDeclarationPrinter(cfg).Print(filename, decl)
	if err != nil {
		return nil, err
	}

	for _, w := range diags.Warnings {
		subject := w.Declaration
		if w.Path != "" {
			subject += "." + w.Path
		}

		logger.Logger.Warnw(w.Message, logger.FieldTarget, subject)
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s\n", subject, w.Message)
	}

	return file, nil
}
