package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"dhallgen/generate"
	"dhallgen/internal/errors"
	"dhallgen/internal/gen"
)

func newEmbedCmd(flags *globalFlags) *cobra.Command {
	var (
		name       string
		pkg        string
		out        string
		noComments bool
	)

	cmd := &cobra.Command{
		Use:   "embed [flags] <source|file|->",
		Short: "Emit a Go variable that rebuilds a resolved value",
		Long: `Resolve an expression and emit a Go file declaring

    var <name> core.Expr = <value>

where <value> reconstructs the resolved value with constructors from the
dhallgen/core package.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := argResolver{r: generate.NewResolver(flags.resolverOptions()...), stdin: cmd.InOrStdin()}

			frag, err := generate.ResolveAndEmbed(cmd.Context(), r, args[0])
			if err != nil {
				return err
			}

			cfg := gen.GeneratorConfig{PackageName: pkg, GenerateComments: !noComments}
			if out != "" {
				cfg.OutputDir = filepath.Dir(out)
			}

			origin := ""
			if isFile(args[0]) {
				origin = args[0]
			}

			file, err := gen.NewValuePrinter(cfg).Print(fileName(out, name, ".go"),
				gen.NamedValue{Name: name, Origin: origin, Fragment: frag})
			if err != nil {
				return errors.Wrap(err, "printing value")
			}

			return output(cmd.OutOrStdout(), out, file.Content)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "Config", "Name of the generated variable")
	cmd.Flags().StringVarP(&pkg, "package", "p", "config", "Package of the generated file")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&noComments, "no-comments", false, "Omit doc comments")

	return cmd
}

// fileName is the name handed to the formatter; it only shows in errors
// and sidecar files.
func fileName(out, name, ext string) string {
	if out != "" {
		return filepath.Base(out)
	}

	return name + ext
}
