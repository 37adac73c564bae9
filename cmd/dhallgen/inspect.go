package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"dhallgen/generate"
	"dhallgen/internal/pretty"
)

func newInspectCmd(flags *globalFlags) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "inspect [flags] <source|file|->",
		Short: "Print the resolved value and its type",
		Long: `Resolve an expression and print its normal form followed by its type.
With --dump the value is also printed as a raw Go structure.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := argResolver{r: generate.NewResolver(flags.resolverOptions()...), stdin: cmd.InOrStdin()}

			value, typ, err := r.resolveTyped(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, pretty.Render(value))
			fmt.Fprintln(w, ": "+pretty.Render(typ))

			if dump {
				cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
				fmt.Fprintln(w)
				cfg.Fdump(w, value)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "Also print the raw Go structure")

	return cmd
}
