package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Faultbox/frameview/internal/expr"
)

func newEvalCommand(opts *sourceOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "eval EXPR...",
		Short: "Evaluate a coordinate expression",
		Long: `Evaluates an expression with the same variables node coordinates see:
the defaults, --var inputs and --formula derived values.`,
		Example: `  frametool eval "LENGTH_CELL * 3"
  frametool eval --var LENGTH_CELL=1.5 -- "-LENGTH_CELL / 2"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vars, err := opts.variables()
			if err != nil {
				return err
			}
			v, err := expr.Eval(strings.Join(args, " "), vars)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%g\n", v)
			return nil
		},
	}
}
