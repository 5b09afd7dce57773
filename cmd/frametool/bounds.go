package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/frameview/internal/structure"
)

func newBoundsCommand(opts *sourceOptions) *cobra.Command {
	var factor float32

	cmd := &cobra.Command{
		Use:   "bounds",
		Short: "Print the bounding box, center and radius",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load()
			if err != nil {
				return err
			}
			b, err := structure.ComputeBounds(s)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			size := b.Size()
			fmt.Fprintf(out, "min:      %g %g %g\n", b.Min.X, b.Min.Y, b.Min.Z)
			fmt.Fprintf(out, "max:      %g %g %g\n", b.Max.X, b.Max.Y, b.Max.Z)
			fmt.Fprintf(out, "size:     %g %g %g\n", size.X, size.Y, size.Z)
			fmt.Fprintf(out, "center:   %g %g %g\n", b.Center.X, b.Center.Y, b.Center.Z)
			fmt.Fprintf(out, "radius:   %g\n", b.Radius)
			if factor > 0 {
				fmt.Fprintf(out, "distance: %g\n", b.Radius*factor)
			}
			return nil
		},
	}

	cmd.Flags().Float32Var(&factor, "distance-factor", 0, "Also print the initial camera distance for this factor")
	return cmd
}
