package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/frameview/internal/structure"
)

func newCheckCommand(opts *sourceOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the node and edge tables",
		Long: `Loads both tables and reports the first error with its line and column.
Nodes that no edge touches are listed as warnings; --strict makes them fatal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			isolated := isolatedNodes(s)
			for _, i := range isolated {
				n := s.Node(i)
				fmt.Fprintf(out, "warning: node %d (%g, %g, %g) has no edges\n", i+1, n.X, n.Y, n.Z)
			}
			if strict && len(isolated) > 0 {
				return fmt.Errorf("%d isolated nodes", len(isolated))
			}

			fmt.Fprintf(out, "ok: %d nodes, %d edges\n", s.NodeCount(), s.EdgeCount())
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on nodes without edges")
	return cmd
}

// isolatedNodes returns the zero-based indices of nodes no edge references.
func isolatedNodes(s *structure.FrameStructure) []int {
	used := make([]bool, s.NodeCount())
	for _, e := range s.Edges() {
		used[e[0]] = true
		used[e[1]] = true
	}
	var out []int
	for i, u := range used {
		if !u {
			out = append(out, i)
		}
	}
	return out
}
