package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/frameview/internal/structure"
)

func newExportCommand(opts *sourceOptions) *cobra.Command {
	var (
		output      string
		edgesOutput string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the resolved structure as YAML or CSV",
		Long: `Evaluates every coordinate expression and writes plain numbers.

yaml: nodes, 1-based edges and the bounds in one document.
csv:  the X,Y,Z node table, loadable again with --nodes; --edges-output
      also writes the start_node,end_node table.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load()
			if err != nil {
				return err
			}

			switch format {
			case "yaml":
				if edgesOutput != "" {
					return fmt.Errorf("--edges-output needs --format csv")
				}
				return writeTo(cmd, output, func(w io.Writer) error {
					return structure.WriteYAML(w, s)
				})
			case "csv":
				if err := writeTo(cmd, output, func(w io.Writer) error {
					return structure.WriteNodesCSV(w, s)
				}); err != nil {
					return err
				}
				if edgesOutput == "" {
					return nil
				}
				return writeTo(cmd, edgesOutput, func(w io.Writer) error {
					return structure.WriteEdgesCSV(w, s)
				})
			default:
				return fmt.Errorf("unknown format %q (want yaml or csv)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml or csv")
	cmd.Flags().StringVar(&edgesOutput, "edges-output", "", "With --format csv, also write the edge table here")
	return cmd
}

// writeTo runs write against path, or stdout when path is empty or "-".
func writeTo(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
