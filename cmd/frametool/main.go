// Package main is frametool, a command-line companion to frameview for
// inspecting structure files without opening a window.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &sourceOptions{}

	rootCmd := &cobra.Command{
		Use:   "frametool",
		Short: "Inspect frame structure files",
		Long: `frametool loads the node and edge tables frameview displays and reports
on them: bounds, expression evaluation, validation and YAML export.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	opts.register(rootCmd)

	rootCmd.AddCommand(newBoundsCommand(opts))
	rootCmd.AddCommand(newEvalCommand(opts))
	rootCmd.AddCommand(newCheckCommand(opts))
	rootCmd.AddCommand(newExportCommand(opts))

	return rootCmd
}
