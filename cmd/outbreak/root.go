package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd is the base command of the CLI.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "outbreak",
		Short:        "Deterministic SIR / SEIR outbreak simulator",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newModelsCmd())
	return root
}
