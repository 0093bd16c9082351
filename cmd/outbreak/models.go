package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/epidemics/outbreak"
	"github.com/spf13/cobra"
)

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the models, their compartments and parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, m := range outbreak.Models {
				var names []string
				for _, c := range m.Compartments() {
					names = append(names, c.String())
				}
				fmt.Fprintf(w, "%s: %s over %s\n", m, strings.Join(names, " -> "), m.Horizon())
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "  name\tdomain\tdefault\tstep\tdescription")
				for _, s := range outbreak.ParamSpecs(m) {
					fmt.Fprintf(tw, "  %s\t%s\t%g\t%g\t%s\n", s.Name, s.Domain(), s.Default, s.Step, s.Description)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
