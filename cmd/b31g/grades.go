package main

import (
	"fmt"
	"text/tabwriter"

	"Integrity/internal/calc/grades"
	"github.com/spf13/cobra"
)

var gradesCmd = &cobra.Command{
	Use:   "grades",
	Short: "List API 5L grades and their SMYS",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "GRADE\tSMYS (MPa)\tSMYS (psi)")
		for _, g := range grades.API5L {
			fmt.Fprintf(w, "%s\t%g\t%g\n", g.Name, g.Metric, g.Imperial)
		}
		return w.Flush()
	},
}
