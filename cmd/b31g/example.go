package main

import (
	"Integrity/internal/calc/engine"
	"Integrity/internal/calc/fixture"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exampleLevel string

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print the worked example as a case file",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := engine.ParseLevel(exampleLevel)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(Case{Level: exampleLevel, Request: fixture.Request(level)})
	},
}

func init() {
	exampleCmd.Flags().StringVar(&exampleLevel, "level", "1", "Level of the example: 0, 1 or 2")
}
