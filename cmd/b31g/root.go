package main

import (
	"Integrity/pkg/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logLevel string
	logger   = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "b31g",
	Short:         "Assess corrosion defects on pressurized pipelines per ASME B31G",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = log.InitLog(log.ParseLevel(logLevel))
	},
}

func init() {
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(gradesCmd)
	rootCmd.AddCommand(exampleCmd)

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
}
