package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pricing-service",
	Short: "SmartSignals pricing page",
	Long:  "Serve and inspect the SmartSignals pricing page and its plan catalog.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
