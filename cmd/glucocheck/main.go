package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "glucocheck",
	Short:        "Score a health profile for diabetes risk",
	Long:         "glucocheck runs the rule-based diabetes risk assessment from the command line. Results are advisory only.",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(newAssessCmd())
	rootCmd.AddCommand(newValidateCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
