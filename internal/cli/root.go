package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "smurfbrief",
	Short: "SC2 opponent intelligence overlay",
	Long:  "Polls the local SC2 client, resolves opponents on the public ladder, and publishes match-history briefs.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(encountersCmd)
}
