// Package cli implements the VapeTrack command-line interface using
// Cobra. Each subcommand maps to one tracking or engagement operation.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vapetrack/vapetrack/internal/daemon"
)

var rootCmd = &cobra.Command{
	Use:   "vapetrack",
	Short: "VapeTrack tracks the transition away from smoking",
	Long: `VapeTrack is a local-first habit tracker for moving from
cigarettes to vaping, and from vaping to nothing.

It keeps a private on-device log of consumption, translates it into
cigarette-equivalents against your old habit, and pays out XP for every
day you stay below your baseline.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version
	daemon.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
