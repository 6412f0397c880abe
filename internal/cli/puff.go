package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vapetrack/vapetrack/internal/daemon"
)

func init() {
	rootCmd.AddCommand(puffCmd)
}

var puffCmd = &cobra.Command{
	Use:   "puff",
	Short: "Log one puff",
	RunE:  runPuff,
}

func runPuff(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	now := time.Now()
	if _, err := d.Engine.LogPuff(now); err != nil {
		return err
	}

	snap, err := d.Engine.Snapshot(now)
	if err != nil {
		return err
	}
	fmt.Printf("Logged. Today: %d puffs (%.1f cigarettes, %d%% of your old habit)\n",
		snap.TodayPuffs, snap.CigaretteEquivalent, snap.HabitPercentage)
	return nil
}
