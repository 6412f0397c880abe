package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/vapetrack/vapetrack/internal/daemon"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"stats"},
	Short:   "Show today's consumption and running totals",
	RunE:    runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	now := time.Now()
	snap, err := d.Engine.Snapshot(now)
	if err != nil {
		return err
	}
	p, err := d.Engine.Profile()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Today\t%d puffs (%.1f cigarettes, %d%% of old habit)\n",
		snap.TodayPuffs, snap.CigaretteEquivalent, snap.HabitPercentage)
	fmt.Fprintf(w, "All time\t%d puffs\n", snap.TotalPuffs)
	fmt.Fprintf(w, "Net savings\t$%.2f\n", snap.NetSavings)
	fmt.Fprintf(w, "Cigarettes avoided\t%.1f\n", snap.CigarettesAvoided)
	if snap.TimeSinceLastPuff > 0 {
		fmt.Fprintf(w, "Last puff\t%s ago\n", snap.TimeSinceLastPuff.Round(time.Minute))
	}
	fmt.Fprintf(w, "Level\t%d (%d XP)\n", snap.Level, snap.XP)
	fmt.Fprintf(w, "Juice level\t%.0f%%\n", p.JuiceLevelPct)
	if p.SmokeFree {
		fmt.Fprintf(w, "Smoke-free\tsince %s\n", p.SmokeFreeSince.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
