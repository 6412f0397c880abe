package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/vapetrack/vapetrack/internal/daemon"
)

func init() {
	rootCmd.AddCommand(trendCmd)
}

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show the last seven days against your baseline",
	RunE:  runTrend,
}

func runTrend(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	days, err := d.Engine.WeeklyTrend(time.Now())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DAY\tPUFFS\tCIGARETTES\tOF BASELINE")
	for _, day := range days {
		bar := strings.Repeat("█", min(day.Percentage/10, 20))
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%3d%% %s\n",
			day.Date.Format("Mon 01-02"), day.Puffs, day.CigaretteEquivalent, day.Percentage, bar)
	}
	return w.Flush()
}
