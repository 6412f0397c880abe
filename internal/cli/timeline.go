package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/vapetrack/vapetrack/internal/app/milestones"
	"github.com/vapetrack/vapetrack/internal/daemon"
)

func init() {
	rootCmd.AddCommand(timelineCmd)
}

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show the health recovery timeline",
	RunE:  runTimeline,
}

func runTimeline(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	snap, err := d.Engine.Snapshot(time.Now())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MILESTONE\tAFTER\tSTATUS")
	for _, m := range milestones.Evaluate(snap.TimeSinceLastPuff) {
		status := "reached"
		if !m.Achieved {
			status = fmt.Sprintf("in %s", m.Remaining.Round(time.Minute))
		}
		fmt.Fprintf(w, "%s %s\t%s\t%s\n", m.Icon, m.Title, m.After, status)
	}
	return w.Flush()
}
