package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vapetrack/vapetrack/internal/daemon"
)

func init() {
	rootCmd.AddCommand(badgesCmd)
}

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "Show earned and locked badges",
	RunE:  runBadges,
}

func runBadges(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	unlocked, err := d.Badges.ListUnlocked()
	if err != nil {
		return err
	}
	when := make(map[string]string, len(unlocked))
	for _, b := range unlocked {
		when[b.ID] = b.UnlockedAt.Format("2006-01-02")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BADGE\tDESCRIPTION\tEARNED")
	for _, def := range d.Badges.Definitions() {
		earned := "-"
		if date, ok := when[def.ID]; ok {
			earned = date
		}
		fmt.Fprintf(w, "%s %s\t%s\t%s\n", def.Icon, def.Name, def.Desc, earned)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d of %d earned\n", len(unlocked), d.Badges.TotalCount())
	return nil
}
