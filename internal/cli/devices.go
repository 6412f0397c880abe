package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vapetrack/vapetrack/internal/app/devices"
)

func init() {
	rootCmd.AddCommand(devicesCmd)
}

var devicesCmd = &cobra.Command{
	Use:   "devices [query]",
	Short: "List the device catalog",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDevices,
}

func runDevices(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	found := devices.Search(query)
	if len(found) == 0 {
		fmt.Printf("No devices match %q.\n", query)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFLAVOR\tTYPE\tSTRENGTH\tRATED")
	for _, dev := range found {
		rated := "-"
		if dev.RatedPuffs > 0 {
			rated = fmt.Sprintf("%d puffs", dev.RatedPuffs)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f mg/ml\t%s\n",
			dev.Name, dev.Flavor, dev.Type, dev.NicotineMgPerMl, rated)
	}
	return w.Flush()
}
