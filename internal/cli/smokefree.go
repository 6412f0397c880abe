package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vapetrack/vapetrack/internal/daemon"
)

func init() {
	rootCmd.AddCommand(smokeFreeCmd)
}

var smokeFreeCmd = &cobra.Command{
	Use:   "smoke-free",
	Short: "Start a smoke-free attempt",
	Long: `Mark the start of a smoke-free run. The next logged puff
ends it; badges and the health timeline track how long it lasts.`,
	RunE: runSmokeFree,
}

func runSmokeFree(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Engine.StartSmokeFree(time.Now()); err != nil {
		return err
	}
	fmt.Println("Smoke-free attempt started. Good luck.")
	return nil
}
