package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/vapetrack/vapetrack/internal/daemon"
)

func init() {
	juiceCmd.AddCommand(juiceLevelCmd)
	juiceCmd.AddCommand(juiceNewCmd)
	rootCmd.AddCommand(juiceCmd)
}

var juiceCmd = &cobra.Command{
	Use:   "juice",
	Short: "Manage the liquid reservoir",
}

var juiceLevelCmd = &cobra.Command{
	Use:   "level <percent>",
	Short: "Record the remaining juice level (0-100)",
	Long: `Record the reservoir's remaining level as a percentage.
A drop since the last reading is translated into log entries at the
device's rated yield; a rise (refill) just stores the new level.`,
	Args: cobra.ExactArgs(1),
	RunE: runJuiceLevel,
}

var juiceNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Record a fresh reservoir and reset the level to 100%",
	RunE:  runJuiceNew,
}

func runJuiceLevel(cmd *cobra.Command, args []string) error {
	level, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("level must be a number: %q", args[0])
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	synthesized, err := d.Engine.ApplyJuiceLevel(time.Now(), level)
	if err != nil {
		return err
	}
	if synthesized > 0 {
		fmt.Printf("Level set to %.0f%%. Logged %d puffs for the consumed liquid.\n", level, synthesized)
	} else {
		fmt.Printf("Level set to %.0f%%.\n", level)
	}
	return nil
}

func runJuiceNew(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	jp, err := d.Engine.NewReservoir(time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("New reservoir recorded. Previous one lasted %d puffs.\n", jp.PuffsSincePrevious)
	return nil
}
