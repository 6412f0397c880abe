package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vapetrack/vapetrack/internal/app/devices"
	"github.com/vapetrack/vapetrack/internal/daemon"
	"github.com/vapetrack/vapetrack/internal/domain"
)

func init() {
	onboardCmd.Flags().StringVar(&onboardName, "name", "", "Display name")
	onboardCmd.Flags().IntVar(&onboardCigs, "cigarettes-per-day", domain.DefaultCigarettesPerDay, "Old habit: cigarettes per day")
	onboardCmd.Flags().Float64Var(&onboardPackCost, "pack-cost", domain.DefaultPackCost, "Old habit: cost per pack")
	onboardCmd.Flags().StringVar(&onboardDevice, "device", "", "Device from the catalog (see 'vapetrack devices')")
	rootCmd.AddCommand(onboardCmd)
}

var (
	onboardName     string
	onboardCigs     int
	onboardPackCost float64
	onboardDevice   string
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Set up your baseline and device",
	RunE:  runOnboard,
}

func runOnboard(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	var device *domain.Device
	if onboardDevice != "" {
		dev, ok := devices.Find(onboardDevice)
		if !ok {
			return fmt.Errorf("unknown device %q (see 'vapetrack devices')", onboardDevice)
		}
		device = &dev
	}

	p, err := d.Engine.Onboard(time.Now(), onboardName, onboardCigs, onboardPackCost, device)
	if err != nil {
		return err
	}

	fmt.Printf("Welcome, %s. Baseline: %d cigarettes/day at $%.2f per pack.\n",
		p.Name, p.CigarettesPerDay, p.PackCost)
	if p.Device != nil {
		fmt.Printf("Device: %s (%s, %.0f mg/ml)\n", p.Device.Name, p.Device.Flavor, p.Device.NicotineMgPerMl)
	}
	return nil
}
