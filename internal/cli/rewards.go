package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vapetrack/vapetrack/internal/daemon"
	"github.com/vapetrack/vapetrack/internal/domain"
)

func init() {
	rewardsCmd.AddCommand(rewardsBuyCmd)
	rewardsCmd.AddCommand(rewardsEquipCmd)
	rewardsCmd.AddCommand(rewardsUnequipCmd)
	rootCmd.AddCommand(rewardsCmd)
}

var rewardsCmd = &cobra.Command{
	Use:   "rewards",
	Short: "Browse and buy cosmetic rewards with XP",
	RunE:  runRewardsList,
}

var rewardsBuyCmd = &cobra.Command{
	Use:   "buy <item>",
	Short: "Purchase a reward",
	Args:  cobra.ExactArgs(1),
	RunE:  runRewardsBuy,
}

var rewardsEquipCmd = &cobra.Command{
	Use:   "equip <item>",
	Short: "Equip a purchased reward",
	Args:  cobra.ExactArgs(1),
	RunE:  runRewardsEquip,
}

var rewardsUnequipCmd = &cobra.Command{
	Use:       "unequip <category>",
	Short:     "Clear an equipped slot (icon, border, effect)",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"icon", "border", "effect"},
	RunE:      runRewardsUnequip,
}

func runRewardsList(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	purchased, err := d.Rewards.Purchased()
	if err != nil {
		return err
	}
	owned := make(map[string]bool, len(purchased))
	for _, p := range purchased {
		owned[p.ID] = true
	}
	equipped, err := d.Rewards.Equipped()
	if err != nil {
		return err
	}
	bal, err := d.Ledger.Balance()
	if err != nil {
		return err
	}

	fmt.Printf("Balance: %d XP\n\n", bal)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tCATEGORY\tCOST\tSTATUS")
	for _, it := range d.Rewards.Items() {
		status := ""
		switch {
		case equipped[it.Category] == it.ID:
			status = "equipped"
		case owned[it.ID]:
			status = "owned"
		}
		fmt.Fprintf(w, "%s %s\t%s\t%d XP\t%s\n", it.Icon, it.ID, it.Category, it.CostXP, status)
	}
	return w.Flush()
}

func runRewardsBuy(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	item, err := d.Rewards.Purchase(args[0])
	if err != nil {
		return err
	}
	bal, _ := d.Ledger.Balance()
	fmt.Printf("Purchased %s %s for %d XP. Balance: %d XP\n", item.Icon, item.Name, item.CostXP, bal)
	return nil
}

func runRewardsEquip(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	item, err := d.Rewards.Equip(args[0], "")
	if err != nil {
		return err
	}
	fmt.Printf("Equipped %s %s (%s slot)\n", item.Icon, item.Name, item.Category)
	return nil
}

func runRewardsUnequip(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	cat := domain.RewardCategory(args[0])
	switch cat {
	case domain.RewardIcon, domain.RewardBorder, domain.RewardEffect:
	default:
		return fmt.Errorf("unknown category %q (icon, border, effect)", args[0])
	}
	if err := d.Rewards.Unequip(cat); err != nil {
		return err
	}
	fmt.Printf("Cleared the %s slot.\n", cat)
	return nil
}
